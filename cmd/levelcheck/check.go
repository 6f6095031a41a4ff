package main

import (
	"errors"
	"fmt"

	"github.com/milk9111/marblemaze/levels"
)

// spawnRow and spawnColumn locate the cell the player starts in.
const (
	spawnRow    = 10
	spawnColumn = 1
)

type severity int

const (
	warning severity = iota
	failure
)

func (s severity) String() string {
	if s == failure {
		return "error"
	}
	return "warning"
}

type finding struct {
	Severity severity
	Message  string
}

func (f finding) String() string {
	return fmt.Sprintf("%s: %s", f.Severity, f.Message)
}

func checkLevel(text string) []finding {
	var out []finding
	placements, err := levels.Parse(text)
	if err != nil {
		var malformed *levels.MalformedLevelError
		if errors.As(err, &malformed) {
			return []finding{{failure, fmt.Sprintf("unknown tile %q at row %d column %d", malformed.Char, malformed.Row, malformed.Column)}}
		}
		return []finding{{failure, err.Error()}}
	}

	lines := levels.Lines(text)
	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != width {
			out = append(out, finding{warning, fmt.Sprintf("row %d is %d wide, widest row is %d", len(lines)-1-i, n, width)})
		}
	}

	counts := map[levels.TileKind]int{}
	for _, p := range placements {
		counts[p.Kind]++
		if p.Row == spawnRow && p.Column == spawnColumn {
			out = append(out, finding{failure, fmt.Sprintf("spawn cell holds a %s", p.Kind)})
		}
	}

	switch n := counts[levels.TileTeleporter]; {
	case n == 1:
		out = append(out, finding{warning, "single teleporter has no partner"})
	case n > 2:
		out = append(out, finding{warning, fmt.Sprintf("%d teleporters, only the first two are linked", n)})
	}
	if counts[levels.TileFinish] == 0 {
		out = append(out, finding{warning, "no finish tile"})
	}
	return out
}
