package levels

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/ecs/component"
)

// Grid geometry: every tile is TilePitch units wide and entities sit in the
// middle of their cell.
const (
	TilePitch  = 64.0
	TileOffset = TilePitch / 2
)

// TileKind is a recognized level character.
type TileKind rune

const (
	TileWall       TileKind = 'x'
	TileVortex     TileKind = 'v'
	TileStar       TileKind = 's'
	TileFinish     TileKind = 'f'
	TileTeleporter TileKind = 't'
)

const emptyTile = ' '

var ErrMalformedLevel = errors.New("levels: malformed level")

// MalformedLevelError reports the first unrecognized character of a level.
type MalformedLevelError struct {
	Row    int
	Column int
	Char   rune
}

func (e *MalformedLevelError) Error() string {
	return fmt.Sprintf("levels: malformed level: unknown tile %q at row %d column %d", e.Char, e.Row, e.Column)
}

func (e *MalformedLevelError) Is(target error) bool {
	return target == ErrMalformedLevel
}

// Category returns the collision category entities of this kind carry.
func (k TileKind) Category() component.Category {
	switch k {
	case TileWall:
		return component.CategoryWall
	case TileVortex:
		return component.CategoryVortex
	case TileStar:
		return component.CategoryStar
	case TileFinish:
		return component.CategoryFinish
	case TileTeleporter:
		return component.CategoryTeleporter
	default:
		return component.CategoryNone
	}
}

func (k TileKind) String() string {
	if c := k.Category(); c != component.CategoryNone {
		return c.String()
	}
	return fmt.Sprintf("tile(%q)", rune(k))
}

func tileKind(r rune) (TileKind, bool) {
	switch k := TileKind(r); k {
	case TileWall, TileVortex, TileStar, TileFinish, TileTeleporter:
		return k, true
	}
	return 0, false
}

// Placement is one tile to instantiate.
type Placement struct {
	Row    int
	Column int
	Kind   TileKind
}

// Position is the world-space center of the placement's cell.
func (p Placement) Position() common.Vec {
	return WorldPosition(p.Row, p.Column)
}

// WorldPosition maps a grid cell to the world-space center of that cell.
func WorldPosition(row, column int) common.Vec {
	return common.Vec{
		X: TilePitch*float64(column) + TileOffset,
		Y: TilePitch*float64(row) + TileOffset,
	}
}

// Lines splits level text into rows in file order. Carriage returns are
// dropped, as is a single trailing newline.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Parse converts level text into placements. Row 0 is the last line of the
// text so the grid reads the way it looks in an editor. Parse has no side
// effects; on error no placements are returned.
func Parse(text string) ([]Placement, error) {
	lines := Lines(text)
	out := make([]Placement, 0, len(text))
	for i := len(lines) - 1; i >= 0; i-- {
		row := len(lines) - 1 - i
		column := 0
		for _, r := range lines[i] {
			if r != emptyTile {
				kind, ok := tileKind(r)
				if !ok {
					return nil, &MalformedLevelError{Row: row, Column: column, Char: r}
				}
				out = append(out, Placement{Row: row, Column: column, Kind: kind})
			}
			column++
		}
	}
	return out, nil
}
