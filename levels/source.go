package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrLevelNotFound = errors.New("levels: level not found")

// Source yields the raw text of sequentially numbered levels.
type Source interface {
	Load(index int) (string, error)
}

// Name is the file name of level index.
func Name(index int) string {
	return fmt.Sprintf("level%d.txt", index)
}

// Index reports which level a file path names, so "levels/level3.txt" is 3.
func Index(path string) (int, bool) {
	base := filepath.Base(path)
	digits, ok := strings.CutPrefix(base, "level")
	if !ok {
		return 0, false
	}
	digits, ok = strings.CutSuffix(digits, ".txt")
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || Name(n) != base {
		return 0, false
	}
	return n, true
}

// FSSource reads level<N>.txt files from a file system.
type FSSource struct {
	FS fs.FS
}

func (s FSSource) Load(index int) (string, error) {
	name := Name(index)
	if s.FS == nil || index < 1 {
		return "", fmt.Errorf("%w: %s", ErrLevelNotFound, name)
	}
	data, err := fs.ReadFile(s.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrLevelNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("levels: read %s: %w", name, err)
	}
	return string(data), nil
}

// Overlay asks each source in turn and returns the first level found.
type Overlay []Source

func (o Overlay) Load(index int) (string, error) {
	for _, src := range o {
		if src == nil {
			continue
		}
		text, err := src.Load(index)
		if errors.Is(err, ErrLevelNotFound) {
			continue
		}
		return text, err
	}
	return "", fmt.Errorf("%w: %s", ErrLevelNotFound, Name(index))
}

// Default prefers level files in dir, so they can be edited while the game
// runs, and falls back to the embedded copies.
func Default(dir string) Source {
	if dir == "" {
		return Embedded()
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return Embedded()
	}
	return Overlay{FSSource{FS: os.DirFS(dir)}, Embedded()}
}
