package levels

import "embed"

//go:embed *.txt
var LevelsFS embed.FS

// Embedded returns the levels compiled into the binary.
func Embedded() Source {
	return FSSource{FS: LevelsFS}
}
