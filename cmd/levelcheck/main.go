// Command levelcheck validates maze level files.
//
//	levelcheck [-dir levels] [-strict] [level1.txt ...]
//
// With no file arguments it walks level1.txt, level2.txt, ... until one is
// missing.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/milk9111/marblemaze/levels"
)

func main() {
	dir := flag.String("dir", "levels", "directory holding levelN.txt files; the embedded levels are used when it does not exist")
	strict := flag.Bool("strict", false, "treat warnings as errors")
	flag.Parse()

	failed := false
	report := func(name string, findings []finding) {
		if len(findings) == 0 {
			fmt.Printf("%s: ok\n", name)
			return
		}
		for _, f := range findings {
			fmt.Printf("%s: %s\n", name, f)
			if f.Severity == failure || *strict {
				failed = true
			}
		}
	}

	if flag.NArg() > 0 {
		for _, path := range flag.Args() {
			data, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failed = true
				continue
			}
			report(filepath.Base(path), checkLevel(string(data)))
		}
	} else {
		src := levels.Default(*dir)
		for i := 1; ; i++ {
			text, err := src.Load(i)
			if errors.Is(err, levels.ErrLevelNotFound) {
				if i == 1 {
					fmt.Fprintln(os.Stderr, "no levels found")
					failed = true
				}
				break
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", levels.Name(i), err)
				failed = true
				break
			}
			report(levels.Name(i), checkLevel(text))
		}
	}

	if failed {
		os.Exit(1)
	}
}
