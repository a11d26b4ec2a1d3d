package main

import (
	"os"
)

func main() {
	root, c := newRootCmd(os.Stdout, os.Stderr)
	if err := execute(root, c); err != nil {
		os.Exit(1)
	}
}
