package main

import (
	"fmt"
	"os"

	"venomdocs/internal/errors"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "venomdocs:", err)
		if errors.HasCode(err, errors.ErrCodeConfig) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	c := newCLI()
	defer c.close()

	root := newRootCmd(c)
	root.SetArgs(args)
	return root.Execute()
}
