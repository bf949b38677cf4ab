package main

import (
	"fmt"
	"os"

	"github.com/dori/tasklist/internal/cli"
)

func main() {
	root := cli.NewRootCommand(os.Stdout)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cli.NewErrorHandler().HandleSimple(err))
		os.Exit(1)
	}
}
