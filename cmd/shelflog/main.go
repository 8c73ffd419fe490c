// Command shelflog keeps a personal log of books read.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/shelflog/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
