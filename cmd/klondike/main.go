// Command klondike is an offline companion to the server. It prints the deal
// for a given seed and validates game configuration files before they are
// dropped into the server's config directory.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "klondike",
		Usage:  "inspect Klondike deals and configuration files",
		Writer: w,
		Commands: []*cli.Command{
			dealCommand(w),
			validateCommand(w),
		},
	}
}

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
