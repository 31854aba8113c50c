package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version can be overridden at build time via -ldflags.
var version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			useCol, err := useColor(cmd, os.Stdout)
			if err != nil {
				return err
			}
			name := color.New(color.FgCyan, color.Bold)
			if useCol {
				name.EnableColor()
			} else {
				name.DisableColor()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", name.Sprint("venlyn-tokenizer"), version)
			return nil
		},
	}
}
