package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spicery/venlyn-tokenizer/pkg/tokenizer"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect and check grammar files",
	}
	cmd.AddCommand(newGrammarDumpCmd())
	cmd.AddCommand(newGrammarCheckCmd())
	return cmd
}

func newGrammarDumpCmd() *cobra.Command {
	var format string
	var minimal bool
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the built-in grammar as YAML or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := tokenizer.DefaultGrammar()
			if minimal {
				g = tokenizer.MinimalGrammar()
			}
			if err := g.Encode(cmd.OutOrStdout(), format); err != nil {
				return fmt.Errorf("error generating grammar: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", tokenizer.FormatYAML, "output format (yaml|toml)")
	cmd.Flags().BoolVar(&minimal, "minimal", false, "dump the minimal grammar instead of the default")
	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check file",
		Short: "Check a grammar file and list the tokens it reaches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, kind := range tree.Kinds() {
				spelling, _ := kind.Spelling()
				fmt.Fprintf(out, "%-10s %s\n", kind, spelling)
			}
			return nil
		},
	}
}
