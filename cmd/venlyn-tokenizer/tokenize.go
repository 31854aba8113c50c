package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spicery/venlyn-tokenizer/pkg/batch"
	"github.com/spicery/venlyn-tokenizer/pkg/tokenfmt"
	"github.com/spicery/venlyn-tokenizer/pkg/tokenizer"
)

type tokenizeOptions struct {
	input   string
	output  string
	grammar string
	format  string
	exit0   bool
	jobs    int
}

func newTokenizeCmd() *cobra.Command {
	var opts tokenizeOptions
	cmd := &cobra.Command{
		Use:   "tokenize [flags] [file...]",
		Short: "Tokenize Venlyn source",
		Long: `Tokenize reads Venlyn source from stdin, from --input, or from the files
named as arguments, and writes its tokens. With several files they are
tokenized in parallel and written in argument order.`,
		Example: `  venlyn-tokenizer tokenize                              # Read from stdin, write to stdout
  venlyn-tokenizer tokenize --input source.vn            # Read from file, write to stdout
  venlyn-tokenizer tokenize --output tokens.json         # Read from stdin, write to file
  venlyn-tokenizer tokenize --grammar ops.yaml a.vn b.vn # Use a custom grammar
  echo "let x = 4;" | venlyn-tokenizer tokenize --format pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "input file (defaults to stdin)")
	cmd.Flags().StringVar(&opts.output, "output", "", "output file (defaults to stdout)")
	cmd.Flags().StringVar(&opts.grammar, "grammar", "", "YAML or TOML grammar file (optional)")
	cmd.Flags().StringVar(&opts.format, "format", tokenfmt.FormatJSON, "output format ("+strings.Join(tokenfmt.Formats, "|")+")")
	cmd.Flags().BoolVar(&opts.exit0, "exit0", false, "exit with code 0 even on tokenisation errors (suppress stderr)")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 0, "files tokenized at once (0 = GOMAXPROCS)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string, opts tokenizeOptions) error {
	if !slices.Contains(tokenfmt.Formats, opts.format) {
		return fmt.Errorf("unknown format %q (must be %s)", opts.format, strings.Join(tokenfmt.Formats, ", "))
	}
	if opts.input != "" && len(args) > 0 {
		return fmt.Errorf("use either --input or file arguments, not both")
	}
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}

	tree, err := loadTree(opts.grammar)
	if err != nil {
		return err
	}

	results, err := collectResults(cmd, args, opts, tree)
	if err != nil {
		return err
	}

	output, closeOutput, err := openOutput(cmd, opts.output)
	if err != nil {
		return err
	}

	// Tokens are written even when tokenisation stopped early.
	if len(args) > 1 {
		files := make([]tokenfmt.File, len(results))
		for i, r := range results {
			files[i] = tokenfmt.File{Path: r.Path, Tokens: r.Tokens}
		}
		err = tokenfmt.WriteFiles(output, opts.format, files)
	} else {
		err = tokenfmt.Write(output, opts.format, results[0].Tokens)
	}
	if closeErr := closeOutput(); err == nil && closeErr != nil {
		err = fmt.Errorf("error closing output file '%s': %w", opts.output, closeErr)
	}
	if err != nil {
		return err
	}

	failed := false
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		failed = true
		if !opts.exit0 {
			tokenfmt.Report(cmd.ErrOrStderr(), r.Source, r.Err, tokenfmt.ReportOpts{Path: r.Path, Color: colored})
		}
	}
	if failed && !opts.exit0 {
		return errReported
	}
	return nil
}

// loadTree builds the lex tree from a grammar file, or returns the default
// tree when no file is given.
func loadTree(grammarFile string) (*tokenizer.LexNode, error) {
	if grammarFile == "" {
		return tokenizer.DefaultLexTree(), nil
	}
	g, err := tokenizer.LoadGrammarFile(grammarFile)
	if err != nil {
		return nil, fmt.Errorf("error loading grammar file: %w", err)
	}
	tree, err := g.Build()
	if err != nil {
		return nil, fmt.Errorf("error building grammar '%s': %w", grammarFile, err)
	}
	return tree, nil
}

func collectResults(cmd *cobra.Command, args []string, opts tokenizeOptions, tree *tokenizer.LexNode) ([]batch.Result, error) {
	if len(args) > 0 {
		return batch.TokenizeFiles(cmd.Context(), args, tree, opts.jobs)
	}

	var src string
	var err error
	if opts.input == "" {
		src, err = batch.ReadSource(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("error reading from stdin: %w", err)
		}
	} else {
		src, err = batch.ReadFile(opts.input)
		if err != nil {
			return nil, fmt.Errorf("error reading input: %w", err)
		}
	}

	tokens, err := tokenizer.NewTokenizerWithTree(src, tree).Tokenize()
	return []batch.Result{{Path: opts.input, Source: src, Tokens: tokens, Err: err}}, nil
}

func openOutput(cmd *cobra.Command, outputFile string) (io.Writer, func() error, error) {
	if outputFile == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating output file '%s': %w", outputFile, err)
	}
	return file, file.Close, nil
}
