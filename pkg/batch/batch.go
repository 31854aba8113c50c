// Package batch loads Venlyn sources and tokenizes many of them in parallel
// against one shared lex tree.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/spicery/venlyn-tokenizer/pkg/tokenizer"
)

// MaxSourceBytes bounds the size of a single source file.
const MaxSourceBytes = 64 << 20

// Result holds the tokens of one input. Err is the tokenisation error, if
// any; Tokens then holds the tokens read before it.
type Result struct {
	Path   string
	Source string // Normalised source text
	Tokens []tokenizer.Token
	Err    error
}

// ReadSource reads all of r and normalises it to NFC, so that composed and
// decomposed spellings of an identifier tokenize alike.
func ReadSource(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSourceBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxSourceBytes {
		return "", fmt.Errorf("source exceeds %d bytes", MaxSourceBytes)
	}
	return norm.NFC.String(string(data)), nil
}

// ReadFile reads and normalises a source file.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	size, err := safecast.Conv[int](info.Size())
	if err != nil {
		return "", fmt.Errorf("%s: file size overflow: %w", path, err)
	}
	if size > MaxSourceBytes {
		return "", fmt.Errorf("%s: source exceeds %d bytes", path, MaxSourceBytes)
	}

	src, err := ReadSource(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// TokenizeFiles tokenizes every path with the given tree, running at most
// jobs files at once (GOMAXPROCS when jobs <= 0). Results keep the order of
// paths. A file that cannot be read aborts the batch; tokenisation errors
// are recorded per result.
func TokenizeFiles(ctx context.Context, paths []string, tree *tokenizer.LexNode, jobs int) ([]Result, error) {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	// Each goroutine writes only its own index.
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := ReadFile(path)
			if err != nil {
				return err
			}
			tokens, err := tokenizer.NewTokenizerWithTree(src, tree).Tokenize()
			results[i] = Result{Path: path, Source: src, Tokens: tokens, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FirstError returns the first tokenisation error among results, in order.
func FirstError(results []Result) error {
	for _, r := range results {
		if r.Err != nil {
			var uerr *tokenizer.UnrecognizedCharacterError
			if errors.As(r.Err, &uerr) {
				return fmt.Errorf("%s:%d:%d: %w", r.Path, uerr.Pos.Line, uerr.Pos.Col, r.Err)
			}
			return fmt.Errorf("%s: %w", r.Path, r.Err)
		}
	}
	return nil
}
