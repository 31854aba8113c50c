// Package tokenfmt writes token streams and tokenisation errors for the
// command line.
package tokenfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/spicery/venlyn-tokenizer/pkg/tokenizer"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatPretty  = "pretty"
	FormatMsgpack = "msgpack"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatJSON, FormatPretty, FormatMsgpack}

// Write writes tokens to w in the named format.
func Write(w io.Writer, format string, tokens []tokenizer.Token) error {
	switch format {
	case FormatJSON:
		return WriteJSONLines(w, tokens)
	case FormatPretty:
		return WritePretty(w, tokens)
	case FormatMsgpack:
		return WriteMsgpack(w, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSONLines writes one JSON token object per line.
func WriteJSONLines(w io.Writer, tokens []tokenizer.Token) error {
	for _, token := range tokens {
		jsonBytes, err := json.Marshal(token)
		if err != nil {
			return fmt.Errorf("JSON encoding error: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(jsonBytes)); err != nil {
			return err
		}
	}
	return nil
}

// WritePretty writes one numbered, human readable line per token.
func WritePretty(w io.Writer, tokens []tokenizer.Token) error {
	for i, tok := range tokens {
		_, err := fmt.Fprintf(w, "%3d: %-16s %q at %d:%d-%d:%d\n",
			i+1, tok.Kind, tok.Text,
			tok.Span.Start.Line, tok.Span.Start.Col,
			tok.Span.End.Line, tok.Span.End.Col)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteMsgpack writes the tokens as a single msgpack array.
func WriteMsgpack(w io.Writer, tokens []tokenizer.Token) error {
	if tokens == nil {
		tokens = []tokenizer.Token{}
	}
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(tokens); err != nil {
		return fmt.Errorf("msgpack encoding error: %w", err)
	}
	return nil
}

// ReadMsgpack decodes tokens written by WriteMsgpack.
func ReadMsgpack(r io.Reader) ([]tokenizer.Token, error) {
	var tokens []tokenizer.Token
	if err := msgpack.NewDecoder(r).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("msgpack decoding error: %w", err)
	}
	return tokens, nil
}

// File is the token stream of one named input.
type File struct {
	Path   string            `json:"path" msgpack:"path"`
	Tokens []tokenizer.Token `json:"tokens" msgpack:"tokens"`
}

// WriteFiles writes the tokens of several inputs. JSON output has one object
// per file per line, pretty output a header per file, and msgpack output a
// single array of files.
func WriteFiles(w io.Writer, format string, files []File) error {
	switch format {
	case FormatJSON:
		for _, f := range files {
			if f.Tokens == nil {
				f.Tokens = []tokenizer.Token{}
			}
			jsonBytes, err := json.Marshal(f)
			if err != nil {
				return fmt.Errorf("JSON encoding error: %w", err)
			}
			if _, err := fmt.Fprintln(w, string(jsonBytes)); err != nil {
				return err
			}
		}
		return nil
	case FormatPretty:
		for i, f := range files {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", f.Path)
			if err := WritePretty(w, f.Tokens); err != nil {
				return err
			}
		}
		return nil
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(files); err != nil {
			return fmt.Errorf("msgpack encoding error: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
