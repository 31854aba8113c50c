package tokenizer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const deepYAML = `base: [let, ";"]
branch:
  - text: "="
    branch:
      - text: "=="
  - text: "+"
    extend: ["="]
`

const deepTOML = `base = ["let", ";"]

[[branch]]
text = "="

[[branch.branch]]
text = "=="

[[branch]]
text = "+"
extend = ["="]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestLoadGrammarFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"YAML", "grammar.yaml", deepYAML},
		{"YML", "grammar.yml", deepYAML},
		{"TOML", "grammar.toml", deepTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := LoadGrammarFile(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			tree, err := g.Build()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			want := []Kind{CmpEq, Eq, Let, Plus, PlusEq, Semi}
			if got := tree.Kinds(); !reflect.DeepEqual(got, want) {
				t.Errorf("Expected kinds %v, got %v", want, got)
			}

			tokens, err := NewTokenizerWithTree("x == 1; y += 2", tree).Tokenize()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			expected := []string{`Id("x")`, "CmpEq", "NumericalLiteral(1)", "Semi", `Id("y")`, "PlusEq", "NumericalLiteral(2)"}
			if got := describe(tokens); !reflect.DeepEqual(got, expected) {
				t.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

func TestLoadGrammarFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errText string
	}{
		{"Unknown extension", "grammar.json", "{}", "unknown grammar file extension"},
		{"Unknown YAML key", "g.yaml", "base: [let]\noperators: [x]\n", "failed to parse YAML"},
		{"Unknown TOML key", "g.toml", "base = [\"let\"]\noperators = [\"x\"]\n", "unknown key"},
		{"Bad TOML", "g.toml", "base = [", "failed to parse TOML"},
		{"Empty grammar", "g.yaml", "", "grammar defines no tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGrammarFile(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.errText)
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Expected error containing %q, got %v", tt.errText, err)
			}
		})
	}

	if _, err := LoadGrammarFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a wrapped not-exist error, got %v", err)
	}
}

func TestBuildRejectsUnknownSpellings(t *testing.T) {
	tests := []struct {
		name     string
		grammar  *Grammar
		spelling string
	}{
		{"Base", &Grammar{Base: []string{"let", "var"}}, "var"},
		{"Extension", &Grammar{Branches: []Branch{{Text: "+", Extend: []string{"+"}}}}, "++"},
		{"Nested", &Grammar{Branches: []Branch{{Text: "=", Branches: []Branch{{Text: "=>"}}}}}, "=>"},
		{"Not an extension", &Grammar{Branches: []Branch{{Text: "=", Branches: []Branch{{Text: "+="}}}}}, "+="},
		{"Duplicate", &Grammar{Base: []string{"+"}, Branches: []Branch{{Text: "+"}}}, "+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.grammar.Build()
			var gerr *GrammarError
			if !errors.As(err, &gerr) {
				t.Fatalf("Expected *GrammarError, got %v", err)
			}
			if gerr.Spelling != tt.spelling {
				t.Errorf("Expected spelling %q, got %q", tt.spelling, gerr.Spelling)
			}
		})
	}
}

func TestGrammarEncodeRoundTrip(t *testing.T) {
	for _, format := range []string{FormatYAML, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := DefaultGrammar().Encode(&buf, format); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			g, err := ParseGrammar(buf.Bytes(), format)
			if err != nil {
				t.Fatalf("Unexpected error: %v\n%s", err, buf.String())
			}
			if !reflect.DeepEqual(g, DefaultGrammar()) {
				t.Errorf("Expected %+v, got %+v", DefaultGrammar(), g)
			}
		})
	}
}
