package tokenizer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Grammar describes the fixed tokens of the language: base tokens hang off
// the root of the lex tree, branches extend a token (or a bare prefix) to
// longer operators.
type Grammar struct {
	Base     []string `yaml:"base" toml:"base"`
	Branches []Branch `yaml:"branch,omitempty" toml:"branch,omitempty"`
}

// Branch is a subtree of the lex tree. Text is the full spelling of the
// subtree root; Extend lists suffixes that complete it to further tokens;
// nested Branches extend it through more than one level.
type Branch struct {
	Text     string   `yaml:"text" toml:"text"`
	Extend   []string `yaml:"extend,omitempty" toml:"extend,omitempty"`
	Branches []Branch `yaml:"branch,omitempty" toml:"branch,omitempty"`
}

// Grammar file formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// MinimalGrammar returns the smallest grammar the language was first
// described with: let and ; plus + extending to += and = extending to ==.
func MinimalGrammar() *Grammar {
	return &Grammar{
		Base: []string{"let", ";"},
		Branches: []Branch{
			{Text: "+", Extend: []string{"="}},
			{Text: "=", Extend: []string{"="}},
		},
	}
}

// DefaultGrammar returns a grammar in which every fixed-spelling token is
// reachable.
func DefaultGrammar() *Grammar {
	g := &Grammar{Base: []string{"let", ";"}}
	for _, op := range []string{"+", "-", "/", "*", "^", "|", "&", "="} {
		g.Branches = append(g.Branches, Branch{Text: op, Extend: []string{"="}})
	}
	return g
}

// DefaultLexTree returns the lex tree for DefaultGrammar. It is built once
// and shared.
var DefaultLexTree = sync.OnceValue(func() *LexNode {
	tree, err := DefaultGrammar().Build()
	if err != nil {
		// The default grammar is static, so this is a programming error.
		panic(fmt.Sprintf("Invalid default grammar: %v", err))
	}
	return tree
})

// Build constructs the lex tree described by the grammar. Any spelling that
// does not resolve to a token is reported as a *GrammarError.
func (g *Grammar) Build() (*LexNode, error) {
	root := NewRoot()
	if err := root.WithChildren(g.Base...); err != nil {
		return nil, err
	}
	for _, b := range g.Branches {
		sub, err := b.build()
		if err != nil {
			return nil, err
		}
		if err := root.WithBranch(sub); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func (b Branch) build() (*LexNode, error) {
	var node *LexNode
	var err error
	if _, ok := LookupSpelling(b.Text); ok {
		node, err = NewLeaf(b.Text)
	} else {
		node, err = NewPrefix(b.Text)
	}
	if err != nil {
		return nil, err
	}
	if err := node.WithChildren(b.Extend...); err != nil {
		return nil, err
	}
	for _, nested := range b.Branches {
		sub, err := nested.build()
		if err != nil {
			return nil, err
		}
		if err := node.WithBranch(sub); err != nil {
			return nil, err
		}
	}
	if _, ok := node.Kind(); !ok && !node.HasChildren() {
		return nil, grammarErrorf(b.Text, "prefix leads to no token")
	}
	return node, nil
}

// FormatForPath picks the grammar file format from a file extension.
func FormatForPath(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown grammar file extension for '%s' (want .yaml, .yml or .toml)", filename)
	}
}

// LoadGrammarFile loads and parses a YAML or TOML grammar file.
func LoadGrammarFile(filename string) (*Grammar, error) {
	format, err := FormatForPath(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar file '%s': %w", filename, err)
	}

	g, err := ParseGrammar(data, format)
	if err != nil {
		return nil, fmt.Errorf("grammar file '%s': %w", filename, err)
	}
	return g, nil
}

// ParseGrammar decodes a grammar description. Unknown keys are rejected.
func ParseGrammar(data []byte, format string) (*Grammar, error) {
	var g Grammar
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&g); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &g)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unknown grammar format: %s", format)
	}

	if len(g.Base) == 0 && len(g.Branches) == 0 {
		return nil, fmt.Errorf("grammar defines no tokens")
	}
	return &g, nil
}

// Encode writes the grammar in the given format.
func (g *Grammar) Encode(w io.Writer, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("failed to marshal grammar to YAML: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(g); err != nil {
			return fmt.Errorf("failed to marshal grammar to TOML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown grammar format: %s", format)
	}
}
