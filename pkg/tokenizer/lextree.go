package tokenizer

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// nodeValue is the payload of a LexNode: either resolved or unresolved.
type nodeValue interface {
	spelling() string
}

// resolved marks a node whose path spelling is a complete token.
type resolved struct {
	kind Kind
}

func (v resolved) spelling() string {
	s, _ := v.kind.Spelling()
	return s
}

// unresolved marks a node whose path spelling is only a prefix of longer
// tokens. The root is the unresolved empty prefix.
type unresolved struct {
	prefix string
}

func (v unresolved) spelling() string {
	return v.prefix
}

// LexNode is a node of the lex tree used for maximal-munch matching.
//
// Children are keyed by the suffix that extends this node's spelling to the
// child's spelling. Trees are assembled with NewRoot, NewLeaf, NewPrefix,
// WithChildren and WithBranch and are read-only afterwards; a finished tree
// may be shared by concurrent tokenizers.
type LexNode struct {
	value    nodeValue
	children map[string]*LexNode
	maxKey   int // Length in runes of the longest child key
}

// NewRoot returns an empty-prefix node with no children.
func NewRoot() *LexNode {
	return &LexNode{value: unresolved{}}
}

// NewLeaf returns a node resolving to the token spelled spelling.
func NewLeaf(spelling string) (*LexNode, error) {
	kind, ok := LookupSpelling(spelling)
	if !ok {
		return nil, grammarErrorf(spelling, "not the spelling of any token")
	}
	return &LexNode{value: resolved{kind: kind}}, nil
}

// NewPrefix returns an unresolved node for a spelling that is not itself a
// token but leads to longer ones.
func NewPrefix(prefix string) (*LexNode, error) {
	if prefix == "" {
		return nil, grammarErrorf(prefix, "empty prefix, use NewRoot")
	}
	if kind, ok := LookupSpelling(prefix); ok {
		return nil, grammarErrorf(prefix, "spells %s, use NewLeaf", kind)
	}
	return &LexNode{value: unresolved{prefix: prefix}}, nil
}

// Kind returns the kind this node resolves to. The second result is false
// for unresolved nodes.
func (n *LexNode) Kind() (Kind, bool) {
	if v, ok := n.value.(resolved); ok {
		return v.kind, true
	}
	return "", false
}

// Spelling returns the full text from the root to this node.
func (n *LexNode) Spelling() string {
	return n.value.spelling()
}

// HasChildren reports whether the node can be extended.
func (n *LexNode) HasChildren() bool {
	return len(n.children) > 0
}

// Child returns the child reached by appending suffix to this node's spelling.
func (n *LexNode) Child(suffix string) (*LexNode, bool) {
	child, ok := n.children[suffix]
	return child, ok
}

// MaxSuffixLen returns the length in runes of the longest child key.
func (n *LexNode) MaxSuffixLen() int {
	return n.maxKey
}

// Suffixes returns the child keys in sorted order.
func (n *LexNode) Suffixes() []string {
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// extendsToChild reports whether some child key starts with partial.
func (n *LexNode) extendsToChild(partial string) bool {
	for k := range n.children {
		if strings.HasPrefix(k, partial) {
			return true
		}
	}
	return false
}

// WithChildren adds a resolved child for the spelling P+s of each suffix s,
// where P is this node's spelling. Every P+s must be a token spelling.
func (n *LexNode) WithChildren(suffixes ...string) error {
	prefix := n.Spelling()
	for _, suffix := range suffixes {
		child, err := NewLeaf(prefix + suffix)
		if err != nil {
			return err
		}
		if err := n.addChild(suffix, child); err != nil {
			return err
		}
	}
	return nil
}

// WithBranch attaches an already-built subtree. The subtree's spelling must
// extend this node's spelling; the extra characters become its key.
func (n *LexNode) WithBranch(subtree *LexNode) error {
	prefix := n.Spelling()
	spelling := subtree.Spelling()
	if !strings.HasPrefix(spelling, prefix) || len(spelling) == len(prefix) {
		return grammarErrorf(spelling, "branch does not extend %q", prefix)
	}
	return n.addChild(spelling[len(prefix):], subtree)
}

func (n *LexNode) addChild(suffix string, child *LexNode) error {
	if suffix == "" {
		return grammarErrorf(n.Spelling(), "empty suffix")
	}
	if _, exists := n.children[suffix]; exists {
		return grammarErrorf(n.Spelling()+suffix, "defined more than once")
	}
	if n.children == nil {
		n.children = make(map[string]*LexNode)
	}
	n.children[suffix] = child
	n.maxKey = max(n.maxKey, utf8.RuneCountInString(suffix))
	return nil
}

// Kinds returns every kind reachable in the tree rooted at n, sorted.
func (n *LexNode) Kinds() []Kind {
	seen := make(map[Kind]bool)
	var visit func(*LexNode)
	visit = func(node *LexNode) {
		if kind, ok := node.Kind(); ok {
			seen[kind] = true
		}
		for _, child := range node.children {
			visit(child)
		}
	}
	visit(n)

	kinds := make([]Kind, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
