package tokenizer

import (
	"errors"
	"reflect"
	"testing"
)

func mustLeaf(t *testing.T, spelling string) *LexNode {
	t.Helper()
	node, err := NewLeaf(spelling)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return node
}

func TestRootIsEmptyUnresolved(t *testing.T) {
	root := NewRoot()
	if _, ok := root.Kind(); ok {
		t.Errorf("Expected root to be unresolved")
	}
	if root.Spelling() != "" {
		t.Errorf("Expected empty spelling, got %q", root.Spelling())
	}
	if root.HasChildren() {
		t.Errorf("Expected root without children")
	}
}

func TestNewLeaf(t *testing.T) {
	node := mustLeaf(t, "+=")
	if kind, ok := node.Kind(); !ok || kind != PlusEq {
		t.Errorf("Expected PlusEq, got %s (%t)", kind, ok)
	}

	_, err := NewLeaf("+-")
	var gerr *GrammarError
	if !errors.As(err, &gerr) {
		t.Fatalf("Expected *GrammarError, got %v", err)
	}
	if gerr.Spelling != "+-" {
		t.Errorf("Expected spelling %q in error, got %q", "+-", gerr.Spelling)
	}
}

func TestNewPrefix(t *testing.T) {
	node, err := NewPrefix("..")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := node.Kind(); ok {
		t.Errorf("Expected prefix node to be unresolved")
	}
	if node.Spelling() != ".." {
		t.Errorf("Expected spelling %q, got %q", "..", node.Spelling())
	}

	for _, bad := range []string{"", "=="} {
		if _, err := NewPrefix(bad); err == nil {
			t.Errorf("Expected error for prefix %q", bad)
		}
	}
}

func TestWithChildren(t *testing.T) {
	plus := mustLeaf(t, "+")
	if err := plus.WithChildren("="); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	child, ok := plus.Child("=")
	if !ok {
		t.Fatalf("Expected child keyed by %q", "=")
	}
	if kind, _ := child.Kind(); kind != PlusEq {
		t.Errorf("Expected PlusEq, got %s", kind)
	}
	if child.Spelling() != "+=" {
		t.Errorf("Expected path spelling %q, got %q", "+=", child.Spelling())
	}
	if plus.MaxSuffixLen() != 1 {
		t.Errorf("Expected max suffix length 1, got %d", plus.MaxSuffixLen())
	}
}

func TestWithChildrenRejectsUnknownSpelling(t *testing.T) {
	root := NewRoot()
	err := root.WithChildren("let", "lets")
	var gerr *GrammarError
	if !errors.As(err, &gerr) {
		t.Fatalf("Expected *GrammarError, got %v", err)
	}
	if gerr.Spelling != "lets" {
		t.Errorf("Expected spelling %q in error, got %q", "lets", gerr.Spelling)
	}
}

func TestWithChildrenRejectsDuplicates(t *testing.T) {
	root := NewRoot()
	if err := root.WithChildren(";", ";"); err == nil {
		t.Errorf("Expected duplicate child to be rejected")
	}
}

func TestWithBranchKeysByRelativeSuffix(t *testing.T) {
	eq := mustLeaf(t, "=")
	cmp := mustLeaf(t, "==")
	if err := eq.WithBranch(cmp); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	root := NewRoot()
	if err := root.WithChildren("let", ";"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := root.WithBranch(eq); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := root.Suffixes(); !reflect.DeepEqual(got, []string{";", "=", "let"}) {
		t.Errorf("Unexpected root keys %v", got)
	}
	if root.MaxSuffixLen() != 3 {
		t.Errorf("Expected max suffix length 3, got %d", root.MaxSuffixLen())
	}
	if _, ok := eq.Child("="); !ok {
		t.Errorf("Expected %q under %q", "==", "=")
	}
}

func TestWithBranchRejectsNonExtension(t *testing.T) {
	plus := mustLeaf(t, "+")
	for _, spelling := range []string{"=", "+"} {
		if err := plus.WithBranch(mustLeaf(t, spelling)); err == nil {
			t.Errorf("Expected branch %q under %q to be rejected", spelling, "+")
		}
	}
}

func TestDeepBranchThroughPrefix(t *testing.T) {
	plus := mustLeaf(t, "+")
	if err := plus.WithChildren("="); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	plusMinus, err := NewPrefix("+-")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := plusMinus.WithChildren("="); err == nil {
		t.Errorf("Expected +-= to be rejected")
	}
	if err := plus.WithBranch(plusMinus); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	root := NewRoot()
	if err := root.WithBranch(plus); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	child, ok := plus.Child("-")
	if !ok {
		t.Fatalf("Expected %q under %q", "+-", "+")
	}
	if _, resolved := child.Kind(); resolved {
		t.Errorf("Expected %q to be unresolved", child.Spelling())
	}
	if got := root.Kinds(); !reflect.DeepEqual(got, []Kind{Plus, PlusEq}) {
		t.Errorf("Unexpected kinds %v", got)
	}
}

func TestDefaultLexTreeReachesEveryFixedKind(t *testing.T) {
	tree := DefaultLexTree()
	got := make(map[Kind]bool)
	for _, k := range tree.Kinds() {
		got[k] = true
	}
	for _, k := range FixedKinds() {
		if !got[k] {
			t.Errorf("Expected %s to be reachable", k)
		}
	}
	if DefaultLexTree() != tree {
		t.Errorf("Expected the default tree to be built once")
	}
}
