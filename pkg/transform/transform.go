// Package transform implements the edit engine: a chainable session
// that accumulates byte-range edits over one parsed source buffer and
// renders them into a new string. Operations locate their targets with
// the pattern language; edits are validated for bounds and overlap only
// at render time, and the original source is never mutated.
package transform

import (
	"slices"

	"github.com/qckfx/tree-hugger-js/pkg/pattern"
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// Session accumulates edits against one immutable source buffer and its
// parse tree. Operations append edits and return the session for
// chaining; Render validates and applies the whole set. Independent
// sessions over the same tree are safe to use concurrently.
type Session struct {
	source  []byte
	root    *tree.Node
	edits   []Edit
	queries *pattern.Cache
}

// New creates a session over root and the source buffer it was parsed
// from.
func New(root *tree.Node, source []byte) *Session {
	return NewWithCache(root, source, nil)
}

// NewWithCache is New with a caller-supplied predicate cache, letting
// sessions share compiled patterns or resolve them against an
// overridden alias table. A nil cache gets a fresh one over the
// built-in table.
func NewWithCache(root *tree.Node, source []byte, cache *pattern.Cache) *Session {
	if cache == nil {
		cache = pattern.NewCache(nil)
	}

	return &Session{source: source, root: root, queries: cache}
}

// ForTree creates a session over a parsed tree.
func ForTree(parsed *tree.Tree) *Session {
	return New(parsed.Root(), parsed.Source())
}

func (s *Session) find(pat string) []*tree.Node {
	return s.root.Find(s.queries.Predicate(pat))
}

func (s *Session) add(start, end int, replacement string) {
	s.edits = append(s.edits, Edit{Start: start, End: end, Replacement: replacement})
}

// PeekEdits returns a copy of the queued edits in accumulation order.
func (s *Session) PeekEdits() []Edit {
	return slices.Clone(s.edits)
}

// Render validates every queued edit and applies them all to the
// original source, returning the transformed text. Rendering can be
// repeated; the edit list is re-validated each time and never cleared.
func (s *Session) Render() (string, error) {
	return Apply(s.source, s.edits)
}
