package transform

import (
	"github.com/qckfx/tree-hugger-js/pkg/textutil"
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// InsertBefore queues text ahead of every node matching pat. Keyword
// anchors (const, return, ...) widen to their enclosing statement, and
// statement-like targets get a line break plus the target's own line
// indentation so the insertion reads as a sibling line.
func (s *Session) InsertBefore(pat, text string) *Session {
	for _, target := range s.insertionTargets(pat) {
		offset := target.StartByte()

		if formatsAsStatement(target.Type()) {
			indent := textutil.LineIndent(s.source, offset)
			s.add(offset, offset, text+"\n"+indent)

			continue
		}

		s.add(offset, offset, text)
	}

	return s
}

// InsertAfter queues text after every node matching pat, with the same
// widening and indentation rules as InsertBefore.
func (s *Session) InsertAfter(pat, text string) *Session {
	for _, target := range s.insertionTargets(pat) {
		offset := target.EndByte()

		if formatsAsStatement(target.Type()) {
			indent := textutil.LineIndent(s.source, target.StartByte())
			s.add(offset, offset, "\n"+indent+text)

			continue
		}

		s.add(offset, offset, text)
	}

	return s
}

// insertionTargets resolves pat and widens keyword matches, dropping
// duplicate targets when several keyword tokens widen to the same
// statement.
func (s *Session) insertionTargets(pat string) []*tree.Node {
	matches := s.find(pat)

	targets := make([]*tree.Node, 0, len(matches))
	seen := make(map[*tree.Node]struct{}, len(matches))

	for _, n := range matches {
		target := widenKeyword(n)
		if _, ok := seen[target]; ok {
			continue
		}

		seen[target] = struct{}{}
		targets = append(targets, target)
	}

	return targets
}
