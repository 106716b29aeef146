package transform

import (
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// renamePropertyTypes are member-expression properties and shorthand
// bindings. They rename without the textual-ancestor exclusion: a
// shorthand binding inside a destructuring pattern is still a real
// reference.
var renamePropertyTypes = map[string]struct{}{
	"property_identifier":                   {},
	"shorthand_property_identifier":         {},
	"shorthand_property_identifier_pattern": {},
}

// Rename queues edits replacing every reference to oldName with
// newName. Bare identifiers are skipped when they sit inside string,
// comment, or regex content; property identifiers and destructuring
// shorthand bindings always rename.
func (s *Session) Rename(oldName, newName string) *Session {
	matches := s.root.Find(func(n *tree.Node) bool {
		switch typ := n.Type(); {
		case typ == "identifier":
			return n.UnsafeText() == oldName && !insideTextual(n)
		default:
			_, ok := renamePropertyTypes[typ]

			return ok && n.UnsafeText() == oldName
		}
	})

	for _, n := range matches {
		s.add(n.StartByte(), n.EndByte(), newName)
	}

	return s
}

// RenameIdentifier queues edits replacing every bare identifier whose
// text equals oldName, with no context exclusions and no property or
// shorthand handling. Raw text replacement for callers that know what
// they are doing.
func (s *Session) RenameIdentifier(oldName, newName string) *Session {
	matches := s.root.Find(func(n *tree.Node) bool {
		return n.Type() == "identifier" && n.UnsafeText() == oldName
	})

	for _, n := range matches {
		s.add(n.StartByte(), n.EndByte(), newName)
	}

	return s
}
