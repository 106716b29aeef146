package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/qckfx/tree-hugger-js/pkg/textutil"
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// Remove targets written as plain call names rather than selectors.
var (
	dottedCallName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)+$`)
	bareCallName   = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*\(\)$`)
)

// promoteCallPattern rewrites "foo.bar" and "foo()" remove targets into
// call-expression selectors. The trailing "(" in the prefix keeps
// "console.log" from also matching "console.logger" calls.
func promoteCallPattern(pat string) string {
	if dottedCallName.MatchString(pat) {
		return fmt.Sprintf(`call_expression[text^="%s("]`, pat)
	}

	if bareCallName.MatchString(pat) {
		return fmt.Sprintf(`call_expression[text^="%s("]`, strings.TrimSuffix(pat, "()"))
	}

	return pat
}

// Remove queues deletion edits for every node matching pat. Bare call
// names like "console.log" or "debug()" promote to call-expression
// selectors first. A sole variable declarator widens to its whole
// declaration, and statement-like targets take their full source lines
// so no blank line is left behind; any other node loses exactly its own
// byte range.
func (s *Session) Remove(pat string) *Session {
	for _, n := range s.find(promoteCallPattern(pat)) {
		target := removalTarget(n)

		start, end := target.StartByte(), target.EndByte()
		if isStatementLike(target.Type()) {
			start, end = textutil.ExpandToLine(s.source, start, end)
		}

		s.add(start, end, "")
	}

	return s
}

// removalTarget widens a sole variable declarator to its enclosing
// declaration so removal does not leave a bare "const" behind.
func removalTarget(n *tree.Node) *tree.Node {
	if n.Type() != "variable_declarator" {
		return n
	}

	parent := n.Parent()
	if parent == nil {
		return n
	}

	if typ := parent.Type(); typ != "variable_declaration" && typ != "lexical_declaration" {
		return n
	}

	declarators := 0

	for _, child := range parent.NamedChildren() {
		if child.Type() == "variable_declarator" {
			declarators++
		}
	}

	if declarators == 1 {
		return parent
	}

	return n
}
