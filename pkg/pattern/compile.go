package pattern

import (
	"slices"
	"strings"

	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// Derived attribute names with dedicated lookup rules.
const (
	attrName  = "name"
	attrText  = "text"
	attrAsync = "async"
)

// matchNone is the fail-closed predicate substituted for anything that
// cannot be compiled.
func matchNone(*tree.Node) bool { return false }

// CompilePattern parses and compiles a pattern string. Any parse
// failure yields the match-nothing predicate; the returned predicate
// is always total and never panics.
func CompilePattern(pattern string, table *Table) tree.Predicate {
	sel, err := ParseSelector(pattern)
	if err != nil {
		return matchNone
	}

	return Compile(sel, table)
}

// Compile turns a parsed Selector into an executable predicate. A nil
// table means the built-in alias table.
func Compile(sel Selector, table *Table) tree.Predicate {
	if table == nil {
		table = DefaultTable()
	}

	return compileSelector(sel, table)
}

func compileSelector(sel Selector, table *Table) tree.Predicate {
	switch s := sel.(type) {
	case TypeSelector:
		return compileType(s, table)
	case AttributeSelector:
		return compileAttribute(s)
	case PseudoSelector:
		return compilePseudo(s, table)
	case ChildSelector:
		left := compileSelector(s.Left, table)
		right := compileSelector(s.Right, table)

		return func(n *tree.Node) bool {
			return right(n) && n.Parent() != nil && left(n.Parent())
		}
	case DescendantSelector:
		left := compileSelector(s.Left, table)
		right := compileSelector(s.Right, table)

		return func(n *tree.Node) bool {
			return right(n) && n.HasAncestor(left)
		}
	case CombinationSelector:
		preds := make([]tree.Predicate, 0, len(s.Parts))
		for _, part := range s.Parts {
			preds = append(preds, compileSelector(part, table))
		}

		return func(n *tree.Node) bool {
			for _, pred := range preds {
				if !pred(n) {
					return false
				}
			}

			return true
		}
	default:
		return matchNone
	}
}

func compileType(s TypeSelector, table *Table) tree.Predicate {
	resolved := table.Resolve(s.Name)

	targets := make(map[string]struct{}, len(resolved))
	for _, typ := range resolved {
		targets[typ] = struct{}{}
	}

	return func(n *tree.Node) bool {
		_, ok := targets[n.Type()]

		return ok
	}
}

func compileAttribute(s AttributeSelector) tree.Predicate {
	if !s.HasValue {
		return func(n *tree.Node) bool {
			return attributeText(n, s.Name) != ""
		}
	}

	return func(n *tree.Node) bool {
		return matchOp(s.Op, attributeText(n, s.Name), s.Value)
	}
}

// attributeText resolves the derived string property an attribute
// selector compares against. "name" is the node's derived name, "text"
// the full source slice, "async" the keyword token when structurally
// present, and anything else the text of the same-named grammar field.
func attributeText(n *tree.Node, name string) string {
	switch name {
	case attrName:
		return n.Name()
	case attrText:
		return n.UnsafeText()
	case attrAsync:
		if hasAsyncKeyword(n) {
			return attrAsync
		}

		return ""
	default:
		field := n.ChildByField(name)
		if field == nil {
			return ""
		}

		return field.UnsafeText()
	}
}

// hasAsyncKeyword checks for an async keyword token among the node's
// direct children. A substring search over the node text would misfire
// on bodies that merely contain "async" in a string or comment.
func hasAsyncKeyword(n *tree.Node) bool {
	for _, child := range n.Children() {
		if child.Type() == attrAsync {
			return true
		}
	}

	return false
}

func matchOp(op, text, value string) bool {
	switch op {
	case "=":
		return text == value
	case "~=":
		return slices.Contains(strings.Fields(text), value)
	case "^=":
		return strings.HasPrefix(text, value)
	case "$=":
		return strings.HasSuffix(text, value)
	case "*=":
		return strings.Contains(text, value)
	default:
		return false
	}
}

func compilePseudo(s PseudoSelector, table *Table) tree.Predicate {
	switch s.Name {
	case "has":
		inner := innerPredicate(s.Argument, table)
		if inner == nil {
			return matchNone
		}

		return func(n *tree.Node) bool {
			return n.HasDescendant(inner)
		}
	case "not":
		inner := innerPredicate(s.Argument, table)
		if inner == nil {
			return matchNone
		}

		return func(n *tree.Node) bool {
			return !inner(n)
		}
	default:
		return matchNone
	}
}

// innerPredicate parses a pseudo-class argument as a full selector.
// Returns nil on parse failure so the enclosing pseudo compiles to
// match-nothing rather than inverting a broken inner predicate.
func innerPredicate(argument string, table *Table) tree.Predicate {
	sel, err := ParseSelector(argument)
	if err != nil {
		return nil
	}

	return compileSelector(sel, table)
}
