package transform

import (
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// statementTypes classifies nodes whose removal expands to whole source
// lines and whose insertions get sibling-line formatting. Shared by
// Remove, InsertBefore, and InsertAfter.
var statementTypes = map[string]struct{}{
	"expression_statement": {},
	"variable_declaration": {},
	"lexical_declaration":  {},
	"import_statement":     {},
	"export_statement":     {},
	"return_statement":     {},
	"if_statement":         {},
	"for_statement":        {},
	"while_statement":      {},
	"function_declaration": {},
	"class_declaration":    {},
}

// keywordTargets are keyword token types that widen to their enclosing
// statement when matched as insertion anchors, so "insert before the
// const" means "insert before the whole declaration".
var keywordTargets = map[string]struct{}{
	"const":  {},
	"let":    {},
	"var":    {},
	"return": {},
	"if":     {},
	"for":    {},
	"while":  {},
}

// textualTypes are node types whose subtrees hold literal text rather
// than code. Rename never touches identifiers underneath them.
var textualTypes = map[string]struct{}{
	"string":          {},
	"string_fragment": {},
	"comment":         {},
	"regex":           {},
}

func isStatementLike(typ string) bool {
	_, ok := statementTypes[typ]

	return ok
}

// formatsAsStatement reports whether an insertion at this node type gets
// line-break and indentation formatting. Method definitions format like
// statements even though removal does not line-expand them.
func formatsAsStatement(typ string) bool {
	return isStatementLike(typ) || typ == "method_definition"
}

func insideTextual(n *tree.Node) bool {
	return n.HasAncestor(func(a *tree.Node) bool {
		_, ok := textualTypes[a.Type()]

		return ok
	})
}

// widenKeyword maps a keyword token to its nearest statement-like
// ancestor. Non-keyword nodes, and keywords with no such ancestor, come
// back unchanged.
func widenKeyword(n *tree.Node) *tree.Node {
	if _, ok := keywordTargets[n.Type()]; !ok {
		return n
	}

	for _, ancestor := range n.Ancestors() {
		if isStatementLike(ancestor.Type()) {
			return ancestor
		}
	}

	return n
}
