package pattern

import (
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// defaultCache memoizes predicates compiled against the built-in alias
// table, shared by the package-level query functions.
var defaultCache = NewCache(nil)

// All returns every node in the subtree matching pattern, in pre-order.
// Malformed patterns yield an empty result, never an error.
func All(root *tree.Node, pattern string) []*tree.Node {
	return root.Find(defaultCache.Predicate(pattern))
}

// First returns the first node in pre-order matching pattern, or nil.
func First(root *tree.Node, pattern string) *tree.Node {
	return root.FindFirst(defaultCache.Predicate(pattern))
}

// Functions returns all function-like nodes: declarations, expressions,
// arrows, and method definitions.
func Functions(root *tree.Node) []*tree.Node { return All(root, "function") }

// Classes returns all class declarations and expressions.
func Classes(root *tree.Node) []*tree.Node { return All(root, "class") }

// Imports returns all import statements.
func Imports(root *tree.Node) []*tree.Node { return All(root, "import") }

// Calls returns all call expressions.
func Calls(root *tree.Node) []*tree.Node { return All(root, "call") }
