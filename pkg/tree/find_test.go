package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind_PreOrderCollectsSelfFirst(t *testing.T) {
	t.Parallel()

	parsed := mustParse(t, "let a = 1;\n")

	all := parsed.Root().Find(func(*Node) bool { return true })

	require.NotEmpty(t, all)
	assert.Same(t, parsed.Root(), all[0])
}

func TestFind_LeftToRightOrder(t *testing.T) {
	t.Parallel()

	parsed := mustParse(t, "let a = 1;\nlet b = 2;\nlet c = 3;\n")

	idents := parsed.Root().Find(typeIs("identifier"))

	require.Len(t, idents, 3)
	assert.Equal(t, "a", idents[0].Text())
	assert.Equal(t, "b", idents[1].Text())
	assert.Equal(t, "c", idents[2].Text())
}

func TestFind_NoMatches(t *testing.T) {
	t.Parallel()

	parsed := mustParse(t, "let a = 1;\n")

	assert.Empty(t, parsed.Root().Find(typeIs("class_declaration")))
}

func TestFindFirst_StopsAtFirstMatch(t *testing.T) {
	t.Parallel()

	parsed := mustParse(t, "foo(); bar();\n")

	first := parsed.Root().FindFirst(typeIs("call_expression"))

	require.NotNil(t, first)
	assert.Equal(t, "foo()", first.Text())
}

func TestFindFirst_NilOnNoMatch(t *testing.T) {
	t.Parallel()

	parsed := mustParse(t, "1;\n")

	assert.Nil(t, parsed.Root().FindFirst(typeIs("jsx_element")))
}

func TestWalk_VisitsEveryNodeOnce(t *testing.T) {
	t.Parallel()

	parsed := mustParse(t, "const x = f(1);\n")

	seen := map[*Node]int{}
	parsed.Root().Walk(func(n *Node) { seen[n]++ })

	total := 0
	parsed.Root().Walk(func(*Node) { total++ })

	assert.Len(t, seen, total)

	for _, count := range seen {
		assert.Equal(t, 1, count)
	}
}

func TestHasAncestor_StrictOnly(t *testing.T) {
	t.Parallel()

	parsed := mustParse(t, "function f() { return 1; }\n")

	ret := parsed.Root().FindFirst(typeIs("return_statement"))
	require.NotNil(t, ret)

	assert.True(t, ret.HasAncestor(typeIs("function_declaration")))
	// A node is not its own ancestor.
	assert.False(t, ret.HasAncestor(typeIs("return_statement")))
}

func TestHasDescendant_ExcludesSelf(t *testing.T) {
	t.Parallel()

	parsed := mustParse(t, "function f() { return 1; }\n")

	fn := parsed.Root().FindFirst(typeIs("function_declaration"))
	require.NotNil(t, fn)

	assert.True(t, fn.HasDescendant(typeIs("return_statement")))
	assert.False(t, fn.HasDescendant(typeIs("function_declaration")))
}
