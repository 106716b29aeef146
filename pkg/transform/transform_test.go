package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qckfx/tree-hugger-js/pkg/lang"
	"github.com/qckfx/tree-hugger-js/pkg/pattern"
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

func parseJS(t *testing.T, source string) *tree.Tree {
	t.Helper()

	parsed, err := tree.Parse([]byte(source), lang.JavaScript)
	require.NoError(t, err)
	t.Cleanup(parsed.Close)

	return parsed
}

func sessionFor(t *testing.T, source string) *Session {
	t.Helper()

	return ForTree(parseJS(t, source))
}

func render(t *testing.T, s *Session) string {
	t.Helper()

	result, err := s.Render()
	require.NoError(t, err)

	return result
}

func TestSession_OperationsChain(t *testing.T) {
	t.Parallel()

	s := sessionFor(t, "const a = 1;")

	assert.Same(t, s, s.Rename("a", "b"))
	assert.Same(t, s, s.Remove("missing()"))
}

func TestSession_PeekEditsReturnsCopy(t *testing.T) {
	t.Parallel()

	s := sessionFor(t, "const a = 1;").Rename("a", "b")

	peeked := s.PeekEdits()
	require.Len(t, peeked, 1)

	peeked[0].Replacement = "clobbered"

	assert.Equal(t, "const b = 1;", render(t, s))
}

func TestSession_RenderWithoutEditsReturnsSource(t *testing.T) {
	t.Parallel()

	source := "const a = 1;\n"

	assert.Equal(t, source, render(t, sessionFor(t, source)))
}

func TestSession_RenderIsRepeatable(t *testing.T) {
	t.Parallel()

	s := sessionFor(t, "const a = 1;").Rename("a", "b")

	first := render(t, s)
	second := render(t, s)

	assert.Equal(t, first, second)
	assert.Len(t, s.PeekEdits(), 1)
}

func TestSession_OperationIssueOrderIrrelevant(t *testing.T) {
	t.Parallel()

	source := "first();\nsecond();\n"

	forward := sessionFor(t, source).
		InsertBefore(`expression_statement[text^="first"]`, "head();").
		InsertAfter(`expression_statement[text^="second"]`, "tail();")

	backward := sessionFor(t, source).
		InsertAfter(`expression_statement[text^="second"]`, "tail();").
		InsertBefore(`expression_statement[text^="first"]`, "head();")

	want := "head();\nfirst();\nsecond();\ntail();\n"

	assert.Equal(t, want, render(t, forward))
	assert.Equal(t, want, render(t, backward))
}

func TestSession_ConflictingOperationsFailRender(t *testing.T) {
	t.Parallel()

	s := sessionFor(t, "const a = 1;").
		Rename("a", "b").
		Rename("a", "c")

	result, err := s.Render()

	require.ErrorIs(t, err, ErrEditOverlap)
	assert.Empty(t, result)
}

func TestNewWithCache_SharesCompiledPatterns(t *testing.T) {
	t.Parallel()

	cache := pattern.NewCache(nil)
	source := "work();\n"

	NewWithCache(parseJS(t, source).Root(), []byte(source), cache).Remove("work()")
	NewWithCache(parseJS(t, source).Root(), []byte(source), cache).Remove("work()")

	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}
