package transform

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceIn_RegexRewritesOnlyChangedNodes(t *testing.T) {
	t.Parallel()

	source := "const a = \"hello world\";\nconst b = \"goodbye\";\n"
	want := "const a = \"hello there\";\nconst b = \"goodbye\";\n"

	s := sessionFor(t, source).ReplaceIn("string", regexp.MustCompile(`world`), "there")

	assert.Len(t, s.PeekEdits(), 1)
	assert.Equal(t, want, render(t, s))
}

func TestReplaceIn_GroupReferences(t *testing.T) {
	t.Parallel()

	source := "// TODO(alice) fix\n"
	want := "// TODO[alice] fix\n"

	s := sessionFor(t, source).ReplaceIn("comment", regexp.MustCompile(`TODO\((\w+)\)`), "TODO[$1]")

	assert.Equal(t, want, render(t, s))
}

func TestReplaceIn_GlobalWithinNode(t *testing.T) {
	t.Parallel()

	source := "const s = \"aba aba\";\n"
	want := "const s = \"ZZ ZZ\";\n"

	s := sessionFor(t, source).ReplaceIn("string", regexp.MustCompile(`aba`), "ZZ")

	assert.Equal(t, want, render(t, s))
}

func TestReplaceIn_NoChangeQueuesNoEdit(t *testing.T) {
	t.Parallel()

	source := "const s = \"stable\";\n"

	s := sessionFor(t, source).ReplaceIn("string", regexp.MustCompile(`zzz`), "x")

	assert.Empty(t, s.PeekEdits())
	assert.Equal(t, source, render(t, s))
}

func TestReplaceInLiteral_DotsAreLiteral(t *testing.T) {
	t.Parallel()

	source := "log(\"a.b\");\nlog(\"axb\");\n"
	want := "log(\"c.d\");\nlog(\"axb\");\n"

	s := sessionFor(t, source).ReplaceInLiteral("string", "a.b", "c.d")

	assert.Len(t, s.PeekEdits(), 1)
	assert.Equal(t, want, render(t, s))
}

func TestReplaceInLiteral_EmptyNeedleIsNoop(t *testing.T) {
	t.Parallel()

	s := sessionFor(t, "const s = \"x\";\n").ReplaceInLiteral("string", "", "y")

	assert.Empty(t, s.PeekEdits())
}
