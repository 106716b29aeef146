package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertBefore_KeywordWidensToStatement(t *testing.T) {
	t.Parallel()

	source := "function wrap() {\n  const x = 1;\n}\n"
	want := "function wrap() {\n  // note\n  const x = 1;\n}\n"

	s := sessionFor(t, source).InsertBefore("const", "// note")

	assert.Equal(t, want, render(t, s))
}

func TestInsertBefore_StatementAnchorKeepsIndent(t *testing.T) {
	t.Parallel()

	source := "function f() {\n  a();\n}\n"
	want := "function f() {\n  before();\n  a();\n}\n"

	s := sessionFor(t, source).InsertBefore(`expression_statement[text^="a"]`, "before();")

	assert.Equal(t, want, render(t, s))
}

func TestInsertAfter_StatementStartsNewLine(t *testing.T) {
	t.Parallel()

	source := "function f() {\n  a();\n}\n"
	want := "function f() {\n  a();\n  b();\n}\n"

	s := sessionFor(t, source).InsertAfter(`expression_statement[text^="a"]`, "b();")

	assert.Equal(t, want, render(t, s))
}

func TestInsertAfter_FunctionDeclaration(t *testing.T) {
	t.Parallel()

	source := "function a() {}\n\nfunction b() {}\n"
	want := "function a() {}\n// tail\n\nfunction b() {}\n"

	s := sessionFor(t, source).InsertAfter("function_declaration[name=a]", "// tail")

	assert.Equal(t, want, render(t, s))
}

func TestInsertBefore_NonStatementInsertsRaw(t *testing.T) {
	t.Parallel()

	source := "const s = \"x\";\n"
	want := "const s = /* t */\"x\";\n"

	s := sessionFor(t, source).InsertBefore("string", "/* t */")

	assert.Equal(t, want, render(t, s))
}

func TestInsertBefore_EveryMatchGetsInsertion(t *testing.T) {
	t.Parallel()

	source := "a();\nb();\n"
	want := "// x\na();\n// x\nb();\n"

	s := sessionFor(t, source).InsertBefore("expression_statement", "// x")

	assert.Equal(t, want, render(t, s))
}

func TestInsertAfter_MethodDefinitionFormatsAsStatement(t *testing.T) {
	t.Parallel()

	source := "class K {\n  go() {}\n}\n"
	want := "class K {\n  go() {}\n  // after\n}\n"

	s := sessionFor(t, source).InsertAfter("method_definition", "// after")

	assert.Equal(t, want, render(t, s))
}
