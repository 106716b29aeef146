package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qckfx/tree-hugger-js/pkg/lang"
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

func parseJS(t *testing.T, source string) *tree.Tree {
	t.Helper()

	parsed, err := tree.Parse([]byte(source), lang.JavaScript)
	require.NoError(t, err)
	t.Cleanup(parsed.Close)

	return parsed
}

func parseTSX(t *testing.T, source string) *tree.Tree {
	t.Helper()

	parsed, err := tree.Parse([]byte(source), lang.TSX)
	require.NoError(t, err)
	t.Cleanup(parsed.Close)

	return parsed
}

func typesOf(nodes []*tree.Node) []string {
	types := make([]string, 0, len(nodes))
	for _, n := range nodes {
		types = append(types, n.Type())
	}

	return types
}

const allFunctionForms = `function a() {}
const b = function() {};
const c = () => {};
class K { m() {} }
`

func TestCompilePattern_FunctionAliasCoversAllForms(t *testing.T) {
	t.Parallel()

	root := parseJS(t, allFunctionForms).Root()

	matches := All(root, "function")

	assert.Equal(t, []string{
		"function_declaration",
		"function_expression",
		"arrow_function",
		"method_definition",
	}, typesOf(matches))
}

func TestCompilePattern_AliasEqualsUnionOfConcreteTypes(t *testing.T) {
	t.Parallel()

	root := parseJS(t, allFunctionForms).Root()

	viaAlias := make(map[*tree.Node]bool)
	for _, n := range All(root, "function") {
		viaAlias[n] = true
	}

	total := 0

	for _, concrete := range DefaultTable().Resolve("function") {
		for _, n := range All(root, concrete) {
			assert.True(t, viaAlias[n], "%s node missing from alias matches", concrete)

			total++
		}
	}

	assert.Len(t, viaAlias, total)
}

func TestCompilePattern_MalformedPatternsMatchNothing(t *testing.T) {
	t.Parallel()

	root := parseJS(t, "function f() {}").Root()

	for _, malformed := range []string{"", "[", ">", "::invalid", "function >", ":has(function"} {
		assert.Empty(t, All(root, malformed), "pattern %q", malformed)
	}
}

func TestCompilePattern_NameAttribute(t *testing.T) {
	t.Parallel()

	root := parseJS(t, "function greet() {}").Root()

	matches := All(root, "function[name=greet]")

	require.Len(t, matches, 1)
	assert.Equal(t, "function_declaration", matches[0].Type())

	assert.Empty(t, All(root, "function[name=other]"))

	// Only the declaration derives a name; its identifier child does not.
	assert.Len(t, All(root, `[name="greet"]`), 1)
}

func TestCompilePattern_TextEqualityIncludesQuotes(t *testing.T) {
	t.Parallel()

	root := parseJS(t, `const a = "world";
const b = "world!";
`).Root()

	assert.Len(t, All(root, `string[text*="world"]`), 2)
	assert.Len(t, All(root, `string[text="\"world\""]`), 1)
	assert.Len(t, All(root, `string[text^="\"world"]`), 2)
	assert.Len(t, All(root, `string[text$="!\""]`), 1)
	assert.Empty(t, All(root, `string[text="world"]`))
}

func TestCompilePattern_WholeWordOperator(t *testing.T) {
	t.Parallel()

	root := parseJS(t, "const x = 1;").Root()

	assert.Len(t, All(root, "lexical_declaration[text~=x]"), 1)
	assert.Len(t, All(root, "lexical_declaration[text~=const]"), 1)
	assert.Empty(t, All(root, "lexical_declaration[text~=y]"))
}

func TestCompilePattern_AsyncAttributeIsStructural(t *testing.T) {
	t.Parallel()

	root := parseJS(t, `async function f() {}
function g() { const s = "async"; }
`).Root()

	matches := All(root, "function[async]")

	require.Len(t, matches, 1)
	assert.Equal(t, "f", matches[0].Name())
}

func TestCompilePattern_FieldAttributeFallback(t *testing.T) {
	t.Parallel()

	root := parseJS(t, "function foo() { return 1; }\nconst x = 1;").Root()

	assert.Len(t, All(root, "function_declaration[body]"), 1)
	assert.Empty(t, All(root, "function_declaration[banana]"))
	assert.Len(t, All(root, `variable_declarator[value="1"]`), 1)
}

func TestCompilePattern_HasAndNotPartitionMatches(t *testing.T) {
	t.Parallel()

	root := parseJS(t, `function a() { return 1; }
function b() { const x = 2; }
`).Root()

	all := All(root, "function")
	require.Len(t, all, 2)

	with := All(root, "function:has(return)")
	without := All(root, "function:not(:has(return))")

	require.Len(t, with, 1)
	require.Len(t, without, 1)
	assert.Equal(t, "a", with[0].Name())
	assert.Equal(t, "b", without[0].Name())
	assert.NotSame(t, with[0], without[0])
}

func TestCompilePattern_ChildVersusDescendant(t *testing.T) {
	t.Parallel()

	root := parseJS(t, "function foo() { if (true) { const x = 1; } }").Root()

	// The const token's parent is the lexical declaration, not the
	// function declaration.
	assert.Empty(t, All(root, "function_declaration > const"))

	descendants := All(root, "function_declaration const")
	require.Len(t, descendants, 1)
	assert.Equal(t, "const", descendants[0].Type())

	assert.Len(t, All(root, "lexical_declaration > const"), 1)
	assert.Len(t, All(root, "program > function_declaration"), 1)
}

func TestCompilePattern_UnknownPseudoMatchesNothing(t *testing.T) {
	t.Parallel()

	root := parseJS(t, "function f() {}").Root()

	assert.Empty(t, All(root, "function:first-child"))
	assert.Empty(t, All(root, "function:has()"))
}

func TestCompilePattern_NotWithBrokenInnerMatchesNothing(t *testing.T) {
	t.Parallel()

	root := parseJS(t, "function f() {}\nfunction g() {}").Root()

	// A broken inner selector must not invert into match-everything.
	assert.Empty(t, All(root, "function:not([)"))
}

func TestCompilePattern_StringAliasCoversTemplates(t *testing.T) {
	t.Parallel()

	root := parseJS(t, "const s = \"plain\";\nconst t = `tpl ${s}`;").Root()

	matches := All(root, "string")

	assert.Equal(t, []string{"string", "template_string"}, typesOf(matches))
}

func TestCompilePattern_LoopAlias(t *testing.T) {
	t.Parallel()

	root := parseJS(t, `for (;;) {}
while (x) {}
do {} while (x);
for (const a of xs) {}
for (const k in o) {}
`).Root()

	assert.Len(t, All(root, "loop"), 5)
}

func TestCompilePattern_ConditionAlias(t *testing.T) {
	t.Parallel()

	root := parseJS(t, `if (a) {}
switch (b) {}
const c = d ? 1 : 2;
`).Root()

	assert.Equal(t, []string{
		"if_statement",
		"switch_statement",
		"ternary_expression",
	}, typesOf(All(root, "condition")))
}

func TestCompilePattern_JSXAlias(t *testing.T) {
	t.Parallel()

	root := parseTSX(t, `const el = <img src="x" />;`).Root()

	matches := All(root, "jsx")
	require.Len(t, matches, 1)
	assert.Equal(t, "jsx_self_closing_element", matches[0].Type())

	assert.Len(t, All(root, "jsx_attribute[name=src]"), 1)
}

func TestCompilePattern_CombinationIsConjunction(t *testing.T) {
	t.Parallel()

	root := parseJS(t, `function foo() { return 1; }
function bar() {}
`).Root()

	assert.Len(t, All(root, "function_declaration[name=foo]:has(return)"), 1)
	assert.Empty(t, All(root, "function_declaration[name=bar]:has(return)"))
}

func TestCompile_NilTableUsesBuiltins(t *testing.T) {
	t.Parallel()

	sel, err := ParseSelector("class")
	require.NoError(t, err)

	pred := Compile(sel, nil)
	root := parseJS(t, "class K {}").Root()

	assert.Len(t, root.Find(pred), 1)
}

func TestCompilePattern_CustomTableOverride(t *testing.T) {
	t.Parallel()

	table := NewTable(map[string][]string{"function": {"arrow_function"}})
	pred := CompilePattern("function", table)

	root := parseJS(t, allFunctionForms).Root()

	matches := root.Find(pred)
	require.Len(t, matches, 1)
	assert.Equal(t, "arrow_function", matches[0].Type())
}
