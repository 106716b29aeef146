package commands

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameCommand_PrintsResult(t *testing.T) {
	t.Parallel()

	file := writeSourceFile(t, "app.js", "function getData() {}\nconst r = getData();\n")

	out, err := runCommand(t, NewRenameCommand(), "getData", "fetchData", file)

	require.NoError(t, err)
	assert.Equal(t, "function fetchData() {}\nconst r = fetchData();\n", out)

	// Without --write the file stays untouched.
	content, readErr := os.ReadFile(file)
	require.NoError(t, readErr)
	assert.Equal(t, "function getData() {}\nconst r = getData();\n", string(content))
}

func TestRenameCommand_WriteBack(t *testing.T) {
	t.Parallel()

	file := writeSourceFile(t, "app.js", "function getData() {}\nconst r = getData();\n")

	out, err := runCommand(t, NewRenameCommand(), "getData", "fetchData", file, "-w")

	require.NoError(t, err)
	assert.Empty(t, out)

	content, readErr := os.ReadFile(file)
	require.NoError(t, readErr)
	assert.Equal(t, "function fetchData() {}\nconst r = fetchData();\n", string(content))
}

func TestRenameCommand_DiffOutput(t *testing.T) {
	color.NoColor = true //nolint:reassign // deterministic test output

	file := writeSourceFile(t, "app.js", "function getData() {}\nconst r = getData();\n")

	out, err := runCommand(t, NewRenameCommand(), "getData", "fetchData", file, "--diff")

	require.NoError(t, err)
	assert.Contains(t, out, "-function getData() {}")
	assert.Contains(t, out, "+function fetchData() {}")

	// Preview only, the file keeps its original content.
	content, readErr := os.ReadFile(file)
	require.NoError(t, readErr)
	assert.Equal(t, "function getData() {}\nconst r = getData();\n", string(content))
}

func TestRenameCommand_IdentifiersOnly(t *testing.T) {
	t.Parallel()

	file := writeSourceFile(t, "app.js", "const x = 1;\nobj.x = x;\n")

	out, err := runCommand(t, NewRenameCommand(), "x", "y", file, "--identifiers-only")

	require.NoError(t, err)
	assert.Equal(t, "const y = 1;\nobj.x = y;\n", out)
}

func TestRenameCommand_WriteStdinRejected(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, NewRenameCommand(), "a", "b", "-", "-w")

	require.ErrorIs(t, err, ErrWriteStdin)
}

func TestReplaceCommand_Regexp(t *testing.T) {
	t.Parallel()

	file := writeSourceFile(t, "app.js", "// TODO(alice) fix\nconst x = 1;\n")

	out, err := runCommand(t, NewReplaceCommand(), "comment", `TODO\((\w+)\)`, "TODO[$1]", file)

	require.NoError(t, err)
	assert.Equal(t, "// TODO[alice] fix\nconst x = 1;\n", out)
}

func TestReplaceCommand_Literal(t *testing.T) {
	t.Parallel()

	file := writeSourceFile(t, "app.js", "const s = \"a.b\";\nconst u = \"axb\";\n")

	out, err := runCommand(t, NewReplaceCommand(), "string", "a.b", "a-b", file, "--literal")

	require.NoError(t, err)
	assert.Contains(t, out, `"a-b"`)
	assert.Contains(t, out, `"axb"`)
}

func TestReplaceCommand_BadRegexp(t *testing.T) {
	t.Parallel()

	file := writeSourceFile(t, "app.js", "const x = 1;\n")

	_, err := runCommand(t, NewReplaceCommand(), "string", "(", "x", file)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile find regexp")
}

func TestRemoveCommand_DottedName(t *testing.T) {
	t.Parallel()

	file := writeSourceFile(t, "app.js", "console.log(\"x\");\nconst keep = 1;\n")

	out, err := runCommand(t, NewRemoveCommand(), "console.log", file)

	require.NoError(t, err)
	assert.Equal(t, ";\nconst keep = 1;\n", out)
}

func TestRemoveCommand_StatementTakesFullLine(t *testing.T) {
	t.Parallel()

	file := writeSourceFile(t, "app.js", "keep();\nconsole.log(\"x\");\nrest();\n")

	out, err := runCommand(t, NewRemoveCommand(), `expression_statement[text^="console"]`, file)

	require.NoError(t, err)
	assert.Equal(t, "keep();\nrest();\n", out)
}

func TestImportsCommand_PrunesUnused(t *testing.T) {
	t.Parallel()

	file := writeSourceFile(t, "app.js", "import { a, b } from 'm';\nconsole.log(a);\n")

	out, err := runCommand(t, NewImportsCommand(), file)

	require.NoError(t, err)
	assert.Equal(t, "import { a } from 'm';\nconsole.log(a);\n", out)
}

func TestInsertCommand_Before(t *testing.T) {
	t.Parallel()

	file := writeSourceFile(t, "app.js", "function f() {\n  a();\n}\n")

	out, err := runCommand(t, NewInsertCommand(), `expression_statement[text^="a"]`, "before();", file)

	require.NoError(t, err)
	assert.Equal(t, "function f() {\n  before();\n  a();\n}\n", out)
}

func TestInsertCommand_After(t *testing.T) {
	t.Parallel()

	file := writeSourceFile(t, "app.js", "function a() {}\n\nfunction b() {}\n")

	out, err := runCommand(t, NewInsertCommand(), "function_declaration[name=a]", "// tail", file, "--after")

	require.NoError(t, err)
	assert.Equal(t, "function a() {}\n// tail\n\nfunction b() {}\n", out)
}

func TestTransformCommand_DiffNoChanges(t *testing.T) {
	t.Parallel()

	file := writeSourceFile(t, "app.js", "const x = 1;\n")

	out, err := runCommand(t, NewRenameCommand(), "missing", "renamed", file, "--diff")

	require.NoError(t, err)
	assert.Equal(t, "no changes\n", out)
}
