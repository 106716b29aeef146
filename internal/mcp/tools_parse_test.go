package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestHandleParseFile_ValidCode(t *testing.T) {
	t.Parallel()

	input := ParseFileInput{
		Code:     "const x = 1;\n",
		Language: "javascript",
	}

	result, output, err := handleParseFile(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "program")
	assert.Contains(t, text.Text, "lexical_declaration")

	parsed, ok := output.Data.(ParseFileOutput)
	require.True(t, ok)
	assert.Equal(t, "javascript", parsed.Language)
	assert.False(t, parsed.HasError)
	assert.Equal(t, "program", parsed.Root.Type)
}

func TestHandleParseFile_EmptyCode(t *testing.T) {
	t.Parallel()

	input := ParseFileInput{
		Code:     "",
		Language: "javascript",
	}

	result, _, err := handleParseFile(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "code parameter is required")
}

func TestHandleParseFile_EmptyLanguage(t *testing.T) {
	t.Parallel()

	input := ParseFileInput{
		Code:     "const x = 1;",
		Language: "",
	}

	result, _, err := handleParseFile(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "language parameter is required")
}

func TestHandleParseFile_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	input := ParseFileInput{
		Code:     "some code",
		Language: "brainfuck",
	}

	result, _, err := handleParseFile(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "unknown language")
}

func TestHandleParseFile_CodeTooLarge(t *testing.T) {
	t.Parallel()

	largeCode := make([]byte, MaxCodeInputBytes+1)
	for i := range largeCode {
		largeCode[i] = 'a'
	}

	input := ParseFileInput{
		Code:     string(largeCode),
		Language: "javascript",
	}

	result, _, err := handleParseFile(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "exceeds maximum size")
}

func TestHandleParseFile_FromPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.ts")
	require.NoError(t, os.WriteFile(path, []byte("let x: number = 1;\n"), 0o600))

	input := ParseFileInput{Path: path}

	result, output, err := handleParseFile(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	parsed, ok := output.Data.(ParseFileOutput)
	require.True(t, ok)
	assert.Equal(t, "typescript", parsed.Language)
}

func TestHandleParseFile_RelativePath(t *testing.T) {
	t.Parallel()

	input := ParseFileInput{Path: "relative/sample.js"}

	result, _, err := handleParseFile(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "absolute")
}

func TestHandleParseFile_CodeAndPath(t *testing.T) {
	t.Parallel()

	input := ParseFileInput{
		Code:     "const x = 1;",
		Language: "javascript",
		Path:     "/tmp/sample.js",
	}

	result, _, err := handleParseFile(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "not both")
}
