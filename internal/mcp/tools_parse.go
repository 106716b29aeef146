package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// handleParseFile processes parse_file tool calls.
func handleParseFile(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input ParseFileInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	content, language, err := resolveSource(input.Code, input.Language, input.Path)
	if err != nil {
		return errorResult(err)
	}

	parsed, err := tree.ParseCtx(ctx, content, language)
	if err != nil {
		return errorResult(fmt.Errorf("parse code: %w", err))
	}

	defer parsed.Close()

	return jsonResult(ParseFileOutput{
		Language: parsed.Language(),
		HasError: parsed.Root().HasError(),
		Root:     tree.Dump(parsed.Root()),
	})
}
