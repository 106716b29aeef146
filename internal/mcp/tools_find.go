package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qckfx/tree-hugger-js/pkg/pattern"
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// handleFindNodes processes find_nodes tool calls.
func handleFindNodes(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input FindNodesInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	content, language, err := resolveSource(input.Code, input.Language, input.Path)
	if err != nil {
		return errorResult(err)
	}

	if input.Pattern == "" {
		return errorResult(ErrMissingPattern)
	}

	// Surface syntax errors instead of the fail-closed empty match set.
	_, err = pattern.ParseSelector(input.Pattern)
	if err != nil {
		return errorResult(fmt.Errorf("invalid pattern: %w", err))
	}

	parsed, err := tree.ParseCtx(ctx, content, language)
	if err != nil {
		return errorResult(fmt.Errorf("parse code: %w", err))
	}

	defer parsed.Close()

	matches := pattern.All(parsed.Root(), input.Pattern)
	total := len(matches)

	if input.Limit > 0 && len(matches) > input.Limit {
		matches = matches[:input.Limit]
	}

	output := FindNodesOutput{
		Pattern: input.Pattern,
		Count:   total,
		Matches: make([]NodeMatch, 0, len(matches)),
	}

	for _, m := range matches {
		output.Matches = append(output.Matches, NodeMatch{
			Type:  m.Type(),
			Name:  m.Name(),
			Start: m.StartPos(),
			End:   m.EndPos(),
			Text:  m.Text(),
		})
	}

	return jsonResult(output)
}
