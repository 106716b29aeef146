package mcp

import (
	"context"
	"fmt"
	"regexp"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qckfx/tree-hugger-js/pkg/transform"
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// Transform operation kinds.
const (
	OpRename              = "rename"
	OpRenameIdentifier    = "rename_identifier"
	OpReplace             = "replace"
	OpRemove              = "remove"
	OpRemoveUnusedImports = "remove_unused_imports"
	OpInsertBefore        = "insert_before"
	OpInsertAfter         = "insert_after"
)

// handleTransformSource processes transform_source tool calls.
func handleTransformSource(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input TransformSourceInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	content, language, err := resolveSource(input.Code, input.Language, input.Path)
	if err != nil {
		return errorResult(err)
	}

	if len(input.Operations) == 0 {
		return errorResult(ErrNoOperations)
	}

	parsed, err := tree.ParseCtx(ctx, content, language)
	if err != nil {
		return errorResult(fmt.Errorf("parse code: %w", err))
	}

	defer parsed.Close()

	session := transform.ForTree(parsed)

	for i, op := range input.Operations {
		applyErr := applyOperation(session, i, op)
		if applyErr != nil {
			return errorResult(applyErr)
		}
	}

	result, err := session.Render()
	if err != nil {
		return errorResult(fmt.Errorf("apply edits: %w", err))
	}

	return jsonResult(TransformSourceOutput{
		Code:      result,
		EditCount: len(session.PeekEdits()),
		Changed:   result != string(content),
	})
}

// applyOperation queues one transform operation on the session after
// checking its required arguments.
func applyOperation(session *transform.Session, index int, op TransformOp) error {
	switch op.Kind {
	case OpRename:
		if op.Old == "" || op.New == "" {
			return missingArgument(index, op.Kind, "old and new")
		}

		session.Rename(op.Old, op.New)

	case OpRenameIdentifier:
		if op.Old == "" || op.New == "" {
			return missingArgument(index, op.Kind, "old and new")
		}

		session.RenameIdentifier(op.Old, op.New)

	case OpReplace:
		if op.Pattern == "" || op.Find == "" {
			return missingArgument(index, op.Kind, "pattern and find")
		}

		if op.Literal {
			session.ReplaceInLiteral(op.Pattern, op.Find, op.Replacement)

			break
		}

		re, compileErr := regexp.Compile(op.Find)
		if compileErr != nil {
			return fmt.Errorf("operation %d (%s): compile find regexp: %w", index, op.Kind, compileErr)
		}

		session.ReplaceIn(op.Pattern, re, op.Replacement)

	case OpRemove:
		if op.Pattern == "" {
			return missingArgument(index, op.Kind, "pattern")
		}

		session.Remove(op.Pattern)

	case OpRemoveUnusedImports:
		session.RemoveUnusedImports()

	case OpInsertBefore:
		if op.Pattern == "" || op.Text == "" {
			return missingArgument(index, op.Kind, "pattern and text")
		}

		session.InsertBefore(op.Pattern, op.Text)

	case OpInsertAfter:
		if op.Pattern == "" || op.Text == "" {
			return missingArgument(index, op.Kind, "pattern and text")
		}

		session.InsertAfter(op.Pattern, op.Text)

	default:
		return fmt.Errorf("%w: %q (operation %d)", ErrUnknownOperation, op.Kind, index)
	}

	return nil
}

func missingArgument(index int, kind, fields string) error {
	return fmt.Errorf("%w: operation %d (%s) requires %s", ErrMissingArgument, index, kind, fields)
}
