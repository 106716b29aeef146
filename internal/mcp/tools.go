package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qckfx/tree-hugger-js/pkg/lang"
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// Tool name constants.
const (
	ToolNameParse     = "parse_file"
	ToolNameFind      = "find_nodes"
	ToolNameTransform = "transform_source"
)

// Input size limits.
const (
	// MaxCodeInputBytes is the maximum allowed size for source input (1 MB).
	MaxCodeInputBytes = 1 << 20
)

// Sentinel errors for tool input validation.
var (
	// ErrEmptyCode indicates that neither code nor path was provided.
	ErrEmptyCode = errors.New("code parameter is required and must not be empty")
	// ErrEmptyLanguage indicates the language parameter is empty.
	ErrEmptyLanguage = errors.New("language parameter is required and must not be empty")
	// ErrCodeTooLarge indicates the source input exceeds the size limit.
	ErrCodeTooLarge = errors.New("source input exceeds maximum size")
	// ErrAmbiguousSource indicates both code and path were provided.
	ErrAmbiguousSource = errors.New("provide either code or path, not both")
	// ErrPathNotAbsolute indicates the path parameter is not absolute.
	ErrPathNotAbsolute = errors.New("path must be an absolute path")
	// ErrMissingPattern indicates the pattern parameter is empty.
	ErrMissingPattern = errors.New("pattern parameter is required and must not be empty")
	// ErrNoOperations indicates an empty transform operation list.
	ErrNoOperations = errors.New("operations parameter must list at least one operation")
	// ErrUnknownOperation indicates an unrecognized transform operation kind.
	ErrUnknownOperation = errors.New("unknown transform operation")
	// ErrMissingArgument indicates a transform operation is missing a field.
	ErrMissingArgument = errors.New("missing operation argument")
)

// Input types (auto-generate JSON schemas via struct tags).

// ParseFileInput is the input schema for the parse_file tool.
type ParseFileInput struct {
	Code     string `json:"code,omitempty"     jsonschema:"inline source code to parse"`
	Language string `json:"language,omitempty" jsonschema:"language name: javascript typescript or tsx (required with code, optional with path)"`
	Path     string `json:"path,omitempty"     jsonschema:"absolute path to a source file (alternative to code)"`
}

// FindNodesInput is the input schema for the find_nodes tool.
type FindNodesInput struct {
	Code     string `json:"code,omitempty"     jsonschema:"inline source code to search"`
	Language string `json:"language,omitempty" jsonschema:"language name: javascript typescript or tsx (required with code, optional with path)"`
	Path     string `json:"path,omitempty"     jsonschema:"absolute path to a source file (alternative to code)"`
	Pattern  string `json:"pattern"            jsonschema:"CSS-like node pattern, e.g. function[name=foo] or class method"`
	Limit    int    `json:"limit,omitempty"    jsonschema:"maximum number of matches to return (default: all)"`
}

// TransformSourceInput is the input schema for the transform_source tool.
type TransformSourceInput struct {
	Code       string        `json:"code,omitempty"     jsonschema:"inline source code to transform"`
	Language   string        `json:"language,omitempty" jsonschema:"language name: javascript typescript or tsx (required with code, optional with path)"`
	Path       string        `json:"path,omitempty"     jsonschema:"absolute path to a source file (alternative to code)"`
	Operations []TransformOp `json:"operations"         jsonschema:"ordered list of transform operations to apply"`
}

// TransformOp describes one transformation in a transform_source call.
type TransformOp struct {
	Kind        string `json:"kind"                  jsonschema:"operation kind: rename rename_identifier replace remove remove_unused_imports insert_before insert_after"`
	Pattern     string `json:"pattern,omitempty"     jsonschema:"node pattern for replace, remove, insert_before, insert_after"`
	Old         string `json:"old,omitempty"         jsonschema:"current name for rename and rename_identifier"`
	New         string `json:"new,omitempty"         jsonschema:"replacement name for rename and rename_identifier"`
	Find        string `json:"find,omitempty"        jsonschema:"regular expression (or plain text with literal) for replace"`
	Replacement string `json:"replacement,omitempty" jsonschema:"replacement text for replace"`
	Text        string `json:"text,omitempty"        jsonschema:"text to insert for insert_before and insert_after"`
	Literal     bool   `json:"literal,omitempty"     jsonschema:"treat find as plain text instead of a regular expression"`
}

// Output types.

// ParseFileOutput is the structured result of the parse_file tool.
type ParseFileOutput struct {
	Language string        `json:"language"`
	HasError bool          `json:"has_error"`
	Root     tree.NodeDump `json:"root"`
}

// NodeMatch is one find_nodes result.
type NodeMatch struct {
	Type  string        `json:"type"`
	Name  string        `json:"name,omitempty"`
	Start tree.Position `json:"start"`
	End   tree.Position `json:"end"`
	Text  string        `json:"text"`
}

// FindNodesOutput is the structured result of the find_nodes tool.
// Count reports all matches even when limit truncates the list.
type FindNodesOutput struct {
	Pattern string      `json:"pattern"`
	Count   int         `json:"count"`
	Matches []NodeMatch `json:"matches"`
}

// TransformSourceOutput is the structured result of the transform_source tool.
type TransformSourceOutput struct {
	Code      string `json:"code"`
	EditCount int    `json:"edit_count"`
	Changed   bool   `json:"changed"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// resolveSource turns the shared code/language/path input fields into
// source bytes and a language name, reading from disk when a path is
// given and detecting the language from its extension if needed.
func resolveSource(code, language, path string) ([]byte, string, error) {
	if path == "" {
		err := validateCodeInput(code, language)
		if err != nil {
			return nil, "", err
		}

		return []byte(code), language, nil
	}

	if code != "" {
		return nil, "", ErrAmbiguousSource
	}

	if !filepath.IsAbs(path) {
		return nil, "", fmt.Errorf("%w: %s", ErrPathNotAbsolute, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read source file: %w", err)
	}

	if len(content) > MaxCodeInputBytes {
		return nil, "", fmt.Errorf("%w: %d bytes (max %d)", ErrCodeTooLarge, len(content), MaxCodeInputBytes)
	}

	if language == "" {
		detected, detectErr := lang.FromPath(path)
		if detectErr != nil {
			return nil, "", detectErr
		}

		language = detected
	}

	return content, language, nil
}

// validateCodeInput checks common inline code input constraints.
func validateCodeInput(code, language string) error {
	if code == "" {
		return ErrEmptyCode
	}

	if language == "" {
		return ErrEmptyLanguage
	}

	if len(code) > MaxCodeInputBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrCodeTooLarge, len(code), MaxCodeInputBytes)
	}

	return nil
}
