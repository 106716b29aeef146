package tree

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/qckfx/tree-hugger-js/pkg/lang"
	"github.com/qckfx/tree-hugger-js/pkg/textutil"
)

var (
	// ErrNoRootNode indicates the parser produced a tree without a root.
	ErrNoRootNode = errors.New("no root node found in parse tree")
	// ErrBinaryInput indicates the input looks like binary data.
	ErrBinaryInput = errors.New("input appears to be binary")
	// errPoolType indicates an unexpected type in the parser pool.
	errPoolType = errors.New("parser pool returned unexpected type")
)

// Tree owns one parsed source buffer and its wrapped node hierarchy.
// It stays valid until Close releases the underlying tree-sitter tree;
// Nodes must not be used after Close.
type Tree struct {
	root     *Node
	source   []byte
	language string

	ts        *sitter.Tree
	closeOnce sync.Once
}

// parserPools holds one parser pool per language. Pooled parsers keep
// their language set, so a pool is never shared across languages.
var parserPools sync.Map

func poolFor(language *sitter.Language, name string) *sync.Pool {
	if cached, ok := parserPools.Load(name); ok {
		if pool, castOK := cached.(*sync.Pool); castOK {
			return pool
		}
	}

	pool := &sync.Pool{
		New: func() any {
			tsParser := sitter.NewParser()
			tsParser.SetLanguage(language)

			return tsParser
		},
	}

	actual, _ := parserPools.LoadOrStore(name, pool)

	stored, ok := actual.(*sync.Pool)
	if !ok {
		return pool
	}

	return stored
}

// Parse parses content as langName source and wraps the full tree.
func Parse(content []byte, langName string) (*Tree, error) {
	return ParseCtx(context.Background(), content, langName)
}

// ParseCtx is Parse with a caller-supplied context governing the parse.
func ParseCtx(ctx context.Context, content []byte, langName string) (*Tree, error) {
	if textutil.IsBinary(content) {
		return nil, ErrBinaryInput
	}

	language, err := lang.Get(langName)
	if err != nil {
		return nil, err
	}

	pool := poolFor(language, langName)

	tsParser, ok := pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer pool.Put(tsParser)

	tsTree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s source: %w", langName, err)
	}

	rawRoot := tsTree.RootNode()
	if rawRoot.IsNull() {
		tsTree.Close()

		return nil, ErrNoRootNode
	}

	parsed := &Tree{source: content, language: langName, ts: tsTree}

	root, err := buildNode(parsed, rawRoot, nil)
	if err != nil {
		tsTree.Close()

		return nil, err
	}

	parsed.root = root

	return parsed, nil
}

// ParseFile reads path, resolves its language by extension, and parses it.
func ParseFile(path string) (*Tree, error) {
	return ParseFileCtx(context.Background(), path)
}

// ParseFileCtx is ParseFile with a caller-supplied context.
func ParseFileCtx(ctx context.Context, path string) (*Tree, error) {
	langName, err := lang.FromPath(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return ParseCtx(ctx, content, langName)
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Source returns the original source buffer. Callers must not modify it.
func (t *Tree) Source() []byte { return t.source }

// Language returns the language name the tree was parsed as.
func (t *Tree) Language() string { return t.language }

// Close releases the underlying tree-sitter tree. Safe to call more
// than once. All Nodes of this tree are invalid afterwards.
func (t *Tree) Close() {
	t.closeOnce.Do(func() {
		if t.ts != nil {
			t.ts.Close()
		}
	})
}

// NodeAt returns the innermost node whose byte range contains the
// 1-based line/column position, or nil when the position is outside
// the tree.
func (t *Tree) NodeAt(line, column int) *Node {
	offset, ok := t.offsetOf(line, column)
	if !ok {
		return nil
	}

	return t.NodeAtOffset(offset)
}

// NodeAtOffset returns the innermost node whose byte range contains
// offset, or nil when offset is out of range.
func (t *Tree) NodeAtOffset(offset int) *Node {
	if t.root == nil || offset < 0 || offset >= len(t.source) {
		return nil
	}

	current := t.root

descend:
	for {
		for _, child := range current.children {
			if child.StartByte() <= offset && offset < child.EndByte() {
				current = child

				continue descend
			}
		}

		return current
	}
}

// offsetOf converts a 1-based line/column pair to a byte offset.
func (t *Tree) offsetOf(line, column int) (int, bool) {
	if line < 1 || column < 1 {
		return 0, false
	}

	offset := 0

	for current := 1; current < line; current++ {
		idx := bytes.IndexByte(t.source[offset:], '\n')
		if idx < 0 {
			return 0, false
		}

		offset += idx + 1
	}

	offset += column - 1
	if offset > len(t.source) {
		return 0, false
	}

	return offset, true
}
