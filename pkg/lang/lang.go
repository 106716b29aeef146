// Package lang maps language names and file extensions to tree-sitter
// grammars for the JavaScript family.
package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/alexaandru/go-sitter-forest/javascript"
	"github.com/alexaandru/go-sitter-forest/tsx"
	"github.com/alexaandru/go-sitter-forest/typescript"
)

// Supported language names.
const (
	JavaScript = "javascript"
	TypeScript = "typescript"
	TSX        = "tsx"
)

var (
	// ErrUnknownLanguage indicates a name with no registered grammar.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrUnknownExtension indicates a file extension with no language mapping.
	ErrUnknownExtension = errors.New("unknown file extension")
)

// grammarFuncs maps language names to their tree-sitter grammar constructors.
var grammarFuncs = map[string]func() unsafe.Pointer{
	JavaScript: javascript.GetLanguage,
	TypeScript: typescript.GetLanguage,
	TSX:        tsx.GetLanguage,
}

// extensions maps file extensions to language names. Lookup only; no
// content sniffing.
var extensions = map[string]string{
	".js":  JavaScript,
	".jsx": JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TSX,
}

var grammarCache sync.Map

// Get returns the tree-sitter Language for name. The grammar constructor
// is invoked once per name with panic recovery (native grammar init can
// panic on ABI mismatch) and the result is cached.
func Get(name string) (*sitter.Language, error) {
	if cached, ok := grammarCache.Load(name); ok {
		if lang, castOK := cached.(*sitter.Language); castOK {
			return lang, nil
		}
	}

	fn, ok := grammarFuncs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
	}

	var lang *sitter.Language

	func() {
		defer func() {
			_ = recover() //nolint:errcheck // recover() returns any, not error
		}()

		lang = sitter.NewLanguage(fn())
	}()

	if lang == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
	}

	grammarCache.Store(name, lang)

	return lang, nil
}

// FromPath resolves the language for a file path by extension.
func FromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	name, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}

	return name, nil
}

// Names returns the supported language names in stable order.
func Names() []string {
	return []string{JavaScript, TypeScript, TSX}
}
