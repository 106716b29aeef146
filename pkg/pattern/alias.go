// Package pattern implements a CSS-like selector language over parse
// trees: an alias vocabulary for common node groups, a recursive-descent
// selector parser, and a predicate compiler. Malformed patterns always
// degrade to match-nothing predicates; find callers never see a syntax
// error.
package pattern

import (
	"slices"
)

// builtinAliases maps human vocabulary to the concrete grammar node
// types of the JavaScript family. A name without an entry resolves to
// itself.
var builtinAliases = map[string][]string{
	"function": {
		"function_declaration",
		"function_expression",
		"arrow_function",
		"method_definition",
	},
	"class": {
		"class_declaration",
		"class_expression",
	},
	"loop": {
		"for_statement",
		"while_statement",
		"do_statement",
		"for_in_statement",
		"for_of_statement",
	},
	"condition": {
		"if_statement",
		"switch_statement",
		"ternary_expression",
	},
	"string": {
		"string",
		"template_string",
	},
	"jsx": {
		"jsx_element",
		"jsx_self_closing_element",
		"jsx_fragment",
	},
	"comment": {"comment"},
	"import":  {"import_statement"},
	"export":  {"export_statement"},
	"call":    {"call_expression"},
	"return":  {"return_statement"},
	"throw":   {"throw_statement"},
	"block":   {"statement_block"},
	"statement": {
		"expression_statement",
		"variable_declaration",
		"lexical_declaration",
		"import_statement",
		"export_statement",
		"return_statement",
		"if_statement",
		"for_statement",
		"while_statement",
		"function_declaration",
		"class_declaration",
	},
}

// Table resolves alias names to concrete node-type sets. Tables are
// immutable after construction; build variants with NewTable.
type Table struct {
	entries map[string][]string
}

// DefaultTable returns the built-in alias table.
func DefaultTable() *Table {
	return NewTable(nil)
}

// NewTable returns the built-in table with overrides merged on top.
// An override replaces the whole entry for its name.
func NewTable(overrides map[string][]string) *Table {
	entries := make(map[string][]string, len(builtinAliases)+len(overrides))

	for name, types := range builtinAliases {
		entries[name] = slices.Clone(types)
	}

	for name, types := range overrides {
		entries[name] = slices.Clone(types)
	}

	return &Table{entries: entries}
}

// Resolve returns the concrete node types for name: the alias entry
// when one exists, otherwise a singleton set of the name itself.
func (t *Table) Resolve(name string) []string {
	if types, ok := t.entries[name]; ok {
		return slices.Clone(types)
	}

	return []string{name}
}

// IsAlias reports whether name has an alias entry.
func (t *Table) IsAlias(name string) bool {
	_, ok := t.entries[name]

	return ok
}

// Names returns all alias names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))

	for name := range t.entries {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
