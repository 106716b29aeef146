package transform

import (
	"strings"

	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// usageTypes are the node types whose text counts as an identifier
// reference when deciding whether an import binding is used. Plain
// property identifiers are excluded: obj.fs is a member access, not a
// reference to an imported fs.
var usageTypes = map[string]struct{}{
	"identifier":                            {},
	"type_identifier":                       {},
	"shorthand_property_identifier":         {},
	"shorthand_property_identifier_pattern": {},
}

// RemoveUnusedImports drops every import statement none of whose
// bindings are referenced outside import statements, and prunes unused
// specifiers out of partially used named-import lists, keeping the
// statement well-formed. Bare side-effect imports are never removed.
// The check is syntactic, exact identifier-text matching with no
// cross-file awareness.
func (s *Session) RemoveUnusedImports() *Session {
	used := s.usedIdentifiers()

	for _, stmt := range s.find("import_statement") {
		s.pruneImport(stmt, used)
	}

	return s
}

// usedIdentifiers collects identifier texts appearing anywhere outside
// import-statement subtrees.
func (s *Session) usedIdentifiers() map[string]struct{} {
	used := make(map[string]struct{})

	var visit func(n *tree.Node)

	visit = func(n *tree.Node) {
		if n.Type() == "import_statement" {
			return
		}

		if _, ok := usageTypes[n.Type()]; ok {
			used[n.Text()] = struct{}{}
		}

		for _, child := range n.Children() {
			visit(child)
		}
	}

	visit(s.root)

	return used
}

// pruneImport queues edits for one import statement: nothing when every
// binding is used, a whole-statement removal (with trailing newline)
// when none are, and a rebuilt import clause in between.
func (s *Session) pruneImport(stmt *tree.Node, used map[string]struct{}) {
	clause := firstChildOfType(stmt, "import_clause")
	if clause == nil {
		return
	}

	var (
		defaultID *tree.Node
		namespace *tree.Node
		named     []*tree.Node
	)

	for _, child := range clause.NamedChildren() {
		switch child.Type() {
		case "identifier":
			defaultID = child
		case "namespace_import":
			namespace = child
		case "named_imports":
			for _, spec := range child.NamedChildren() {
				if spec.Type() == "import_specifier" {
					named = append(named, spec)
				}
			}
		}
	}

	if defaultID == nil && namespace == nil && len(named) == 0 {
		return
	}

	keepDefault := defaultID != nil && isUsed(used, defaultID.Text())
	keepNamespace := namespace != nil && isUsed(used, namespaceName(namespace))

	kept := make([]*tree.Node, 0, len(named))

	for _, spec := range named {
		if isUsed(used, bindingName(spec)) {
			kept = append(kept, spec)
		}
	}

	if !keepDefault && !keepNamespace && len(kept) == 0 {
		start, end := stmt.StartByte(), stmt.EndByte()
		if end < len(s.source) && s.source[end] == '\n' {
			end++
		}

		s.add(start, end, "")

		return
	}

	allUsed := keepDefault == (defaultID != nil) &&
		keepNamespace == (namespace != nil) &&
		len(kept) == len(named)
	if allUsed {
		return
	}

	s.add(clause.StartByte(), clause.EndByte(), rebuildClause(defaultID, keepDefault, namespace, keepNamespace, kept))
}

// bindingName returns the local name an import specifier introduces:
// the alias when present, the imported name otherwise.
func bindingName(spec *tree.Node) string {
	if alias := spec.ChildByField("alias"); alias != nil {
		return alias.Text()
	}

	if name := spec.ChildByField("name"); name != nil {
		return name.Text()
	}

	return ""
}

// namespaceName returns the local identifier of a "* as ns" import.
func namespaceName(ns *tree.Node) string {
	for _, child := range ns.NamedChildren() {
		if child.Type() == "identifier" {
			return child.Text()
		}
	}

	return ""
}

func rebuildClause(defaultID *tree.Node, keepDefault bool, namespace *tree.Node, keepNamespace bool, kept []*tree.Node) string {
	parts := make([]string, 0, 3)

	if keepDefault {
		parts = append(parts, defaultID.Text())
	}

	if keepNamespace {
		parts = append(parts, namespace.Text())
	}

	if len(kept) > 0 {
		specs := make([]string, 0, len(kept))
		for _, spec := range kept {
			specs = append(specs, spec.Text())
		}

		parts = append(parts, "{ "+strings.Join(specs, ", ")+" }")
	}

	return strings.Join(parts, ", ")
}

func isUsed(used map[string]struct{}, name string) bool {
	if name == "" {
		return false
	}

	_, ok := used[name]

	return ok
}

func firstChildOfType(n *tree.Node, typ string) *tree.Node {
	for _, child := range n.NamedChildren() {
		if child.Type() == typ {
			return child
		}
	}

	return nil
}
