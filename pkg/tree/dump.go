package tree

// NodeDump is a JSON-friendly snapshot of a subtree. Only named nodes
// appear; leaves carry their source text so the dump stays readable
// without the original file at hand.
type NodeDump struct {
	Type     string     `json:"type"`
	Start    Position   `json:"start"`
	End      Position   `json:"end"`
	Text     string     `json:"text,omitempty"`
	Children []NodeDump `json:"children,omitempty"`
}

// Dump converts the subtree rooted at n into a NodeDump.
func Dump(n *Node) NodeDump {
	dump := NodeDump{
		Type:  n.Type(),
		Start: n.StartPos(),
		End:   n.EndPos(),
	}

	named := n.NamedChildren()
	if len(named) == 0 {
		dump.Text = n.Text()

		return dump
	}

	dump.Children = make([]NodeDump, 0, len(named))
	for _, child := range named {
		dump.Children = append(dump.Children, Dump(child))
	}

	return dump
}
