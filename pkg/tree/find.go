package tree

// Predicate is a boolean test over a single node.
type Predicate func(*Node) bool

// Find returns all nodes in the subtree (root included) satisfying the
// predicate, in pre-order. Returns nil if n is nil.
func (n *Node) Find(predicate Predicate) []*Node {
	if n == nil {
		return nil
	}

	var result []*Node

	stack := []*Node{n}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if predicate(curr) {
			result = append(result, curr)
		}

		pushReversedChildren(curr, &stack)
	}

	return result
}

// FindFirst returns the first node in pre-order satisfying the
// predicate, testing the node itself before its children, or nil.
func (n *Node) FindFirst(predicate Predicate) *Node {
	if n == nil {
		return nil
	}

	stack := []*Node{n}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if predicate(curr) {
			return curr
		}

		pushReversedChildren(curr, &stack)
	}

	return nil
}

// Walk visits every node in the subtree in pre-order.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}

	stack := []*Node{n}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		visit(curr)
		pushReversedChildren(curr, &stack)
	}
}

// pushReversedChildren pushes children right-to-left so the stack pops
// them in source order.
func pushReversedChildren(n *Node, stack *[]*Node) {
	children := n.children

	for idx := len(children) - 1; idx >= 0; idx-- {
		*stack = append(*stack, children[idx])
	}
}

// Ancestors returns the chain of enclosing nodes from the immediate
// parent up to the root. Empty for the root itself.
func (n *Node) Ancestors() []*Node {
	var chain []*Node

	for current := n.parent; current != nil; current = current.parent {
		chain = append(chain, current)
	}

	return chain
}

// HasAncestor reports whether any strict ancestor satisfies the
// predicate, short-circuiting on the first hit.
func (n *Node) HasAncestor(predicate Predicate) bool {
	for current := n.parent; current != nil; current = current.parent {
		if predicate(current) {
			return true
		}
	}

	return false
}

// HasDescendant reports whether any strict descendant satisfies the
// predicate. The node itself is excluded.
func (n *Node) HasDescendant(predicate Predicate) bool {
	for _, child := range n.children {
		if child.FindFirst(predicate) != nil {
			return true
		}
	}

	return false
}
