package gcexec

// FullIterator walks every node of a subtree in post-order (GCA subtree,
// then GCB subtree, then the node itself), explicit-stack and cycle-safe
// via a visited set. It is not restartable — build a new one per pass.
type FullIterator struct {
	stack   []*Node
	visited map[*Node]bool
	emitted map[*Node]bool
}

// NewFullIterator seeds a post-order walk rooted at root.
func NewFullIterator(root *Node) *FullIterator {
	it := &FullIterator{
		visited: make(map[*Node]bool),
		emitted: make(map[*Node]bool),
	}
	if root != nil {
		it.stack = append(it.stack, root)
	}
	return it
}

// Next returns the next node in post-order, or nil when the walk is
// exhausted.
func (it *FullIterator) Next() *Node {
	for len(it.stack) > 0 {
		n := it.stack[len(it.stack)-1]

		if !it.visited[n] {
			it.visited[n] = true
			if n.GCBNode != nil && !it.visited[n.GCBNode] {
				it.stack = append(it.stack, n.GCBNode)
			}
			if n.GCANode != nil && !it.visited[n.GCANode] {
				it.stack = append(it.stack, n.GCANode)
			}
			continue
		}

		it.stack = it.stack[:len(it.stack)-1]
		if it.emitted[n] {
			continue
		}
		it.emitted[n] = true
		return n
	}
	return nil
}

// CodeIterator walks the nodes belonging to a single emitted function: it
// descends like FullIterator but stops at any node marked Write (nested
// calls become leaves of this walk rather than having their bodies
// inlined), except for the root itself, which is always descended into.
type CodeIterator struct {
	root    *Node
	stack   []*Node
	visited map[*Node]bool
	emitted map[*Node]bool
}

// NewCodeIterator seeds a walk over the single function rooted at root.
func NewCodeIterator(root *Node) *CodeIterator {
	it := &CodeIterator{
		root:    root,
		visited: make(map[*Node]bool),
		emitted: make(map[*Node]bool),
	}
	if root != nil {
		it.stack = append(it.stack, root)
	}
	return it
}

func (it *CodeIterator) shouldDescend(n *Node) bool {
	if n == it.root {
		return true
	}
	return !n.Write
}

// Next returns the next node within the function's boundary in post-order,
// or nil when the walk is exhausted.
func (it *CodeIterator) Next() *Node {
	for len(it.stack) > 0 {
		n := it.stack[len(it.stack)-1]

		if !it.visited[n] {
			it.visited[n] = true
			if it.shouldDescend(n) {
				if n.GCBNode != nil && !it.visited[n.GCBNode] {
					it.stack = append(it.stack, n.GCBNode)
				}
				if n.GCANode != nil && !it.visited[n.GCANode] {
					it.stack = append(it.stack, n.GCANode)
				}
			}
			continue
		}

		it.stack = it.stack[:len(it.stack)-1]
		if it.emitted[n] {
			continue
		}
		it.emitted[n] = true
		return n
	}
	return nil
}
