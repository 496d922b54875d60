package gcexec

// Resolve threads every destination endpoint of the function rooted at
// root back to its terminal source, filling in root.TerminalConnections.
// It never looks inside a codon's body and never steps above root: the
// subtree under root is exactly the set of nodes this one emitted function
// may reference.
//
// The work list holds connections whose source may still be mid-thread;
// resolveToTerminal walks a single connection's source all the way to a
// terminal endpoint (a root boundary, a codon leaf, or a call leaf) before
// the connection is recorded, so root.TerminalConnections only ever
// contains fully-resolved, terminal-to-terminal wires.
func Resolve(root *Node) error {
	if root == nil {
		return nil
	}

	var stack []Connection
	for idx := 0; idx < root.GC.NumOutputs; idx++ {
		refs := root.GC.CGraph[RowO]
		if idx >= len(refs) {
			return (&ExecError{Kind: InvalidComposition, Message: "Od connection list shorter than NumOutputs"}).withNode(root).withRow(RowO)
		}
		ref := refs[idx]
		stack = append(stack, Connection{
			Src: Endpoint{Node: root, Row: ref.Row, Index: ref.Index, Terminal: false},
			Dst: Endpoint{Node: root, Row: RowO, Index: idx, Terminal: true},
		})
	}

	visited := map[*Node]bool{root: true}

	for len(stack) > 0 {
		conn := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		term, err := resolveToTerminal(root, conn.Src)
		if err != nil {
			return err
		}
		conn.Src = term
		root.TerminalConnections = append(root.TerminalConnections, conn)

		if !visited[term.Node] {
			visited[term.Node] = true
			if err := pushOwnInputs(root, term.Node, &stack); err != nil {
				return err
			}
			if err := pushControlConnection(root, term.Node, &stack); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveToTerminal walks a source endpoint through A/B/I transitions until
// it reaches a node flagged Terminal (a codon, an existing/written call, or
// root's own input boundary). It never visits GCA/GCB of a codon.
func resolveToTerminal(root *Node, e Endpoint) (Endpoint, error) {
	node, row, idx := e.Node, e.Row, e.Index

	for {
		switch row {
		case RowI:
			if node == root {
				return Endpoint{Node: node, Row: RowI, Index: idx, Terminal: true}, nil
			}
			if node.Parent == nil {
				return Endpoint{}, (&ExecError{Kind: UnreachableSource, Message: "non-root node has no parent during threading"}).withNode(node)
			}
			refs := node.Parent.GC.CGraph[node.Role.destRow()]
			if idx >= len(refs) {
				return Endpoint{}, (&ExecError{Kind: InvalidComposition, Message: "destination connection list shorter than child input count"}).withNode(node.Parent)
			}
			ref := refs[idx]
			node, row, idx = node.Parent, ref.Row, ref.Index

		case RowA:
			if node.IsCodon {
				return Endpoint{}, (&ExecError{Kind: CodonIntrospected, Message: "resolver stepped into a codon's GCA"}).withNode(node)
			}
			child := node.GCANode
			if child == nil {
				return Endpoint{}, (&ExecError{Kind: UnreachableSource, Message: "GCA connection with no GCA node"}).withNode(node).withRow(RowA)
			}
			if child.Terminal {
				return Endpoint{Node: child, Row: RowO, Index: idx, Terminal: true}, nil
			}
			refs := child.GC.CGraph[RowO]
			if idx >= len(refs) {
				return Endpoint{}, (&ExecError{Kind: InvalidComposition, Message: "Od connection list shorter than NumOutputs"}).withNode(child).withRow(RowO)
			}
			ref := refs[idx]
			node, row, idx = child, ref.Row, ref.Index

		case RowB:
			if node.IsCodon {
				return Endpoint{}, (&ExecError{Kind: CodonIntrospected, Message: "resolver stepped into a codon's GCB"}).withNode(node)
			}
			child := node.GCBNode
			if child == nil {
				return Endpoint{}, (&ExecError{Kind: UnreachableSource, Message: "GCB connection with no GCB node"}).withNode(node).withRow(RowB)
			}
			if child.Terminal {
				return Endpoint{Node: child, Row: RowO, Index: idx, Terminal: true}, nil
			}
			refs := child.GC.CGraph[RowO]
			if idx >= len(refs) {
				return Endpoint{}, (&ExecError{Kind: InvalidComposition, Message: "Od connection list shorter than NumOutputs"}).withNode(child).withRow(RowO)
			}
			ref := refs[idx]
			node, row, idx = child, ref.Row, ref.Index

		default:
			return Endpoint{}, (&ExecError{Kind: UnreachableSource, Message: "source endpoint has unthreadable row"}).withNode(node).withRow(row)
		}
	}
}

// pushOwnInputs enqueues, for a newly-discovered terminal node, one
// work-list connection per input it consumes — so that by the time the
// emitter sees this node, every input it reads has its own terminal
// source. root's own inputs need no such wiring: they are this function's
// parameters, not a connection to anything else.
func pushOwnInputs(root, node *Node, stack *[]Connection) error {
	if node == root || node.GC.NumInputs == 0 {
		return nil
	}
	if node.Parent == nil {
		return (&ExecError{Kind: InvalidComposition, Message: "non-root terminal node has no parent"}).withNode(node)
	}
	refs := node.Parent.GC.CGraph[node.Role.destRow()]
	for k := 0; k < node.GC.NumInputs; k++ {
		if k >= len(refs) {
			return (&ExecError{Kind: InvalidComposition, Message: "destination connection list shorter than node input count"}).withNode(node.Parent)
		}
		ref := refs[k]
		*stack = append(*stack, Connection{
			Src: Endpoint{Node: node.Parent, Row: ref.Row, Index: ref.Index, Terminal: false},
			Dst: Endpoint{Node: node, Row: RowI, Index: k, Terminal: true},
		})
	}
	return nil
}

// pushControlConnection wires a conditional node's F/L/W control input
// exactly once, guarded by Node.fConnectionDone. Only the wiring is
// produced here — interpreting the control value at runtime is the
// surrounding codon's concern, not the resolver's.
func pushControlConnection(root, node *Node, stack *[]Connection) error {
	if !node.GC.IsConditional || node.fConnectionDone {
		return nil
	}
	node.fConnectionDone = true

	for _, row := range [...]Row{RowF, RowL, RowW} {
		refs, ok := node.GC.CGraph[row]
		if !ok || len(refs) == 0 {
			continue
		}
		ref := refs[0]
		term, err := resolveToTerminal(root, Endpoint{Node: node, Row: ref.Row, Index: ref.Index})
		if err != nil {
			return err
		}
		*stack = append(*stack, Connection{
			Src: term,
			Dst: Endpoint{Node: node, Row: row, Index: 0, Terminal: true},
		})
	}
	return nil
}
