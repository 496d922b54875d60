package gcexec

import "context"

// Build constructs the bidirectional node graph for gc, pulling sub-GCs
// from store on demand. It mirrors the original breadth-first builder
// (egppy's node_graph): a FIFO queue, not a stack, so siblings at the same
// composition depth are resolved in the order they were discovered —
// determinism of the emitted output depends on this order being stable.
//
// limit is the owning context's line limit; it decides whether a child
// that already has an installed FunctionInfo is terminalised in place or
// re-descended into for inlining (spec §4.2's reuse threshold is
// limit/2).
func Build(ctx context.Context, store Store, gc *GCRecord, functionMap map[Signature]*FunctionInfo, limit int) (*Node, error) {
	root := newNode(gc, nil, RoleI)
	root.FunctionInfo = functionMap[gc.Signature]
	root.IsCodon = gc.IsCodon
	if root.IsCodon {
		root.Terminal = true
		root.Assess = false
		root.NumLines = 1
	}

	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if n.IsCodon || n.Unknown {
			continue
		}

		type slot struct {
			role Role
			sub  Sub
			ptr  **Node
		}
		slots := [2]slot{
			{RoleA, n.GC.GCA, &n.GCANode},
			{RoleB, n.GC.GCB, &n.GCBNode},
		}

		for _, s := range slots {
			if s.sub.IsNull() {
				continue
			}
			childGC, err := resolveSub(ctx, store, s.sub)
			if err != nil {
				return nil, err
			}
			if childGC == nil {
				return nil, (&ExecError{Kind: InvalidComposition, Message: "resolved sub-GC slot is nil"}).withNode(n)
			}
			if childGC.NumInputs > 256 || childGC.NumOutputs > 256 {
				return nil, (&ExecError{Kind: InvalidComposition, Message: "GC exceeds 256 input/output limit"}).withNode(n)
			}

			child := newNode(childGC, n, s.role)
			child.FunctionInfo = functionMap[childGC.Signature]
			child.IsCodon = childGC.IsCodon
			*s.ptr = child

			switch {
			case child.IsCodon:
				child.Terminal = true
				child.Assess = false
				child.NumLines = 1

			case child.FunctionInfo != nil && child.FunctionInfo.GlobalIndex >= 0:
				if child.FunctionInfo.LineCount < limit/2 {
					queue = append(queue, child)
					continue
				}
				child.Assess = false
				child.Exists = true
				child.Terminal = true
				child.NumLines = 1
				child.FunctionInfo.LineCount = 1
				if s.sub.Kind == SubSignature {
					// Structure unresolved to a record and a callable
					// already exists for it: the node's innards are
					// opaque even though its presence is known.
					child.Unknown = true
				}

			default:
				queue = append(queue, child)
			}
		}
	}

	return root, nil
}
