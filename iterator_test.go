package gcexec_test

import (
	"testing"

	"github.com/kestrelgrid/gcexec"
)

// buildXorAB constructs the xorChainGC node graph (a root whose GCA is a
// one-codon xor composition and whose GCB is an xor codon) via WriteGC's
// internal Build, by round-tripping through Context so the package-private
// node constructors stay unexported.
func buildXorAB(t *testing.T) *gcexec.Node {
	t.Helper()
	mem := newMemStore()
	gc := xorChainGC()
	putAll(mem, gc)
	c := newContext(t, mem, 100)
	root, err := c.WriteGC(bgCtx(), gc)
	if err != nil {
		t.Fatalf("WriteGC: %v", err)
	}
	return root
}

func TestFullIteratorVisitsEveryNode(t *testing.T) {
	root := buildXorAB(t)

	it := gcexec.NewFullIterator(root)
	count := 0
	sawRoot := false
	for n := it.Next(); n != nil; n = it.Next() {
		count++
		if n == root {
			sawRoot = true
		}
	}
	if !sawRoot {
		t.Error("FullIterator never visited the root")
	}
	if count < 3 {
		t.Errorf("FullIterator visited %d nodes, want at least 3 (root + 2 codon levels)", count)
	}
}

func TestFullIteratorPostOrder(t *testing.T) {
	root := buildXorAB(t)

	it := gcexec.NewFullIterator(root)
	var order []*gcexec.Node
	for n := it.Next(); n != nil; n = it.Next() {
		order = append(order, n)
	}
	if len(order) == 0 {
		t.Fatal("empty iteration order")
	}
	if order[len(order)-1] != root {
		t.Error("post-order iteration should yield the root last")
	}
}

func TestCodeIteratorMatchesFullIteratorWithoutNestedWrites(t *testing.T) {
	// Under a line limit of 100 this composition has no write boundary
	// besides the root itself, so CodeIterator and FullIterator agree on
	// node count.
	root := buildXorAB(t)

	full := gcexec.NewFullIterator(root)
	var fullCount int
	for n := full.Next(); n != nil; n = full.Next() {
		fullCount++
	}

	code := gcexec.NewCodeIterator(root)
	var codeCount int
	for n := code.Next(); n != nil; n = code.Next() {
		codeCount++
	}

	if codeCount != fullCount {
		t.Errorf("CodeIterator visited %d nodes, FullIterator visited %d; expected equal for a single emitted function", codeCount, fullCount)
	}
}

func TestEndpointEquality(t *testing.T) {
	n1 := &gcexec.Node{UID: "a"}
	n2 := &gcexec.Node{UID: "b"}

	e1 := gcexec.Endpoint{Node: n1, Row: gcexec.RowO, Index: 0, Terminal: true}
	e2 := gcexec.Endpoint{Node: n1, Row: gcexec.RowO, Index: 0, Terminal: true}
	e3 := gcexec.Endpoint{Node: n2, Row: gcexec.RowO, Index: 0, Terminal: true}

	if e1 != e2 {
		t.Error("identical endpoints should compare equal")
	}
	if e1 == e3 {
		t.Error("endpoints over different nodes should not compare equal")
	}
}

