package gcexec_test

import (
	"context"

	"github.com/kestrelgrid/gcexec"
	"github.com/kestrelgrid/gcexec/codon"
	"github.com/kestrelgrid/gcexec/store"
)

func bgCtx() context.Context { return context.Background() }

func newMemStore() *store.MemStore { return store.NewMemStore() }

// putAll registers gc and, recursively, every GCA/GCB record reachable from
// it, so a test's store always resolves every signature the composition
// could ever need, even for nodes wired via Sub.Signature instead of a
// resident Sub.Record.
func putAll(mem *store.MemStore, gc *gcexec.GCRecord) {
	if gc == nil {
		return
	}
	mem.Put(gc)
	putAll(mem, gc.GCA.Record)
	putAll(mem, gc.GCB.Record)
}

func newContext(t interface{ Helper(); Fatalf(string, ...interface{}) }, mem *store.MemStore, lineLimit int) *gcexec.Context {
	t.Helper()
	c, err := gcexec.New(mem, lineLimit, gcexec.WithBuiltins(codon.DefaultBuiltins(1)))
	if err != nil {
		t.Fatalf("gcexec.New: %v", err)
	}
	return c
}
