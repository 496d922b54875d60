package gcexec_test

import (
	"github.com/kestrelgrid/gcexec"
	"github.com/kestrelgrid/gcexec/codon"
)

// sig derives a distinct signature for a test fixture from a short name, so
// test gene pools don't collide with the codon registry's own signatures.
func sig(name string) gcexec.Signature {
	var s gcexec.Signature
	copy(s[:], "test-fixture:"+name)
	return s
}

// rshiftXorGC composes rshift1 and xor into a 2-input, 1-output GC:
// inputs (x, r), output x ^ (r>>1). Grounds the "one-to-two" scenario from
// spec.md section 8.
func rshiftXorGC() *gcexec.GCRecord {
	return &gcexec.GCRecord{
		Signature:  sig("rshift_xor"),
		NumInputs:  2,
		NumOutputs: 1,
		GCA:        gcexec.RecordSub(codon.RShift1.GCRecord()),
		GCB:        gcexec.RecordSub(codon.Xor.GCRecord()),
		CGraph: gcexec.ConnectionGraph{
			gcexec.RowA: {{Row: gcexec.RowI, Index: 1}},
			gcexec.RowB: {{Row: gcexec.RowI, Index: 0}, {Row: gcexec.RowA, Index: 0}},
			gcexec.RowO: {{Row: gcexec.RowB, Index: 0}},
		},
	}
}

// oneToTwoGC is the root gene of spec.md section 8 scenario 1: GCA=rand64,
// GCB=rshiftXorGC, one input x, two outputs (x ^ (r>>1), r).
func oneToTwoGC() *gcexec.GCRecord {
	return &gcexec.GCRecord{
		Signature:  sig("one_to_two"),
		NumInputs:  1,
		NumOutputs: 2,
		GCA:        gcexec.RecordSub(codon.Rand64.GCRecord()),
		GCB:        gcexec.RecordSub(rshiftXorGC()),
		CGraph: gcexec.ConnectionGraph{
			gcexec.RowB: {{Row: gcexec.RowI, Index: 0}, {Row: gcexec.RowA, Index: 0}},
			gcexec.RowO: {{Row: gcexec.RowB, Index: 0}, {Row: gcexec.RowA, Index: 0}},
		},
	}
}

// xorChainGC builds spec.md section 8 scenario 2: two chained XORs,
// num_inputs=3, num_outputs=1, computing a ^ b ^ c. GCA computes a ^ b,
// GCB is a bare xor codon computing (a^b) ^ c.
func xorChainGC() *gcexec.GCRecord {
	inner := &gcexec.GCRecord{
		Signature:  sig("xor_ab"),
		NumInputs:  2,
		NumOutputs: 1,
		GCA:        gcexec.RecordSub(codon.Xor.GCRecord()),
		GCB:        gcexec.NullSub(),
		CGraph: gcexec.ConnectionGraph{
			gcexec.RowA: {{Row: gcexec.RowI, Index: 0}, {Row: gcexec.RowI, Index: 1}},
			gcexec.RowO: {{Row: gcexec.RowA, Index: 0}},
		},
	}

	return &gcexec.GCRecord{
		Signature:  sig("xor_abc"),
		NumInputs:  3,
		NumOutputs: 1,
		GCA:        gcexec.RecordSub(inner),
		GCB:        gcexec.RecordSub(codon.Xor.GCRecord()),
		CGraph: gcexec.ConnectionGraph{
			gcexec.RowA: {{Row: gcexec.RowI, Index: 0}, {Row: gcexec.RowI, Index: 1}},
			gcexec.RowB: {{Row: gcexec.RowA, Index: 0}, {Row: gcexec.RowI, Index: 2}},
			gcexec.RowO: {{Row: gcexec.RowB, Index: 0}},
		},
	}
}

// wrapCodon wraps a zero-input codon as a trivial one-node composition so
// it can stand as the root of a WriteExecutable call: a bare codon has no
// CGraph of its own (its own Inline template is its only content), so the
// resolver's "seed from root.GC.CGraph[RowO]" step needs a thin composing
// parent whose Od row points straight at the codon's output. Used for the
// "zero-I/O codon" boundary case (spec.md section 8 scenario 6).
func wrapCodon(spec codon.Spec) *gcexec.GCRecord {
	return &gcexec.GCRecord{
		Signature:  sig("wrap_" + spec.Name),
		NumInputs:  0,
		NumOutputs: 1,
		GCA:        gcexec.RecordSub(spec.GCRecord()),
		CGraph: gcexec.ConnectionGraph{
			gcexec.RowO: {{Row: gcexec.RowA, Index: 0}},
		},
	}
}
