package codon_test

import (
	"testing"

	"github.com/kestrelgrid/gcexec/codon"
)

func TestSignatureIsStableAndDistinctPerCodon(t *testing.T) {
	if codon.Xor.Signature() != codon.Xor.Signature() {
		t.Error("Signature() should be stable across calls for the same Spec")
	}

	seen := make(map[string]string)
	for _, spec := range codon.All {
		s := spec.Signature().String()
		if prior, ok := seen[s]; ok {
			t.Errorf("codon %q and %q collide on signature %s", prior, spec.Name, s)
		}
		seen[s] = spec.Name
	}
}

func TestGCRecordShape(t *testing.T) {
	rec := codon.Xor.GCRecord()
	if !rec.IsCodon {
		t.Error("codon-derived GCRecord must have IsCodon = true")
	}
	if !rec.GCA.IsNull() || !rec.GCB.IsNull() {
		t.Error("a codon's GCA and GCB slots must both be Null")
	}
	if rec.NumInputs != 2 || rec.NumOutputs != 1 {
		t.Errorf("Xor arity = (%d,%d), want (2,1)", rec.NumInputs, rec.NumOutputs)
	}
	if rec.Inline != "{i0} ^ {i1}" {
		t.Errorf("Inline = %q, want the xor template", rec.Inline)
	}
	if rec.NumCodons != 1 {
		t.Errorf("NumCodons = %d, want 1", rec.NumCodons)
	}
}

func TestDefaultBuiltinsDeterministicPerSeed(t *testing.T) {
	a := codon.DefaultBuiltins(7)["rand64"].(func() int64)()
	b := codon.DefaultBuiltins(7)["rand64"].(func() int64)()
	if a != b {
		t.Errorf("two rand64 builtins seeded with 7 diverged: %d != %d", a, b)
	}
}

func TestAllListsEveryFixedCodon(t *testing.T) {
	want := map[string]bool{"xor": true, "rshift1": true, "rand64": true, "lit1": true}
	if len(codon.All) != len(want) {
		t.Fatalf("All has %d entries, want %d", len(codon.All), len(want))
	}
	for _, spec := range codon.All {
		if !want[spec.Name] {
			t.Errorf("unexpected codon %q in All", spec.Name)
		}
		delete(want, spec.Name)
	}
	if len(want) != 0 {
		t.Errorf("All is missing codons: %v", want)
	}
}
