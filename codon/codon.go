// Package codon holds the fixed set of primitive instruction templates the
// executor treats as leaves of every composition: xor, rshift1, rand64 and
// lit1. Each is a one-line inline template that doubles as Go source text
// in an emitted function body and, unmodified, as the expr-lang expression
// the runtime evaluates for it.
package codon

import (
	"crypto/sha256"
	"math/rand"

	"github.com/kestrelgrid/gcexec"
)

// Spec describes one codon: its arity and the inline template the Code
// Emitter substitutes {iK} placeholders into.
type Spec struct {
	Name       string
	NumInputs  int
	NumOutputs int
	Inline     string
	Imports    []string
}

// Signature derives a stable content hash for the codon from its name and
// template text. Two Specs with the same name and template always collide
// to the same signature, matching how a real GC store would content-address
// an unchanging codon definition.
func (s Spec) Signature() gcexec.Signature {
	return sha256.Sum256([]byte(s.Name + "|" + s.Inline))
}

// GCRecord renders the Spec as the GCRecord the executor operates on: a
// codon with both sub-GC slots Null.
func (s Spec) GCRecord() *gcexec.GCRecord {
	return &gcexec.GCRecord{
		Signature:  s.Signature(),
		IsCodon:    true,
		NumInputs:  s.NumInputs,
		NumOutputs: s.NumOutputs,
		Inline:     s.Inline,
		Imports:    s.Imports,
		NumCodons:  1,
		GCA:        gcexec.NullSub(),
		GCB:        gcexec.NullSub(),
	}
}

var (
	// Xor computes the bitwise exclusive-or of its two inputs.
	Xor = Spec{Name: "xor", NumInputs: 2, NumOutputs: 1, Inline: "{i0} ^ {i1}"}
	// RShift1 shifts its single input right by one bit.
	RShift1 = Spec{Name: "rshift1", NumInputs: 1, NumOutputs: 1, Inline: "{i0} >> 1"}
	// Rand64 produces a pseudo-random 64-bit value from the builtin the
	// installing Context supplies under the name "rand64".
	Rand64 = Spec{Name: "rand64", NumInputs: 0, NumOutputs: 1, Inline: "rand64()"}
	// Lit1 is the constant 1.
	Lit1 = Spec{Name: "lit1", NumInputs: 0, NumOutputs: 1, Inline: "1"}
)

// All lists the fixed codon set in a stable order, convenient for seeding a
// Store in tests.
var All = []Spec{Xor, RShift1, Rand64, Lit1}

// DefaultBuiltins returns the expr-lang environment entries the fixed codon
// set depends on beyond plain arithmetic — currently just rand64, backed by
// a rand.Rand seeded deterministically so a Context's output is
// reproducible run to run for a given seed.
func DefaultBuiltins(seed int64) map[string]interface{} {
	rng := rand.New(rand.NewSource(seed))
	return map[string]interface{}{
		"rand64": func() int64 { return int64(rng.Uint64()) },
	}
}
