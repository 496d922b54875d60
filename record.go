package gcexec

import (
	"encoding/hex"
	"fmt"
)

// Signature is the 32-byte content hash that uniquely identifies a GC
// record. It is the key into the store, the function map and the codon
// registry.
type Signature [32]byte

// String renders the signature as lower-case hex, matching the emitted
// function ABI's "Signature:" docstring line.
func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

// IsZero reports whether s is the zero signature, used as a sentinel for
// "no signature" in a handful of diagnostic paths.
func (s Signature) IsZero() bool {
	return s == Signature{}
}

// Row names one of the fixed interface keys a GC connection graph can
// reference. The same small set of rows does double duty as both a source
// tag (Is/As/Bs/Ls/Ws) and a destination tag (Ad/Bd/Od/Fd/Ld/Wd/Pd); which
// one is meant is always clear from context (SourceRef vs a destination key
// in ConnectionGraph, or Endpoint.Terminal plus the surrounding algorithm
// step).
type Row string

const (
	RowI Row = "I" // top-level input interface
	RowA Row = "A" // GCA interface
	RowB Row = "B" // GCB interface
	RowO Row = "O" // top-level output interface
	RowF Row = "F" // conditional-branch control interface
	RowL Row = "L" // loop control interface
	RowW Row = "W" // while control interface
	RowP Row = "P" // pass-through control interface
)

// SourceRef is one entry of a destination row's connection list: it names
// the (row, index) of the value that feeds a given destination index.
type SourceRef struct {
	Row   Row
	Index int
}

// ConnectionGraph maps a destination row (A, B, O, F, L, W, P) to an ordered
// list of SourceRefs, one per destination index — the Go rendering of the
// "{row}dc" connection records in a GC's wire format. cgraph[RowO][2] names
// the source feeding the third top-level output, for example.
type ConnectionGraph map[Row][]SourceRef

// SubKind discriminates the three states a GCA/GCB slot can be in.
type SubKind int

const (
	SubNull SubKind = iota
	SubRecord
	SubSignature
)

// Sub is the tagged variant `Record(GC) | Signature(Bytes) | Null` that a
// sub-GC slot holds: either the record is already resident, or only its
// signature is known and must be resolved from the store, or the slot is
// empty (codons have both GCA and GCB Null).
type Sub struct {
	Kind      SubKind
	Record    *GCRecord
	Signature Signature
}

func NullSub() Sub                       { return Sub{Kind: SubNull} }
func RecordSub(r *GCRecord) Sub          { return Sub{Kind: SubRecord, Record: r} }
func SignatureSub(sig Signature) Sub     { return Sub{Kind: SubSignature, Signature: sig} }
func (s Sub) IsNull() bool               { return s.Kind == SubNull }

// GCRecord is a frozen Genetic Code: either a codon carrying one inline
// instruction template, or a composition of two sub-GCs wired together by
// CGraph. The executor consumes GCRecords but never mutates them.
type GCRecord struct {
	Signature     Signature
	CGraph        ConnectionGraph
	GCA           Sub
	GCB           Sub
	IsCodon       bool
	IsConditional bool
	NumInputs     int
	NumOutputs    int

	// Inline is the codon's instruction template, e.g. "{i0} ^ {i1}". Only
	// meaningful when IsCodon is true.
	Inline string
	// Imports are import declarations the Inline template depends on,
	// installed into the context's import set exactly once.
	Imports []string

	// NumCodons is the total codon count of the composition, used only by
	// diagnostics — the executor never branches on it.
	NumCodons int
}

// FunctionInfo is the per-compiled-function descriptor the execution
// context keeps in its signature map: the emitted callable, its global
// index, the line count it was emitted at, and a pointer back to the
// originating GC.
type FunctionInfo struct {
	Callable    CompiledFunction
	GlobalIndex int64 // -1 means "name reserved, not yet emitted"
	LineCount   int
	GC          *GCRecord
}

// Name renders the function's ABI name: "f_" followed by the lower-case hex
// rendering of GlobalIndex, no fixed width.
func (fi *FunctionInfo) Name() string {
	return "f_" + signedHex(fi.GlobalIndex)
}

// CallString renders a call expression against already-named argument
// variables in Go call syntax: `f_X(a, b)`, or `f_X()` with no arguments.
func (fi *FunctionInfo) CallString(argVarNames []string) string {
	if len(argVarNames) == 0 {
		return fi.Name() + "()"
	}
	s := fi.Name() + "("
	for i, v := range argVarNames {
		if i > 0 {
			s += ", "
		}
		s += v
	}
	return s + ")"
}

func signedHex(v int64) string {
	if v < 0 {
		return fmt.Sprintf("-%x", -v)
	}
	return fmt.Sprintf("%x", v)
}
