// Package gcexec compiles a composition graph of Genetic Codes (GCs) into
// emitted, memoised executable functions hosted inside a self-contained
// execution context.
//
// A Genetic Code is either a codon — a leaf carrying one inline instruction
// template — or a composition of two sub-GCs (GCA, GCB) wired together by a
// connection graph. WriteExecutable walks that composition, decides where to
// split it into separate emitted functions under a line-count budget, threads
// every destination endpoint back to its terminal source, names the result,
// and installs the compiled functions into the context's namespace. Execute
// then dispatches into an installed function by the GC's signature.
//
// The five stages run in this order for every WriteExecutable call:
//
//	Build      — builder.go:  construct the bidirectional node graph
//	Schedule   — schedule.go: assign num_lines, pick which nodes get written
//	Resolve    — resolve.go:  thread destinations to terminal sources
//	Name+Emit  — codegen.go:  assign variable names, render text, compile
//	Install    — context.go:  bind callables into the namespace
//
// Execution contexts are single-owner and single-threaded by design: no
// exported type in this package takes a lock. Running two contexts
// concurrently on separate goroutines is safe because they share no state.
package gcexec
