package gcexec

import "context"

// Store is the read-only GC lookup the executor depends on. It is an
// external collaborator: the executor never writes through it and assumes
// Get is stable — the same signature must resolve to the same record for
// the lifetime of an execution context.
type Store interface {
	// Get resolves a signature to its GC record. A miss is reported as a
	// non-nil error; the executor turns any such error, or a nil record,
	// into a *ExecError with Kind == MissingSignature, so "not found" is
	// never treated as "null GC".
	Get(ctx context.Context, sig Signature) (*GCRecord, error)
}

// resolveSub returns the concrete *GCRecord behind a Sub, fetching from the
// store when only a signature is known. Null subs are represented by a nil
// *GCRecord and no error.
func resolveSub(ctx context.Context, store Store, s Sub) (*GCRecord, error) {
	switch s.Kind {
	case SubNull:
		return nil, nil
	case SubRecord:
		return s.Record, nil
	case SubSignature:
		rec, err := store.Get(ctx, s.Signature)
		if err != nil {
			return nil, &ExecError{Kind: MissingSignature, Message: err.Error(), Signature: s.Signature, Cause: err}
		}
		if rec == nil {
			return nil, &ExecError{Kind: MissingSignature, Message: "store returned nil record", Signature: s.Signature}
		}
		return rec, nil
	default:
		return nil, &ExecError{Kind: InvalidComposition, Message: "sub-GC slot holds neither a record, a signature, nor Null"}
	}
}
