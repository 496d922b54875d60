package telemetry

import "context"

// Emitter receives Events produced while a context builds or runs
// executables. Implementations must not block the compiler for long:
// Emit is called inline on the hot path.
type Emitter interface {
	Emit(event Event)
	EmitBatch(ctx context.Context, events []Event) error
	Flush(ctx context.Context) error
}
