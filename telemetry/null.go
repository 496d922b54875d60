package telemetry

import "context"

// NullEmitter discards every event. It is the default for a context
// constructed without telemetry wiring.
type NullEmitter struct{}

func (NullEmitter) Emit(Event) {}

func (NullEmitter) EmitBatch(context.Context, []Event) error { return nil }

func (NullEmitter) Flush(context.Context) error { return nil }
