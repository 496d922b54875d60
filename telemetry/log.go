package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// LogEmitter writes Events to an io.Writer, either as line-delimited JSON
// or as a short human-readable line. Safe for concurrent use even though
// the executor itself is single-threaded, since a context's Emitter may be
// shared with other observability tooling in the host process.
type LogEmitter struct {
	mu       sync.Mutex
	w        io.Writer
	jsonMode bool
}

// NewLogEmitter builds a LogEmitter writing to w. jsonMode selects
// line-delimited JSON over the default text rendering.
func NewLogEmitter(w io.Writer, jsonMode bool) *LogEmitter {
	return &LogEmitter{w: w, jsonMode: jsonMode}
}

func (l *LogEmitter) Emit(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.jsonMode {
		l.emitJSON(e)
		return
	}
	l.emitText(e)
}

func (l *LogEmitter) emitJSON(e Event) {
	b, err := json.Marshal(e)
	if err != nil {
		fmt.Fprintf(l.w, "{\"stage\":%q,\"msg\":%q,\"marshal_error\":%q}\n", e.Stage, e.Msg, err.Error())
		return
	}
	l.w.Write(b)
	l.w.Write([]byte("\n"))
}

func (l *LogEmitter) emitText(e Event) {
	if e.NodeUID != "" {
		fmt.Fprintf(l.w, "[%s] sig=%s node=%s %s\n", e.Stage, e.Signature, e.NodeUID, e.Msg)
		return
	}
	fmt.Fprintf(l.w, "[%s] sig=%s %s\n", e.Stage, e.Signature, e.Msg)
}

func (l *LogEmitter) EmitBatch(ctx context.Context, events []Event) error {
	for _, e := range events {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		l.Emit(e)
	}
	return nil
}

func (l *LogEmitter) Flush(context.Context) error {
	if f, ok := l.w.(interface{ Sync() error }); ok {
		return f.Sync()
	}
	return nil
}
