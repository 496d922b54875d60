package gcexec

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/kestrelgrid/gcexec/telemetry"
)

// Context is a self-contained, single-owner compiler and execution host for
// Genetic Codes. It owns a namespace of installed functions keyed by GC
// signature, a monotonic global index used to name them, and the accumulated
// set of codon import declarations they depend on.
//
// A Context is not safe for concurrent use. It has no internal locking, no
// suspension points, and no cancellation of in-flight work beyond what the
// supplied context.Context governs for the external Store call — the
// compilation pipeline itself runs to completion or fails atomically.
type Context struct {
	store       Store
	lineLimit   int
	functionMap map[Signature]*FunctionInfo
	globalIndex int64
	imports     map[string]struct{}

	hints    bool
	emitter  telemetry.Emitter
	metrics  *telemetry.Metrics
	tracer   trace.Tracer
	validate bool
	builtins map[string]interface{}
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithHints enables the Signature/Optimisations docstring block in emitted
// function text.
func WithHints(enabled bool) Option {
	return func(c *Context) { c.hints = enabled }
}

// WithEmitter installs a telemetry sink for compilation and execution
// events. The default is telemetry.NullEmitter.
func WithEmitter(e telemetry.Emitter) Option {
	return func(c *Context) {
		if e != nil {
			c.emitter = e
		}
	}
}

// WithMetrics attaches a Prometheus-backed metrics collector.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Context) { c.metrics = m }
}

// WithTracer overrides the OpenTelemetry tracer used for WriteExecutable and
// Execute spans. The default is otel.Tracer("gcexec").
func WithTracer(t trace.Tracer) Option {
	return func(c *Context) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithSyntaxValidation toggles parsing every emitted function body with
// go/parser before installing it. Enabled by default; disabling it only
// saves the parse cost, it never changes what gets compiled.
func WithSyntaxValidation(enabled bool) Option {
	return func(c *Context) { c.validate = enabled }
}

// WithBuiltins supplies the expr-lang environment entries codon templates
// may call by name, such as "rand64". Without this option a context has no
// builtins installed and any codon template referencing one fails to
// compile with EmissionFailure.
func WithBuiltins(builtins map[string]interface{}) Option {
	return func(c *Context) { c.builtins = builtins }
}

// New constructs an empty execution context bound to store. A lineLimit
// outside the [2, 32767] range the scheduler is defined over is rejected
// with an InvalidComposition error.
func New(store Store, lineLimit int, opts ...Option) (*Context, error) {
	if lineLimit < 2 || lineLimit > 32767 {
		return nil, newErr(InvalidComposition, fmt.Sprintf("line limit %d outside [2, 32767]", lineLimit))
	}
	c := &Context{
		store:       store,
		lineLimit:   lineLimit,
		functionMap: make(map[Signature]*FunctionInfo),
		imports:     make(map[string]struct{}),
		emitter:     telemetry.NullEmitter{},
		tracer:      otel.Tracer("gcexec"),
		validate:    true,
		builtins:    make(map[string]interface{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// LineLimit returns the context's configured line budget.
func (c *Context) LineLimit() int { return c.lineLimit }

// WriteGC is a convenience wrapper over WriteExecutable for a GC record
// already resident in memory.
func (c *Context) WriteGC(ctx context.Context, gc *GCRecord) (*Node, error) {
	return c.WriteExecutable(ctx, RecordSub(gc))
}

// WriteSignature is a convenience wrapper over WriteExecutable for a GC
// known only by signature, resolved through the Store.
func (c *Context) WriteSignature(ctx context.Context, sig Signature) (*Node, error) {
	return c.WriteExecutable(ctx, SignatureSub(sig))
}

// WriteExecutable compiles target into one or more installed functions and
// returns the root of the freshly built node graph. It returns (nil, nil)
// when an adequate function is already installed — write_executable's
// reuse short-circuit — so callers must check for a nil root on success,
// not only for a nil error.
//
// All functions newly installed by one call are made visible atomically:
// if any stage fails, every FunctionInfo this call reserved is rolled back
// and the context is left exactly as it was for every previously
// successful WriteExecutable.
func (c *Context) WriteExecutable(ctx context.Context, target Sub) (*Node, error) {
	spanCtx, span := c.tracer.Start(ctx, "gcexec.WriteExecutable")
	defer span.End()
	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.RecordCompileSeconds(time.Since(start).Seconds())
		}
	}()

	gc, err := resolveSub(spanCtx, c.store, target)
	if err != nil {
		return nil, err
	}
	if gc == nil {
		return nil, newErr(InvalidComposition, "write_executable requires a non-null GC")
	}

	if fi, ok := c.functionMap[gc.Signature]; ok && fi.Callable != nil && fi.LineCount > c.lineLimit/2 {
		if c.metrics != nil {
			c.metrics.RecordFunctionReused()
		}
		c.emitter.Emit(telemetry.Event{Signature: gc.Signature.String(), Stage: "write_executable", Msg: "reused existing function"})
		return nil, nil
	}

	root, err := Build(spanCtx, c.store, gc, c.functionMap, c.lineLimit)
	if err != nil {
		return nil, err
	}
	if err := LineCount(root, c.lineLimit); err != nil {
		return nil, err
	}

	writeNodes := collectWriteNodes(root)

	var reserved []Signature
	rollback := func() {
		for _, sig := range reserved {
			delete(c.functionMap, sig)
		}
	}

	// Phase one: reserve every write node's global index before any body is
	// compiled, so sibling functions can reference each other regardless of
	// which one happens to be emitted first.
	for _, w := range writeNodes {
		if existing, ok := c.functionMap[w.GC.Signature]; ok {
			w.FunctionInfo = existing
			continue
		}
		fi := &FunctionInfo{GlobalIndex: c.globalIndex, GC: w.GC, LineCount: w.NumLines}
		c.globalIndex++
		c.functionMap[w.GC.Signature] = fi
		w.FunctionInfo = fi
		reserved = append(reserved, w.GC.Signature)
	}

	// Phase two: resolve connections and compile each reserved function's
	// body. A signature appearing on more than one write node (the same
	// sub-composition occurring twice) is compiled only once.
	compiled := make(map[Signature]bool)
	for _, w := range writeNodes {
		if compiled[w.GC.Signature] || w.FunctionInfo.Callable != nil {
			continue
		}
		compiled[w.GC.Signature] = true

		if err := Resolve(w); err != nil {
			rollback()
			return nil, err
		}
		if err := NameConnections(w); err != nil {
			rollback()
			return nil, err
		}

		text, err := EmitText(w, c.hints)
		if err != nil {
			rollback()
			return nil, err
		}
		if c.validate {
			if err := validateSyntax(text); err != nil {
				rollback()
				return nil, err
			}
		}

		callable, err := Compile(w, c.builtins)
		if err != nil {
			rollback()
			return nil, err
		}

		w.FunctionInfo.Callable = callable
		w.FunctionInfo.LineCount = w.NumLines
		for _, imp := range w.GC.Imports {
			c.imports[imp] = struct{}{}
		}

		if c.metrics != nil {
			c.metrics.RecordFunctionWritten(w.NumLines)
		}
		c.emitter.Emit(telemetry.Event{
			Signature: w.GC.Signature.String(),
			NodeUID:   w.UID,
			Stage:     "write_executable",
			Msg:       "installed " + w.FunctionInfo.Name(),
		})
	}

	return root, nil
}

// collectWriteNodes walks the whole built graph and returns every node the
// scheduler flagged Write, in deterministic post-order (leaves before the
// compositions that call them, so callees are always reserved no later
// than their callers — though reservation order does not actually matter
// since every global index is allocated before any body is compiled).
func collectWriteNodes(root *Node) []*Node {
	var out []*Node
	it := NewFullIterator(root)
	for n := it.Next(); n != nil; n = it.Next() {
		if n.Write {
			out = append(out, n)
		}
	}
	return out
}

// Execute invokes the installed function named by sig with args bound to
// its input tuple, returning its outputs in declaration order.
func (c *Context) Execute(ctx context.Context, sig Signature, args []int64) ([]int64, error) {
	_, span := c.tracer.Start(ctx, "gcexec.Execute")
	defer span.End()

	fi, ok := c.functionMap[sig]
	if !ok || fi.Callable == nil {
		return nil, &ExecError{Kind: MissingSignature, Message: "no installed function for signature", Signature: sig}
	}

	out, err := fi.Callable.Call(args)
	if c.metrics != nil {
		c.metrics.RecordExecution(err)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// validateSyntax parses an emitted function body as a standalone Go source
// file, catching a malformed emission before it is ever installed.
func validateSyntax(body string) error {
	src := "package gcexec_emit\n\n" + body + "\n"
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "", src, 0); err != nil {
		return &ExecError{Kind: EmissionFailure, Message: "emitted text failed to parse: " + strings.TrimSpace(err.Error()), Cause: err}
	}
	return nil
}
