// Package telemetry carries the execution context's ambient observability
// stack: structured progress events and Prometheus metrics, independent of
// the compilation pipeline itself.
package telemetry

// Event is one observable step of a WriteExecutable or Execute call.
type Event struct {
	Signature string
	NodeUID   string
	Stage     string
	Msg       string
	Meta      map[string]interface{}
}
