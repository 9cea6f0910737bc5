package audit

// Sink receives completed records. Implementations must tolerate
// concurrent appends; per-record atomicity is required, cross-caller
// ordering is not.
type Sink interface {
	Record(Record) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Record) error

// Record implements Sink.
func (f SinkFunc) Record(r Record) error { return f(r) }

// Discard is a Sink that drops every record. Used when the caller wants
// decisions without persistence.
var Discard Sink = SinkFunc(func(Record) error { return nil })
