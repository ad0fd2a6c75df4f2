package log

// Logger receives capture events.
//
// Implementations must be safe for concurrent use and must not block:
// transitions are logged from the session loop.
type Logger interface {
	Log(event Event)
}

// LoggerFunc adapts a plain function to Logger.
type LoggerFunc func(Event)

// Log calls f(event).
func (f LoggerFunc) Log(event Event) { f(event) }

// NoopLogger drops every event. The zero value is ready to use.
type NoopLogger struct{}

// Log does nothing.
func (NoopLogger) Log(Event) {}

var (
	_ Logger = NoopLogger{}
	_ Logger = LoggerFunc(nil)
)
