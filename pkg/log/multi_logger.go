package log

// MultiLogger fans events out to several loggers, typically a
// SlogAdapter for the console and a FileLogger for the capture file.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger. Nil and NoopLogger entries are
// skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{loggers: make([]Logger, 0, len(loggers))}
	for _, l := range loggers {
		if isNoop(l) {
			continue
		}
		m.loggers = append(m.loggers, l)
	}
	return m
}

// Len returns the number of loggers receiving events.
func (m *MultiLogger) Len() int {
	return len(m.loggers)
}

// Log hands the event to each logger in order.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// Tee combines loggers into one. It returns NoopLogger when nothing is
// left after dropping nil and NoopLogger entries, and the logger itself
// when exactly one remains.
func Tee(loggers ...Logger) Logger {
	m := NewMultiLogger(loggers...)
	switch m.Len() {
	case 0:
		return NoopLogger{}
	case 1:
		return m.loggers[0]
	default:
		return m
	}
}

func isNoop(l Logger) bool {
	switch l.(type) {
	case nil, NoopLogger, *NoopLogger:
		return true
	}
	return false
}

var _ Logger = (*MultiLogger)(nil)
