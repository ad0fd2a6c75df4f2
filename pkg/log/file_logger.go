package log

import (
	"errors"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends capture events to a .clog file, one CBOR item per
// event. It is safe for concurrent use.
//
// Write failures never reach the caller of Log. The first one is kept and
// returned by Err and Close.
type FileLogger struct {
	mu      sync.Mutex
	file    *os.File
	enc     *cbor.Encoder
	filter  *Filter
	written int
	err     error
}

// FileOption configures a FileLogger.
type FileOption func(*FileLogger)

// WithFilter keeps only the events matching f.
func WithFilter(f Filter) FileOption {
	return func(l *FileLogger) {
		l.filter = &f
	}
}

// NewFileLogger opens path for appending, creating it with mode 0644 when
// missing.
func NewFileLogger(path string, opts ...FileOption) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	l := &FileLogger{file: f, enc: NewEncoder(f)}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Log appends the event. Events are dropped once the logger is closed or a
// write has failed.
func (l *FileLogger) Log(event Event) {
	if l.filter != nil && !l.filter.matches(event) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil || l.err != nil {
		return
	}
	if err := l.enc.Encode(event); err != nil {
		l.err = err
		return
	}
	l.written++
}

// Written returns the number of events stored so far.
func (l *FileLogger) Written() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written
}

// Err returns the first write error, if any.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close closes the file and reports the first write error. Later calls
// return nil and later events are dropped.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := errors.Join(l.err, l.file.Close())
	l.file = nil
	return err
}

var _ Logger = (*FileLogger)(nil)
