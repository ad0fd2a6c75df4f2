package log

import (
	"testing"
	"time"
)

// recorder collects events for testing.
type recorder struct {
	events []Event
}

func (r *recorder) Log(event Event) {
	r.events = append(r.events, event)
}

func TestMultiLoggerFanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	multi := NewMultiLogger(a, nil, NoopLogger{}, b)

	if multi.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", multi.Len())
	}

	multi.Log(Event{
		Timestamp: time.Now(),
		SessionID: "sess-123",
		Layer:     LayerSetting,
		Category:  CategoryTransition,
	})

	for i, r := range []*recorder{a, b} {
		if len(r.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(r.events))
			continue
		}
		if r.events[0].SessionID != "sess-123" {
			t.Errorf("logger %d: SessionID = %q, want %q", i, r.events[0].SessionID, "sess-123")
		}
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	multi := NewMultiLogger()
	if multi.Len() != 0 {
		t.Errorf("Len() = %d, want 0", multi.Len())
	}
	multi.Log(Event{SessionID: "sess"})
}

func TestTee(t *testing.T) {
	t.Run("nothing", func(t *testing.T) {
		if _, ok := Tee(nil, NoopLogger{}).(NoopLogger); !ok {
			t.Error("Tee of no real loggers should be NoopLogger")
		}
	})

	t.Run("single", func(t *testing.T) {
		r := &recorder{}
		if got := Tee(NoopLogger{}, r); got != Logger(r) {
			t.Errorf("Tee of one logger = %T, want the logger itself", got)
		}
	})

	t.Run("several", func(t *testing.T) {
		var calls int
		count := LoggerFunc(func(Event) { calls++ })
		r := &recorder{}

		logger := Tee(count, r)
		if _, ok := logger.(*MultiLogger); !ok {
			t.Fatalf("Tee of two loggers = %T, want *MultiLogger", logger)
		}
		logger.Log(Event{SessionID: "a"})
		logger.Log(Event{SessionID: "b"})

		if calls != 2 || len(r.events) != 2 {
			t.Errorf("calls = %d, recorded = %d, want 2 each", calls, len(r.events))
		}
	})
}
