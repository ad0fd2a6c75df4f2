package log

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var read []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return read
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), SessionID: "sess-1", Direction: DirectionIn, Layer: LayerTransport, Category: CategoryMessage},
		{Timestamp: time.Now(), SessionID: "sess-2", Direction: DirectionOut, Layer: LayerWire, Category: CategoryMessage},
		{Timestamp: time.Now(), SessionID: "sess-3", Direction: DirectionIn, Layer: LayerSession, Category: CategoryState},
	}

	path := createTestLogFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].SessionID != "sess-1" {
		t.Errorf("first event SessionID = %q, want %q", read[0].SessionID, "sess-1")
	}
	if read[2].SessionID != "sess-3" {
		t.Errorf("last event SessionID = %q, want %q", read[2].SessionID, "sess-3")
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.clog")

	logger, _ := NewFileLogger(path)
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.clog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, SessionID: "a", Direction: DirectionOut, Layer: LayerSetting, Category: CategoryTransition,
			Transition: &TransitionEvent{Setting: "exposure", Kind: "REQUEST"}},
		{Timestamp: base.Add(time.Second), SessionID: "a", Direction: DirectionIn, Layer: LayerSetting, Category: CategoryTransition,
			Transition: &TransitionEvent{Setting: "exposure", Kind: "OVERRIDE"}},
		{Timestamp: base.Add(2 * time.Second), SessionID: "b", Direction: DirectionIn, Layer: LayerSetting, Category: CategoryTransition,
			Transition: &TransitionEvent{Setting: "zoom_max_speed", Kind: "UPDATE"}},
		{Timestamp: base.Add(3 * time.Second), SessionID: "b", Direction: DirectionIn, Layer: LayerWire, Category: CategoryMessage,
			Message: &MessageEvent{Type: MessageTypeNotification}},
	}
	path := createTestLogFile(t, events)

	out := DirectionOut
	wireLayer := LayerWire
	transition := CategoryTransition
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"none", Filter{}, 4},
		{"session", Filter{SessionID: "b"}, 2},
		{"direction", Filter{Direction: &out}, 1},
		{"layer", Filter{Layer: &wireLayer}, 1},
		{"category", Filter{Category: &transition}, 3},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"setting", Filter{Setting: "exposure"}, 2},
		{"kind", Filter{Kind: "OVERRIDE"}, 1},
		{"setting and kind", Filter{Setting: "zoom_max_speed", Kind: "OVERRIDE"}, 0},
		{"combined", Filter{SessionID: "a", Category: &transition}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			if got := len(readAll(t, reader)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestStreamReader(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, kind := range []string{"REQUEST", "CONFIRM"} {
		if err := enc.Encode(Event{SessionID: "s", Transition: &TransitionEvent{Setting: "mode", Kind: kind}}); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	reader := NewStreamReader(&buf, Filter{Kind: "CONFIRM"})
	read := readAll(t, reader)
	if len(read) != 1 || read[0].Transition.Kind != "CONFIRM" {
		t.Fatalf("got %+v, want one CONFIRM", read)
	}
	if err := reader.Close(); err != nil {
		t.Errorf("Close on stream reader returned %v", err)
	}
}
