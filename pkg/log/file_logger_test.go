package log

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := Event{
		Timestamp: time.Now(),
		SessionID: "sess-123",
		Direction: DirectionIn,
		Layer:     LayerTransport,
		Category:  CategoryMessage,
		Frame: &FrameEvent{
			Size: 100,
			Data: []byte{1, 2, 3},
		},
	}

	logger.Log(event)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded.SessionID != event.SessionID {
		t.Errorf("SessionID = %q, want %q", decoded.SessionID, event.SessionID)
	}
	if decoded.Frame == nil || decoded.Frame.Size != 100 {
		t.Errorf("Frame = %+v, want size 100", decoded.Frame)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.clog")

	for i := range 2 {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger %d failed: %v", i, err)
		}
		logger.Log(Event{SessionID: "sess", Category: CategoryState})
		logger.Close()
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if got := len(readAll(t, reader)); got != 2 {
		t.Errorf("got %d events, want 2", got)
	}
}

func TestFileLoggerCloseTwice(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "test.clog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Logging after close is a no-op.
	logger.Log(Event{SessionID: "late"})
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.clog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const goroutines = 8
	const perGoroutine = 25

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perGoroutine {
				logger.Log(Event{
					Timestamp:  time.Now(),
					SessionID:  "sess",
					Layer:      LayerSetting,
					Category:   CategoryTransition,
					Transition: &TransitionEvent{Setting: "zoom", Kind: "UPDATE", To: string(rune('a' + g))},
				})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if got := len(readAll(t, reader)); got != goroutines*perGoroutine {
		t.Errorf("got %d events, want %d", got, goroutines*perGoroutine)
	}
}

func TestFileLoggerInvalidPath(t *testing.T) {
	if _, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "dir", "test.clog")); err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestFileLoggerFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.clog")
	logger, err := NewFileLogger(path, WithFilter(Filter{Setting: "zoom_max_speed"}))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	for _, name := range []string{"zoom_max_speed", "ev_compensation", "zoom_max_speed"} {
		logger.Log(Event{
			SessionID:  "sess",
			Layer:      LayerSetting,
			Category:   CategoryTransition,
			Transition: &TransitionEvent{Setting: name, Kind: "REQUEST"},
		})
	}
	logger.Log(Event{SessionID: "sess", Layer: LayerWire, Category: CategoryMessage})

	if got := logger.Written(); got != 2 {
		t.Errorf("Written() = %d, want 2", got)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()
	for _, e := range readAll(t, reader) {
		if e.Transition == nil || e.Transition.Setting != "zoom_max_speed" {
			t.Errorf("unexpected event in filtered file: %+v", e)
		}
	}
}

func TestFileLoggerWrittenStopsAfterClose(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "test.clog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{SessionID: "sess"})
	logger.Close()
	logger.Log(Event{SessionID: "sess"})

	if got := logger.Written(); got != 1 {
		t.Errorf("Written() = %d, want 1", got)
	}
	if err := logger.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}
