package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/aerolens/camsync/pkg/log"
	"github.com/aerolens/camsync/pkg/wire"
)

func TestStatsCountsByLayerAndCategory(t *testing.T) {
	events := []log.Event{
		{Timestamp: testTime, Layer: log.LayerWire, Category: log.CategoryMessage},
		{Timestamp: testTime, Layer: log.LayerSetting, Category: log.CategoryTransition,
			Transition: &log.TransitionEvent{Setting: "iso", Kind: "REQUEST"}},
		{Timestamp: testTime, Layer: log.LayerSession, Category: log.CategoryState},
		{Timestamp: testTime, Layer: log.LayerWire, Category: log.CategoryError,
			Error: &log.ErrorEventData{Message: "test"}},
	}
	path := createTestLogFile(t, events)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{"Total Events: 4", "WIRE:", "SETTING:", "SESSION:", "TRANSITION:", "STATE:", "Errors: 1"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if strings.Contains(output, "TRANSPORT:") {
		t.Error("layers without events should be omitted")
	}
}

func TestStatsTransitions(t *testing.T) {
	transition := func(setting, kind string) log.Event {
		return log.Event{
			Timestamp:  testTime,
			Layer:      log.LayerSetting,
			Category:   log.CategoryTransition,
			Transition: &log.TransitionEvent{Setting: setting, Kind: kind},
		}
	}
	path := createTestLogFile(t, []log.Event{
		transition("exposure", "REQUEST"),
		transition("exposure", "OVERRIDE"),
		transition("exposure", "OVERRIDE"),
		transition("mode", "OVERRIDE"),
		transition("mode", "CONFIRM"),
	})

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{"OVERRIDE:    3", "CONFIRM:     1", "exposure:        2", "mode:            1"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestStatsRoundTrips(t *testing.T) {
	ok := wire.StatusSuccess
	busy := wire.StatusBusy
	message := func(offset time.Duration, msg log.MessageEvent) log.Event {
		return log.Event{
			Timestamp: testTime.Add(offset),
			SessionID: "session-1",
			Layer:     log.LayerWire,
			Category:  log.CategoryMessage,
			Message:   &msg,
		}
	}
	path := createTestLogFile(t, []log.Event{
		message(0, log.MessageEvent{Type: log.MessageTypeRequest, MessageID: 1}),
		message(10*time.Millisecond, log.MessageEvent{Type: log.MessageTypeRequest, MessageID: 2}),
		message(20*time.Millisecond, log.MessageEvent{Type: log.MessageTypeRequest, MessageID: 3}),
		message(30*time.Millisecond, log.MessageEvent{Type: log.MessageTypeResponse, MessageID: 1, Status: &ok}),
		message(40*time.Millisecond, log.MessageEvent{Type: log.MessageTypeResponse, MessageID: 2, Status: &busy}),
		message(50*time.Millisecond, log.MessageEvent{Type: log.MessageTypeResponse, MessageID: 9, Status: &ok}),
	})

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "Requests: 3 (answered 2, refused 1, unanswered 1)") {
		t.Errorf("expected request summary, got: %s", output)
	}
	if !strings.Contains(output, "Round trip: avg 30.000ms, max 30.000ms") {
		t.Errorf("expected round trip summary, got: %s", output)
	}
}

func TestStatsSessions(t *testing.T) {
	path := createTestLogFile(t, []log.Event{
		{Timestamp: testTime, SessionID: "first-session", RemoteAddr: "127.0.0.1:7447"},
		{Timestamp: testTime.Add(time.Second), SessionID: "second-session"},
		{Timestamp: testTime.Add(2 * time.Second), SessionID: "first-session"},
	})

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "Sessions: 2") {
		t.Errorf("expected 2 sessions, got: %s", output)
	}
	first := strings.Index(output, "[first-se]")
	second := strings.Index(output, "[second-s]")
	if first < 0 || second < 0 || first > second {
		t.Errorf("sessions should be listed by first appearance, got: %s", output)
	}
	if !strings.Contains(output, "2 events, duration 2s") {
		t.Errorf("expected first session duration, got: %s", output)
	}
	if !strings.Contains(output, "Remote: 127.0.0.1:7447") {
		t.Errorf("expected remote address, got: %s", output)
	}
}

func TestStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "Total Events: 0") || !strings.Contains(output, "Sessions: 0") {
		t.Errorf("unexpected output for empty file: %s", output)
	}
	if strings.Contains(output, "Time Range") {
		t.Error("empty file should not report a time range")
	}
}
