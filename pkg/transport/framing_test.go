package transport

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aerolens/camsync/pkg/log"
)

// capturingLogger captures log events for testing.
type capturingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (l *capturingLogger) Log(event log.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *capturingLogger) Events() []log.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]log.Event(nil), l.events...)
}

func (l *capturingLogger) Frames() []log.Event {
	var frames []log.Event
	for _, e := range l.Events() {
		if e.Frame != nil {
			frames = append(frames, e)
		}
	}
	return frames
}

func lengthPrefix(n uint32) []byte {
	var b [LengthPrefixSize]byte
	binary.BigEndian.PutUint32(b[:], n)
	return b[:]
}

func TestFrameRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"single byte":  {0x42},
		"cbor request": {0xa3, 0x01, 0x07, 0x02, 0x01, 0x03, 0x0a},
		"max size":     bytes.Repeat([]byte("y"), DefaultMaxMessageSize),
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			if err := NewFrameWriter(buf).WriteFrame(payload); err != nil {
				t.Fatalf("WriteFrame failed: %v", err)
			}
			if buf.Len() != FrameSize(len(payload)) {
				t.Errorf("frame size = %d, want %d", buf.Len(), FrameSize(len(payload)))
			}

			got, err := NewFrameReader(buf).ReadFrame()
			if err != nil {
				t.Fatalf("ReadFrame failed: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("payload mismatch: got %d bytes, want %d", len(got), len(payload))
			}
		})
	}
}

func TestFrameWriterRejects(t *testing.T) {
	writer := NewFrameWriterWithMaxSize(new(bytes.Buffer), 8)

	if err := writer.WriteFrame(nil); !errors.Is(err, ErrMessageEmpty) {
		t.Errorf("nil payload: got %v, want ErrMessageEmpty", err)
	}
	if err := writer.WriteFrame(make([]byte, 9)); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("oversize payload: got %v, want ErrMessageTooLarge", err)
	}
}

func TestFrameReaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		max   uint32
		want  error
	}{
		{"eof", nil, DefaultMaxMessageSize, io.EOF},
		{"zero length", lengthPrefix(0), DefaultMaxMessageSize, ErrMessageEmpty},
		{"too large", append(lengthPrefix(100), make([]byte, 100)...), 10, ErrMessageTooLarge},
		{"truncated prefix", []byte{0x00, 0x01}, DefaultMaxMessageSize, ErrFrameTruncated},
		{"truncated payload", append(lengthPrefix(10), 1, 2, 3), DefaultMaxMessageSize, ErrFrameTruncated},
		{"prefix only", lengthPrefix(4), DefaultMaxMessageSize, ErrFrameTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewFrameReaderWithMaxSize(bytes.NewReader(tt.input), tt.max)
			_, err := reader.ReadFrame()
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFrameSequence(t *testing.T) {
	buf := new(bytes.Buffer)
	writer := NewFrameWriter(buf)
	messages := []string{"request", "response", "notification"}
	for _, m := range messages {
		if err := writer.WriteFrame([]byte(m)); err != nil {
			t.Fatalf("WriteFrame failed: %v", err)
		}
	}

	reader := NewFrameReader(buf)
	for i, want := range messages {
		got, err := reader.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame %d failed: %v", i, err)
		}
		if string(got) != want {
			t.Errorf("frame %d = %q, want %q", i, got, want)
		}
	}
	if _, err := reader.ReadFrame(); err != io.EOF {
		t.Errorf("expected io.EOF after last frame, got %v", err)
	}
}

func TestFramerCapturesFrames(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := &capturingLogger{}

	framer := NewFramer(buf)
	framer.SetLogger(logger, "sess-42")

	if err := framer.WriteFrame([]byte("hello")); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if _, err := framer.ReadFrame(); err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}

	events := logger.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Direction != log.DirectionOut || events[1].Direction != log.DirectionIn {
		t.Errorf("directions = %v, %v; want OUT, IN", events[0].Direction, events[1].Direction)
	}
	for _, e := range events {
		if e.SessionID != "sess-42" {
			t.Errorf("SessionID = %q, want sess-42", e.SessionID)
		}
		if e.Layer != log.LayerTransport || e.Frame == nil {
			t.Fatalf("unexpected event %+v", e)
		}
		if e.Frame.Size != FrameSize(5) || string(e.Frame.Data) != "hello" {
			t.Errorf("Frame = %+v", e.Frame)
		}
	}
}

func TestFrameCaptureTruncatesLargeFrames(t *testing.T) {
	logger := &capturingLogger{}
	writer := NewFrameWriter(new(bytes.Buffer))
	writer.SetLogger(logger, "sess")

	payload := bytes.Repeat([]byte("x"), MaxLogFrameDataSize+500)
	if err := writer.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	e := logger.Events()[0]
	if e.Frame.Size != FrameSize(len(payload)) {
		t.Errorf("Frame.Size = %d, want %d", e.Frame.Size, FrameSize(len(payload)))
	}
	if len(e.Frame.Data) != MaxLogFrameDataSize || !e.Frame.Truncated {
		t.Errorf("Frame data %d bytes, truncated=%v", len(e.Frame.Data), e.Frame.Truncated)
	}
}

func TestFrameWriterNilLogger(t *testing.T) {
	writer := NewFrameWriter(new(bytes.Buffer))
	writer.SetLogger(nil, "sess")
	if err := writer.WriteFrame([]byte("x")); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
}

func BenchmarkFrameWrite(b *testing.B) {
	buf := new(bytes.Buffer)
	writer := NewFrameWriter(buf)
	payload := bytes.Repeat([]byte("x"), 64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		writer.WriteFrame(payload)
	}
}
