package interaction

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/aerolens/camsync/pkg/log"
)

// Default configuration values.
const (
	// DefaultQueueSize is the number of encoded requests the client
	// buffers before rejecting new ones.
	DefaultQueueSize = 32

	// DefaultInboundSize is the number of received messages buffered
	// between the link reader and the session loop.
	DefaultInboundSize = 64
)

// Config configures a Session and its Client.
type Config struct {
	// SessionID labels every capture event. A random UUID is generated
	// when empty.
	SessionID string

	// QueueSize bounds the outbound request queue. When the queue is
	// full, backend calls return false and the setting stays unchanged.
	QueueSize int

	// InboundSize bounds the inbound message buffer.
	InboundSize int

	// Capture receives wire messages and setting transitions (optional).
	Capture log.Logger

	// Logger is the operational logger (default: slog.Default()).
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with a fresh session ID.
func DefaultConfig() Config {
	return Config{
		SessionID:   uuid.NewString(),
		QueueSize:   DefaultQueueSize,
		InboundSize: DefaultInboundSize,
	}
}

func (c Config) withDefaults() Config {
	if c.SessionID == "" {
		c.SessionID = uuid.NewString()
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.InboundSize <= 0 {
		c.InboundSize = DefaultInboundSize
	}
	if c.Capture == nil {
		c.Capture = log.NoopLogger{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
