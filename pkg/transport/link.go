package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aerolens/camsync/pkg/log"
)

// ErrLinkClosed is returned by operations on a closed link.
var ErrLinkClosed = errors.New("link closed")

// Config configures a Link.
type Config struct {
	// SessionID labels the link in capture events. A random UUID is
	// generated when empty.
	SessionID string

	// MaxMessageSize is the maximum message size (default: 16 KB).
	MaxMessageSize uint32

	// WriteTimeout bounds a single Send (0 = no timeout).
	WriteTimeout time.Duration

	// Logger receives frame and link state events (optional).
	Logger log.Logger
}

// Link is a framed, bidirectional message link between a client and a
// camera. Send may be called from any goroutine; Receive and Serve must
// be used by a single reader.
type Link struct {
	id     string
	conn   net.Conn
	framer FrameReadWriter
	config Config

	closed    atomic.Bool
	closeOnce sync.Once
}

// NewLink wraps an established connection.
func NewLink(conn net.Conn, config Config) *Link {
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = DefaultMaxMessageSize
	}
	if config.SessionID == "" {
		config.SessionID = uuid.NewString()
	}

	framer := NewFramerWithMaxSize(conn, config.MaxMessageSize)
	if config.Logger != nil {
		framer.SetLogger(config.Logger, config.SessionID)
	}

	l := &Link{
		id:     config.SessionID,
		conn:   conn,
		framer: framer,
		config: config,
	}
	l.logState("", "CONNECTED")
	return l
}

// Pipe returns two ends of an in-memory link. Writes on one end block
// until the other end reads them.
func Pipe(clientConfig, cameraConfig Config) (client, camera *Link) {
	c1, c2 := net.Pipe()
	return NewLink(c1, clientConfig), NewLink(c2, cameraConfig)
}

// Dial connects to a camera (or simulator) listening on addr.
func Dial(ctx context.Context, addr string, config Config) (*Link, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewLink(conn, config), nil
}

// ID returns the session ID the link records events under.
func (l *Link) ID() string {
	return l.id
}

// RemoteAddr returns the address of the peer.
func (l *Link) RemoteAddr() net.Addr {
	return l.conn.RemoteAddr()
}

// Send writes one message.
func (l *Link) Send(data []byte) error {
	if l.closed.Load() {
		return ErrLinkClosed
	}
	if l.config.WriteTimeout > 0 {
		_ = l.conn.SetWriteDeadline(time.Now().Add(l.config.WriteTimeout))
	}
	if err := l.framer.WriteFrame(data); err != nil {
		if l.closed.Load() || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) {
			return ErrLinkClosed
		}
		return err
	}
	return nil
}

// Receive blocks until the next message arrives. It returns io.EOF when
// the peer closed the link and ErrLinkClosed after a local Close.
func (l *Link) Receive() ([]byte, error) {
	data, err := l.framer.ReadFrame()
	if err != nil {
		if l.closed.Load() {
			return nil, ErrLinkClosed
		}
		if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) {
			return nil, io.EOF
		}
		return nil, err
	}
	return data, nil
}

// Serve calls handler for every received message until the link closes
// or ctx is done. A clean shutdown from either side returns nil.
func (l *Link) Serve(ctx context.Context, handler func([]byte)) error {
	stop := context.AfterFunc(ctx, func() { l.Close() })
	defer stop()

	for {
		data, err := l.Receive()
		if err != nil {
			if err == io.EOF || errors.Is(err, ErrLinkClosed) {
				return nil
			}
			return err
		}
		handler(data)
	}
}

// Close closes the link. It is safe to call more than once.
func (l *Link) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		err = l.conn.Close()
		l.logState("CONNECTED", "CLOSED")
	})
	return err
}

func (l *Link) logState(oldState, newState string) {
	if l.config.Logger == nil {
		return
	}
	event := log.StateEvent(l.id, log.StateEntityLink, oldState, newState, "")
	if addr := l.conn.RemoteAddr(); addr != nil {
		event.RemoteAddr = addr.String()
	}
	l.config.Logger.Log(event)
}
