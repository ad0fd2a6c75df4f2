package transport

import (
	"context"
	"net"
)

// MessageLink is a framed message link to a peer.
// Implemented by Link.
type MessageLink interface {
	// Send writes one message.
	Send(data []byte) error

	// Serve delivers received messages to handler until the link closes.
	Serve(ctx context.Context, handler func([]byte)) error

	// RemoteAddr returns the address of the peer.
	RemoteAddr() net.Addr

	// Close closes the link.
	Close() error
}

// LinkServer accepts links from clients.
// Implemented by Server.
type LinkServer interface {
	Start(ctx context.Context) error
	Stop() error
	Addr() net.Addr
	LinkCount() int
}

// FrameReadWriter provides length-prefixed frame I/O.
// Implemented by Framer.
type FrameReadWriter interface {
	ReadFrame() ([]byte, error)
	WriteFrame(data []byte) error
}

var (
	_ MessageLink     = (*Link)(nil)
	_ LinkServer      = (*Server)(nil)
	_ FrameReadWriter = (*Framer)(nil)
)
