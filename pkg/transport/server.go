package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/aerolens/camsync/pkg/log"
)

// DefaultAddress is the listen address of a simulated camera.
const DefaultAddress = "127.0.0.1:7447"

// ServerConfig configures a Server.
type ServerConfig struct {
	// Address to listen on (default: DefaultAddress). Use port 0 to pick
	// a free port.
	Address string

	// MaxMessageSize is the maximum message size (default: 16 KB).
	MaxMessageSize uint32

	// Logger receives capture events of every accepted link (optional).
	Logger log.Logger

	// OnConnect is called with every accepted link before it is served.
	OnConnect func(link *Link)

	// OnDisconnect is called when a link's read loop ends.
	OnDisconnect func(link *Link)

	// OnMessage is called for every received message.
	OnMessage func(link *Link, msg []byte)

	// OnError is called for accept and read errors.
	OnError func(link *Link, err error)
}

// Server accepts client links over TCP. It is the listening side of a
// simulated camera.
type Server struct {
	config   ServerConfig
	listener net.Listener

	links   map[*Link]struct{}
	linksMu sync.RWMutex

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewServer creates a server.
func NewServer(config ServerConfig) *Server {
	if config.Address == "" {
		config.Address = DefaultAddress
	}
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = DefaultMaxMessageSize
	}
	return &Server{
		config: config,
		links:  make(map[*Link]struct{}),
	}
}

// Start listens and begins accepting links.
func (s *Server) Start(ctx context.Context) error {
	if s.running.Load() {
		return fmt.Errorf("server already running")
	}

	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = listener
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running.Store(true)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop closes the listener and every open link, then waits for their
// handlers to return.
func (s *Server) Stop() error {
	if !s.running.Swap(false) {
		return nil
	}
	s.cancel()
	s.listener.Close()

	s.linksMu.Lock()
	for link := range s.links {
		link.Close()
	}
	s.linksMu.Unlock()

	s.wg.Wait()
	return nil
}

// Addr returns the listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// LinkCount returns the number of open links.
func (s *Server) LinkCount() int {
	s.linksMu.RLock()
	defer s.linksMu.RUnlock()
	return len(s.links)
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			s.reportError(nil, fmt.Errorf("accept: %w", err))
			continue
		}

		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()

	link := NewLink(conn, Config{
		MaxMessageSize: s.config.MaxMessageSize,
		Logger:         s.config.Logger,
	})

	s.linksMu.Lock()
	s.links[link] = struct{}{}
	s.linksMu.Unlock()

	if s.config.OnConnect != nil {
		s.config.OnConnect(link)
	}

	err := link.Serve(s.ctx, func(msg []byte) {
		if s.config.OnMessage != nil {
			s.config.OnMessage(link, msg)
		}
	})
	if err != nil {
		s.reportError(link, err)
	}
	link.Close()

	s.linksMu.Lock()
	delete(s.links, link)
	s.linksMu.Unlock()

	if s.config.OnDisconnect != nil {
		s.config.OnDisconnect(link)
	}
}

func (s *Server) reportError(link *Link, err error) {
	if s.config.OnError != nil {
		s.config.OnError(link, err)
	}
}
