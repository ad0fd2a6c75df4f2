package interaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aerolens/camsync/pkg/camera"
	"github.com/aerolens/camsync/pkg/log"
	"github.com/aerolens/camsync/pkg/setting"
	"github.com/aerolens/camsync/pkg/wire"
)

// Session errors.
var (
	// ErrSessionClosed is returned by Do once the session has ended.
	ErrSessionClosed = errors.New("session closed")

	// ErrSessionRunning is returned by a second call to Run.
	ErrSessionRunning = errors.New("session already running")
)

// Link is the message link a session runs over.
// Implemented by transport.Link.
type Link interface {
	Sender
	Serve(ctx context.Context, handler func([]byte)) error
	Close() error
}

type intent struct {
	fn   func(*camera.Camera)
	done chan struct{}
}

// Session binds a camera.Camera to a link.
//
// The camera is confined to the goroutine executing Run: received
// messages and user intents submitted with Do are processed one at a time
// on that goroutine, so camera and setting types need no locking. All
// notifications already received are applied before observers are
// notified, which batches device updates.
type Session struct {
	id         string
	link       Link
	cam        *camera.Camera
	client     *Client
	dispatcher *Dispatcher
	capture    log.Logger
	logger     *slog.Logger

	inbound chan []byte
	intents chan intent
	done    chan struct{}
	running atomic.Bool
}

// NewSession creates a session over link. The camera stays unpublished
// until the first camera notification arrives.
func NewSession(link Link, config Config) *Session {
	config = config.withDefaults()

	client := NewClient(config)
	cam := camera.New(client)

	s := &Session{
		id:         config.SessionID,
		link:       link,
		cam:        cam,
		client:     client,
		dispatcher: NewDispatcher(cam),
		capture:    config.Capture,
		logger:     config.Logger.With("session_id", config.SessionID),
		inbound:    make(chan []byte, config.InboundSize),
		intents:    make(chan intent),
		done:       make(chan struct{}),
	}
	cam.SetTracer(func(tr setting.Transition) {
		s.capture.Log(log.TransitionEventFor(s.id, tr))
	})
	return s
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Camera returns the session's camera. Outside of Do it must only be used
// before Run starts or after it returned.
func (s *Session) Camera() *camera.Camera {
	return s.cam
}

// Client returns the backend the camera sends requests through.
func (s *Session) Client() *Client {
	return s.client
}

// OnChange registers an observer called on the session goroutine after
// each published batch of changes. It must be called before Run.
func (s *Session) OnChange(fn func(*camera.Camera)) {
	s.cam.OnChange(fn)
}

// Done is closed when Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run processes messages and intents until ctx is done or the link
// closes. On return the camera is unpublished, discarding pending
// requests, and the link is closed. A clean shutdown returns nil.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSessionRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.logger.Info("session started")
	s.capture.Log(log.StateEvent(s.id, log.StateEntitySession, "", "RUNNING", ""))

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		errs <- s.link.Serve(ctx, func(data []byte) {
			select {
			case s.inbound <- data:
			case <-ctx.Done():
			}
		})
	}()
	go func() {
		defer wg.Done()
		if err := s.client.Run(ctx, s.link); err != nil && !errors.Is(err, context.Canceled) {
			errs <- err
		}
	}()

	var err error
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case err = <-errs:
			break loop
		case data := <-s.inbound:
			s.receive(data)
		case in := <-s.intents:
			in.fn(s.cam)
			close(in.done)
		}
	}

	s.teardown()
	cancel()
	wg.Wait()

	reason := ""
	if err != nil {
		reason = err.Error()
		s.logger.Warn("session ended", "error", err)
	} else {
		s.logger.Info("session ended")
	}
	s.capture.Log(log.StateEvent(s.id, log.StateEntitySession, "RUNNING", "CLOSED", reason))
	close(s.done)
	return err
}

// Do runs fn on the session goroutine and waits for it to complete.
func (s *Session) Do(ctx context.Context, fn func(*camera.Camera)) error {
	in := intent{fn: fn, done: make(chan struct{})}
	select {
	case s.intents <- in:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-in.done:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

// receive handles data and everything else already received, then
// publishes the resulting changes once.
func (s *Session) receive(data []byte) {
	publish := s.handle(data)
drain:
	for range cap(s.inbound) {
		select {
		case more := <-s.inbound:
			publish = s.handle(more) || publish
		default:
			break drain
		}
	}

	if publish && !s.cam.IsPublished() {
		s.cam.Publish()
		s.capture.Log(log.StateEvent(s.id, log.StateEntityCamera, "UNPUBLISHED", "PUBLISHED", ""))
		s.logger.Info("camera published")
		return
	}
	s.dispatcher.Flush()
}

// handle processes one message. It returns true for camera notifications.
func (s *Session) handle(data []byte) bool {
	typ, err := wire.PeekMessageType(data)
	if err != nil {
		s.reportError(err, "peek message type")
		return false
	}

	switch typ {
	case wire.MessageTypeResponse:
		resp, err := wire.DecodeResponse(data)
		if err != nil {
			s.reportError(err, "decode response")
			return false
		}
		if err := s.client.HandleResponse(resp); err != nil {
			s.logger.Debug("ignored response", "error", err)
		}
		return false

	case wire.MessageTypeNotification:
		n, err := wire.DecodeNotification(data)
		if err != nil {
			s.reportError(err, "decode notification")
			return false
		}
		s.capture.Log(log.NotificationEvent(s.id, log.DirectionIn, n))
		if err := s.dispatcher.Apply(n); err != nil {
			s.reportError(err, "apply notification")
		}
		return n.Feature == wire.FeatureCamera

	default:
		s.reportError(fmt.Errorf("unexpected %s message", typ), "receive")
		return false
	}
}

func (s *Session) reportError(err error, op string) {
	s.logger.Warn(op, "error", err)
	s.capture.Log(log.ErrorEvent(s.id, log.LayerWire, err, op))
}

func (s *Session) teardown() {
	wasPublished := s.cam.IsPublished()
	s.cam.Unpublish()
	if wasPublished {
		s.capture.Log(log.StateEvent(s.id, log.StateEntityCamera, "PUBLISHED", "UNPUBLISHED", ""))
	}
	s.client.Close()
	s.link.Close()
}
