package sim

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aerolens/camsync/pkg/log"
	"github.com/aerolens/camsync/pkg/wire"
)

// ErrAlreadyServing is returned by Serve and Attach while another link is
// served.
var ErrAlreadyServing = errors.New("device already serving a link")

// Config configures a Device.
type Config struct {
	// SessionID labels capture events. A random UUID is generated when
	// empty.
	SessionID string

	// Logger is the operational logger (default: slog.Default()).
	Logger *slog.Logger

	// Capture receives the messages the device exchanges (optional).
	Capture log.Logger
}

// NotificationHandler receives the notifications a device pushes.
type NotificationHandler func(*wire.Notification)

// Sender sends encoded messages to the client. Implemented by
// transport.Link.
type Sender interface {
	Send(data []byte) error
}

// Link is the message link a device serves. Implemented by transport.Link.
type Link interface {
	Sender
	Serve(ctx context.Context, handler func([]byte)) error
}

// step applies a change to the device state with the device locked. It may
// return a follow-up step, applied after another latency period.
type step func() step

// Device simulates a camera. It owns the authoritative value of every
// setting, validates requests against what the profile supports and
// reports the outcome with notifications.
//
// A refused request is answered with an error status and followed by a
// notification of the feature's current values, so the client restores
// them. Accepted requests are applied after the profile latency.
type Device struct {
	name      string
	sessionID string
	latency   time.Duration
	dropEvery int
	logger    *slog.Logger
	capture   log.Logger

	mu       sync.Mutex
	state    *state
	requests int
	dirty    map[wire.FeatureID]bool // true: send capabilities too
	handler  NotificationHandler
	serving  bool

	// sendMu orders notification batches: a batch is built and delivered
	// before the next one is built.
	sendMu sync.Mutex
}

// NewDevice creates a device in the initial state described by profile.
func NewDevice(profile *Profile, config Config) (*Device, error) {
	s, err := newState(profile)
	if err != nil {
		return nil, err
	}
	if config.SessionID == "" {
		config.SessionID = uuid.NewString()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Capture == nil {
		config.Capture = log.NoopLogger{}
	}

	return &Device{
		name:      profile.Name,
		sessionID: config.SessionID,
		latency:   profile.Latency,
		dropEvery: profile.DropEvery,
		logger:    config.Logger.With("device", profile.Name),
		capture:   config.Capture,
		state:     s,
		dirty:     make(map[wire.FeatureID]bool),
	}, nil
}

// Name returns the profile name.
func (d *Device) Name() string {
	return d.name
}

// SetNotificationHandler sets the receiver of pushed notifications. With
// no handler, changes are applied but not reported.
func (d *Device) SetNotificationHandler(h NotificationHandler) {
	d.mu.Lock()
	d.handler = h
	d.mu.Unlock()
}

// Snapshot returns the full state of every feature, supported values
// included. The camera feature comes last.
func (d *Device) Snapshot() []*wire.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Device) snapshotLocked() []*wire.Notification {
	var out []*wire.Notification
	for _, f := range d.state.features() {
		if n := d.notification(f, d.state.snapshot(f)); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// HandleRequest processes a request and returns its response. It returns
// nil for a request the device drops without answering.
func (d *Device) HandleRequest(req *wire.Request) *wire.Response {
	d.capture.Log(log.RequestEvent(d.sessionID, log.DirectionIn, req))

	d.mu.Lock()
	d.requests++
	if d.dropEvery > 0 && d.requests%d.dropEvery == 0 {
		d.mu.Unlock()
		d.logger.Debug("request dropped",
			"msg_id", req.MessageID,
			"feature", req.Feature.String(),
		)
		return nil
	}

	apply, ref := d.dispatch(req)
	if ref != nil && d.state.has(req.Feature) {
		d.touch(req.Feature)
	}
	d.mu.Unlock()

	resp := &wire.Response{MessageID: req.MessageID}
	if ref != nil {
		resp.Status, resp.Message = ref.status, ref.reason
		d.logger.Info("request refused",
			"msg_id", req.MessageID,
			"feature", req.Feature.String(),
			"status", ref.status.String(),
			"reason", ref.reason,
		)
		d.flush()
	} else {
		d.schedule(apply)
	}

	d.capture.Log(log.ResponseEvent(d.sessionID, log.DirectionOut, resp))
	return resp
}

// Serve pushes the device snapshot to link, then answers the requests it
// receives until ctx is done or the link closes.
func (d *Device) Serve(ctx context.Context, link Link) error {
	if err := d.Attach(link); err != nil {
		return err
	}
	defer d.Detach()

	d.logger.Info("serving link")
	return link.Serve(ctx, func(data []byte) {
		d.HandleMessage(link, data)
	})
}

// Attach makes s the receiver of the device's notifications and pushes
// the full snapshot to it. Only one sender can be attached at a time.
func (d *Device) Attach(s Sender) error {
	send := func(n *wire.Notification) {
		data, err := wire.EncodeNotification(n)
		if err != nil {
			d.logger.Error("encode notification", "feature", n.Feature.String(), "error", err)
			return
		}
		if err := s.Send(data); err != nil {
			d.logger.Debug("send notification", "feature", n.Feature.String(), "error", err)
		}
	}

	d.sendMu.Lock()
	defer d.sendMu.Unlock()

	d.mu.Lock()
	if d.serving {
		d.mu.Unlock()
		return ErrAlreadyServing
	}
	d.serving = true
	d.handler = send
	snapshot := d.snapshotLocked()
	clear(d.dirty)
	d.mu.Unlock()

	for _, n := range snapshot {
		d.capture.Log(log.NotificationEvent(d.sessionID, log.DirectionOut, n))
		send(n)
	}
	return nil
}

// Detach stops notifications to the attached sender.
func (d *Device) Detach() {
	d.mu.Lock()
	d.serving = false
	d.handler = nil
	d.mu.Unlock()
}

// HandleMessage decodes a request, handles it and sends the response to s.
func (d *Device) HandleMessage(s Sender, data []byte) {
	req, err := wire.DecodeRequest(data)
	if err != nil {
		d.logger.Warn("invalid request", "error", err)
		d.capture.Log(log.ErrorEvent(d.sessionID, log.LayerWire, err, "decode request"))
		return
	}
	resp := d.HandleRequest(req)
	if resp == nil {
		return
	}
	encoded, err := wire.EncodeResponse(resp)
	if err != nil {
		d.logger.Error("encode response", "error", err)
		return
	}
	if err := s.Send(encoded); err != nil {
		d.logger.Debug("send response", "msg_id", resp.MessageID, "error", err)
	}
}

// schedule applies s after the device latency, then flushes the changes.
func (d *Device) schedule(s step) {
	if s == nil {
		return
	}
	if d.latency <= 0 {
		d.run(s)
		return
	}
	time.AfterFunc(d.latency, func() { d.run(s) })
}

func (d *Device) run(s step) {
	d.mu.Lock()
	next := s()
	d.mu.Unlock()

	d.flush()
	d.schedule(next)
}

// touch marks the values of feature f as changed.
func (d *Device) touch(f wire.FeatureID) {
	if _, ok := d.dirty[f]; !ok {
		d.dirty[f] = false
	}
}

// touchAll marks the values and supported values of feature f as changed.
func (d *Device) touchAll(f wire.FeatureID) {
	d.dirty[f] = true
}

// flush delivers one notification per changed feature.
func (d *Device) flush() {
	d.sendMu.Lock()
	defer d.sendMu.Unlock()

	d.mu.Lock()
	var batch []*wire.Notification
	for _, f := range d.state.features() {
		full, ok := d.dirty[f]
		if !ok {
			continue
		}
		b := d.state.values(f)
		if full {
			b = d.state.snapshot(f)
		}
		if n := d.notification(f, b); n != nil {
			batch = append(batch, n)
		}
	}
	clear(d.dirty)
	handler := d.handler
	d.mu.Unlock()

	if handler == nil {
		return
	}
	for _, n := range batch {
		d.capture.Log(log.NotificationEvent(d.sessionID, log.DirectionOut, n))
		handler(n)
	}
}

func (d *Device) notification(f wire.FeatureID, b *wire.AttributeBuilder) *wire.Notification {
	changes, err := b.Build()
	if err != nil {
		d.logger.Error("encode attributes", "feature", f.String(), "error", err)
		return nil
	}
	return &wire.Notification{Feature: f, Changes: changes}
}
