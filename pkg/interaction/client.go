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
	"github.com/aerolens/camsync/pkg/wire"
)

// Client errors.
var (
	// ErrClientClosed is returned by Run after Close.
	ErrClientClosed = errors.New("client is closed")

	// ErrUnexpectedReply indicates a response to no outstanding request.
	ErrUnexpectedReply = errors.New("unexpected reply")
)

// Sender writes encoded messages to the camera.
type Sender interface {
	Send(data []byte) error
}

// Client implements camera.Backend over the wire protocol.
//
// Backend calls never block: a request is encoded and put on a bounded
// queue, and the call reports whether it was queued. Run drains the queue
// into a Sender. Responses only acknowledge requests; the resulting values
// reach the camera as notifications.
type Client struct {
	sessionID string
	queue     chan []byte
	capture   log.Logger
	logger    *slog.Logger

	nextMsgID atomic.Uint32

	// Outstanding requests by message ID, for response correlation.
	pending   map[uint32]*wire.Request
	pendingMu sync.Mutex

	closed    atomic.Bool
	closeOnce sync.Once
	done      chan struct{}
}

// NewClient creates a client.
func NewClient(config Config) *Client {
	config = config.withDefaults()
	return &Client{
		sessionID: config.SessionID,
		queue:     make(chan []byte, config.QueueSize),
		capture:   config.Capture,
		logger:    config.Logger,
		pending:   make(map[uint32]*wire.Request),
		done:      make(chan struct{}),
	}
}

// Run writes queued requests to sender until ctx is done, Close is called
// or a send fails.
func (c *Client) Run(ctx context.Context, sender Sender) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return ErrClientClosed
		case data := <-c.queue:
			if err := sender.Send(data); err != nil {
				return fmt.Errorf("send request: %w", err)
			}
		}
	}
}

// Close rejects all further requests.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.done)
	})
	return nil
}

// Outstanding returns the number of requests awaiting a response.
func (c *Client) Outstanding() int {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	return len(c.pending)
}

// HandleResponse correlates a response with its request. A failed request
// is logged; the camera answers it with a notification restoring the
// authoritative value.
func (c *Client) HandleResponse(resp *wire.Response) error {
	c.capture.Log(log.ResponseEvent(c.sessionID, log.DirectionIn, resp))

	c.pendingMu.Lock()
	req, ok := c.pending[resp.MessageID]
	delete(c.pending, resp.MessageID)
	c.pendingMu.Unlock()

	if !ok {
		return fmt.Errorf("%w: message %d", ErrUnexpectedReply, resp.MessageID)
	}
	if !resp.IsSuccess() {
		c.logger.Warn("request refused",
			"session_id", c.sessionID,
			"msg_id", resp.MessageID,
			"feature", req.Feature.String(),
			"status", resp.Status.String(),
			"reason", resp.Message,
		)
	}
	return nil
}

func (c *Client) nextMessageID() uint32 {
	return c.nextMsgID.Add(1)
}

// enqueue encodes and queues a request. It returns false if the client is
// closed, the request cannot be encoded or the queue is full.
func (c *Client) enqueue(req *wire.Request) bool {
	if c.closed.Load() {
		return false
	}
	req.MessageID = c.nextMessageID()

	data, err := wire.EncodeRequest(req)
	if err != nil {
		c.logger.Error("encode request", "feature", req.Feature.String(), "error", err)
		c.capture.Log(log.ErrorEvent(c.sessionID, log.LayerWire, err, "encode request"))
		return false
	}

	c.pendingMu.Lock()
	c.pending[req.MessageID] = req
	c.pendingMu.Unlock()

	select {
	case c.queue <- data:
		c.capture.Log(log.RequestEvent(c.sessionID, log.DirectionOut, req))
		return true
	default:
		c.pendingMu.Lock()
		delete(c.pending, req.MessageID)
		c.pendingMu.Unlock()
		c.logger.Warn("request queue full", "session_id", c.sessionID, "feature", req.Feature.String())
		return false
	}
}

func (c *Client) write(feature wire.FeatureID, b *wire.AttributeBuilder) bool {
	params, err := b.Build()
	if err != nil {
		c.logger.Error("encode attributes", "feature", feature.String(), "error", err)
		return false
	}
	return c.enqueue(&wire.Request{Operation: wire.OpWrite, Feature: feature, Params: params})
}

func (c *Client) invoke(feature wire.FeatureID, cmd wire.CommandID, b *wire.AttributeBuilder) bool {
	req := &wire.Request{Operation: wire.OpInvoke, Feature: feature, Command: cmd}
	if b != nil {
		params, err := b.Build()
		if err != nil {
			c.logger.Error("encode parameters", "feature", feature.String(), "error", err)
			return false
		}
		req.Params = params
	}
	return c.enqueue(req)
}

func attrs() *wire.AttributeBuilder {
	return wire.NewAttributeBuilder()
}

// SetMode implements camera.CaptureBackend.
func (c *Client) SetMode(mode camera.Mode) bool {
	return c.write(wire.FeatureCamera, attrs().Put(wire.AttrCameraMode, mode))
}

// SetEVCompensation implements camera.CaptureBackend.
func (c *Client) SetEVCompensation(ev camera.EVCompensation) bool {
	return c.write(wire.FeatureCamera, attrs().Put(wire.AttrCameraEVCompensation, ev))
}

// SetAutoHDR implements camera.CaptureBackend.
func (c *Client) SetAutoHDR(enabled bool) bool {
	return c.write(wire.FeatureCamera, attrs().Put(wire.AttrCameraAutoHDR, enabled))
}

// SetAutoRecord implements camera.CaptureBackend.
func (c *Client) SetAutoRecord(enabled bool) bool {
	return c.write(wire.FeatureCamera, attrs().Put(wire.AttrCameraAutoRecord, enabled))
}

// StartPhotoCapture implements camera.CaptureBackend.
func (c *Client) StartPhotoCapture() bool {
	return c.invoke(wire.FeatureCamera, wire.CmdStartPhotoCapture, nil)
}

// StopPhotoCapture implements camera.CaptureBackend.
func (c *Client) StopPhotoCapture() bool {
	return c.invoke(wire.FeatureCamera, wire.CmdStopPhotoCapture, nil)
}

// StartRecording implements camera.CaptureBackend.
func (c *Client) StartRecording() bool {
	return c.invoke(wire.FeatureCamera, wire.CmdStartRecording, nil)
}

// StopRecording implements camera.CaptureBackend.
func (c *Client) StopRecording() bool {
	return c.invoke(wire.FeatureCamera, wire.CmdStopRecording, nil)
}

// SetExposure implements camera.ExposureBackend. The full tuple is sent.
func (c *Client) SetExposure(mode camera.ExposureMode, shutterSpeed camera.ShutterSpeed, iso, maxISO camera.ISOSensitivity, metering camera.MeteringMode) bool {
	return c.write(wire.FeatureExposure, attrs().
		Put(wire.AttrExposureMode, mode).
		Put(wire.AttrExposureShutterSpeed, shutterSpeed).
		Put(wire.AttrExposureISO, iso).
		Put(wire.AttrExposureMaxISO, maxISO).
		Put(wire.AttrExposureMetering, metering))
}

// SetWhiteBalance implements camera.WhiteBalanceBackend.
func (c *Client) SetWhiteBalance(mode camera.WhiteBalanceMode, temperature camera.Temperature) bool {
	return c.write(wire.FeatureWhiteBalance, attrs().
		Put(wire.AttrWhiteBalanceMode, mode).
		Put(wire.AttrWhiteBalanceTemperature, temperature))
}

// SetPhoto implements camera.PhotoBackend. Absent fields are left to the
// camera.
func (c *Client) SetPhoto(req camera.PhotoRequest) bool {
	b := attrs().Put(wire.AttrPhotoMode, req.Mode)
	if req.Format != nil {
		b.Put(wire.AttrPhotoFormat, *req.Format)
	}
	if req.FileFormat != nil {
		b.Put(wire.AttrPhotoFileFormat, *req.FileFormat)
	}
	if req.Burst != nil {
		b.Put(wire.AttrPhotoBurst, *req.Burst)
	}
	if req.Bracketing != nil {
		b.Put(wire.AttrPhotoBracketing, *req.Bracketing)
	}
	if req.TimelapseInterval != nil {
		b.Put(wire.AttrPhotoTimelapseInterval, *req.TimelapseInterval)
	}
	if req.GpslapseInterval != nil {
		b.Put(wire.AttrPhotoGpslapseInterval, *req.GpslapseInterval)
	}
	return c.write(wire.FeaturePhoto, b)
}

// SetRecording implements camera.RecordingBackend.
func (c *Client) SetRecording(req camera.RecordingRequest) bool {
	b := attrs().Put(wire.AttrRecordingMode, req.Mode)
	if req.Resolution != nil {
		b.Put(wire.AttrRecordingResolution, *req.Resolution)
	}
	if req.Framerate != nil {
		b.Put(wire.AttrRecordingFramerate, *req.Framerate)
	}
	if req.Hyperlapse != nil {
		b.Put(wire.AttrRecordingHyperlapse, *req.Hyperlapse)
	}
	return c.write(wire.FeatureRecording, b)
}

// SetStyle implements camera.StyleBackend.
func (c *Client) SetStyle(style camera.Style) bool {
	return c.write(wire.FeatureStyle, attrs().Put(wire.AttrStyleStyle, style))
}

// SetStyleParameters implements camera.StyleBackend. Requests carry plain
// values; notifications carry them with their bounds.
func (c *Client) SetStyleParameters(saturation, contrast, sharpness int) bool {
	return c.write(wire.FeatureStyle, attrs().
		Put(wire.AttrStyleSaturation, saturation).
		Put(wire.AttrStyleContrast, contrast).
		Put(wire.AttrStyleSharpness, sharpness))
}

// SetAlignment implements camera.AlignmentBackend.
func (c *Client) SetAlignment(yaw, pitch, roll float64) bool {
	return c.write(wire.FeatureAlignment, attrs().
		Put(wire.AttrAlignmentYaw, yaw).
		Put(wire.AttrAlignmentPitch, pitch).
		Put(wire.AttrAlignmentRoll, roll))
}

// ResetAlignment implements camera.AlignmentBackend.
func (c *Client) ResetAlignment() bool {
	return c.invoke(wire.FeatureAlignment, wire.CmdResetAlignment, nil)
}

// SetExposureLock implements camera.ExposureLockBackend. The center is
// only sent for region locks.
func (c *Client) SetExposureLock(mode camera.ExposureLockMode, centerX, centerY float64) bool {
	region := mode == camera.ExposureLockRegion
	return c.write(wire.FeatureExposureLock, attrs().
		Put(wire.AttrExposureLockMode, mode).
		PutIf(region, wire.AttrExposureLockCenterX, centerX).
		PutIf(region, wire.AttrExposureLockCenterY, centerY))
}

// SetWhiteBalanceLock implements camera.WhiteBalanceLockBackend.
func (c *Client) SetWhiteBalanceLock(locked bool) bool {
	return c.write(wire.FeatureWhiteBalanceLock, attrs().Put(wire.AttrWhiteBalanceLockLocked, locked))
}

// SetMaxZoomSpeed implements camera.ZoomBackend.
func (c *Client) SetMaxZoomSpeed(speed float64) bool {
	return c.write(wire.FeatureZoom, attrs().Put(wire.AttrZoomMaxSpeed, speed))
}

// SetQualityDegradationAllowance implements camera.ZoomBackend.
func (c *Client) SetQualityDegradationAllowance(allowed bool) bool {
	return c.write(wire.FeatureZoom, attrs().Put(wire.AttrZoomQualityDegradation, allowed))
}

// ControlZoom implements camera.ZoomBackend. A full queue drops the command.
func (c *Client) ControlZoom(mode camera.ZoomControlMode, target float64) {
	c.invoke(wire.FeatureZoom, wire.CmdControlZoom, attrs().
		Put(wire.AttrZoomControlMode, mode).
		Put(wire.AttrZoomTarget, target))
}

var _ camera.Backend = (*Client)(nil)
