package camera

import (
	"github.com/aerolens/camsync/pkg/setting"
)

// Camera aggregates all settings of one camera peripheral.
//
// Settings report changes to the Camera, which marks itself changed. A
// change caused by a local request is published to observers immediately;
// device-driven changes are batched until NotifyUpdated, which the link
// layer calls after processing each device message.
//
// Exposure lock, white balance lock, alignment and zoom only exist once the
// device has reported them: their accessors return nil until the matching
// Create*IfNeeded call.
//
// Camera is not safe for concurrent use.
type Camera struct {
	backend Backend

	mode           *setting.Enum[Mode]
	evCompensation *setting.Enum[EVCompensation]
	autoHDR        *setting.Bool
	autoRecord     *setting.Bool

	exposure     *Exposure
	whiteBalance *WhiteBalance
	photo        *Photo
	recording    *Recording
	style        *ImageStyle

	exposureLock     *ExposureLock
	whiteBalanceLock *WhiteBalanceLock
	alignment        *Alignment
	zoom             *Zoom

	active         bool
	hdrActive      bool
	photoState     PhotoState
	photoCount     int
	photoMediaID   string
	recordingState RecordingState
	recordingMedia string

	published bool
	changed   bool
	observers []func(*Camera)
	trace     setting.TraceFunc
}

// New creates a camera sending requests to backend.
func New(backend Backend) *Camera {
	c := &Camera{backend: backend}
	c.mode = setting.NewEnum("mode", ModeRecording, backend.SetMode, c.onSettingChange)
	c.evCompensation = setting.NewEnum("ev_compensation", EV0, backend.SetEVCompensation, c.onSettingChange)
	c.autoHDR = setting.NewBool("auto_hdr", backend.SetAutoHDR, c.onSettingChange)
	c.autoRecord = setting.NewBool("auto_record", backend.SetAutoRecord, c.onSettingChange)
	c.exposure = NewExposure(backend, c.onSettingChange)
	c.whiteBalance = NewWhiteBalance(backend, c.onSettingChange)
	c.photo = NewPhoto(backend, c.onSettingChange)
	c.recording = NewRecording(backend, c.onSettingChange)
	c.style = NewImageStyle(backend, c.onSettingChange)
	return c
}

// OnChange registers an observer called once per published batch of changes.
func (c *Camera) OnChange(fn func(*Camera)) {
	c.observers = append(c.observers, fn)
}

// SetTracer installs a function receiving every setting transition,
// including those of components created later.
func (c *Camera) SetTracer(fn setting.TraceFunc) {
	c.trace = fn
	for _, p := range c.parts() {
		p.SetTracer(fn)
	}
}

// Mode returns the camera mode setting.
func (c *Camera) Mode() *setting.Enum[Mode] { return c.mode }

// EVCompensation returns the exposure compensation setting.
func (c *Camera) EVCompensation() *setting.Enum[EVCompensation] { return c.evCompensation }

// AutoHDR returns the automatic HDR setting.
func (c *Camera) AutoHDR() *setting.Bool { return c.autoHDR }

// AutoRecord returns the automatic recording setting.
func (c *Camera) AutoRecord() *setting.Bool { return c.autoRecord }

// Exposure returns the exposure setting.
func (c *Camera) Exposure() *Exposure { return c.exposure }

// WhiteBalance returns the white balance setting.
func (c *Camera) WhiteBalance() *WhiteBalance { return c.whiteBalance }

// Photo returns the photo mode setting.
func (c *Camera) Photo() *Photo { return c.photo }

// Recording returns the recording mode setting.
func (c *Camera) Recording() *Recording { return c.recording }

// Style returns the image style setting.
func (c *Camera) Style() *ImageStyle { return c.style }

// ExposureLock returns the exposure lock, or nil if not reported yet.
func (c *Camera) ExposureLock() *ExposureLock { return c.exposureLock }

// WhiteBalanceLock returns the white balance lock, or nil if not reported yet.
func (c *Camera) WhiteBalanceLock() *WhiteBalanceLock { return c.whiteBalanceLock }

// Alignment returns the alignment setting, or nil if not reported yet.
func (c *Camera) Alignment() *Alignment { return c.alignment }

// Zoom returns the zoom, or nil if not reported yet.
func (c *Camera) Zoom() *Zoom { return c.zoom }

// IsActive returns true if the camera is the active one on the drone.
func (c *Camera) IsActive() bool { return c.active }

// IsHDRActive returns true if HDR is currently applied.
func (c *Camera) IsHDRActive() bool { return c.hdrActive }

// IsHDRAvailable reports HDR availability for the configuration matching
// the current camera mode.
func (c *Camera) IsHDRAvailable() bool {
	if c.mode.Get() == ModePhoto {
		return c.photo.IsHDRAvailable()
	}
	return c.recording.IsHDRAvailable()
}

// PhotoState returns the photo capture state, the number of photos taken
// in the current capture and the media ID of the last capture.
func (c *Camera) PhotoState() (state PhotoState, count int, mediaID string) {
	return c.photoState, c.photoCount, c.photoMediaID
}

// RecordingState returns the recording state and the media ID of the last
// recording.
func (c *Camera) RecordingState() (state RecordingState, mediaID string) {
	return c.recordingState, c.recordingMedia
}

// CanStartPhotoCapture returns true if a photo capture can be started.
func (c *Camera) CanStartPhotoCapture() bool {
	return c.active && c.photoState == PhotoStopped
}

// CanStopPhotoCapture returns true if the ongoing capture can be stopped.
func (c *Camera) CanStopPhotoCapture() bool {
	if !c.active || c.photoState != PhotoStarted {
		return false
	}
	m := c.photo.Mode()
	return m == PhotoTimelapse || m == PhotoGpslapse
}

// CanStartRecording returns true if a recording can be started.
func (c *Camera) CanStartRecording() bool {
	return c.active && c.recordingState == RecordingStopped
}

// CanStopRecording returns true if the ongoing recording can be stopped.
func (c *Camera) CanStopRecording() bool {
	return c.active && (c.recordingState == RecordingStarting || c.recordingState == RecordingStarted)
}

// StartPhotoCapture starts a photo capture if possible.
func (c *Camera) StartPhotoCapture() bool {
	return c.CanStartPhotoCapture() && c.backend.StartPhotoCapture()
}

// StopPhotoCapture stops a time-lapse or GPS-lapse capture if possible.
func (c *Camera) StopPhotoCapture() bool {
	return c.CanStopPhotoCapture() && c.backend.StopPhotoCapture()
}

// StartRecording starts recording if possible.
func (c *Camera) StartRecording() bool {
	return c.CanStartRecording() && c.backend.StartRecording()
}

// StopRecording stops recording if possible.
func (c *Camera) StopRecording() bool {
	return c.CanStopRecording() && c.backend.StopRecording()
}

// Device updates

// CreateExposureLockIfNeeded creates the exposure lock on first report.
func (c *Camera) CreateExposureLockIfNeeded() *ExposureLock {
	if c.exposureLock == nil {
		c.exposureLock = NewExposureLock(c.backend, c.onSettingChange)
		c.adopt(c.exposureLock.parts())
	}
	return c.exposureLock
}

// CreateWhiteBalanceLockIfNeeded creates the white balance lock on first report.
func (c *Camera) CreateWhiteBalanceLockIfNeeded() *WhiteBalanceLock {
	if c.whiteBalanceLock == nil {
		c.whiteBalanceLock = NewWhiteBalanceLock(c.backend, c.onSettingChange)
		c.adopt(c.whiteBalanceLock.parts())
	}
	return c.whiteBalanceLock
}

// CreateAlignmentIfNeeded creates the alignment setting on first report.
func (c *Camera) CreateAlignmentIfNeeded() *Alignment {
	if c.alignment == nil {
		c.alignment = NewAlignment(c.backend, c.onSettingChange)
		c.adopt(c.alignment.parts())
	}
	return c.alignment
}

// CreateZoomIfNeeded creates the zoom on first report.
func (c *Camera) CreateZoomIfNeeded() *Zoom {
	if c.zoom == nil {
		c.zoom = NewZoom(c.backend, c.onSettingChange)
		c.adopt(c.zoom.parts())
	}
	return c.zoom
}

// UpdateActiveFlag applies the active flag reported by the device.
func (c *Camera) UpdateActiveFlag(active bool) *Camera {
	if c.active != active {
		c.active = active
		c.changed = true
	}
	return c
}

// UpdateHDRActive applies the HDR state reported by the device.
func (c *Camera) UpdateHDRActive(active bool) *Camera {
	if c.hdrActive != active {
		c.hdrActive = active
		c.changed = true
	}
	return c
}

// UpdatePhotoState applies the photo capture state reported by the device.
func (c *Camera) UpdatePhotoState(state PhotoState, count int, mediaID string) *Camera {
	if c.photoState != state || c.photoCount != count || c.photoMediaID != mediaID {
		c.photoState, c.photoCount, c.photoMediaID = state, count, mediaID
		c.changed = true
	}
	return c
}

// UpdateRecordingState applies the recording state reported by the device.
func (c *Camera) UpdateRecordingState(state RecordingState, mediaID string) *Camera {
	if c.recordingState != state || c.recordingMedia != mediaID {
		c.recordingState, c.recordingMedia = state, mediaID
		c.changed = true
	}
	return c
}

// Lifecycle

// Publish makes the camera visible to observers and flushes pending changes.
func (c *Camera) Publish() {
	c.published = true
	c.changed = true
	c.NotifyUpdated()
}

// IsPublished returns true between Publish and Unpublish.
func (c *Camera) IsPublished() bool { return c.published }

// NotifyUpdated publishes batched changes to observers, if any.
func (c *Camera) NotifyUpdated() {
	if !c.changed || !c.published {
		return
	}
	c.changed = false
	for _, fn := range c.observers {
		fn(c)
	}
}

// Unpublish tears the camera down on disconnection. Pending rollbacks are
// discarded without being applied, and the lazily created components are
// dropped.
func (c *Camera) Unpublish() {
	for _, p := range c.parts() {
		p.Discard()
	}
	c.exposureLock = nil
	c.whiteBalanceLock = nil
	c.alignment = nil
	c.zoom = nil
	c.published = false
	c.changed = false
}

func (c *Camera) onSettingChange(fromUser bool) {
	c.changed = true
	if fromUser {
		c.NotifyUpdated()
	}
}

// adopt wires newly created parts to the current tracer.
func (c *Camera) adopt(parts []part) {
	if c.trace == nil {
		return
	}
	for _, p := range parts {
		p.SetTracer(c.trace)
	}
}

func (c *Camera) parts() []part {
	parts := []part{
		c.mode.Controller(),
		c.evCompensation.Controller(),
		c.autoHDR.Controller(),
		c.autoRecord.Controller(),
	}
	parts = append(parts, c.exposure.parts()...)
	parts = append(parts, c.whiteBalance.parts()...)
	parts = append(parts, c.photo.parts()...)
	parts = append(parts, c.recording.parts()...)
	parts = append(parts, c.style.parts()...)
	if c.exposureLock != nil {
		parts = append(parts, c.exposureLock.parts()...)
	}
	if c.whiteBalanceLock != nil {
		parts = append(parts, c.whiteBalanceLock.parts()...)
	}
	if c.alignment != nil {
		parts = append(parts, c.alignment.parts()...)
	}
	if c.zoom != nil {
		parts = append(parts, c.zoom.parts()...)
	}
	return parts
}
