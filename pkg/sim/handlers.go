package sim

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/aerolens/camsync/pkg/camera"
	"github.com/aerolens/camsync/pkg/capability"
	"github.com/aerolens/camsync/pkg/wire"
)

// refusal is the reason a request was declined.
type refusal struct {
	status wire.Status
	reason string
}

func refuse(status wire.Status, format string, args ...any) *refusal {
	return &refusal{status: status, reason: fmt.Sprintf(format, args...)}
}

// params decodes request parameters, keeping the first decoding error.
type params struct {
	attrs wire.Attributes
	err   error
}

// get decodes attribute id into dst. It reports whether the attribute was
// present and valid.
func get[T any](p *params, id wire.AttributeID, dst *T) bool {
	raw, ok := p.attrs[id]
	if !ok {
		return false
	}
	if err := wire.Unmarshal(raw, dst); err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("attribute %d: %w", id, err)
		}
		return false
	}
	return true
}

// check returns a refusal for a decoding error or an attribute outside
// allowed.
func (p *params) check(allowed ...wire.AttributeID) *refusal {
	if p.err != nil {
		return refuse(wire.StatusInvalidParameter, "%v", p.err)
	}
	for _, id := range p.attrs.IDs() {
		if !slices.Contains(allowed, id) {
			return refuse(wire.StatusInvalidAttribute, "attribute %d is not writable", id)
		}
	}
	return nil
}

func unsupported(what string, v any) *refusal {
	return refuse(wire.StatusUnsupported, "%s %v is not supported", what, v)
}

func outOfRange(what string, v float64, r wire.Range) *refusal {
	return refuse(wire.StatusInvalidParameter, "%s %g outside [%g, %g]", what, v, r.Min, r.Max)
}

func inRange(v float64, r wire.Range) bool {
	return v >= r.Min && v <= r.Max
}

// known reports whether v is a defined value of its enum.
func known[E camera.Enum](v E) bool {
	return slices.Contains(camera.Values[E](), v)
}

// dispatch validates a request against the current state. On success it
// returns the step applying it. Called with d.mu held.
func (d *Device) dispatch(req *wire.Request) (step, *refusal) {
	if !d.state.has(req.Feature) {
		return nil, refuse(wire.StatusInvalidFeature, "no %s feature", req.Feature)
	}
	p := &params{attrs: req.Params}

	switch req.Operation {
	case wire.OpRead:
		f := req.Feature
		return func() step {
			d.touchAll(f)
			return nil
		}, nil

	case wire.OpWrite:
		switch req.Feature {
		case wire.FeatureCamera:
			return d.writeCamera(p)
		case wire.FeatureExposure:
			return d.writeExposure(p)
		case wire.FeatureWhiteBalance:
			return d.writeWhiteBalance(p)
		case wire.FeaturePhoto:
			return d.writePhoto(p)
		case wire.FeatureRecording:
			return d.writeRecording(p)
		case wire.FeatureStyle:
			return d.writeStyle(p)
		case wire.FeatureAlignment:
			return d.writeAlignment(p)
		case wire.FeatureExposureLock:
			return d.writeExposureLock(p)
		case wire.FeatureWhiteBalanceLock:
			return d.writeWhiteBalanceLock(p)
		case wire.FeatureZoom:
			return d.writeZoom(p)
		}

	case wire.OpInvoke:
		switch {
		case req.Feature == wire.FeatureCamera && req.Command == wire.CmdStartPhotoCapture:
			return d.startPhotoCapture()
		case req.Feature == wire.FeatureCamera && req.Command == wire.CmdStopPhotoCapture:
			return d.stopPhotoCapture()
		case req.Feature == wire.FeatureCamera && req.Command == wire.CmdStartRecording:
			return d.startRecording()
		case req.Feature == wire.FeatureCamera && req.Command == wire.CmdStopRecording:
			return d.stopRecording()
		case req.Feature == wire.FeatureAlignment && req.Command == wire.CmdResetAlignment:
			return d.resetAlignment()
		case req.Feature == wire.FeatureZoom && req.Command == wire.CmdControlZoom:
			return d.controlZoom(p)
		}
		return nil, refuse(wire.StatusInvalidCommand, "no command %d on %s", req.Command, req.Feature)
	}
	return nil, refuse(wire.StatusUnsupported, "%s on %s", req.Operation, req.Feature)
}

// ---------------------------------------------------------------------------
// Camera
// ---------------------------------------------------------------------------

func (d *Device) writeCamera(p *params) (step, *refusal) {
	c := d.state.camera
	mode, ev, autoHDR, autoRecord := c.mode, c.ev, c.autoHDR, c.autoRecord

	setMode := get(p, wire.AttrCameraMode, &mode)
	setEV := get(p, wire.AttrCameraEVCompensation, &ev)
	setHDR := get(p, wire.AttrCameraAutoHDR, &autoHDR)
	setRecord := get(p, wire.AttrCameraAutoRecord, &autoRecord)
	if ref := p.check(wire.AttrCameraMode, wire.AttrCameraEVCompensation,
		wire.AttrCameraAutoHDR, wire.AttrCameraAutoRecord); ref != nil {
		return nil, ref
	}

	switch {
	case setMode && !slices.Contains(c.modes, mode):
		return nil, unsupported("mode", mode)
	case setMode && mode != c.mode && d.capturing():
		return nil, refuse(wire.StatusBusy, "capture in progress")
	case setEV && !slices.Contains(c.evs, ev):
		return nil, unsupported("EV compensation", ev)
	case setHDR && !c.autoHDRSupported:
		return nil, unsupported("auto HDR", autoHDR)
	case setRecord && !c.autoRecordSupported:
		return nil, unsupported("auto record", autoRecord)
	}

	return func() step {
		c := &d.state.camera
		c.mode, c.ev, c.autoHDR, c.autoRecord = mode, ev, autoHDR, autoRecord
		d.state.refreshCaptureState()
		d.state.refreshHDR()
		d.touch(wire.FeatureCamera)
		return nil
	}, nil
}

func (d *Device) capturing() bool {
	c := d.state.camera
	return c.photoState == camera.PhotoStarted ||
		c.recordingState == camera.RecordingStarting ||
		c.recordingState == camera.RecordingStarted
}

func (d *Device) startPhotoCapture() (step, *refusal) {
	if c := d.state.camera; !c.active || c.photoState != camera.PhotoStopped {
		return nil, refuse(wire.StatusBusy, "photo capture is %s", c.photoState)
	}
	return func() step {
		c := &d.state.camera
		if c.photoState != camera.PhotoStopped {
			return nil
		}
		c.photoState = camera.PhotoStarted
		c.photoCount = 0
		d.touch(wire.FeatureCamera)
		if isLapse(d.state.photo.settings.Mode) {
			return nil
		}
		return d.completePhotoCapture
	}, nil
}

func (d *Device) stopPhotoCapture() (step, *refusal) {
	c := d.state.camera
	if c.photoState != camera.PhotoStarted || !isLapse(d.state.photo.settings.Mode) {
		return nil, refuse(wire.StatusBusy, "no lapse capture in progress")
	}
	return d.completePhotoCapture, nil
}

// completePhotoCapture stores the captured photos as one media.
func (d *Device) completePhotoCapture() step {
	c := &d.state.camera
	if c.photoState != camera.PhotoStarted {
		return nil
	}
	c.photoCount += shots(d.state.photo.settings)
	c.photoMedia = d.state.nextMediaID("IMG")
	c.photoState = camera.PhotoStopped
	d.touch(wire.FeatureCamera)
	return nil
}

func isLapse(m camera.PhotoMode) bool {
	return m == camera.PhotoTimelapse || m == camera.PhotoGpslapse
}

// shots is the number of photos one capture produces.
func shots(s camera.PhotoSettings) int {
	switch s.Mode {
	case camera.PhotoBurst:
		switch s.Burst {
		case camera.Burst14Over4s, camera.Burst14Over2s, camera.Burst14Over1s:
			return 14
		case camera.Burst10Over4s, camera.Burst10Over2s, camera.Burst10Over1s:
			return 10
		default:
			return 4
		}
	case camera.PhotoBracketing:
		return 3
	default:
		return 1
	}
}

func (d *Device) startRecording() (step, *refusal) {
	if c := d.state.camera; !c.active || c.recordingState != camera.RecordingStopped {
		return nil, refuse(wire.StatusBusy, "recording is %s", c.recordingState)
	}
	return func() step {
		c := &d.state.camera
		if c.recordingState != camera.RecordingStopped {
			return nil
		}
		c.recordingState = camera.RecordingStarting
		d.touch(wire.FeatureCamera)
		return func() step {
			if c.recordingState == camera.RecordingStarting {
				c.recordingState = camera.RecordingStarted
				d.touch(wire.FeatureCamera)
			}
			return nil
		}
	}, nil
}

func (d *Device) stopRecording() (step, *refusal) {
	c := d.state.camera
	if c.recordingState != camera.RecordingStarting && c.recordingState != camera.RecordingStarted {
		return nil, refuse(wire.StatusBusy, "recording is %s", c.recordingState)
	}
	return func() step {
		c := &d.state.camera
		if c.recordingState != camera.RecordingStarting && c.recordingState != camera.RecordingStarted {
			return nil
		}
		c.recordingState = camera.RecordingStopped
		c.recordingMedia = d.state.nextMediaID("VID")
		d.touch(wire.FeatureCamera)
		return nil
	}, nil
}

// ---------------------------------------------------------------------------
// Exposure and white balance
// ---------------------------------------------------------------------------

func (d *Device) writeExposure(p *params) (step, *refusal) {
	e := d.state.exposure
	next := e.settings

	setMode := get(p, wire.AttrExposureMode, &next.Mode)
	setShutter := get(p, wire.AttrExposureShutterSpeed, &next.ShutterSpeed)
	setISO := get(p, wire.AttrExposureISO, &next.ISO)
	setMaxISO := get(p, wire.AttrExposureMaxISO, &next.MaxISO)
	setMetering := get(p, wire.AttrExposureMetering, &next.Metering)
	if ref := p.check(wire.AttrExposureMode, wire.AttrExposureShutterSpeed, wire.AttrExposureISO,
		wire.AttrExposureMaxISO, wire.AttrExposureMetering); ref != nil {
		return nil, ref
	}

	switch {
	case setMode && !slices.Contains(e.modes, next.Mode):
		return nil, unsupported("exposure mode", next.Mode)
	case setShutter && !slices.Contains(e.shutterSpeeds, next.ShutterSpeed):
		return nil, unsupported("shutter speed", next.ShutterSpeed)
	case setISO && !slices.Contains(e.isos, next.ISO):
		return nil, unsupported("ISO", next.ISO)
	case setMaxISO && !slices.Contains(e.maxISOs, next.MaxISO):
		return nil, unsupported("max ISO", next.MaxISO)
	case setMetering && !known(next.Metering):
		return nil, unsupported("metering", next.Metering)
	}

	return func() step {
		d.state.exposure.settings = next
		d.touch(wire.FeatureExposure)
		return nil
	}, nil
}

func (d *Device) writeWhiteBalance(p *params) (step, *refusal) {
	wb := d.state.whiteBalance
	next := wb.settings

	setMode := get(p, wire.AttrWhiteBalanceMode, &next.Mode)
	setTemp := get(p, wire.AttrWhiteBalanceTemperature, &next.Temperature)
	if ref := p.check(wire.AttrWhiteBalanceMode, wire.AttrWhiteBalanceTemperature); ref != nil {
		return nil, ref
	}

	switch {
	case setMode && !slices.Contains(wb.modes, next.Mode):
		return nil, unsupported("white balance mode", next.Mode)
	case setTemp && !slices.Contains(wb.temperatures, next.Temperature):
		return nil, unsupported("temperature", next.Temperature)
	}

	return func() step {
		d.state.whiteBalance.settings = next
		d.touch(wire.FeatureWhiteBalance)
		if d.state.refreshWhiteBalanceLock() {
			d.touch(wire.FeatureWhiteBalanceLock)
		}
		return nil
	}, nil
}

// ---------------------------------------------------------------------------
// Photo and recording
// ---------------------------------------------------------------------------

func (d *Device) writePhoto(p *params) (step, *refusal) {
	ph := d.state.photo
	next := ph.settings

	get(p, wire.AttrPhotoMode, &next.Mode)
	var format camera.PhotoFormat
	var fileFormat camera.PhotoFileFormat
	setFormat := get(p, wire.AttrPhotoFormat, &format)
	setFileFormat := get(p, wire.AttrPhotoFileFormat, &fileFormat)
	setBurst := get(p, wire.AttrPhotoBurst, &next.Burst)
	setBracketing := get(p, wire.AttrPhotoBracketing, &next.Bracketing)
	setTimelapse := get(p, wire.AttrPhotoTimelapseInterval, &next.TimelapseInterval)
	setGpslapse := get(p, wire.AttrPhotoGpslapseInterval, &next.GpslapseInterval)
	if ref := p.check(wire.AttrPhotoMode, wire.AttrPhotoFormat, wire.AttrPhotoFileFormat,
		wire.AttrPhotoBurst, wire.AttrPhotoBracketing,
		wire.AttrPhotoTimelapseInterval, wire.AttrPhotoGpslapseInterval); ref != nil {
		return nil, ref
	}

	// Fields the client left out are chosen by the camera.
	next.Mode, next.Format, next.FileFormat = ph.matrix.Resolve(next.Mode, next.Format, next.FileFormat)
	if setFormat {
		next.Format = format
	}
	if setFileFormat {
		next.FileFormat = fileFormat
		if !setFormat {
			next.Format = formatFor(ph.matrix, next.Mode, next.Format, fileFormat)
		}
	}

	switch {
	case !ph.matrix.SupportsFileFormat(next.Mode, next.Format, next.FileFormat):
		return nil, unsupported("photo configuration",
			fmt.Sprintf("%s/%s/%s", next.Mode, next.Format, next.FileFormat))
	case setBurst && !slices.Contains(ph.bursts, next.Burst):
		return nil, unsupported("burst value", next.Burst)
	case setBracketing && !slices.Contains(ph.bracketings, next.Bracketing):
		return nil, unsupported("bracketing value", next.Bracketing)
	case setTimelapse && !inRange(next.TimelapseInterval, ph.timelapseRange):
		return nil, outOfRange("timelapse interval", next.TimelapseInterval, ph.timelapseRange)
	case setGpslapse && !inRange(next.GpslapseInterval, ph.gpslapseRange):
		return nil, outOfRange("gpslapse interval", next.GpslapseInterval, ph.gpslapseRange)
	case next.Mode != ph.settings.Mode && d.state.camera.photoState == camera.PhotoStarted:
		return nil, refuse(wire.StatusBusy, "photo capture in progress")
	}

	return func() step {
		d.state.photo.settings = next
		d.touch(wire.FeaturePhoto)
		if d.state.refreshHDR() {
			d.touch(wire.FeatureCamera)
		}
		return nil
	}, nil
}

func (d *Device) writeRecording(p *params) (step, *refusal) {
	rec := d.state.recording
	next := rec.settings

	get(p, wire.AttrRecordingMode, &next.Mode)
	var resolution camera.Resolution
	var framerate camera.Framerate
	setResolution := get(p, wire.AttrRecordingResolution, &resolution)
	setFramerate := get(p, wire.AttrRecordingFramerate, &framerate)
	setHyperlapse := get(p, wire.AttrRecordingHyperlapse, &next.Hyperlapse)
	if ref := p.check(wire.AttrRecordingMode, wire.AttrRecordingResolution,
		wire.AttrRecordingFramerate, wire.AttrRecordingHyperlapse); ref != nil {
		return nil, ref
	}

	next.Mode, next.Resolution, next.Framerate = rec.matrix.Resolve(next.Mode, next.Resolution, next.Framerate)
	if setResolution {
		next.Resolution = resolution
	}
	if setFramerate {
		next.Framerate = framerate
		if !setResolution {
			next.Resolution = formatFor(rec.matrix, next.Mode, next.Resolution, framerate)
		}
	}

	switch {
	case !rec.matrix.SupportsFileFormat(next.Mode, next.Resolution, next.Framerate):
		return nil, unsupported("recording configuration",
			fmt.Sprintf("%s/%s/%s", next.Mode, next.Resolution, next.Framerate))
	case setHyperlapse && !slices.Contains(rec.hyperlapses, next.Hyperlapse):
		return nil, unsupported("hyperlapse value", next.Hyperlapse)
	case d.state.camera.recordingState == camera.RecordingStarted:
		return nil, refuse(wire.StatusBusy, "recording in progress")
	}

	return func() step {
		d.state.recording.settings = next
		d.touch(wire.FeatureRecording)
		if d.state.refreshHDR() {
			d.touch(wire.FeatureCamera)
		}
		return nil
	}, nil
}

// formatFor returns a format of mode offering fileFormat, preferring
// current.
func formatFor[M, F, X cmp.Ordered](m capability.Matrix[M, F, X], mode M, current F, fileFormat X) F {
	if m.SupportsFileFormat(mode, current, fileFormat) {
		return current
	}
	for _, f := range m.FormatsFor(mode).Sorted() {
		if m.SupportsFileFormat(mode, f, fileFormat) {
			return f
		}
	}
	return current
}

// ---------------------------------------------------------------------------
// Style and alignment
// ---------------------------------------------------------------------------

func (d *Device) writeStyle(p *params) (step, *refusal) {
	st := d.state.style
	style := st.style
	values := [3]int{}
	set := [3]bool{}

	setStyle := get(p, wire.AttrStyleStyle, &style)
	set[camera.Saturation] = get(p, wire.AttrStyleSaturation, &values[camera.Saturation])
	set[camera.Contrast] = get(p, wire.AttrStyleContrast, &values[camera.Contrast])
	set[camera.Sharpness] = get(p, wire.AttrStyleSharpness, &values[camera.Sharpness])
	if ref := p.check(wire.AttrStyleStyle, wire.AttrStyleSaturation,
		wire.AttrStyleContrast, wire.AttrStyleSharpness); ref != nil {
		return nil, ref
	}

	if setStyle && !slices.Contains(st.styles, style) {
		return nil, unsupported("style", style)
	}
	for i, b := range st.params {
		if set[i] && (values[i] < b.Min || values[i] > b.Max) {
			return nil, refuse(wire.StatusInvalidParameter, "%s %d outside [%d, %d]",
				camera.StyleParameter(i), values[i], b.Min, b.Max)
		}
	}

	return func() step {
		s := &d.state.style
		s.style = style
		for i := range s.params {
			if set[i] {
				s.params[i].Value = values[i]
			}
		}
		d.touch(wire.FeatureStyle)
		return nil
	}, nil
}

func (d *Device) writeAlignment(p *params) (step, *refusal) {
	a := d.state.alignment
	next := a.offsets

	setYaw := get(p, wire.AttrAlignmentYaw, &next.Yaw)
	setPitch := get(p, wire.AttrAlignmentPitch, &next.Pitch)
	setRoll := get(p, wire.AttrAlignmentRoll, &next.Roll)
	if ref := p.check(wire.AttrAlignmentYaw, wire.AttrAlignmentPitch, wire.AttrAlignmentRoll); ref != nil {
		return nil, ref
	}

	switch {
	case setYaw && !inRange(next.Yaw, a.yaw):
		return nil, outOfRange("yaw", next.Yaw, a.yaw)
	case setPitch && !inRange(next.Pitch, a.pitch):
		return nil, outOfRange("pitch", next.Pitch, a.pitch)
	case setRoll && !inRange(next.Roll, a.roll):
		return nil, outOfRange("roll", next.Roll, a.roll)
	}

	return func() step {
		d.state.alignment.offsets = next
		d.touch(wire.FeatureAlignment)
		return nil
	}, nil
}

func (d *Device) resetAlignment() (step, *refusal) {
	return func() step {
		d.state.alignment.offsets = camera.AlignmentOffsets{}
		d.touch(wire.FeatureAlignment)
		return nil
	}, nil
}

// ---------------------------------------------------------------------------
// Locks
// ---------------------------------------------------------------------------

func (d *Device) writeExposureLock(p *params) (step, *refusal) {
	next := *d.state.exposureLock

	get(p, wire.AttrExposureLockMode, &next.Mode)
	setX := get(p, wire.AttrExposureLockCenterX, &next.CenterX)
	setY := get(p, wire.AttrExposureLockCenterY, &next.CenterY)
	if ref := p.check(wire.AttrExposureLockMode, wire.AttrExposureLockCenterX, wire.AttrExposureLockCenterY); ref != nil {
		return nil, ref
	}

	unit := wire.Range{Min: 0, Max: 1}
	switch {
	case !known(next.Mode):
		return nil, unsupported("exposure lock mode", next.Mode)
	case next.Mode == camera.ExposureLockRegion && (!setX || !setY):
		return nil, refuse(wire.StatusInvalidParameter, "region lock without center")
	case next.Mode == camera.ExposureLockRegion && !inRange(next.CenterX, unit):
		return nil, outOfRange("center x", next.CenterX, unit)
	case next.Mode == camera.ExposureLockRegion && !inRange(next.CenterY, unit):
		return nil, outOfRange("center y", next.CenterY, unit)
	}

	if next.Mode == camera.ExposureLockRegion {
		next.Width, next.Height = regionLockSize, regionLockSize
	} else {
		next = camera.ExposureLockState{Mode: next.Mode}
	}

	return func() step {
		*d.state.exposureLock = next
		d.touch(wire.FeatureExposureLock)
		return nil
	}, nil
}

func (d *Device) writeWhiteBalanceLock(p *params) (step, *refusal) {
	var locked bool
	get(p, wire.AttrWhiteBalanceLockLocked, &locked)
	if ref := p.check(wire.AttrWhiteBalanceLockLocked); ref != nil {
		return nil, ref
	}
	if locked && !d.state.whiteBalanceLock.lockable {
		return nil, refuse(wire.StatusUnsupported, "white balance is not lockable in %s mode",
			d.state.whiteBalance.settings.Mode)
	}

	return func() step {
		l := d.state.whiteBalanceLock
		l.locked = locked && l.lockable
		d.touch(wire.FeatureWhiteBalanceLock)
		return nil
	}, nil
}

// ---------------------------------------------------------------------------
// Zoom
// ---------------------------------------------------------------------------

func (d *Device) writeZoom(p *params) (step, *refusal) {
	z := d.state.zoom
	speed, degrade := z.speed, z.degrade

	setSpeed := get(p, wire.AttrZoomMaxSpeed, &speed)
	get(p, wire.AttrZoomQualityDegradation, &degrade)
	if ref := p.check(wire.AttrZoomMaxSpeed, wire.AttrZoomQualityDegradation); ref != nil {
		return nil, ref
	}
	if setSpeed && !inRange(speed, z.speedRange) {
		return nil, outOfRange("max speed", speed, z.speedRange)
	}

	return func() step {
		z := d.state.zoom
		z.speed, z.degrade = speed, degrade
		z.level = min(z.level, z.maxLevel())
		d.touch(wire.FeatureZoom)
		return nil
	}, nil
}

func (d *Device) controlZoom(p *params) (step, *refusal) {
	var mode camera.ZoomControlMode
	var target float64
	hasMode := get(p, wire.AttrZoomControlMode, &mode)
	hasTarget := get(p, wire.AttrZoomTarget, &target)
	if ref := p.check(wire.AttrZoomControlMode, wire.AttrZoomTarget); ref != nil {
		return nil, ref
	}

	switch {
	case !hasMode || !hasTarget:
		return nil, refuse(wire.StatusInvalidParameter, "zoom control needs a mode and a target")
	case !known(mode):
		return nil, unsupported("zoom control mode", mode)
	case !d.state.zoom.available:
		return nil, refuse(wire.StatusBusy, "zoom unavailable")
	}

	return func() step {
		z := d.state.zoom
		level := target
		if mode == camera.ZoomVelocity {
			level = z.level + target*z.speed
		}
		z.level = max(1, min(level, z.maxLevel()))
		d.touch(wire.FeatureZoom)
		return nil
	}, nil
}

// maxLevel is the highest zoom level currently allowed.
func (z *zoomValues) maxLevel() float64 {
	if z.degrade {
		return z.maxLossy
	}
	return z.maxLossless
}
