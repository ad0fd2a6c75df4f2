package interaction

import (
	"errors"
	"fmt"

	"github.com/aerolens/camsync/pkg/camera"
	"github.com/aerolens/camsync/pkg/setting"
	"github.com/aerolens/camsync/pkg/wire"
)

// ErrUnknownFeature is returned for notifications of an unknown feature.
var ErrUnknownFeature = errors.New("unknown feature")

// Dispatcher applies camera notifications to a camera.Camera.
//
// A notification may carry any subset of a feature's attributes. Values
// are overlaid onto the current state and applied as one authoritative
// update per setting, so a pending request is always settled by the first
// notification touching its setting. Supported values are applied before
// current values.
//
// Apply does not publish changes; call Flush once a batch of
// notifications has been applied.
type Dispatcher struct {
	cam *camera.Camera
}

// NewDispatcher creates a dispatcher updating cam.
func NewDispatcher(cam *camera.Camera) *Dispatcher {
	return &Dispatcher{cam: cam}
}

// Flush publishes the changes accumulated since the last flush.
func (d *Dispatcher) Flush() {
	d.cam.NotifyUpdated()
}

// Apply applies one notification. Attributes that fail to decode are
// skipped and reported in the returned error; the others are applied.
func (d *Dispatcher) Apply(n *wire.Notification) error {
	r := &attrReader{attrs: n.Changes}

	switch n.Feature {
	case wire.FeatureCamera:
		d.applyCamera(r)
	case wire.FeatureExposure:
		d.applyExposure(r)
	case wire.FeatureWhiteBalance:
		d.applyWhiteBalance(r)
	case wire.FeaturePhoto:
		d.applyPhoto(r)
	case wire.FeatureRecording:
		d.applyRecording(r)
	case wire.FeatureStyle:
		d.applyStyle(r)
	case wire.FeatureAlignment:
		d.applyAlignment(r)
	case wire.FeatureExposureLock:
		d.applyExposureLock(r)
	case wire.FeatureWhiteBalanceLock:
		d.applyWhiteBalanceLock(r)
	case wire.FeatureZoom:
		d.applyZoom(r)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFeature, n.Feature)
	}

	if r.err != nil {
		return fmt.Errorf("%s: %w", n.Feature, r.err)
	}
	return nil
}

func (d *Dispatcher) applyCamera(r *attrReader) {
	cam := d.cam

	if modes, ok := enums[camera.Mode](r, wire.AttrCameraSupportedModes); ok {
		cam.Mode().UpdateAvailable(modes...)
	}
	var mode camera.Mode
	if field(r, wire.AttrCameraMode, &mode) {
		cam.Mode().UpdateValue(mode)
	}

	if evs, ok := enums[camera.EVCompensation](r, wire.AttrCameraSupportedEV); ok {
		cam.EVCompensation().UpdateAvailable(evs...)
	}
	var ev camera.EVCompensation
	if field(r, wire.AttrCameraEVCompensation, &ev) {
		cam.EVCompensation().UpdateValue(ev)
	}

	applyBool(r, cam.AutoHDR(), wire.AttrCameraAutoHDRSupported, wire.AttrCameraAutoHDR)
	applyBool(r, cam.AutoRecord(), wire.AttrCameraAutoRecordSupported, wire.AttrCameraAutoRecord)

	var flag bool
	if field(r, wire.AttrCameraActive, &flag) {
		cam.UpdateActiveFlag(flag)
	}
	if field(r, wire.AttrCameraHDRActive, &flag) {
		cam.UpdateHDRActive(flag)
	}

	photoState, count, photoMedia := cam.PhotoState()
	a := field(r, wire.AttrCameraPhotoState, &photoState)
	b := field(r, wire.AttrCameraPhotoCount, &count)
	c := field(r, wire.AttrCameraPhotoMediaID, &photoMedia)
	if a || b || c {
		cam.UpdatePhotoState(photoState, count, photoMedia)
	}

	recState, recMedia := cam.RecordingState()
	a = field(r, wire.AttrCameraRecordingState, &recState)
	b = field(r, wire.AttrCameraRecordingMediaID, &recMedia)
	if a || b {
		cam.UpdateRecordingState(recState, recMedia)
	}
}

func applyBool(r *attrReader, s *setting.Bool, supportedID, valueID wire.AttributeID) {
	var v bool
	if field(r, supportedID, &v) {
		s.UpdateSupported(v)
	}
	if field(r, valueID, &v) {
		s.UpdateValue(v)
	}
}

func (d *Dispatcher) applyExposure(r *attrReader) {
	e := d.cam.Exposure()

	if v, ok := enums[camera.ExposureMode](r, wire.AttrExposureSupportedModes); ok {
		e.UpdateSupportedModes(v...)
	}
	if v, ok := enums[camera.ShutterSpeed](r, wire.AttrExposureSupportedShutterSpeed); ok {
		e.UpdateSupportedShutterSpeeds(v...)
	}
	if v, ok := enums[camera.ISOSensitivity](r, wire.AttrExposureSupportedISOs); ok {
		e.UpdateSupportedISOs(v...)
	}
	if v, ok := enums[camera.ISOSensitivity](r, wire.AttrExposureSupportedMaxISOs); ok {
		e.UpdateSupportedMaxISOs(v...)
	}

	s := e.Settings()
	if overlay(
		field(r, wire.AttrExposureMode, &s.Mode),
		field(r, wire.AttrExposureShutterSpeed, &s.ShutterSpeed),
		field(r, wire.AttrExposureISO, &s.ISO),
		field(r, wire.AttrExposureMaxISO, &s.MaxISO),
		field(r, wire.AttrExposureMetering, &s.Metering),
	) {
		e.Update(s)
	}
}

func (d *Dispatcher) applyWhiteBalance(r *attrReader) {
	wb := d.cam.WhiteBalance()

	if v, ok := enums[camera.WhiteBalanceMode](r, wire.AttrWhiteBalanceSupportedModes); ok {
		wb.UpdateSupportedModes(v...)
	}
	if v, ok := enums[camera.Temperature](r, wire.AttrWhiteBalanceSupportedTemperatures); ok {
		wb.UpdateSupportedTemperatures(v...)
	}

	mode, temp := wb.Mode(), wb.Temperature()
	if overlay(
		field(r, wire.AttrWhiteBalanceMode, &mode),
		field(r, wire.AttrWhiteBalanceTemperature, &temp),
	) {
		wb.Update(mode, temp)
	}
}

func (d *Dispatcher) applyPhoto(r *attrReader) {
	p := d.cam.Photo()

	var entries []wire.CapabilityEntry
	if field(r, wire.AttrPhotoCapabilities, &entries) {
		caps := make([]camera.PhotoCapability, len(entries))
		for i, e := range entries {
			caps[i] = camera.PhotoCapability{
				Modes:       wire.AsEnums[camera.PhotoMode](e.Modes),
				Formats:     wire.AsEnums[camera.PhotoFormat](e.Formats),
				FileFormats: wire.AsEnums[camera.PhotoFileFormat](e.FileFormats),
				HDR:         e.HDR,
			}
		}
		p.UpdateCapabilities(caps)
	}
	if v, ok := enums[camera.BurstValue](r, wire.AttrPhotoSupportedBurst); ok {
		p.UpdateSupportedBurstValues(v...)
	}
	if v, ok := enums[camera.BracketingValue](r, wire.AttrPhotoSupportedBracketing); ok {
		p.UpdateSupportedBracketingValues(v...)
	}
	var rng wire.Range
	if field(r, wire.AttrPhotoTimelapseRange, &rng) {
		p.UpdateTimelapseIntervalRange(rng.Min, rng.Max)
	}
	if field(r, wire.AttrPhotoGpslapseRange, &rng) {
		p.UpdateGpslapseIntervalRange(rng.Min, rng.Max)
	}

	s := p.Settings()
	if overlay(
		field(r, wire.AttrPhotoMode, &s.Mode),
		field(r, wire.AttrPhotoFormat, &s.Format),
		field(r, wire.AttrPhotoFileFormat, &s.FileFormat),
		field(r, wire.AttrPhotoBurst, &s.Burst),
		field(r, wire.AttrPhotoBracketing, &s.Bracketing),
		field(r, wire.AttrPhotoTimelapseInterval, &s.TimelapseInterval),
		field(r, wire.AttrPhotoGpslapseInterval, &s.GpslapseInterval),
	) {
		p.Update(s)
	}
}

func (d *Dispatcher) applyRecording(r *attrReader) {
	rec := d.cam.Recording()

	var entries []wire.CapabilityEntry
	if field(r, wire.AttrRecordingCapabilities, &entries) {
		caps := make([]camera.RecordingCapability, len(entries))
		for i, e := range entries {
			caps[i] = camera.RecordingCapability{
				Modes:       wire.AsEnums[camera.RecordingMode](e.Modes),
				Formats:     wire.AsEnums[camera.Resolution](e.Formats),
				FileFormats: wire.AsEnums[camera.Framerate](e.FileFormats),
				HDR:         e.HDR,
			}
		}
		rec.UpdateCapabilities(caps)
	}
	if v, ok := enums[camera.HyperlapseValue](r, wire.AttrRecordingSupportedHyperlapse); ok {
		rec.UpdateSupportedHyperlapseValues(v...)
	}

	s := rec.Settings()
	if overlay(
		field(r, wire.AttrRecordingMode, &s.Mode),
		field(r, wire.AttrRecordingResolution, &s.Resolution),
		field(r, wire.AttrRecordingFramerate, &s.Framerate),
		field(r, wire.AttrRecordingHyperlapse, &s.Hyperlapse),
	) {
		rec.Update(s)
	}

	var bitrate uint32
	if field(r, wire.AttrRecordingBitrate, &bitrate) {
		rec.UpdateBitrate(bitrate)
	}
}

var styleParameters = []struct {
	param camera.StyleParameter
	id    wire.AttributeID
}{
	{camera.Saturation, wire.AttrStyleSaturation},
	{camera.Contrast, wire.AttrStyleContrast},
	{camera.Sharpness, wire.AttrStyleSharpness},
}

func (d *Dispatcher) applyStyle(r *attrReader) {
	st := d.cam.Style()

	if v, ok := enums[camera.Style](r, wire.AttrStyleSupportedStyles); ok {
		st.UpdateSupportedStyles(v...)
	}
	var style camera.Style
	if field(r, wire.AttrStyleStyle, &style) {
		st.UpdateStyle(style)
	}
	for _, p := range styleParameters {
		var b wire.Bounded
		if field(r, p.id, &b) {
			st.UpdateParameter(p.param, b.Min, b.Value, b.Max)
		}
	}
}

func (d *Dispatcher) applyAlignment(r *attrReader) {
	al := d.cam.CreateAlignmentIfNeeded()

	yaw, pitch, roll := al.YawRange(), al.PitchRange(), al.RollRange()
	if overlay(
		rangeField(r, wire.AttrAlignmentYawRange, &yaw),
		rangeField(r, wire.AttrAlignmentPitchRange, &pitch),
		rangeField(r, wire.AttrAlignmentRollRange, &roll),
	) {
		al.UpdateRanges(yaw, pitch, roll)
	}

	o := al.Offsets()
	if overlay(
		field(r, wire.AttrAlignmentYaw, &o.Yaw),
		field(r, wire.AttrAlignmentPitch, &o.Pitch),
		field(r, wire.AttrAlignmentRoll, &o.Roll),
	) {
		al.UpdateOffsets(o.Yaw, o.Pitch, o.Roll)
	}
}

func (d *Dispatcher) applyExposureLock(r *attrReader) {
	lock := d.cam.CreateExposureLockIfNeeded()

	s := lock.State()
	if overlay(
		field(r, wire.AttrExposureLockMode, &s.Mode),
		field(r, wire.AttrExposureLockCenterX, &s.CenterX),
		field(r, wire.AttrExposureLockCenterY, &s.CenterY),
		field(r, wire.AttrExposureLockWidth, &s.Width),
		field(r, wire.AttrExposureLockHeight, &s.Height),
	) {
		lock.UpdateMode(s.Mode, s.CenterX, s.CenterY, s.Width, s.Height)
	}
}

func (d *Dispatcher) applyWhiteBalanceLock(r *attrReader) {
	lock := d.cam.CreateWhiteBalanceLockIfNeeded()

	var v bool
	if field(r, wire.AttrWhiteBalanceLockLockable, &v) {
		lock.UpdateLockable(v)
	}
	if field(r, wire.AttrWhiteBalanceLockLocked, &v) {
		lock.UpdateLocked(v)
	}
}

func (d *Dispatcher) applyZoom(r *attrReader) {
	z := d.cam.CreateZoomIfNeeded()

	var available bool
	if field(r, wire.AttrZoomAvailable, &available) {
		if available {
			z.UpdateAvailability(true)
		} else {
			z.Reset()
		}
	}

	var level float64
	if field(r, wire.AttrZoomMaxLossyLevel, &level) {
		z.UpdateMaxLossyLevel(level)
	}
	if field(r, wire.AttrZoomMaxLosslessLevel, &level) {
		z.UpdateMaxLosslessLevel(level)
	}
	if field(r, wire.AttrZoomCurrentLevel, &level) {
		z.UpdateCurrentLevel(level)
	}

	var speedRange wire.Range
	if field(r, wire.AttrZoomMaxSpeedRange, &speedRange) {
		z.MaxSpeed().UpdateBounds(speedRange.Min, speedRange.Max)
	}
	var speed float64
	if field(r, wire.AttrZoomMaxSpeed, &speed) {
		z.MaxSpeed().UpdateValue(speed)
	}

	var allowed bool
	if field(r, wire.AttrZoomQualityDegradation, &allowed) {
		z.UpdateQualityDegradationAllowance(allowed)
	}
}

// attrReader decodes notification attributes, collecting decode errors.
type attrReader struct {
	attrs wire.Attributes
	err   error
}

// field decodes attribute id into dst if present. It reports whether dst
// was written.
func field[T any](r *attrReader, id wire.AttributeID, dst *T) bool {
	raw, ok := r.attrs[id]
	if !ok {
		return false
	}
	var v T
	if err := wire.Unmarshal(raw, &v); err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("attribute %d: %w", id, err))
		return false
	}
	*dst = v
	return true
}

func enums[E ~uint8](r *attrReader, id wire.AttributeID) ([]E, bool) {
	var ordinals []uint8
	if !field(r, id, &ordinals) {
		return nil, false
	}
	return wire.AsEnums[E](ordinals), true
}

func rangeField(r *attrReader, id wire.AttributeID, dst *setting.Range[float64]) bool {
	var rng wire.Range
	if !field(r, id, &rng) {
		return false
	}
	*dst = setting.Range[float64]{Min: rng.Min, Max: rng.Max}
	return true
}

// overlay reports whether any of the fields was present. All arguments are
// evaluated, so every present field is decoded.
func overlay(present ...bool) bool {
	for _, p := range present {
		if p {
			return true
		}
	}
	return false
}
