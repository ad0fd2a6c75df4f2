package sim

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aerolens/camsync/pkg/camera"
	"github.com/aerolens/camsync/pkg/capability"
	"github.com/aerolens/camsync/pkg/wire"
)

// state holds the authoritative values of a simulated camera.
type state struct {
	camera       cameraValues
	exposure     exposureValues
	whiteBalance whiteBalanceValues
	photo        photoValues
	recording    recordingValues
	style        styleValues

	alignment        *alignmentValues
	exposureLock     *camera.ExposureLockState
	whiteBalanceLock *whiteBalanceLockValues
	zoom             *zoomValues

	mediaSeq int
}

type cameraValues struct {
	modes               []camera.Mode
	mode                camera.Mode
	evs                 []camera.EVCompensation
	ev                  camera.EVCompensation
	autoHDRSupported    bool
	autoHDR             bool
	autoRecordSupported bool
	autoRecord          bool

	active         bool
	hdrActive      bool
	photoState     camera.PhotoState
	photoCount     int
	photoMedia     string
	recordingState camera.RecordingState
	recordingMedia string
}

type exposureValues struct {
	modes         []camera.ExposureMode
	shutterSpeeds []camera.ShutterSpeed
	isos          []camera.ISOSensitivity
	maxISOs       []camera.ISOSensitivity
	settings      camera.ExposureSettings
}

type whiteBalanceValues struct {
	modes        []camera.WhiteBalanceMode
	temperatures []camera.Temperature
	settings     camera.WhiteBalanceSettings
}

type photoValues struct {
	entries        []wire.CapabilityEntry
	matrix         camera.PhotoMatrix
	bursts         []camera.BurstValue
	bracketings    []camera.BracketingValue
	timelapseRange wire.Range
	gpslapseRange  wire.Range
	settings       camera.PhotoSettings
}

type recordingValues struct {
	entries     []wire.CapabilityEntry
	matrix      camera.RecordingMatrix
	hyperlapses []camera.HyperlapseValue
	bitrate     uint32
	settings    camera.RecordingSettings
}

type styleValues struct {
	styles []camera.Style
	style  camera.Style
	params [3]wire.Bounded // indexed by camera.StyleParameter
}

type alignmentValues struct {
	yaw, pitch, roll wire.Range
	offsets          camera.AlignmentOffsets
}

type whiteBalanceLockValues struct {
	lockable bool
	locked   bool
}

type zoomValues struct {
	available   bool
	level       float64
	maxLossy    float64
	maxLossless float64
	speedRange  wire.Range
	speed       float64
	degrade     bool
}

// regionLockSize is the width and height reported for region locks.
const regionLockSize = 0.2

// newState builds the initial state described by a profile.
func newState(p *Profile) (*state, error) {
	ps := &parser{}
	s := &state{}

	c := p.Camera
	s.camera.modes = list[camera.Mode](ps, "camera.modes", c.Modes)
	s.camera.mode = pick(ps, "camera.mode", c.Mode, s.camera.modes)
	s.camera.evs = list[camera.EVCompensation](ps, "camera.ev_compensations", c.EVCompensations)
	s.camera.ev = pick(ps, "camera.ev_compensation", c.EVCompensation, s.camera.evs)
	if c.AutoHDR != nil {
		s.camera.autoHDRSupported, s.camera.autoHDR = true, *c.AutoHDR
	}
	if c.AutoRecord != nil {
		s.camera.autoRecordSupported, s.camera.autoRecord = true, *c.AutoRecord
	}
	s.camera.active = true

	e := p.Exposure
	s.exposure.modes = list[camera.ExposureMode](ps, "exposure.modes", e.Modes)
	s.exposure.shutterSpeeds = list[camera.ShutterSpeed](ps, "exposure.shutter_speeds", e.ShutterSpeeds)
	s.exposure.isos = list[camera.ISOSensitivity](ps, "exposure.isos", e.ISOs)
	s.exposure.maxISOs = list[camera.ISOSensitivity](ps, "exposure.max_isos", e.MaxISOs)
	s.exposure.settings = camera.ExposureSettings{
		Mode:         pick(ps, "exposure.mode", e.Mode, s.exposure.modes),
		ShutterSpeed: pick(ps, "exposure.shutter_speed", e.ShutterSpeed, s.exposure.shutterSpeeds),
		ISO:          pick(ps, "exposure.iso", e.ISO, s.exposure.isos),
		MaxISO:       pick(ps, "exposure.max_iso", e.MaxISO, s.exposure.maxISOs),
		Metering:     pick[camera.MeteringMode](ps, "exposure.metering", e.Metering, nil),
	}

	wb := p.WhiteBalance
	s.whiteBalance.modes = list[camera.WhiteBalanceMode](ps, "white_balance.modes", wb.Modes)
	s.whiteBalance.temperatures = list[camera.Temperature](ps, "white_balance.temperatures", wb.Temperatures)
	s.whiteBalance.settings = camera.WhiteBalanceSettings{
		Mode:        pick(ps, "white_balance.mode", wb.Mode, s.whiteBalance.modes),
		Temperature: pick(ps, "white_balance.temperature", wb.Temperature, s.whiteBalance.temperatures),
	}

	s.photo = newPhotoValues(ps, p.Photo)
	s.recording = newRecordingValues(ps, p.Recording)

	st := p.Style
	s.style.styles = list[camera.Style](ps, "style.styles", st.Styles)
	s.style.style = pick(ps, "style.style", st.Style, s.style.styles)
	for param, b := range map[camera.StyleParameter]BoundedProfile{
		camera.Saturation: st.Saturation,
		camera.Contrast:   st.Contrast,
		camera.Sharpness:  st.Sharpness,
	} {
		if b.Value < b.Min || b.Value > b.Max {
			ps.fail("style."+param.String(), fmt.Errorf("value %d outside [%d, %d]", b.Value, b.Min, b.Max))
		}
		s.style.params[param] = wire.Bounded{Min: b.Min, Value: b.Value, Max: b.Max}
	}

	if a := p.Alignment; a != nil {
		s.alignment = &alignmentValues{
			yaw:   wire.Range(a.Yaw),
			pitch: wire.Range(a.Pitch),
			roll:  wire.Range(a.Roll),
		}
	}
	if p.ExposureLock {
		s.exposureLock = &camera.ExposureLockState{Mode: camera.ExposureLockNone}
	}
	if p.WhiteBalanceLock {
		s.whiteBalanceLock = &whiteBalanceLockValues{}
		s.refreshWhiteBalanceLock()
	}
	if z := p.Zoom; z != nil {
		if z.MaxSpeed < z.MaxSpeedRange.Min || z.MaxSpeed > z.MaxSpeedRange.Max {
			ps.fail("zoom.max_speed", fmt.Errorf("%g outside [%g, %g]", z.MaxSpeed, z.MaxSpeedRange.Min, z.MaxSpeedRange.Max))
		}
		s.zoom = &zoomValues{
			available:   true,
			level:       1,
			maxLossy:    z.MaxLossyLevel,
			maxLossless: z.MaxLosslessLevel,
			speedRange:  wire.Range(z.MaxSpeedRange),
			speed:       z.MaxSpeed,
			degrade:     z.QualityDegradation,
		}
	}

	if len(ps.errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, errors.Join(ps.errs...))
	}

	s.refreshCaptureState()
	s.refreshHDR()
	return s, nil
}

func newPhotoValues(ps *parser, p PhotoProfile) photoValues {
	var v photoValues
	caps := make([]camera.PhotoCapability, 0, len(p.Capabilities))
	for i, c := range p.Capabilities {
		field := fmt.Sprintf("photo.capabilities[%d]", i)
		d := camera.PhotoCapability{
			Modes:       list[camera.PhotoMode](ps, field+".modes", c.Modes),
			Formats:     list[camera.PhotoFormat](ps, field+".formats", c.Formats),
			FileFormats: list[camera.PhotoFileFormat](ps, field+".file_formats", c.FileFormats),
			HDR:         c.HDR,
		}
		caps = append(caps, d)
		v.entries = append(v.entries, wire.CapabilityEntry{
			Modes:       wire.Enums(d.Modes...),
			Formats:     wire.Enums(d.Formats...),
			FileFormats: wire.Enums(d.FileFormats...),
			HDR:         d.HDR,
		})
	}
	v.matrix = capability.Build(caps)
	v.bursts = list[camera.BurstValue](ps, "photo.burst_values", p.BurstValues)
	v.bracketings = list[camera.BracketingValue](ps, "photo.bracketing_values", p.BracketingValues)
	v.timelapseRange = wire.Range(p.TimelapseRange)
	v.gpslapseRange = wire.Range(p.GpslapseRange)

	v.settings = camera.PhotoSettings{
		Mode:              pick[camera.PhotoMode](ps, "photo.mode", p.Mode, nil),
		Format:            pick[camera.PhotoFormat](ps, "photo.format", p.Format, nil),
		FileFormat:        pick[camera.PhotoFileFormat](ps, "photo.file_format", p.FileFormat, nil),
		Burst:             pick(ps, "photo.burst", p.Burst, v.bursts),
		Bracketing:        pick(ps, "photo.bracketing", p.Bracketing, v.bracketings),
		TimelapseInterval: p.TimelapseInterval,
		GpslapseInterval:  p.GpslapseInterval,
	}
	s := &v.settings
	if !v.matrix.IsEmpty() && !v.matrix.SupportsFileFormat(s.Mode, s.Format, s.FileFormat) {
		ps.fail("photo", fmt.Errorf("%s/%s/%s is not supported", s.Mode, s.Format, s.FileFormat))
	}
	return v
}

func newRecordingValues(ps *parser, p RecordingProfile) recordingValues {
	var v recordingValues
	caps := make([]camera.RecordingCapability, 0, len(p.Capabilities))
	for i, c := range p.Capabilities {
		field := fmt.Sprintf("recording.capabilities[%d]", i)
		d := camera.RecordingCapability{
			Modes:       list[camera.RecordingMode](ps, field+".modes", c.Modes),
			Formats:     list[camera.Resolution](ps, field+".resolutions", c.Resolutions),
			FileFormats: list[camera.Framerate](ps, field+".framerates", c.Framerates),
			HDR:         c.HDR,
		}
		caps = append(caps, d)
		v.entries = append(v.entries, wire.CapabilityEntry{
			Modes:       wire.Enums(d.Modes...),
			Formats:     wire.Enums(d.Formats...),
			FileFormats: wire.Enums(d.FileFormats...),
			HDR:         d.HDR,
		})
	}
	v.matrix = capability.Build(caps)
	v.hyperlapses = list[camera.HyperlapseValue](ps, "recording.hyperlapse_values", p.HyperlapseValues)
	v.bitrate = p.Bitrate

	v.settings = camera.RecordingSettings{
		Mode:       pick[camera.RecordingMode](ps, "recording.mode", p.Mode, nil),
		Resolution: pick[camera.Resolution](ps, "recording.resolution", p.Resolution, nil),
		Framerate:  pick[camera.Framerate](ps, "recording.framerate", p.Framerate, nil),
		Hyperlapse: pick(ps, "recording.hyperlapse", p.Hyperlapse, v.hyperlapses),
	}
	s := &v.settings
	if !v.matrix.IsEmpty() && !v.matrix.SupportsFileFormat(s.Mode, s.Resolution, s.Framerate) {
		ps.fail("recording", fmt.Errorf("%s/%s/%s is not supported", s.Mode, s.Resolution, s.Framerate))
	}
	return v
}

// refreshCaptureState makes the capture function of the current camera
// mode available and the other one unavailable.
func (s *state) refreshCaptureState() {
	c := &s.camera
	if c.mode == camera.ModePhoto {
		if c.photoState == camera.PhotoUnavailable {
			c.photoState = camera.PhotoStopped
		}
		c.recordingState = camera.RecordingUnavailable
		return
	}
	if c.recordingState == camera.RecordingUnavailable {
		c.recordingState = camera.RecordingStopped
	}
	c.photoState = camera.PhotoUnavailable
}

// refreshHDR recomputes whether HDR is active for the current
// configuration. It reports whether the flag changed.
func (s *state) refreshHDR() bool {
	var available bool
	if s.camera.mode == camera.ModePhoto {
		p := s.photo.settings
		available = s.photo.matrix.HDRAvailable(p.Mode, p.Format, p.FileFormat)
	} else {
		r := s.recording.settings
		available = s.recording.matrix.HDRAvailable(r.Mode, r.Resolution, r.Framerate)
	}
	active := s.camera.autoHDR && available
	changed := active != s.camera.hdrActive
	s.camera.hdrActive = active
	return changed
}

// refreshWhiteBalanceLock makes the lock available in automatic white
// balance only, releasing it otherwise. It reports whether the lock changed.
func (s *state) refreshWhiteBalanceLock() bool {
	l := s.whiteBalanceLock
	if l == nil {
		return false
	}
	lockable := s.whiteBalance.settings.Mode == camera.WhiteBalanceAutomatic
	locked := l.locked && lockable
	changed := lockable != l.lockable || locked != l.locked
	l.lockable, l.locked = lockable, locked
	return changed
}

func (s *state) nextMediaID(prefix string) string {
	s.mediaSeq++
	return fmt.Sprintf("%s_%04d", prefix, s.mediaSeq)
}

// ---------------------------------------------------------------------------
// Attributes
// ---------------------------------------------------------------------------

// features returns the features the camera has. The camera feature comes
// last so that a client sees complete state when the camera appears.
func (s *state) features() []wire.FeatureID {
	ids := []wire.FeatureID{
		wire.FeatureExposure,
		wire.FeatureWhiteBalance,
		wire.FeaturePhoto,
		wire.FeatureRecording,
		wire.FeatureStyle,
	}
	if s.alignment != nil {
		ids = append(ids, wire.FeatureAlignment)
	}
	if s.exposureLock != nil {
		ids = append(ids, wire.FeatureExposureLock)
	}
	if s.whiteBalanceLock != nil {
		ids = append(ids, wire.FeatureWhiteBalanceLock)
	}
	if s.zoom != nil {
		ids = append(ids, wire.FeatureZoom)
	}
	return append(ids, wire.FeatureCamera)
}

// has reports whether the camera has feature f.
func (s *state) has(f wire.FeatureID) bool {
	return slices.Contains(s.features(), f)
}

// snapshot returns the full state of feature f: supported values followed
// by current values.
func (s *state) snapshot(f wire.FeatureID) *wire.AttributeBuilder {
	b := wire.NewAttributeBuilder()
	s.putCapabilities(b, f)
	s.putValues(b, f)
	return b
}

func (s *state) putCapabilities(b *wire.AttributeBuilder, f wire.FeatureID) {
	switch f {
	case wire.FeatureCamera:
		b.Put(wire.AttrCameraSupportedModes, wire.Enums(s.camera.modes...)).
			Put(wire.AttrCameraSupportedEV, wire.Enums(s.camera.evs...)).
			Put(wire.AttrCameraAutoHDRSupported, s.camera.autoHDRSupported).
			Put(wire.AttrCameraAutoRecordSupported, s.camera.autoRecordSupported)
	case wire.FeatureExposure:
		b.Put(wire.AttrExposureSupportedModes, wire.Enums(s.exposure.modes...)).
			Put(wire.AttrExposureSupportedShutterSpeed, wire.Enums(s.exposure.shutterSpeeds...)).
			Put(wire.AttrExposureSupportedISOs, wire.Enums(s.exposure.isos...)).
			Put(wire.AttrExposureSupportedMaxISOs, wire.Enums(s.exposure.maxISOs...))
	case wire.FeatureWhiteBalance:
		b.Put(wire.AttrWhiteBalanceSupportedModes, wire.Enums(s.whiteBalance.modes...)).
			Put(wire.AttrWhiteBalanceSupportedTemperatures, wire.Enums(s.whiteBalance.temperatures...))
	case wire.FeaturePhoto:
		b.Put(wire.AttrPhotoCapabilities, s.photo.entries).
			Put(wire.AttrPhotoSupportedBurst, wire.Enums(s.photo.bursts...)).
			Put(wire.AttrPhotoSupportedBracketing, wire.Enums(s.photo.bracketings...)).
			Put(wire.AttrPhotoTimelapseRange, s.photo.timelapseRange).
			Put(wire.AttrPhotoGpslapseRange, s.photo.gpslapseRange)
	case wire.FeatureRecording:
		b.Put(wire.AttrRecordingCapabilities, s.recording.entries).
			Put(wire.AttrRecordingSupportedHyperlapse, wire.Enums(s.recording.hyperlapses...))
	case wire.FeatureStyle:
		b.Put(wire.AttrStyleSupportedStyles, wire.Enums(s.style.styles...))
	case wire.FeatureAlignment:
		b.Put(wire.AttrAlignmentYawRange, s.alignment.yaw).
			Put(wire.AttrAlignmentPitchRange, s.alignment.pitch).
			Put(wire.AttrAlignmentRollRange, s.alignment.roll)
	case wire.FeatureZoom:
		b.Put(wire.AttrZoomMaxSpeedRange, s.zoom.speedRange).
			Put(wire.AttrZoomMaxLossyLevel, s.zoom.maxLossy).
			Put(wire.AttrZoomMaxLosslessLevel, s.zoom.maxLossless)
	}
}

// values returns the current values of feature f.
func (s *state) values(f wire.FeatureID) *wire.AttributeBuilder {
	b := wire.NewAttributeBuilder()
	s.putValues(b, f)
	return b
}

func (s *state) putValues(b *wire.AttributeBuilder, f wire.FeatureID) {
	switch f {
	case wire.FeatureCamera:
		c := s.camera
		b.Put(wire.AttrCameraMode, c.mode).
			Put(wire.AttrCameraEVCompensation, c.ev).
			Put(wire.AttrCameraAutoHDR, c.autoHDR).
			Put(wire.AttrCameraAutoRecord, c.autoRecord).
			Put(wire.AttrCameraActive, c.active).
			Put(wire.AttrCameraHDRActive, c.hdrActive).
			Put(wire.AttrCameraPhotoState, c.photoState).
			Put(wire.AttrCameraPhotoCount, c.photoCount).
			Put(wire.AttrCameraPhotoMediaID, c.photoMedia).
			Put(wire.AttrCameraRecordingState, c.recordingState).
			Put(wire.AttrCameraRecordingMediaID, c.recordingMedia)
	case wire.FeatureExposure:
		e := s.exposure.settings
		b.Put(wire.AttrExposureMode, e.Mode).
			Put(wire.AttrExposureShutterSpeed, e.ShutterSpeed).
			Put(wire.AttrExposureISO, e.ISO).
			Put(wire.AttrExposureMaxISO, e.MaxISO).
			Put(wire.AttrExposureMetering, e.Metering)
	case wire.FeatureWhiteBalance:
		wb := s.whiteBalance.settings
		b.Put(wire.AttrWhiteBalanceMode, wb.Mode).
			Put(wire.AttrWhiteBalanceTemperature, wb.Temperature)
	case wire.FeaturePhoto:
		p := s.photo.settings
		b.Put(wire.AttrPhotoMode, p.Mode).
			Put(wire.AttrPhotoFormat, p.Format).
			Put(wire.AttrPhotoFileFormat, p.FileFormat).
			Put(wire.AttrPhotoBurst, p.Burst).
			Put(wire.AttrPhotoBracketing, p.Bracketing).
			Put(wire.AttrPhotoTimelapseInterval, p.TimelapseInterval).
			Put(wire.AttrPhotoGpslapseInterval, p.GpslapseInterval)
	case wire.FeatureRecording:
		r := s.recording.settings
		b.Put(wire.AttrRecordingMode, r.Mode).
			Put(wire.AttrRecordingResolution, r.Resolution).
			Put(wire.AttrRecordingFramerate, r.Framerate).
			Put(wire.AttrRecordingHyperlapse, r.Hyperlapse).
			Put(wire.AttrRecordingBitrate, s.recording.bitrate)
	case wire.FeatureStyle:
		b.Put(wire.AttrStyleStyle, s.style.style).
			Put(wire.AttrStyleSaturation, s.style.params[camera.Saturation]).
			Put(wire.AttrStyleContrast, s.style.params[camera.Contrast]).
			Put(wire.AttrStyleSharpness, s.style.params[camera.Sharpness])
	case wire.FeatureAlignment:
		o := s.alignment.offsets
		b.Put(wire.AttrAlignmentYaw, o.Yaw).
			Put(wire.AttrAlignmentPitch, o.Pitch).
			Put(wire.AttrAlignmentRoll, o.Roll)
	case wire.FeatureExposureLock:
		l := s.exposureLock
		b.Put(wire.AttrExposureLockMode, l.Mode).
			Put(wire.AttrExposureLockCenterX, l.CenterX).
			Put(wire.AttrExposureLockCenterY, l.CenterY).
			Put(wire.AttrExposureLockWidth, l.Width).
			Put(wire.AttrExposureLockHeight, l.Height)
	case wire.FeatureWhiteBalanceLock:
		b.Put(wire.AttrWhiteBalanceLockLockable, s.whiteBalanceLock.lockable).
			Put(wire.AttrWhiteBalanceLockLocked, s.whiteBalanceLock.locked)
	case wire.FeatureZoom:
		z := s.zoom
		b.Put(wire.AttrZoomAvailable, z.available).
			Put(wire.AttrZoomCurrentLevel, z.level).
			Put(wire.AttrZoomMaxSpeed, z.speed).
			Put(wire.AttrZoomQualityDegradation, z.degrade)
	}
}

// ---------------------------------------------------------------------------
// Profile parsing
// ---------------------------------------------------------------------------

// parser collects profile errors so that all of them are reported at once.
type parser struct {
	errs []error
}

func (p *parser) fail(field string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s: %w", field, err))
}

func list[E camera.Enum](p *parser, field string, names []string) []E {
	out := make([]E, 0, len(names))
	for _, name := range names {
		v, err := camera.ParseEnum[E](name)
		if err != nil {
			p.fail(field, err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// pick parses an initial value. An empty name selects the first supported
// value, or the zero value without a supported list.
func pick[E camera.Enum](p *parser, field, name string, supported []E) E {
	var zero E
	if name == "" {
		if len(supported) > 0 {
			return supported[0]
		}
		return zero
	}
	v, err := camera.ParseEnum[E](name)
	if err != nil {
		p.fail(field, err)
		return zero
	}
	if len(supported) > 0 && !slices.Contains(supported, v) {
		p.fail(field, fmt.Errorf("%s is not supported", v))
	}
	return v
}
