package camera

import (
	"github.com/aerolens/camsync/pkg/capability"
	"github.com/aerolens/camsync/pkg/setting"
)

// RecordingCapability is one recording capability entry pushed by the device.
type RecordingCapability = capability.Descriptor[RecordingMode, Resolution, Framerate]

// RecordingMatrix is the recording Mode -> Resolution -> Framerate -> HDR matrix.
type RecordingMatrix = capability.Matrix[RecordingMode, Resolution, Framerate]

// RecordingSettings is the recording field tuple.
type RecordingSettings struct {
	Mode       RecordingMode
	Resolution Resolution
	Framerate  Framerate
	Hyperlapse HyperlapseValue
}

// DefaultRecording is the recording state before the device reports any.
var DefaultRecording = RecordingSettings{
	Mode:       RecordingStandard,
	Resolution: ResolutionDCI4K,
	Framerate:  FPS30,
	Hyperlapse: HyperlapseRatio15,
}

// Recording is the camera recording mode setting.
type Recording struct {
	ctrl    *setting.Controller[RecordingSettings]
	backend RecordingBackend

	matrix      RecordingMatrix
	hyperlapses capability.Set[HyperlapseValue]
	bitrate     uint32
}

// NewRecording creates a recording setting with an empty capability matrix.
func NewRecording(backend RecordingBackend, onChange setting.ChangeFunc) *Recording {
	return &Recording{
		ctrl:        setting.NewController("recording", DefaultRecording, onChange),
		backend:     backend,
		hyperlapses: capability.Set[HyperlapseValue]{},
	}
}

// Settings returns the current recording tuple.
func (r *Recording) Settings() RecordingSettings { return r.ctrl.Get() }

// Mode returns the recording mode.
func (r *Recording) Mode() RecordingMode { return r.ctrl.Get().Mode }

// Resolution returns the recording resolution.
func (r *Recording) Resolution() Resolution { return r.ctrl.Get().Resolution }

// Framerate returns the recording framerate.
func (r *Recording) Framerate() Framerate { return r.ctrl.Get().Framerate }

// HyperlapseValue returns the hyperlapse ratio.
func (r *Recording) HyperlapseValue() HyperlapseValue { return r.ctrl.Get().Hyperlapse }

// Bitrate returns the bitrate reported by the device, in bits per second.
func (r *Recording) Bitrate() uint32 { return r.bitrate }

// IsUpdating returns true while a request awaits confirmation.
func (r *Recording) IsUpdating() bool { return r.ctrl.IsUpdating() }

// Capabilities returns the current capability matrix.
func (r *Recording) Capabilities() RecordingMatrix { return r.matrix }

// SupportedModes returns the modes present in the capability matrix.
func (r *Recording) SupportedModes() capability.Set[RecordingMode] { return r.matrix.Modes() }

// SupportedResolutions returns the resolutions supported in the current mode.
func (r *Recording) SupportedResolutions() capability.Set[Resolution] {
	return r.matrix.FormatsFor(r.Mode())
}

// SupportedFramerates returns the framerates supported in the current mode
// and resolution.
func (r *Recording) SupportedFramerates() capability.Set[Framerate] {
	s := r.ctrl.Get()
	return r.matrix.FileFormatsFor(s.Mode, s.Resolution)
}

// SupportedHyperlapseValues returns the supported hyperlapse ratios.
func (r *Recording) SupportedHyperlapseValues() capability.Set[HyperlapseValue] {
	return r.hyperlapses.Clone()
}

// IsHDRAvailable reports HDR availability for the current configuration.
func (r *Recording) IsHDRAvailable() bool {
	s := r.ctrl.Get()
	return r.matrix.HDRAvailable(s.Mode, s.Resolution, s.Framerate)
}

// SetMode requests a recording mode. Other fields are left to the device.
func (r *Recording) SetMode(mode RecordingMode) {
	if !r.matrix.Supports(mode) {
		return
	}
	r.send(RecordingRequest{Mode: mode})
}

// SetResolution requests a resolution within the current mode.
func (r *Recording) SetResolution(res Resolution) {
	s := r.ctrl.Get()
	if !r.matrix.SupportsFormat(s.Mode, res) {
		return
	}
	r.send(RecordingRequest{Mode: s.Mode, Resolution: &res})
}

// SetFramerate requests a framerate within the current mode and resolution.
func (r *Recording) SetFramerate(fps Framerate) {
	s := r.ctrl.Get()
	if !r.matrix.SupportsFileFormat(s.Mode, s.Resolution, fps) {
		return
	}
	r.send(RecordingRequest{Mode: s.Mode, Framerate: &fps})
}

// SetHyperlapseValue requests a hyperlapse ratio.
func (r *Recording) SetHyperlapseValue(h HyperlapseValue) {
	if !r.hyperlapses.Contains(h) {
		return
	}
	r.send(RecordingRequest{Mode: r.Mode(), Hyperlapse: &h})
}

// SetStandardMode switches to standard recording.
func (r *Recording) SetStandardMode(res Resolution, fps Framerate) {
	r.setMode(RecordingStandard, res, fps, nil)
}

// SetHyperlapseMode switches to hyperlapse recording.
func (r *Recording) SetHyperlapseMode(res Resolution, fps Framerate, h HyperlapseValue) {
	if !r.hyperlapses.Contains(h) {
		return
	}
	r.setMode(RecordingHyperlapse, res, fps, &h)
}

// SetSlowMotionMode switches to slow motion recording.
func (r *Recording) SetSlowMotionMode(res Resolution, fps Framerate) {
	r.setMode(RecordingSlowMotion, res, fps, nil)
}

// SetHighFramerateMode switches to high framerate recording.
func (r *Recording) SetHighFramerateMode(res Resolution, fps Framerate) {
	r.setMode(RecordingHighFramerate, res, fps, nil)
}

func (r *Recording) setMode(mode RecordingMode, res Resolution, fps Framerate, h *HyperlapseValue) {
	if !r.matrix.SupportsFileFormat(mode, res, fps) {
		return
	}
	r.send(RecordingRequest{Mode: mode, Resolution: &res, Framerate: &fps, Hyperlapse: h})
}

func (r *Recording) send(req RecordingRequest) {
	r.ctrl.Request(req.apply(r.ctrl.Get()), func(RecordingSettings) bool {
		return r.backend.SetRecording(req)
	})
}

// apply returns s with the fields carried by the request.
func (req RecordingRequest) apply(s RecordingSettings) RecordingSettings {
	s.Mode = req.Mode
	if req.Resolution != nil {
		s.Resolution = *req.Resolution
	}
	if req.Framerate != nil {
		s.Framerate = *req.Framerate
	}
	if req.Hyperlapse != nil {
		s.Hyperlapse = *req.Hyperlapse
	}
	return s
}

// UpdateCapabilities rebuilds the capability matrix and resyncs mode,
// resolution and framerate in hierarchy order, unless a request is pending.
func (r *Recording) UpdateCapabilities(caps []RecordingCapability) *Recording {
	next := capability.Build(caps)
	if next.Equal(r.matrix) {
		return r
	}
	r.matrix = next
	resynced := r.ctrl.Resync(func(s *RecordingSettings) {
		s.Mode, s.Resolution, s.Framerate = next.Resolve(s.Mode, s.Resolution, s.Framerate)
	})
	if !resynced {
		r.ctrl.NotifyChange(false)
	}
	return r
}

// UpdateSupportedHyperlapseValues replaces the supported hyperlapse ratios.
func (r *Recording) UpdateSupportedHyperlapseValues(values ...HyperlapseValue) *Recording {
	updateSupported(r.ctrl, &r.hyperlapses, values, func(s *RecordingSettings) *HyperlapseValue { return &s.Hyperlapse })
	return r
}

// Update applies the full recording tuple reported by the device.
func (r *Recording) Update(s RecordingSettings) *Recording {
	r.ctrl.Update(s)
	return r
}

// UpdateMode applies the mode reported by the device.
func (r *Recording) UpdateMode(mode RecordingMode) *Recording {
	r.ctrl.UpdateWith(func(s *RecordingSettings) { s.Mode = mode })
	return r
}

// UpdateResolution applies the resolution reported by the device.
func (r *Recording) UpdateResolution(res Resolution) *Recording {
	r.ctrl.UpdateWith(func(s *RecordingSettings) { s.Resolution = res })
	return r
}

// UpdateFramerate applies the framerate reported by the device.
func (r *Recording) UpdateFramerate(fps Framerate) *Recording {
	r.ctrl.UpdateWith(func(s *RecordingSettings) { s.Framerate = fps })
	return r
}

// UpdateHyperlapseValue applies the hyperlapse ratio reported by the device.
func (r *Recording) UpdateHyperlapseValue(h HyperlapseValue) *Recording {
	r.ctrl.UpdateWith(func(s *RecordingSettings) { s.Hyperlapse = h })
	return r
}

// UpdateBitrate applies the bitrate reported by the device.
func (r *Recording) UpdateBitrate(bitrate uint32) *Recording {
	if r.bitrate != bitrate {
		r.bitrate = bitrate
		r.ctrl.NotifyChange(false)
	}
	return r
}

func (r *Recording) parts() []part {
	return []part{r.ctrl}
}
