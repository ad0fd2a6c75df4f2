package camera

import (
	"github.com/aerolens/camsync/pkg/capability"
	"github.com/aerolens/camsync/pkg/setting"
)

// PhotoCapability is one photo capability entry pushed by the device.
type PhotoCapability = capability.Descriptor[PhotoMode, PhotoFormat, PhotoFileFormat]

// PhotoMatrix is the photo Mode -> Format -> FileFormat -> HDR matrix.
type PhotoMatrix = capability.Matrix[PhotoMode, PhotoFormat, PhotoFileFormat]

// PhotoSettings is the photo field tuple.
type PhotoSettings struct {
	Mode              PhotoMode
	Format            PhotoFormat
	FileFormat        PhotoFileFormat
	Burst             BurstValue
	Bracketing        BracketingValue
	TimelapseInterval float64
	GpslapseInterval  float64
}

// DefaultPhoto is the photo state before the device reports any.
var DefaultPhoto = PhotoSettings{
	Mode:              PhotoSingle,
	Format:            PhotoRectilinear,
	FileFormat:        PhotoJPEG,
	Burst:             Burst14Over4s,
	Bracketing:        BracketingEV1,
	TimelapseInterval: 1,
	GpslapseInterval:  1,
}

// Photo is the camera photo mode setting.
//
// Mode, format and file format are validated together against the
// capability matrix; burst and bracketing values against their own
// supported sets.
type Photo struct {
	ctrl    *setting.Controller[PhotoSettings]
	backend PhotoBackend

	matrix         PhotoMatrix
	bursts         capability.Set[BurstValue]
	bracketings    capability.Set[BracketingValue]
	timelapseRange setting.Range[float64]
	gpslapseRange  setting.Range[float64]
}

// NewPhoto creates a photo setting with an empty capability matrix.
func NewPhoto(backend PhotoBackend, onChange setting.ChangeFunc) *Photo {
	return &Photo{
		ctrl:        setting.NewController("photo", DefaultPhoto, onChange),
		backend:     backend,
		bursts:      capability.Set[BurstValue]{},
		bracketings: capability.Set[BracketingValue]{},
	}
}

// Settings returns the current photo tuple.
func (p *Photo) Settings() PhotoSettings { return p.ctrl.Get() }

// Mode returns the photo mode.
func (p *Photo) Mode() PhotoMode { return p.ctrl.Get().Mode }

// Format returns the photo format.
func (p *Photo) Format() PhotoFormat { return p.ctrl.Get().Format }

// FileFormat returns the photo file format.
func (p *Photo) FileFormat() PhotoFileFormat { return p.ctrl.Get().FileFormat }

// BurstValue returns the burst value used in burst mode.
func (p *Photo) BurstValue() BurstValue { return p.ctrl.Get().Burst }

// BracketingValue returns the bracketing value used in bracketing mode.
func (p *Photo) BracketingValue() BracketingValue { return p.ctrl.Get().Bracketing }

// TimelapseInterval returns the time-lapse interval in seconds.
func (p *Photo) TimelapseInterval() float64 { return p.ctrl.Get().TimelapseInterval }

// GpslapseInterval returns the GPS-lapse interval in meters.
func (p *Photo) GpslapseInterval() float64 { return p.ctrl.Get().GpslapseInterval }

// IsUpdating returns true while a request awaits confirmation.
func (p *Photo) IsUpdating() bool { return p.ctrl.IsUpdating() }

// Capabilities returns the current capability matrix.
func (p *Photo) Capabilities() PhotoMatrix { return p.matrix }

// SupportedModes returns the modes present in the capability matrix.
func (p *Photo) SupportedModes() capability.Set[PhotoMode] { return p.matrix.Modes() }

// SupportedFormats returns the formats supported in the current mode.
func (p *Photo) SupportedFormats() capability.Set[PhotoFormat] {
	return p.matrix.FormatsFor(p.Mode())
}

// SupportedFileFormats returns the file formats supported in the current
// mode and format.
func (p *Photo) SupportedFileFormats() capability.Set[PhotoFileFormat] {
	s := p.ctrl.Get()
	return p.matrix.FileFormatsFor(s.Mode, s.Format)
}

// SupportedBurstValues returns the supported burst values.
func (p *Photo) SupportedBurstValues() capability.Set[BurstValue] { return p.bursts.Clone() }

// SupportedBracketingValues returns the supported bracketing values.
func (p *Photo) SupportedBracketingValues() capability.Set[BracketingValue] {
	return p.bracketings.Clone()
}

// TimelapseIntervalRange returns the allowed time-lapse interval range.
func (p *Photo) TimelapseIntervalRange() setting.Range[float64] { return p.timelapseRange }

// GpslapseIntervalRange returns the allowed GPS-lapse interval range.
func (p *Photo) GpslapseIntervalRange() setting.Range[float64] { return p.gpslapseRange }

// IsHDRAvailable reports HDR availability for the current triple.
func (p *Photo) IsHDRAvailable() bool {
	s := p.ctrl.Get()
	return p.matrix.HDRAvailable(s.Mode, s.Format, s.FileFormat)
}

// SetMode requests a photo mode. Other fields are left to the device.
func (p *Photo) SetMode(mode PhotoMode) {
	if !p.matrix.Supports(mode) {
		return
	}
	p.send(PhotoRequest{Mode: mode})
}

// SetFormat requests a format within the current mode.
func (p *Photo) SetFormat(format PhotoFormat) {
	s := p.ctrl.Get()
	if !p.matrix.SupportsFormat(s.Mode, format) {
		return
	}
	p.send(PhotoRequest{Mode: s.Mode, Format: &format})
}

// SetFileFormat requests a file format within the current mode and format.
func (p *Photo) SetFileFormat(fileFormat PhotoFileFormat) {
	s := p.ctrl.Get()
	if !p.matrix.SupportsFileFormat(s.Mode, s.Format, fileFormat) {
		return
	}
	p.send(PhotoRequest{Mode: s.Mode, FileFormat: &fileFormat})
}

// SetBurstValue requests a burst value.
func (p *Photo) SetBurstValue(burst BurstValue) {
	if !p.bursts.Contains(burst) {
		return
	}
	p.send(PhotoRequest{Mode: p.Mode(), Burst: &burst})
}

// SetBracketingValue requests a bracketing value.
func (p *Photo) SetBracketingValue(bracketing BracketingValue) {
	if !p.bracketings.Contains(bracketing) {
		return
	}
	p.send(PhotoRequest{Mode: p.Mode(), Bracketing: &bracketing})
}

// SetTimelapseInterval requests a time-lapse interval, clamped to range.
func (p *Photo) SetTimelapseInterval(interval float64) {
	interval = p.timelapseRange.Clamp(interval)
	p.send(PhotoRequest{Mode: p.Mode(), TimelapseInterval: &interval})
}

// SetGpslapseInterval requests a GPS-lapse interval, clamped to range.
func (p *Photo) SetGpslapseInterval(interval float64) {
	interval = p.gpslapseRange.Clamp(interval)
	p.send(PhotoRequest{Mode: p.Mode(), GpslapseInterval: &interval})
}

// SetSingleMode switches to single shot mode with the given format.
func (p *Photo) SetSingleMode(format PhotoFormat, fileFormat PhotoFileFormat) {
	if !p.matrix.SupportsFileFormat(PhotoSingle, format, fileFormat) {
		return
	}
	p.send(PhotoRequest{Mode: PhotoSingle, Format: &format, FileFormat: &fileFormat})
}

// SetBurstMode switches to burst mode.
func (p *Photo) SetBurstMode(format PhotoFormat, fileFormat PhotoFileFormat, burst BurstValue) {
	if !p.matrix.SupportsFileFormat(PhotoBurst, format, fileFormat) || !p.bursts.Contains(burst) {
		return
	}
	p.send(PhotoRequest{Mode: PhotoBurst, Format: &format, FileFormat: &fileFormat, Burst: &burst})
}

// SetBracketingMode switches to bracketing mode.
func (p *Photo) SetBracketingMode(format PhotoFormat, fileFormat PhotoFileFormat, bracketing BracketingValue) {
	if !p.matrix.SupportsFileFormat(PhotoBracketing, format, fileFormat) || !p.bracketings.Contains(bracketing) {
		return
	}
	p.send(PhotoRequest{Mode: PhotoBracketing, Format: &format, FileFormat: &fileFormat, Bracketing: &bracketing})
}

// SetTimelapseMode switches to time-lapse mode.
func (p *Photo) SetTimelapseMode(format PhotoFormat, fileFormat PhotoFileFormat, interval float64) {
	if !p.matrix.SupportsFileFormat(PhotoTimelapse, format, fileFormat) {
		return
	}
	interval = p.timelapseRange.Clamp(interval)
	p.send(PhotoRequest{Mode: PhotoTimelapse, Format: &format, FileFormat: &fileFormat, TimelapseInterval: &interval})
}

// SetGpslapseMode switches to GPS-lapse mode.
func (p *Photo) SetGpslapseMode(format PhotoFormat, fileFormat PhotoFileFormat, interval float64) {
	if !p.matrix.SupportsFileFormat(PhotoGpslapse, format, fileFormat) {
		return
	}
	interval = p.gpslapseRange.Clamp(interval)
	p.send(PhotoRequest{Mode: PhotoGpslapse, Format: &format, FileFormat: &fileFormat, GpslapseInterval: &interval})
}

func (p *Photo) send(req PhotoRequest) {
	p.ctrl.Request(req.apply(p.ctrl.Get()), func(PhotoSettings) bool {
		return p.backend.SetPhoto(req)
	})
}

// apply returns s with the fields carried by the request.
func (r PhotoRequest) apply(s PhotoSettings) PhotoSettings {
	s.Mode = r.Mode
	if r.Format != nil {
		s.Format = *r.Format
	}
	if r.FileFormat != nil {
		s.FileFormat = *r.FileFormat
	}
	if r.Burst != nil {
		s.Burst = *r.Burst
	}
	if r.Bracketing != nil {
		s.Bracketing = *r.Bracketing
	}
	if r.TimelapseInterval != nil {
		s.TimelapseInterval = *r.TimelapseInterval
	}
	if r.GpslapseInterval != nil {
		s.GpslapseInterval = *r.GpslapseInterval
	}
	return s
}

// UpdateCapabilities rebuilds the capability matrix. Nothing happens if the
// resulting matrix equals the current one. Otherwise mode, format and file
// format are resynced in hierarchy order, unless a request is pending.
func (p *Photo) UpdateCapabilities(caps []PhotoCapability) *Photo {
	next := capability.Build(caps)
	if next.Equal(p.matrix) {
		return p
	}
	p.matrix = next
	resynced := p.ctrl.Resync(func(s *PhotoSettings) {
		s.Mode, s.Format, s.FileFormat = next.Resolve(s.Mode, s.Format, s.FileFormat)
	})
	if !resynced {
		p.ctrl.NotifyChange(false)
	}
	return p
}

// UpdateSupportedBurstValues replaces the supported burst values.
func (p *Photo) UpdateSupportedBurstValues(values ...BurstValue) *Photo {
	updateSupported(p.ctrl, &p.bursts, values, func(s *PhotoSettings) *BurstValue { return &s.Burst })
	return p
}

// UpdateSupportedBracketingValues replaces the supported bracketing values.
func (p *Photo) UpdateSupportedBracketingValues(values ...BracketingValue) *Photo {
	updateSupported(p.ctrl, &p.bracketings, values, func(s *PhotoSettings) *BracketingValue { return &s.Bracketing })
	return p
}

// UpdateTimelapseIntervalRange applies the time-lapse interval bounds.
func (p *Photo) UpdateTimelapseIntervalRange(lo, hi float64) *Photo {
	updateRange(p.ctrl, &p.timelapseRange, lo, hi)
	return p
}

// UpdateGpslapseIntervalRange applies the GPS-lapse interval bounds.
func (p *Photo) UpdateGpslapseIntervalRange(lo, hi float64) *Photo {
	updateRange(p.ctrl, &p.gpslapseRange, lo, hi)
	return p
}

// Update applies the full photo tuple reported by the device.
func (p *Photo) Update(s PhotoSettings) *Photo {
	s.Burst = supportedOrFirst(p.bursts, s.Burst)
	s.Bracketing = supportedOrFirst(p.bracketings, s.Bracketing)
	p.ctrl.Update(s)
	return p
}

// UpdateMode applies the mode reported by the device.
func (p *Photo) UpdateMode(mode PhotoMode) *Photo {
	p.ctrl.UpdateWith(func(s *PhotoSettings) { s.Mode = mode })
	return p
}

// UpdateFormat applies the format reported by the device.
func (p *Photo) UpdateFormat(format PhotoFormat) *Photo {
	p.ctrl.UpdateWith(func(s *PhotoSettings) { s.Format = format })
	return p
}

// UpdateFileFormat applies the file format reported by the device.
func (p *Photo) UpdateFileFormat(fileFormat PhotoFileFormat) *Photo {
	p.ctrl.UpdateWith(func(s *PhotoSettings) { s.FileFormat = fileFormat })
	return p
}

// UpdateBurstValue applies the burst value reported by the device. A value
// outside the supported set is replaced with the first supported one.
func (p *Photo) UpdateBurstValue(burst BurstValue) *Photo {
	p.ctrl.UpdateWith(func(s *PhotoSettings) { s.Burst = supportedOrFirst(p.bursts, burst) })
	return p
}

// UpdateBracketingValue applies the bracketing value reported by the
// device, coerced like UpdateBurstValue.
func (p *Photo) UpdateBracketingValue(bracketing BracketingValue) *Photo {
	p.ctrl.UpdateWith(func(s *PhotoSettings) { s.Bracketing = supportedOrFirst(p.bracketings, bracketing) })
	return p
}

// UpdateTimelapseInterval applies the time-lapse interval reported by the device.
func (p *Photo) UpdateTimelapseInterval(interval float64) *Photo {
	p.ctrl.UpdateWith(func(s *PhotoSettings) { s.TimelapseInterval = interval })
	return p
}

// UpdateGpslapseInterval applies the GPS-lapse interval reported by the device.
func (p *Photo) UpdateGpslapseInterval(interval float64) *Photo {
	p.ctrl.UpdateWith(func(s *PhotoSettings) { s.GpslapseInterval = interval })
	return p
}

func (p *Photo) parts() []part {
	return []part{p.ctrl}
}
