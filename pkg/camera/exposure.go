package camera

import (
	"github.com/aerolens/camsync/pkg/capability"
	"github.com/aerolens/camsync/pkg/setting"
)

// ExposureSettings is the exposure field tuple.
type ExposureSettings struct {
	Mode         ExposureMode
	ShutterSpeed ShutterSpeed
	ISO          ISOSensitivity
	MaxISO       ISOSensitivity
	Metering     MeteringMode
}

// DefaultExposure is the exposure state before the device reports any.
var DefaultExposure = ExposureSettings{
	Mode:         ExposureAutomatic,
	ShutterSpeed: Shutter1,
	ISO:          ISO50,
	MaxISO:       ISO3200,
	Metering:     MeteringStandard,
}

// Exposure is the camera exposure setting.
type Exposure struct {
	ctrl    *setting.Controller[ExposureSettings]
	backend ExposureBackend

	modes         capability.Set[ExposureMode]
	shutterSpeeds capability.Set[ShutterSpeed]
	isos          capability.Set[ISOSensitivity]
	maxISOs       capability.Set[ISOSensitivity]
}

// NewExposure creates an exposure setting with nothing supported.
func NewExposure(backend ExposureBackend, onChange setting.ChangeFunc) *Exposure {
	return &Exposure{
		ctrl:          setting.NewController("exposure", DefaultExposure, onChange),
		backend:       backend,
		modes:         capability.Set[ExposureMode]{},
		shutterSpeeds: capability.Set[ShutterSpeed]{},
		isos:          capability.Set[ISOSensitivity]{},
		maxISOs:       capability.Set[ISOSensitivity]{},
	}
}

// Getters

// Settings returns the current exposure tuple.
func (e *Exposure) Settings() ExposureSettings { return e.ctrl.Get() }

// Mode returns the exposure mode.
func (e *Exposure) Mode() ExposureMode { return e.ctrl.Get().Mode }

// ShutterSpeed returns the manual shutter speed.
func (e *Exposure) ShutterSpeed() ShutterSpeed { return e.ctrl.Get().ShutterSpeed }

// ISO returns the manual ISO sensitivity.
func (e *Exposure) ISO() ISOSensitivity { return e.ctrl.Get().ISO }

// MaxISO returns the maximum ISO sensitivity used in automatic modes.
func (e *Exposure) MaxISO() ISOSensitivity { return e.ctrl.Get().MaxISO }

// Metering returns the auto exposure metering mode.
func (e *Exposure) Metering() MeteringMode { return e.ctrl.Get().Metering }

// IsUpdating returns true while a request awaits confirmation.
func (e *Exposure) IsUpdating() bool { return e.ctrl.IsUpdating() }

// SupportedModes returns the supported exposure modes.
func (e *Exposure) SupportedModes() capability.Set[ExposureMode] { return e.modes.Clone() }

// SupportedShutterSpeeds returns the supported manual shutter speeds.
func (e *Exposure) SupportedShutterSpeeds() capability.Set[ShutterSpeed] {
	return e.shutterSpeeds.Clone()
}

// SupportedISOs returns the supported manual ISO sensitivities.
func (e *Exposure) SupportedISOs() capability.Set[ISOSensitivity] { return e.isos.Clone() }

// SupportedMaxISOs returns the supported maximum ISO sensitivities.
func (e *Exposure) SupportedMaxISOs() capability.Set[ISOSensitivity] { return e.maxISOs.Clone() }

// Setters

// SetMode requests an exposure mode.
func (e *Exposure) SetMode(mode ExposureMode) {
	if !e.modes.Contains(mode) {
		return
	}
	next := e.ctrl.Get()
	next.Mode = mode
	e.send(next)
}

// SetShutterSpeed requests a manual shutter speed.
func (e *Exposure) SetShutterSpeed(speed ShutterSpeed) {
	if !e.shutterSpeeds.Contains(speed) {
		return
	}
	next := e.ctrl.Get()
	next.ShutterSpeed = speed
	e.send(next)
}

// SetISO requests a manual ISO sensitivity.
func (e *Exposure) SetISO(iso ISOSensitivity) {
	if !e.isos.Contains(iso) {
		return
	}
	next := e.ctrl.Get()
	next.ISO = iso
	e.send(next)
}

// SetMaxISO requests a maximum ISO sensitivity.
func (e *Exposure) SetMaxISO(iso ISOSensitivity) {
	if !e.maxISOs.Contains(iso) {
		return
	}
	next := e.ctrl.Get()
	next.MaxISO = iso
	e.send(next)
}

// SetMetering requests an auto exposure metering mode.
func (e *Exposure) SetMetering(metering MeteringMode) {
	next := e.ctrl.Get()
	next.Metering = metering
	e.send(next)
}

// SetAutoMode switches to fully automatic exposure.
func (e *Exposure) SetAutoMode(maxISO ISOSensitivity, metering MeteringMode) {
	e.setAuto(ExposureAutomatic, maxISO, metering)
}

// SetAutoPreferShutterSpeedMode switches to automatic exposure favoring
// shutter speed.
func (e *Exposure) SetAutoPreferShutterSpeedMode(maxISO ISOSensitivity, metering MeteringMode) {
	e.setAuto(ExposureAutomaticPreferShutterSpeed, maxISO, metering)
}

// SetAutoPreferISOMode switches to automatic exposure favoring ISO
// sensitivity.
func (e *Exposure) SetAutoPreferISOMode(maxISO ISOSensitivity, metering MeteringMode) {
	e.setAuto(ExposureAutomaticPreferISO, maxISO, metering)
}

// SetManualShutterSpeedMode switches to manual shutter speed.
func (e *Exposure) SetManualShutterSpeedMode(speed ShutterSpeed) {
	if !e.modes.Contains(ExposureManualShutterSpeed) || !e.shutterSpeeds.Contains(speed) {
		return
	}
	next := e.ctrl.Get()
	next.Mode = ExposureManualShutterSpeed
	next.ShutterSpeed = speed
	e.send(next)
}

// SetManualISOMode switches to manual ISO sensitivity.
func (e *Exposure) SetManualISOMode(iso ISOSensitivity) {
	if !e.modes.Contains(ExposureManualISO) || !e.isos.Contains(iso) {
		return
	}
	next := e.ctrl.Get()
	next.Mode = ExposureManualISO
	next.ISO = iso
	e.send(next)
}

// SetManualMode switches to fully manual exposure.
func (e *Exposure) SetManualMode(speed ShutterSpeed, iso ISOSensitivity) {
	if !e.modes.Contains(ExposureManual) || !e.shutterSpeeds.Contains(speed) || !e.isos.Contains(iso) {
		return
	}
	next := e.ctrl.Get()
	next.Mode = ExposureManual
	next.ShutterSpeed = speed
	next.ISO = iso
	e.send(next)
}

func (e *Exposure) setAuto(mode ExposureMode, maxISO ISOSensitivity, metering MeteringMode) {
	if !e.modes.Contains(mode) || !e.maxISOs.Contains(maxISO) {
		return
	}
	next := e.ctrl.Get()
	next.Mode = mode
	next.MaxISO = maxISO
	next.Metering = metering
	e.send(next)
}

func (e *Exposure) send(next ExposureSettings) {
	e.ctrl.Request(next, func(s ExposureSettings) bool {
		return e.backend.SetExposure(s.Mode, s.ShutterSpeed, s.ISO, s.MaxISO, s.Metering)
	})
}

// Device updates

// UpdateSupportedModes replaces the supported exposure modes.
func (e *Exposure) UpdateSupportedModes(modes ...ExposureMode) *Exposure {
	updateSupported(e.ctrl, &e.modes, modes, func(s *ExposureSettings) *ExposureMode { return &s.Mode })
	return e
}

// UpdateSupportedShutterSpeeds replaces the supported shutter speeds.
func (e *Exposure) UpdateSupportedShutterSpeeds(speeds ...ShutterSpeed) *Exposure {
	updateSupported(e.ctrl, &e.shutterSpeeds, speeds, func(s *ExposureSettings) *ShutterSpeed { return &s.ShutterSpeed })
	return e
}

// UpdateSupportedISOs replaces the supported manual ISO sensitivities.
func (e *Exposure) UpdateSupportedISOs(isos ...ISOSensitivity) *Exposure {
	updateSupported(e.ctrl, &e.isos, isos, func(s *ExposureSettings) *ISOSensitivity { return &s.ISO })
	return e
}

// UpdateSupportedMaxISOs replaces the supported maximum ISO sensitivities.
func (e *Exposure) UpdateSupportedMaxISOs(isos ...ISOSensitivity) *Exposure {
	updateSupported(e.ctrl, &e.maxISOs, isos, func(s *ExposureSettings) *ISOSensitivity { return &s.MaxISO })
	return e
}

// Update applies the full exposure tuple reported by the device.
func (e *Exposure) Update(s ExposureSettings) *Exposure {
	e.ctrl.Update(s)
	return e
}

// UpdateMode applies the exposure mode reported by the device.
func (e *Exposure) UpdateMode(mode ExposureMode) *Exposure {
	e.ctrl.UpdateWith(func(s *ExposureSettings) { s.Mode = mode })
	return e
}

// UpdateShutterSpeed applies the shutter speed reported by the device.
func (e *Exposure) UpdateShutterSpeed(speed ShutterSpeed) *Exposure {
	e.ctrl.UpdateWith(func(s *ExposureSettings) { s.ShutterSpeed = speed })
	return e
}

// UpdateISO applies the manual ISO reported by the device.
func (e *Exposure) UpdateISO(iso ISOSensitivity) *Exposure {
	e.ctrl.UpdateWith(func(s *ExposureSettings) { s.ISO = iso })
	return e
}

// UpdateMaxISO applies the maximum ISO reported by the device.
func (e *Exposure) UpdateMaxISO(iso ISOSensitivity) *Exposure {
	e.ctrl.UpdateWith(func(s *ExposureSettings) { s.MaxISO = iso })
	return e
}

// UpdateMetering applies the metering mode reported by the device.
func (e *Exposure) UpdateMetering(metering MeteringMode) *Exposure {
	e.ctrl.UpdateWith(func(s *ExposureSettings) { s.Metering = metering })
	return e
}

func (e *Exposure) parts() []part {
	return []part{e.ctrl}
}
