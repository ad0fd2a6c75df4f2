package camera

import (
	"github.com/aerolens/camsync/pkg/capability"
	"github.com/aerolens/camsync/pkg/setting"
)

// WhiteBalanceSettings is the white balance field tuple.
type WhiteBalanceSettings struct {
	Mode        WhiteBalanceMode
	Temperature Temperature
}

// DefaultWhiteBalance is the white balance state before the device reports any.
var DefaultWhiteBalance = WhiteBalanceSettings{
	Mode:        WhiteBalanceAutomatic,
	Temperature: K1500,
}

// WhiteBalance is the camera white balance setting.
type WhiteBalance struct {
	ctrl         *setting.Controller[WhiteBalanceSettings]
	backend      WhiteBalanceBackend
	modes        capability.Set[WhiteBalanceMode]
	temperatures capability.Set[Temperature]
}

// NewWhiteBalance creates a white balance setting with nothing supported.
func NewWhiteBalance(backend WhiteBalanceBackend, onChange setting.ChangeFunc) *WhiteBalance {
	return &WhiteBalance{
		ctrl:         setting.NewController("white_balance", DefaultWhiteBalance, onChange),
		backend:      backend,
		modes:        capability.Set[WhiteBalanceMode]{},
		temperatures: capability.Set[Temperature]{},
	}
}

// Mode returns the white balance mode.
func (w *WhiteBalance) Mode() WhiteBalanceMode { return w.ctrl.Get().Mode }

// Temperature returns the custom temperature.
func (w *WhiteBalance) Temperature() Temperature { return w.ctrl.Get().Temperature }

// IsUpdating returns true while a request awaits confirmation.
func (w *WhiteBalance) IsUpdating() bool { return w.ctrl.IsUpdating() }

// SupportedModes returns the supported modes.
func (w *WhiteBalance) SupportedModes() capability.Set[WhiteBalanceMode] { return w.modes.Clone() }

// SupportedTemperatures returns the supported custom temperatures.
func (w *WhiteBalance) SupportedTemperatures() capability.Set[Temperature] {
	return w.temperatures.Clone()
}

// SetMode requests a white balance mode.
func (w *WhiteBalance) SetMode(mode WhiteBalanceMode) {
	if !w.modes.Contains(mode) {
		return
	}
	next := w.ctrl.Get()
	next.Mode = mode
	w.send(next)
}

// SetTemperature requests a custom temperature without changing the mode.
func (w *WhiteBalance) SetTemperature(t Temperature) {
	if !w.temperatures.Contains(t) {
		return
	}
	next := w.ctrl.Get()
	next.Temperature = t
	w.send(next)
}

// SetCustomMode switches to the custom mode with the given temperature.
func (w *WhiteBalance) SetCustomMode(t Temperature) {
	if !w.modes.Contains(WhiteBalanceCustom) || !w.temperatures.Contains(t) {
		return
	}
	w.send(WhiteBalanceSettings{Mode: WhiteBalanceCustom, Temperature: t})
}

func (w *WhiteBalance) send(next WhiteBalanceSettings) {
	w.ctrl.Request(next, func(s WhiteBalanceSettings) bool {
		return w.backend.SetWhiteBalance(s.Mode, s.Temperature)
	})
}

// UpdateSupportedModes replaces the supported modes.
func (w *WhiteBalance) UpdateSupportedModes(modes ...WhiteBalanceMode) *WhiteBalance {
	updateSupported(w.ctrl, &w.modes, modes, func(s *WhiteBalanceSettings) *WhiteBalanceMode { return &s.Mode })
	return w
}

// UpdateSupportedTemperatures replaces the supported custom temperatures.
func (w *WhiteBalance) UpdateSupportedTemperatures(temps ...Temperature) *WhiteBalance {
	updateSupported(w.ctrl, &w.temperatures, temps, func(s *WhiteBalanceSettings) *Temperature { return &s.Temperature })
	return w
}

// Update applies the white balance reported by the device.
func (w *WhiteBalance) Update(mode WhiteBalanceMode, t Temperature) *WhiteBalance {
	w.ctrl.Update(WhiteBalanceSettings{Mode: mode, Temperature: t})
	return w
}

// UpdateMode applies the mode reported by the device.
func (w *WhiteBalance) UpdateMode(mode WhiteBalanceMode) *WhiteBalance {
	w.ctrl.UpdateWith(func(s *WhiteBalanceSettings) { s.Mode = mode })
	return w
}

// UpdateTemperature applies the temperature reported by the device.
func (w *WhiteBalance) UpdateTemperature(t Temperature) *WhiteBalance {
	w.ctrl.UpdateWith(func(s *WhiteBalanceSettings) { s.Temperature = t })
	return w
}

func (w *WhiteBalance) parts() []part {
	return []part{w.ctrl}
}
