package camera

import "github.com/aerolens/camsync/pkg/setting"

const defaultZoomLevel = 1.0

// Zoom is the camera zoom. Level and velocity commands are fire-and-forget;
// maximum speed and quality degradation allowance are optimistic settings.
type Zoom struct {
	backend  ZoomBackend
	onChange setting.ChangeFunc

	maxSpeed *setting.Double
	degrade  *setting.Bool

	available        bool
	currentLevel     float64
	maxLossyLevel    float64
	maxLosslessLevel float64
	levelRange       setting.Range[float64]
}

// NewZoom creates an unavailable zoom at level 1.
func NewZoom(backend ZoomBackend, onChange setting.ChangeFunc) *Zoom {
	return &Zoom{
		backend:          backend,
		onChange:         onChange,
		maxSpeed:         setting.NewDouble("zoom_max_speed", backend.SetMaxZoomSpeed, onChange),
		degrade:          setting.NewBool("zoom_quality_degradation", backend.SetQualityDegradationAllowance, onChange),
		currentLevel:     defaultZoomLevel,
		maxLossyLevel:    defaultZoomLevel,
		maxLosslessLevel: defaultZoomLevel,
		levelRange:       setting.Range[float64]{Min: defaultZoomLevel, Max: defaultZoomLevel},
	}
}

// IsAvailable returns true if zoom can currently be controlled.
func (z *Zoom) IsAvailable() bool { return z.available }

// CurrentLevel returns the current zoom level.
func (z *Zoom) CurrentLevel() float64 { return z.currentLevel }

// MaxLossyLevel returns the highest reachable level.
func (z *Zoom) MaxLossyLevel() float64 { return z.maxLossyLevel }

// MaxLosslessLevel returns the highest level without quality degradation.
func (z *Zoom) MaxLosslessLevel() float64 { return z.maxLosslessLevel }

// MaxSpeed returns the maximum zoom speed setting.
func (z *Zoom) MaxSpeed() *setting.Double { return z.maxSpeed }

// VelocityQualityDegradationAllowance returns the setting that allows
// velocity zoom to go past the lossless level.
func (z *Zoom) VelocityQualityDegradationAllowance() *setting.Bool { return z.degrade }

// Control sends a zoom command. The target is clamped to [1, max lossy
// level] in level mode and to [-1, 1] in velocity mode.
func (z *Zoom) Control(mode ZoomControlMode, target float64) {
	switch mode {
	case ZoomLevel:
		target = z.levelRange.Clamp(target)
	case ZoomVelocity:
		target = setting.SignedRatio.Clamp(target)
	}
	z.backend.ControlZoom(mode, target)
}

// UpdateAvailability applies the availability reported by the device.
func (z *Zoom) UpdateAvailability(available bool) *Zoom {
	if z.available != available {
		z.available = available
		z.notify()
	}
	return z
}

// UpdateCurrentLevel applies the level reported by the device.
func (z *Zoom) UpdateCurrentLevel(level float64) *Zoom {
	if z.currentLevel != level {
		z.currentLevel = level
		z.notify()
	}
	return z
}

// UpdateMaxLossyLevel applies the maximum level and updates the range used
// to clamp level commands.
func (z *Zoom) UpdateMaxLossyLevel(level float64) *Zoom {
	if z.maxLossyLevel != level {
		z.maxLossyLevel = level
		z.levelRange = setting.Range[float64]{Min: defaultZoomLevel, Max: level}
		z.notify()
	}
	return z
}

// UpdateMaxLosslessLevel applies the maximum lossless level.
func (z *Zoom) UpdateMaxLosslessLevel(level float64) *Zoom {
	if z.maxLosslessLevel != level {
		z.maxLosslessLevel = level
		z.notify()
	}
	return z
}

// UpdateQualityDegradationAllowance marks the allowance setting supported
// and applies its value.
func (z *Zoom) UpdateQualityDegradationAllowance(allowed bool) *Zoom {
	z.degrade.UpdateSupported(true)
	z.degrade.UpdateValue(allowed)
	return z
}

// Reset restores the pushed values to their defaults, typically when the
// device reports zoom as unavailable after a mode change.
func (z *Zoom) Reset() *Zoom {
	z.available = false
	z.currentLevel = defaultZoomLevel
	z.maxLossyLevel = defaultZoomLevel
	z.maxLosslessLevel = defaultZoomLevel
	z.levelRange = setting.Range[float64]{Min: defaultZoomLevel, Max: defaultZoomLevel}
	z.notify()
	return z
}

func (z *Zoom) notify() {
	if z.onChange != nil {
		z.onChange(false)
	}
}

func (z *Zoom) parts() []part {
	return []part{z.maxSpeed.Controller(), z.degrade.Controller()}
}
