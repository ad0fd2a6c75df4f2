package camera

import "github.com/aerolens/camsync/pkg/setting"

// AlignmentOffsets is the camera alignment field tuple, in degrees.
type AlignmentOffsets struct {
	Yaw   float64
	Pitch float64
	Roll  float64
}

// Alignment is the camera alignment setting. The three offsets share one
// controller so that a request is rolled back as a whole.
type Alignment struct {
	ctrl    *setting.Controller[AlignmentOffsets]
	backend AlignmentBackend

	yawRange   setting.Range[float64]
	pitchRange setting.Range[float64]
	rollRange  setting.Range[float64]
}

// NewAlignment creates an alignment setting with zero offsets and ranges.
func NewAlignment(backend AlignmentBackend, onChange setting.ChangeFunc) *Alignment {
	return &Alignment{
		ctrl:    setting.NewController("alignment", AlignmentOffsets{}, onChange),
		backend: backend,
	}
}

// Offsets returns the current offsets.
func (a *Alignment) Offsets() AlignmentOffsets { return a.ctrl.Get() }

// YawRange returns the allowed yaw offset range.
func (a *Alignment) YawRange() setting.Range[float64] { return a.yawRange }

// PitchRange returns the allowed pitch offset range.
func (a *Alignment) PitchRange() setting.Range[float64] { return a.pitchRange }

// RollRange returns the allowed roll offset range.
func (a *Alignment) RollRange() setting.Range[float64] { return a.rollRange }

// IsUpdating returns true while a request awaits confirmation.
func (a *Alignment) IsUpdating() bool { return a.ctrl.IsUpdating() }

// SetYaw requests a yaw offset, clamped to range.
func (a *Alignment) SetYaw(v float64) {
	next := a.ctrl.Get()
	next.Yaw = a.yawRange.Clamp(v)
	a.send(next)
}

// SetPitch requests a pitch offset, clamped to range.
func (a *Alignment) SetPitch(v float64) {
	next := a.ctrl.Get()
	next.Pitch = a.pitchRange.Clamp(v)
	a.send(next)
}

// SetRoll requests a roll offset, clamped to range.
func (a *Alignment) SetRoll(v float64) {
	next := a.ctrl.Get()
	next.Roll = a.rollRange.Clamp(v)
	a.send(next)
}

// Reset asks the device to restore factory alignment. The device reports
// the resulting offsets through UpdateOffsets.
func (a *Alignment) Reset() bool {
	return a.backend.ResetAlignment()
}

func (a *Alignment) send(next AlignmentOffsets) {
	a.ctrl.Request(next, func(o AlignmentOffsets) bool {
		return a.backend.SetAlignment(o.Yaw, o.Pitch, o.Roll)
	})
}

// UpdateRanges applies the offset bounds reported by the device.
func (a *Alignment) UpdateRanges(yaw, pitch, roll setting.Range[float64]) *Alignment {
	if yaw == a.yawRange && pitch == a.pitchRange && roll == a.rollRange {
		return a
	}
	a.yawRange, a.pitchRange, a.rollRange = yaw, pitch, roll
	a.ctrl.NotifyChange(false)
	return a
}

// UpdateOffsets applies the offsets reported by the device.
func (a *Alignment) UpdateOffsets(yaw, pitch, roll float64) *Alignment {
	a.ctrl.Update(AlignmentOffsets{Yaw: yaw, Pitch: pitch, Roll: roll})
	return a
}

func (a *Alignment) parts() []part {
	return []part{a.ctrl}
}
