package camera

import (
	"math"

	"github.com/aerolens/camsync/pkg/setting"
)

// regionTolerance is the per-axis distance under which two region lock
// requests are considered the same.
const regionTolerance = 0.1

// ExposureLockState is the exposure lock field tuple. Region coordinates
// are relative to the image, in [0, 1].
type ExposureLockState struct {
	Mode    ExposureLockMode
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// IsSameRequest reports whether two lock requests designate the same lock.
// Region locks match when both centers are within 0.1 on each axis.
func IsSameRequest(mode1 ExposureLockMode, x1, y1 float64, mode2 ExposureLockMode, x2, y2 float64) bool {
	if mode1 != mode2 {
		return false
	}
	if mode1 != ExposureLockRegion {
		return true
	}
	return math.Abs(x1-x2) < regionTolerance && math.Abs(y1-y2) < regionTolerance
}

// ExposureLock is the camera exposure lock.
type ExposureLock struct {
	ctrl    *setting.Controller[ExposureLockState]
	backend ExposureLockBackend
}

// NewExposureLock creates an unlocked exposure lock.
func NewExposureLock(backend ExposureLockBackend, onChange setting.ChangeFunc) *ExposureLock {
	return &ExposureLock{
		ctrl:    setting.NewController("exposure_lock", ExposureLockState{}, onChange),
		backend: backend,
	}
}

// State returns the current lock state.
func (l *ExposureLock) State() ExposureLockState { return l.ctrl.Get() }

// Mode returns the current lock mode.
func (l *ExposureLock) Mode() ExposureLockMode { return l.ctrl.Get().Mode }

// IsUpdating returns true while a request awaits confirmation.
func (l *ExposureLock) IsUpdating() bool { return l.ctrl.IsUpdating() }

// LockCurrentValues locks exposure on the current values.
func (l *ExposureLock) LockCurrentValues() {
	l.send(ExposureLockCurrentValues, 0, 0)
}

// LockOnRegion locks exposure on the region centered at (x, y). Coordinates
// are clamped to [0, 1]. A request close to the active region lock is
// ignored.
func (l *ExposureLock) LockOnRegion(x, y float64) {
	unit := setting.Range[float64]{Min: 0, Max: 1}
	l.send(ExposureLockRegion, unit.Clamp(x), unit.Clamp(y))
}

// Unlock releases the exposure lock.
func (l *ExposureLock) Unlock() {
	l.send(ExposureLockNone, 0, 0)
}

func (l *ExposureLock) send(mode ExposureLockMode, x, y float64) {
	cur := l.ctrl.Get()
	if IsSameRequest(cur.Mode, cur.CenterX, cur.CenterY, mode, x, y) {
		return
	}
	next := ExposureLockState{Mode: mode, CenterX: x, CenterY: y}
	l.ctrl.Request(next, func(s ExposureLockState) bool {
		return l.backend.SetExposureLock(s.Mode, s.CenterX, s.CenterY)
	})
}

// UpdateMode applies the lock state reported by the device.
func (l *ExposureLock) UpdateMode(mode ExposureLockMode, centerX, centerY, width, height float64) *ExposureLock {
	l.ctrl.Update(ExposureLockState{
		Mode:    mode,
		CenterX: centerX,
		CenterY: centerY,
		Width:   width,
		Height:  height,
	})
	return l
}

// CancelRollback drops a pending request, notifying if one existed.
func (l *ExposureLock) CancelRollback() {
	cancelAndNotify(l.ctrl)
}

func (l *ExposureLock) parts() []part {
	return []part{l.ctrl}
}

// WhiteBalanceLock is the camera white balance lock. The device decides
// whether the lock is available; typically only in automatic white balance.
type WhiteBalanceLock struct {
	ctrl     *setting.Controller[bool]
	backend  WhiteBalanceLockBackend
	lockable bool
}

// NewWhiteBalanceLock creates an unlocked, non-lockable white balance lock.
func NewWhiteBalanceLock(backend WhiteBalanceLockBackend, onChange setting.ChangeFunc) *WhiteBalanceLock {
	return &WhiteBalanceLock{
		ctrl:    setting.NewController("white_balance_lock", false, onChange),
		backend: backend,
	}
}

// IsLockable returns true if the lock can currently be changed.
func (l *WhiteBalanceLock) IsLockable() bool { return l.lockable }

// IsLocked returns true if white balance is locked.
func (l *WhiteBalanceLock) IsLocked() bool { return l.ctrl.Get() }

// IsUpdating returns true while a request awaits confirmation.
func (l *WhiteBalanceLock) IsUpdating() bool { return l.ctrl.IsUpdating() }

// SetLocked requests the lock state. No effect unless lockable.
func (l *WhiteBalanceLock) SetLocked(locked bool) {
	if !l.lockable {
		return
	}
	l.ctrl.Request(locked, l.backend.SetWhiteBalanceLock)
}

// UpdateLockable applies the lockable flag reported by the device.
func (l *WhiteBalanceLock) UpdateLockable(lockable bool) *WhiteBalanceLock {
	if l.lockable != lockable {
		l.lockable = lockable
		l.ctrl.NotifyChange(false)
	}
	return l
}

// UpdateLocked applies the lock state reported by the device.
func (l *WhiteBalanceLock) UpdateLocked(locked bool) *WhiteBalanceLock {
	l.ctrl.Update(locked)
	return l
}

// CancelRollback drops a pending request, notifying if one existed.
func (l *WhiteBalanceLock) CancelRollback() {
	cancelAndNotify(l.ctrl)
}

func (l *WhiteBalanceLock) parts() []part {
	return []part{l.ctrl}
}
