package setting

import (
	"cmp"

	"github.com/aerolens/camsync/pkg/capability"
)

// Enum is a single enum-valued setting restricted to a set of available
// values advertised by the device.
type Enum[E cmp.Ordered] struct {
	ctrl      *Controller[E]
	available capability.Set[E]
	send      func(E) bool
}

// NewEnum creates an enum setting with no available values.
// send forwards a request to the device and reports whether it was accepted.
func NewEnum[E cmp.Ordered](name string, initial E, send func(E) bool, onChange ChangeFunc) *Enum[E] {
	return &Enum[E]{
		ctrl:      NewController(name, initial, onChange),
		available: capability.Set[E]{},
		send:      send,
	}
}

// Controller exposes the underlying controller.
func (s *Enum[E]) Controller() *Controller[E] {
	return s.ctrl
}

// Get returns the current value.
func (s *Enum[E]) Get() E {
	return s.ctrl.Get()
}

// IsUpdating returns true while a request awaits confirmation.
func (s *Enum[E]) IsUpdating() bool {
	return s.ctrl.IsUpdating()
}

// Available returns a copy of the available values.
func (s *Enum[E]) Available() capability.Set[E] {
	return s.available.Clone()
}

// Set requests value. It is a no-op if value is unavailable or current.
func (s *Enum[E]) Set(value E) {
	if !s.available.Contains(value) {
		return
	}
	s.ctrl.Request(value, s.send)
}

// UpdateAvailable replaces the available values. If the current value is
// no longer available it is resynchronized to the first available one.
func (s *Enum[E]) UpdateAvailable(values ...E) {
	next := capability.SetOf(values...)
	if next.Equal(s.available) {
		return
	}
	s.available = next
	resynced := s.ctrl.Resync(func(v *E) {
		if !next.IsEmpty() && !next.Contains(*v) {
			*v, _ = next.First()
		}
	})
	if !resynced {
		s.ctrl.NotifyChange(false)
	}
}

// UpdateValue applies the value reported by the device.
func (s *Enum[E]) UpdateValue(value E) {
	s.ctrl.Update(value)
}

// CancelRollback drops a pending request, notifying if one existed.
func (s *Enum[E]) CancelRollback() {
	if s.ctrl.CancelRollback() {
		s.ctrl.NotifyChange(false)
	}
}
