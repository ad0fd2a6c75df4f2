package setting

// Number is the constraint for range-bounded settings.
type Number interface {
	~int | ~float64
}

// Range is a closed interval [Min, Max].
type Range[T Number] struct {
	Min T
	Max T
}

// Clamp returns v bounded to the range.
func (r Range[T]) Clamp(v T) T {
	return max(r.Min, min(v, r.Max))
}

// Contains returns true if v lies within the range.
func (r Range[T]) Contains(v T) bool {
	return v >= r.Min && v <= r.Max
}

// SignedRatio is the [-1, 1] range used for velocity-style commands.
var SignedRatio = Range[float64]{Min: -1, Max: 1}

// Ranged is a numeric setting bounded by a device-provided range.
// Requests are clamped into the range before being sent.
type Ranged[T Number] struct {
	ctrl   *Controller[T]
	bounds Range[T]
	send   func(T) bool
}

// Double is a range-bounded floating point setting.
type Double = Ranged[float64]

// Int is a range-bounded integer setting.
type Int = Ranged[int]

// NewRanged creates a setting with zero bounds and value.
func NewRanged[T Number](name string, send func(T) bool, onChange ChangeFunc) *Ranged[T] {
	return &Ranged[T]{
		ctrl: NewController[T](name, 0, onChange),
		send: send,
	}
}

// NewDouble creates a floating point setting.
func NewDouble(name string, send func(float64) bool, onChange ChangeFunc) *Double {
	return NewRanged(name, send, onChange)
}

// NewInt creates an integer setting.
func NewInt(name string, send func(int) bool, onChange ChangeFunc) *Int {
	return NewRanged(name, send, onChange)
}

// Controller exposes the underlying controller.
func (s *Ranged[T]) Controller() *Controller[T] {
	return s.ctrl
}

// Get returns the current value.
func (s *Ranged[T]) Get() T {
	return s.ctrl.Get()
}

// Bounds returns the allowed range.
func (s *Ranged[T]) Bounds() Range[T] {
	return s.bounds
}

// IsUpdating returns true while a request awaits confirmation.
func (s *Ranged[T]) IsUpdating() bool {
	return s.ctrl.IsUpdating()
}

// Set requests value clamped into the current bounds.
func (s *Ranged[T]) Set(value T) {
	s.ctrl.Request(s.bounds.Clamp(value), s.send)
}

// UpdateBounds applies the range reported by the device.
func (s *Ranged[T]) UpdateBounds(lo, hi T) {
	next := Range[T]{Min: lo, Max: hi}
	if next == s.bounds {
		return
	}
	s.bounds = next
	s.ctrl.NotifyChange(false)
}

// UpdateValue applies the value reported by the device.
func (s *Ranged[T]) UpdateValue(value T) {
	s.ctrl.Update(value)
}

// CancelRollback drops a pending request, notifying if one existed.
func (s *Ranged[T]) CancelRollback() {
	if s.ctrl.CancelRollback() {
		s.ctrl.NotifyChange(false)
	}
}
