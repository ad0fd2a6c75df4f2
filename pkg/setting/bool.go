package setting

// Bool is an on/off setting that the device may or may not support.
type Bool struct {
	ctrl      *Controller[bool]
	supported bool
	send      func(bool) bool
}

// NewBool creates an unsupported boolean setting.
func NewBool(name string, send func(bool) bool, onChange ChangeFunc) *Bool {
	return &Bool{
		ctrl: NewController(name, false, onChange),
		send: send,
	}
}

// Controller exposes the underlying controller.
func (s *Bool) Controller() *Controller[bool] {
	return s.ctrl
}

// IsSupported returns true if the device supports the setting.
func (s *Bool) IsSupported() bool {
	return s.supported
}

// IsEnabled returns the current value.
func (s *Bool) IsEnabled() bool {
	return s.ctrl.Get()
}

// IsUpdating returns true while a request awaits confirmation.
func (s *Bool) IsUpdating() bool {
	return s.ctrl.IsUpdating()
}

// SetEnabled requests the given value. No-op when unsupported.
func (s *Bool) SetEnabled(enabled bool) {
	if !s.supported {
		return
	}
	s.ctrl.Request(enabled, s.send)
}

// Toggle inverts the current value.
func (s *Bool) Toggle() {
	s.SetEnabled(!s.ctrl.Get())
}

// UpdateSupported records whether the device supports the setting.
func (s *Bool) UpdateSupported(supported bool) {
	if s.supported == supported {
		return
	}
	s.supported = supported
	s.ctrl.NotifyChange(false)
}

// UpdateValue applies the value reported by the device.
func (s *Bool) UpdateValue(enabled bool) {
	s.ctrl.Update(enabled)
}

// CancelRollback drops a pending request, notifying if one existed.
func (s *Bool) CancelRollback() {
	if s.ctrl.CancelRollback() {
		s.ctrl.NotifyChange(false)
	}
}
