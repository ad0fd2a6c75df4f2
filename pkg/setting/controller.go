package setting

// ChangeFunc is called whenever a setting changes.
// fromUser is true when the change results from a local request, in which
// case the owner should publish immediately; device-driven changes may be
// batched until the owner's next flush.
type ChangeFunc func(fromUser bool)

// Rollback is the pre-request snapshot of a setting's fields, restored
// only through an explicit Controller operation.
type Rollback[F comparable] struct {
	Snapshot F
}

// Controller holds one setting's current field tuple and drives its
// optimistic update cycle.
//
// A request is applied locally right away and forwarded to the device.
// While the device has not answered, the controller keeps a rollback
// snapshot and reports IsUpdating. Any authoritative update from the
// device cancels the pending rollback and overwrites the local value.
//
// Controller is not safe for concurrent use. All calls must happen on the
// owner's event loop.
type Controller[F comparable] struct {
	name     string
	current  F
	rollback *Rollback[F]
	onChange ChangeFunc
	trace    TraceFunc
}

// NewController creates a controller holding initial as its current value.
// onChange may be nil.
func NewController[F comparable](name string, initial F, onChange ChangeFunc) *Controller[F] {
	return &Controller[F]{
		name:     name,
		current:  initial,
		onChange: onChange,
	}
}

// Name returns the setting name used in traces.
func (c *Controller[F]) Name() string {
	return c.name
}

// SetTracer installs a function receiving every state transition.
// Pass nil to disable tracing.
func (c *Controller[F]) SetTracer(fn TraceFunc) {
	c.trace = fn
}

// Get returns the current field tuple.
func (c *Controller[F]) Get() F {
	return c.current
}

// IsUpdating returns true while a request awaits device confirmation.
func (c *Controller[F]) IsUpdating() bool {
	return c.rollback != nil
}

// Pending returns the rollback snapshot, if any.
func (c *Controller[F]) Pending() (F, bool) {
	if c.rollback == nil {
		var zero F
		return zero, false
	}
	return c.rollback.Snapshot, true
}

// PostRollback registers snapshot as the pending rollback, replacing any
// earlier one without restoring it.
func (c *Controller[F]) PostRollback(snapshot F) {
	c.rollback = &Rollback[F]{Snapshot: snapshot}
}

// CancelRollback discards the pending rollback without applying it.
// Returns true if one was pending.
func (c *Controller[F]) CancelRollback() bool {
	if c.rollback == nil {
		return false
	}
	c.rollback = nil
	return true
}

// NotifyChange forwards a change notification to the owner.
func (c *Controller[F]) NotifyChange(fromUser bool) {
	if c.onChange != nil {
		c.onChange(fromUser)
	}
}

// Request optimistically applies next and asks send to forward it.
//
// Nothing happens when next equals the current value. If send returns
// false the previous value is restored and no rollback is registered.
// Otherwise the previous value becomes the pending rollback and a user
// change is notified. Returns whether the request was forwarded.
func (c *Controller[F]) Request(next F, send func(F) bool) bool {
	if next == c.current {
		return false
	}
	snapshot := c.current
	c.current = next
	if !send(next) {
		c.current = snapshot
		c.emit(KindReject, snapshot, next)
		return false
	}
	c.PostRollback(snapshot)
	c.emit(KindRequest, snapshot, next)
	c.NotifyChange(true)
	return true
}

// Update applies an authoritative value pushed by the device.
//
// A pending rollback is always cancelled. The owner is notified if the
// value changed or if a rollback was cancelled, so that observers see the
// updating flag clear.
func (c *Controller[F]) Update(next F) {
	cancelled := c.CancelRollback()
	if !cancelled && next == c.current {
		return
	}
	prev := c.current
	c.current = next
	switch {
	case !cancelled:
		c.emit(KindUpdate, prev, next)
	case next == prev:
		c.emit(KindConfirm, prev, next)
	default:
		c.emit(KindOverride, prev, next)
	}
	c.NotifyChange(false)
}

// UpdateWith applies an authoritative partial update. fn receives a copy
// of the current tuple to modify.
func (c *Controller[F]) UpdateWith(fn func(*F)) {
	next := c.current
	fn(&next)
	c.Update(next)
}

// Resync repairs the current value after a capability change.
//
// It is skipped while a request is pending, since the device answer will
// overwrite the value anyway. Returns true if the value changed.
func (c *Controller[F]) Resync(fn func(*F)) bool {
	if c.IsUpdating() {
		return false
	}
	next := c.current
	fn(&next)
	if next == c.current {
		return false
	}
	prev := c.current
	c.current = next
	c.emit(KindResync, prev, next)
	c.NotifyChange(false)
	return true
}

// Reset restores value without notification and drops any pending rollback.
func (c *Controller[F]) Reset(value F) {
	c.rollback = nil
	c.current = value
}

// Discard drops a pending rollback on teardown. The rollback is never
// applied and no change is notified.
func (c *Controller[F]) Discard() {
	if c.rollback == nil {
		return
	}
	snapshot := c.rollback.Snapshot
	c.rollback = nil
	c.emit(KindDiscard, snapshot, c.current)
}

func (c *Controller[F]) emit(kind Kind, from, to F) {
	if c.trace == nil {
		return
	}
	c.trace(Transition{
		Setting: c.name,
		Kind:    kind,
		From:    from,
		To:      to,
	})
}
