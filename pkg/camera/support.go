package camera

import (
	"cmp"

	"github.com/aerolens/camsync/pkg/capability"
	"github.com/aerolens/camsync/pkg/setting"
)

// part is the type-erased view of a controller the Camera needs for
// tracing and teardown.
type part interface {
	SetTracer(fn setting.TraceFunc)
	Discard()
}

// updateSupported replaces a supported-values set. If the field picked by
// field is no longer supported it is resynced to the first value of the
// new set, unless a request is pending.
func updateSupported[F comparable, T cmp.Ordered](ctrl *setting.Controller[F], dst *capability.Set[T], values []T, field func(*F) *T) {
	next := capability.SetOf(values...)
	if next.Equal(*dst) {
		return
	}
	*dst = next
	resynced := ctrl.Resync(func(f *F) {
		v := field(f)
		if !next.IsEmpty() && !next.Contains(*v) {
			*v, _ = next.First()
		}
	})
	if !resynced {
		ctrl.NotifyChange(false)
	}
}

// supportedOrFirst returns v if set contains it, else the first member of
// set. An empty set keeps v.
func supportedOrFirst[T cmp.Ordered](set capability.Set[T], v T) T {
	if set.IsEmpty() || set.Contains(v) {
		return v
	}
	first, _ := set.First()
	return first
}

// updateRange replaces a bounds value, notifying on change.
func updateRange[F comparable, T setting.Number](ctrl *setting.Controller[F], dst *setting.Range[T], lo, hi T) {
	next := setting.Range[T]{Min: lo, Max: hi}
	if next == *dst {
		return
	}
	*dst = next
	ctrl.NotifyChange(false)
}

// cancelAndNotify drops a pending request, notifying if one existed.
func cancelAndNotify[F comparable](ctrl *setting.Controller[F]) {
	if ctrl.CancelRollback() {
		ctrl.NotifyChange(false)
	}
}
