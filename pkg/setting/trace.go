package setting

// Kind classifies a setting state transition.
type Kind uint8

const (
	// KindRequest is a local request forwarded to the device.
	KindRequest Kind = iota
	// KindReject is a local request the backend refused to send.
	KindReject
	// KindConfirm is a device update matching the pending request.
	KindConfirm
	// KindOverride is a device update replacing a pending request with another value.
	KindOverride
	// KindUpdate is a device update with no request pending.
	KindUpdate
	// KindResync is a capability-driven repair.
	KindResync
	// KindDiscard is a pending rollback dropped on teardown.
	KindDiscard
)

// String returns the transition kind name.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "REQUEST"
	case KindReject:
		return "REJECT"
	case KindConfirm:
		return "CONFIRM"
	case KindOverride:
		return "OVERRIDE"
	case KindUpdate:
		return "UPDATE"
	case KindResync:
		return "RESYNC"
	case KindDiscard:
		return "DISCARD"
	default:
		return "UNKNOWN"
	}
}

// Transition describes one change of a setting's state.
type Transition struct {
	Setting string
	Kind    Kind
	From    any
	To      any
}

// TraceFunc receives setting transitions.
type TraceFunc func(Transition)
