package wire

// Operation represents a request operation.
type Operation uint8

const (
	// OpRead asks for the current values of a feature. The camera answers
	// with a Response and pushes the values as a Notification.
	OpRead Operation = 1

	// OpWrite sets attribute values of a feature.
	OpWrite Operation = 2

	// OpInvoke executes a feature command with parameters.
	OpInvoke Operation = 3
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpRead:
		return "Read"
	case OpWrite:
		return "Write"
	case OpInvoke:
		return "Invoke"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the operation is a known operation.
func (o Operation) IsValid() bool {
	return o >= OpRead && o <= OpInvoke
}
