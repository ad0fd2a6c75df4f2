package wire

// Status represents a response status code.
type Status uint8

const (
	// StatusSuccess indicates the request was accepted.
	StatusSuccess Status = 0

	// StatusInvalidFeature indicates the feature doesn't exist on the camera.
	StatusInvalidFeature Status = 1

	// StatusInvalidAttribute indicates the attribute doesn't exist or is
	// read-only.
	StatusInvalidAttribute Status = 2

	// StatusInvalidCommand indicates the command doesn't exist.
	StatusInvalidCommand Status = 3

	// StatusInvalidParameter indicates a value is malformed.
	StatusInvalidParameter Status = 4

	// StatusUnsupported indicates a value the camera does not support in
	// its current configuration.
	StatusUnsupported Status = 5

	// StatusBusy indicates the camera cannot take the request right now.
	StatusBusy Status = 6
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusInvalidFeature:
		return "INVALID_FEATURE"
	case StatusInvalidAttribute:
		return "INVALID_ATTRIBUTE"
	case StatusInvalidCommand:
		return "INVALID_COMMAND"
	case StatusInvalidParameter:
		return "INVALID_PARAMETER"
	case StatusUnsupported:
		return "UNSUPPORTED"
	case StatusBusy:
		return "BUSY"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}
