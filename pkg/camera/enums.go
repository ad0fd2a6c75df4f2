package camera

import (
	"fmt"
	"strings"
)

// Enum is implemented by every camera enum type.
type Enum interface {
	~uint8
	fmt.Stringer
}

// ParseEnum looks up an enum value by its name, ignoring case.
func ParseEnum[E Enum](name string) (E, error) {
	for i := 0; i <= 0xff; i++ {
		v := E(i)
		s := v.String()
		if s == unknownName {
			continue
		}
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}
	var zero E
	return zero, fmt.Errorf("unknown value %q", name)
}

// Values returns every defined value of an enum in enum order.
func Values[E Enum]() []E {
	var values []E
	for i := 0; i <= 0xff; i++ {
		if v := E(i); v.String() != unknownName {
			values = append(values, v)
		}
	}
	return values
}

const unknownName = "UNKNOWN"

func enumName(names []string, i uint8) string {
	if int(i) < len(names) {
		return names[i]
	}
	return unknownName
}

// Mode is the camera operating mode.
type Mode uint8

const (
	// ModeRecording captures video.
	ModeRecording Mode = iota
	// ModePhoto captures still images.
	ModePhoto
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeRecording:
		return "RECORDING"
	case ModePhoto:
		return "PHOTO"
	default:
		return unknownName
	}
}

// EVCompensation is an exposure compensation step, in thirds of EV.
type EVCompensation uint8

const (
	EVMinus3 EVCompensation = iota
	EVMinus2_67
	EVMinus2_33
	EVMinus2
	EVMinus1_67
	EVMinus1_33
	EVMinus1
	EVMinus0_67
	EVMinus0_33
	EV0
	EV0_33
	EV0_67
	EV1
	EV1_33
	EV1_67
	EV2
	EV2_33
	EV2_67
	EV3
)

var evCompensationNames = []string{
	"EV_MINUS_3", "EV_MINUS_2_67", "EV_MINUS_2_33", "EV_MINUS_2", "EV_MINUS_1_67",
	"EV_MINUS_1_33", "EV_MINUS_1", "EV_MINUS_0_67", "EV_MINUS_0_33", "EV_0",
	"EV_0_33", "EV_0_67", "EV_1", "EV_1_33", "EV_1_67", "EV_2", "EV_2_33", "EV_2_67", "EV_3",
}

// String returns the compensation name.
func (e EVCompensation) String() string {
	return enumName(evCompensationNames, uint8(e))
}

// Style is an image style preset.
type Style uint8

const (
	StyleStandard Style = iota
	StylePlog
	StyleIntense
	StylePastel
)

// String returns the style name.
func (s Style) String() string {
	return enumName([]string{"STANDARD", "PLOG", "INTENSE", "PASTEL"}, uint8(s))
}

// ExposureLockMode is the exposure lock state.
type ExposureLockMode uint8

const (
	// ExposureLockNone means exposure is not locked.
	ExposureLockNone ExposureLockMode = iota
	// ExposureLockCurrentValues locks on the current exposure values.
	ExposureLockCurrentValues
	// ExposureLockRegion locks exposure on an image region.
	ExposureLockRegion
)

// String returns the lock mode name.
func (m ExposureLockMode) String() string {
	switch m {
	case ExposureLockNone:
		return "NONE"
	case ExposureLockCurrentValues:
		return "CURRENT_VALUES"
	case ExposureLockRegion:
		return "REGION"
	default:
		return unknownName
	}
}

// ZoomControlMode selects how a zoom target is interpreted.
type ZoomControlMode uint8

const (
	// ZoomLevel targets an absolute zoom level.
	ZoomLevel ZoomControlMode = iota
	// ZoomVelocity targets a signed zoom speed ratio.
	ZoomVelocity
)

// String returns the control mode name.
func (m ZoomControlMode) String() string {
	switch m {
	case ZoomLevel:
		return "LEVEL"
	case ZoomVelocity:
		return "VELOCITY"
	default:
		return unknownName
	}
}
