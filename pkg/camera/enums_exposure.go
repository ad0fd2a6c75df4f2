package camera

import "fmt"

// ExposureMode selects which exposure parameters are automatic.
type ExposureMode uint8

const (
	ExposureAutomatic ExposureMode = iota
	ExposureAutomaticPreferISO
	ExposureAutomaticPreferShutterSpeed
	ExposureManualISO
	ExposureManualShutterSpeed
	ExposureManual
)

var exposureModeNames = []string{
	"AUTOMATIC",
	"AUTOMATIC_PREFER_ISO_SENSITIVITY",
	"AUTOMATIC_PREFER_SHUTTER_SPEED",
	"MANUAL_ISO_SENSITIVITY",
	"MANUAL_SHUTTER_SPEED",
	"MANUAL",
}

// String returns the exposure mode name.
func (m ExposureMode) String() string {
	return enumName(exposureModeNames, uint8(m))
}

// MeteringMode is the auto exposure metering mode.
type MeteringMode uint8

const (
	MeteringStandard MeteringMode = iota
	MeteringCenterTop
)

// String returns the metering mode name.
func (m MeteringMode) String() string {
	return enumName([]string{"STANDARD", "CENTER_TOP"}, uint8(m))
}

// ShutterSpeed is a shutter speed step, fastest first.
type ShutterSpeed uint8

const (
	Shutter1Over10000 ShutterSpeed = iota
	Shutter1Over8000
	Shutter1Over6400
	Shutter1Over5000
	Shutter1Over4000
	Shutter1Over3200
	Shutter1Over2500
	Shutter1Over2000
	Shutter1Over1600
	Shutter1Over1250
	Shutter1Over1000
	Shutter1Over800
	Shutter1Over640
	Shutter1Over500
	Shutter1Over400
	Shutter1Over320
	Shutter1Over240
	Shutter1Over200
	Shutter1Over160
	Shutter1Over120
	Shutter1Over100
	Shutter1Over80
	Shutter1Over60
	Shutter1Over50
	Shutter1Over40
	Shutter1Over30
	Shutter1Over25
	Shutter1Over15
	Shutter1Over10
	Shutter1Over8
	Shutter1Over6
	Shutter1Over4
	Shutter1Over3
	Shutter1Over2
	Shutter1Over1_5
	Shutter1
)

var shutterDenominators = []string{
	"10000", "8000", "6400", "5000", "4000", "3200", "2500", "2000", "1600", "1250",
	"1000", "800", "640", "500", "400", "320", "240", "200", "160", "120",
	"100", "80", "60", "50", "40", "30", "25", "15", "10", "8",
	"6", "4", "3", "2", "1_5",
}

// String returns the shutter speed name, e.g. ONE_OVER_1000.
func (s ShutterSpeed) String() string {
	switch {
	case int(s) < len(shutterDenominators):
		return "ONE_OVER_" + shutterDenominators[s]
	case s == Shutter1:
		return "ONE"
	default:
		return unknownName
	}
}

// ISOSensitivity is an ISO sensitivity step.
type ISOSensitivity uint8

const (
	ISO50 ISOSensitivity = iota
	ISO64
	ISO80
	ISO100
	ISO125
	ISO160
	ISO200
	ISO250
	ISO320
	ISO400
	ISO500
	ISO640
	ISO800
	ISO1200
	ISO1600
	ISO2500
	ISO3200
)

var isoValues = []int{50, 64, 80, 100, 125, 160, 200, 250, 320, 400, 500, 640, 800, 1200, 1600, 2500, 3200}

// Value returns the numeric ISO value, or 0 if unknown.
func (i ISOSensitivity) Value() int {
	if int(i) < len(isoValues) {
		return isoValues[i]
	}
	return 0
}

// String returns the ISO name, e.g. ISO_100.
func (i ISOSensitivity) String() string {
	if v := i.Value(); v != 0 {
		return fmt.Sprintf("ISO_%d", v)
	}
	return unknownName
}

// WhiteBalanceMode is a white balance preset.
type WhiteBalanceMode uint8

const (
	WhiteBalanceAutomatic WhiteBalanceMode = iota
	WhiteBalanceCandle
	WhiteBalanceSunset
	WhiteBalanceIncandescent
	WhiteBalanceWarmWhiteFluorescent
	WhiteBalanceHalogen
	WhiteBalanceFluorescent
	WhiteBalanceCoolWhiteFluorescent
	WhiteBalanceFlash
	WhiteBalanceDaylight
	WhiteBalanceSunny
	WhiteBalanceCloudy
	WhiteBalanceSnow
	WhiteBalanceHazy
	WhiteBalanceShaded
	WhiteBalanceGreenFoliage
	WhiteBalanceBlueSky
	WhiteBalanceCustom
)

var whiteBalanceModeNames = []string{
	"AUTOMATIC", "CANDLE", "SUNSET", "INCANDESCENT", "WARM_WHITE_FLUORESCENT",
	"HALOGEN", "FLUORESCENT", "COOL_WHITE_FLUORESCENT", "FLASH", "DAYLIGHT",
	"SUNNY", "CLOUDY", "SNOW", "HAZY", "SHADED", "GREEN_FOLIAGE", "BLUE_SKY", "CUSTOM",
}

// String returns the white balance mode name.
func (m WhiteBalanceMode) String() string {
	return enumName(whiteBalanceModeNames, uint8(m))
}

// Temperature is a custom white balance temperature, from 1500K to 15000K
// in 250K steps.
type Temperature uint8

const (
	// K1500 is the lowest supported temperature.
	K1500 Temperature = 0
	// K5000 is daylight.
	K5000 Temperature = 14
	// K15000 is the highest supported temperature.
	K15000 Temperature = 54
)

// TemperatureOf returns the step for a Kelvin value. ok is false if kelvin
// is not one of the defined steps.
func TemperatureOf(kelvin int) (t Temperature, ok bool) {
	if kelvin < 1500 || kelvin > 15000 || (kelvin-1500)%250 != 0 {
		return 0, false
	}
	return Temperature((kelvin - 1500) / 250), true
}

// Kelvin returns the temperature in Kelvin.
func (t Temperature) Kelvin() int {
	return 1500 + 250*int(t)
}

// String returns the temperature name, e.g. K_5000.
func (t Temperature) String() string {
	if t > K15000 {
		return unknownName
	}
	return fmt.Sprintf("K_%d", t.Kelvin())
}
