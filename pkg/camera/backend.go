package camera

// Backend methods forward user requests to the device. A method returns
// true when the request was accepted for transmission, in which case the
// setting switches to the updating state; false means nothing was sent and
// the setting is left untouched.

// ExposureBackend sends exposure settings.
type ExposureBackend interface {
	SetExposure(mode ExposureMode, shutterSpeed ShutterSpeed, iso, maxISO ISOSensitivity, metering MeteringMode) bool
}

// WhiteBalanceBackend sends white balance settings.
type WhiteBalanceBackend interface {
	SetWhiteBalance(mode WhiteBalanceMode, temperature Temperature) bool
}

// PhotoRequest carries a photo settings change. Mode is always set; a nil
// field lets the device pick an appropriate value.
type PhotoRequest struct {
	Mode              PhotoMode
	Format            *PhotoFormat
	FileFormat        *PhotoFileFormat
	Burst             *BurstValue
	Bracketing        *BracketingValue
	TimelapseInterval *float64
	GpslapseInterval  *float64
}

// PhotoBackend sends photo settings.
type PhotoBackend interface {
	SetPhoto(req PhotoRequest) bool
}

// RecordingRequest carries a recording settings change. Mode is always set;
// a nil field lets the device pick an appropriate value.
type RecordingRequest struct {
	Mode       RecordingMode
	Resolution *Resolution
	Framerate  *Framerate
	Hyperlapse *HyperlapseValue
}

// RecordingBackend sends recording settings.
type RecordingBackend interface {
	SetRecording(req RecordingRequest) bool
}

// StyleBackend sends image style settings.
type StyleBackend interface {
	SetStyle(style Style) bool
	SetStyleParameters(saturation, contrast, sharpness int) bool
}

// AlignmentBackend sends camera alignment offsets.
type AlignmentBackend interface {
	SetAlignment(yaw, pitch, roll float64) bool
	ResetAlignment() bool
}

// ExposureLockBackend sends exposure lock requests.
type ExposureLockBackend interface {
	SetExposureLock(mode ExposureLockMode, centerX, centerY float64) bool
}

// WhiteBalanceLockBackend sends white balance lock requests.
type WhiteBalanceLockBackend interface {
	SetWhiteBalanceLock(locked bool) bool
}

// ZoomBackend sends zoom settings and commands.
type ZoomBackend interface {
	SetMaxZoomSpeed(speed float64) bool
	SetQualityDegradationAllowance(allowed bool) bool
	// ControlZoom is fire-and-forget; the device reports the resulting
	// level asynchronously.
	ControlZoom(mode ZoomControlMode, target float64)
}

// CaptureBackend sends camera-level settings and capture commands.
type CaptureBackend interface {
	SetMode(mode Mode) bool
	SetEVCompensation(ev EVCompensation) bool
	SetAutoHDR(enabled bool) bool
	SetAutoRecord(enabled bool) bool
	StartPhotoCapture() bool
	StopPhotoCapture() bool
	StartRecording() bool
	StopRecording() bool
}

// Backend is everything a Camera needs from the device link.
type Backend interface {
	CaptureBackend
	ExposureBackend
	WhiteBalanceBackend
	PhotoBackend
	RecordingBackend
	StyleBackend
	AlignmentBackend
	ExposureLockBackend
	WhiteBalanceLockBackend
	ZoomBackend
}
