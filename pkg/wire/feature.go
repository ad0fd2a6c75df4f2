package wire

// FeatureID identifies a setting group of the camera.
type FeatureID uint8

const (
	// FeatureCamera carries camera-wide state: mode, EV compensation,
	// auto HDR/record and capture state.
	FeatureCamera FeatureID = 1

	// FeatureExposure carries the exposure tuple and its supported values.
	FeatureExposure FeatureID = 2

	// FeatureWhiteBalance carries the white balance tuple.
	FeatureWhiteBalance FeatureID = 3

	// FeaturePhoto carries the photo mode tuple and its capabilities.
	FeaturePhoto FeatureID = 4

	// FeatureRecording carries the recording mode tuple and its capabilities.
	FeatureRecording FeatureID = 5

	// FeatureStyle carries the image style and its parameters.
	FeatureStyle FeatureID = 6

	// FeatureAlignment carries the camera alignment offsets.
	FeatureAlignment FeatureID = 7

	// FeatureExposureLock carries the exposure lock state.
	FeatureExposureLock FeatureID = 8

	// FeatureWhiteBalanceLock carries the white balance lock state.
	FeatureWhiteBalanceLock FeatureID = 9

	// FeatureZoom carries zoom levels and settings.
	FeatureZoom FeatureID = 10
)

// String returns the feature name.
func (f FeatureID) String() string {
	switch f {
	case FeatureCamera:
		return "Camera"
	case FeatureExposure:
		return "Exposure"
	case FeatureWhiteBalance:
		return "WhiteBalance"
	case FeaturePhoto:
		return "Photo"
	case FeatureRecording:
		return "Recording"
	case FeatureStyle:
		return "Style"
	case FeatureAlignment:
		return "Alignment"
	case FeatureExposureLock:
		return "ExposureLock"
	case FeatureWhiteBalanceLock:
		return "WhiteBalanceLock"
	case FeatureZoom:
		return "Zoom"
	default:
		return "Unknown"
	}
}

// AttributeID identifies an attribute within a feature.
type AttributeID uint16

// Camera attributes.
const (
	AttrCameraActive              AttributeID = 1
	AttrCameraMode                AttributeID = 2
	AttrCameraSupportedModes      AttributeID = 3
	AttrCameraEVCompensation      AttributeID = 4
	AttrCameraSupportedEV         AttributeID = 5
	AttrCameraAutoHDRSupported    AttributeID = 6
	AttrCameraAutoHDR             AttributeID = 7
	AttrCameraAutoRecordSupported AttributeID = 8
	AttrCameraAutoRecord          AttributeID = 9
	AttrCameraHDRActive           AttributeID = 10
	AttrCameraPhotoState          AttributeID = 11
	AttrCameraPhotoCount          AttributeID = 12
	AttrCameraPhotoMediaID        AttributeID = 13
	AttrCameraRecordingState      AttributeID = 14
	AttrCameraRecordingMediaID    AttributeID = 15
)

// Exposure attributes.
const (
	AttrExposureMode                  AttributeID = 1
	AttrExposureShutterSpeed          AttributeID = 2
	AttrExposureISO                   AttributeID = 3
	AttrExposureMaxISO                AttributeID = 4
	AttrExposureMetering              AttributeID = 5
	AttrExposureSupportedModes        AttributeID = 6
	AttrExposureSupportedShutterSpeed AttributeID = 7
	AttrExposureSupportedISOs         AttributeID = 8
	AttrExposureSupportedMaxISOs      AttributeID = 9
)

// White balance attributes.
const (
	AttrWhiteBalanceMode                  AttributeID = 1
	AttrWhiteBalanceTemperature           AttributeID = 2
	AttrWhiteBalanceSupportedModes        AttributeID = 3
	AttrWhiteBalanceSupportedTemperatures AttributeID = 4
)

// Photo attributes.
const (
	AttrPhotoMode                AttributeID = 1
	AttrPhotoFormat              AttributeID = 2
	AttrPhotoFileFormat          AttributeID = 3
	AttrPhotoBurst               AttributeID = 4
	AttrPhotoBracketing          AttributeID = 5
	AttrPhotoTimelapseInterval   AttributeID = 6
	AttrPhotoGpslapseInterval    AttributeID = 7
	AttrPhotoCapabilities        AttributeID = 8
	AttrPhotoSupportedBurst      AttributeID = 9
	AttrPhotoSupportedBracketing AttributeID = 10
	AttrPhotoTimelapseRange      AttributeID = 11
	AttrPhotoGpslapseRange       AttributeID = 12
)

// Recording attributes.
const (
	AttrRecordingMode                AttributeID = 1
	AttrRecordingResolution          AttributeID = 2
	AttrRecordingFramerate           AttributeID = 3
	AttrRecordingHyperlapse          AttributeID = 4
	AttrRecordingCapabilities        AttributeID = 5
	AttrRecordingSupportedHyperlapse AttributeID = 6
	AttrRecordingBitrate             AttributeID = 7
)

// Style attributes. Parameters are encoded as Bounded values.
const (
	AttrStyleStyle           AttributeID = 1
	AttrStyleSupportedStyles AttributeID = 2
	AttrStyleSaturation      AttributeID = 3
	AttrStyleContrast        AttributeID = 4
	AttrStyleSharpness       AttributeID = 5
)

// Alignment attributes. Ranges are encoded as Range values.
const (
	AttrAlignmentYaw        AttributeID = 1
	AttrAlignmentPitch      AttributeID = 2
	AttrAlignmentRoll       AttributeID = 3
	AttrAlignmentYawRange   AttributeID = 4
	AttrAlignmentPitchRange AttributeID = 5
	AttrAlignmentRollRange  AttributeID = 6
)

// Exposure lock attributes.
const (
	AttrExposureLockMode    AttributeID = 1
	AttrExposureLockCenterX AttributeID = 2
	AttrExposureLockCenterY AttributeID = 3
	AttrExposureLockWidth   AttributeID = 4
	AttrExposureLockHeight  AttributeID = 5
)

// White balance lock attributes.
const (
	AttrWhiteBalanceLockLockable AttributeID = 1
	AttrWhiteBalanceLockLocked   AttributeID = 2
)

// Zoom attributes.
const (
	AttrZoomAvailable          AttributeID = 1
	AttrZoomCurrentLevel       AttributeID = 2
	AttrZoomMaxLossyLevel      AttributeID = 3
	AttrZoomMaxLosslessLevel   AttributeID = 4
	AttrZoomMaxSpeed           AttributeID = 5
	AttrZoomMaxSpeedRange      AttributeID = 6
	AttrZoomQualityDegradation AttributeID = 7
	AttrZoomControlMode        AttributeID = 8
	AttrZoomTarget             AttributeID = 9
)

// CommandID identifies a command within a feature.
type CommandID uint8

// Commands. Numbering is per feature.
const (
	CmdStartPhotoCapture CommandID = 1 // FeatureCamera
	CmdStopPhotoCapture  CommandID = 2 // FeatureCamera
	CmdStartRecording    CommandID = 3 // FeatureCamera
	CmdStopRecording     CommandID = 4 // FeatureCamera
	CmdResetAlignment    CommandID = 1 // FeatureAlignment
	CmdControlZoom       CommandID = 1 // FeatureZoom
)
