package camera

// PhotoMode is the photo capture mode.
type PhotoMode uint8

const (
	PhotoSingle PhotoMode = iota
	PhotoBracketing
	PhotoBurst
	PhotoTimelapse
	PhotoGpslapse
)

// String returns the photo mode name.
func (m PhotoMode) String() string {
	return enumName([]string{"SINGLE", "BRACKETING", "BURST", "TIME_LAPSE", "GPS_LAPSE"}, uint8(m))
}

// PhotoFormat is the photo framing format.
type PhotoFormat uint8

const (
	PhotoRectilinear PhotoFormat = iota
	PhotoFullFrame
)

// String returns the format name.
func (f PhotoFormat) String() string {
	return enumName([]string{"RECTILINEAR", "FULL_FRAME"}, uint8(f))
}

// PhotoFileFormat is the photo file encoding.
type PhotoFileFormat uint8

const (
	PhotoJPEG PhotoFileFormat = iota
	PhotoDNG
)

// String returns the file format name.
func (f PhotoFileFormat) String() string {
	return enumName([]string{"JPEG", "DNG"}, uint8(f))
}

// BurstValue is a burst shot count over a duration.
type BurstValue uint8

const (
	Burst14Over4s BurstValue = iota
	Burst14Over2s
	Burst14Over1s
	Burst10Over4s
	Burst10Over2s
	Burst10Over1s
	Burst4Over4s
	Burst4Over2s
	Burst4Over1s
)

var burstNames = []string{
	"BURST_14_OVER_4S", "BURST_14_OVER_2S", "BURST_14_OVER_1S",
	"BURST_10_OVER_4S", "BURST_10_OVER_2S", "BURST_10_OVER_1S",
	"BURST_4_OVER_4S", "BURST_4_OVER_2S", "BURST_4_OVER_1S",
}

// String returns the burst value name.
func (b BurstValue) String() string {
	return enumName(burstNames, uint8(b))
}

// BracketingValue is a set of EV offsets used in bracketing mode.
type BracketingValue uint8

const (
	BracketingEV1 BracketingValue = iota
	BracketingEV2
	BracketingEV3
	BracketingEV1_2
	BracketingEV1_3
	BracketingEV2_3
	BracketingEV1_2_3
)

// String returns the bracketing value name.
func (b BracketingValue) String() string {
	return enumName([]string{"EV_1", "EV_2", "EV_3", "EV_1_2", "EV_1_3", "EV_2_3", "EV_1_2_3"}, uint8(b))
}

// RecordingMode is the video recording mode.
type RecordingMode uint8

const (
	RecordingStandard RecordingMode = iota
	RecordingHyperlapse
	RecordingSlowMotion
	RecordingHighFramerate
)

// String returns the recording mode name.
func (m RecordingMode) String() string {
	return enumName([]string{"STANDARD", "HYPERLAPSE", "SLOW_MOTION", "HIGH_FRAMERATE"}, uint8(m))
}

// Resolution is a video resolution.
type Resolution uint8

const (
	ResolutionDCI4K Resolution = iota
	ResolutionUHD4K
	Resolution2_7K
	Resolution1080p
	Resolution1080p4_3
	Resolution720p
	Resolution720p4_3
	Resolution480p
	ResolutionUHD8K
)

var resolutionNames = []string{
	"RES_DCI_4K", "RES_UHD_4K", "RES_2_7K", "RES_1080P", "RES_1080P_4_3",
	"RES_720P", "RES_720P_4_3", "RES_480P", "RES_UHD_8K",
}

// String returns the resolution name.
func (r Resolution) String() string {
	return enumName(resolutionNames, uint8(r))
}

// Framerate is a video framerate, highest first.
type Framerate uint8

const (
	FPS240 Framerate = iota
	FPS200
	FPS192
	FPS120
	FPS100
	FPS96
	FPS60
	FPS50
	FPS48
	FPS30
	FPS25
	FPS24
	FPS20
	FPS15
	FPS10
	FPS9
)

var framerateNames = []string{
	"FPS_240", "FPS_200", "FPS_192", "FPS_120", "FPS_100", "FPS_96", "FPS_60", "FPS_50",
	"FPS_48", "FPS_30", "FPS_25", "FPS_24", "FPS_20", "FPS_15", "FPS_10", "FPS_9",
}

// String returns the framerate name.
func (f Framerate) String() string {
	return enumName(framerateNames, uint8(f))
}

// HyperlapseValue is the hyperlapse frame ratio.
type HyperlapseValue uint8

const (
	HyperlapseRatio15 HyperlapseValue = iota
	HyperlapseRatio30
	HyperlapseRatio60
	HyperlapseRatio120
	HyperlapseRatio240
)

// String returns the hyperlapse value name.
func (h HyperlapseValue) String() string {
	return enumName([]string{"RATIO_15", "RATIO_30", "RATIO_60", "RATIO_120", "RATIO_240"}, uint8(h))
}

// PhotoState is the state of the photo capture function.
type PhotoState uint8

const (
	PhotoUnavailable PhotoState = iota
	PhotoStopped
	PhotoStarted
	PhotoStopping
	PhotoErrorInsufficientStorage
)

// String returns the photo function state name.
func (s PhotoState) String() string {
	return enumName([]string{"UNAVAILABLE", "STOPPED", "STARTED", "STOPPING", "ERROR_INSUFFICIENT_STORAGE"}, uint8(s))
}

// RecordingState is the state of the recording function.
type RecordingState uint8

const (
	RecordingUnavailable RecordingState = iota
	RecordingStopped
	RecordingStarting
	RecordingStarted
	RecordingStopping
	RecordingConfigurationChange
	RecordingErrorInsufficientStorageSpace
	RecordingErrorInsufficientStorageSpeed
)

var recordingStateNames = []string{
	"UNAVAILABLE", "STOPPED", "STARTING", "STARTED", "STOPPING",
	"CONFIGURATION_CHANGE", "ERROR_INSUFFICIENT_STORAGE_SPACE", "ERROR_INSUFFICIENT_STORAGE_SPEED",
}

// String returns the recording function state name.
func (s RecordingState) String() string {
	return enumName(recordingStateNames, uint8(s))
}
