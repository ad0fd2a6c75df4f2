package camera_test

import "github.com/aerolens/camsync/pkg/camera"

// fakeBackend records every call and answers with accept.
type fakeBackend struct {
	accept bool
	calls  []string

	photoReqs     []camera.PhotoRequest
	recordingReqs []camera.RecordingRequest
	lastWB        camera.WhiteBalanceSettings
	lastStyle     [3]int
	lastAlignment camera.AlignmentOffsets
	zoomCommands  []float64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{accept: true}
}

func (f *fakeBackend) record(name string) bool {
	f.calls = append(f.calls, name)
	return f.accept
}

func (f *fakeBackend) SetMode(camera.Mode) bool                     { return f.record("SetMode") }
func (f *fakeBackend) SetEVCompensation(camera.EVCompensation) bool { return f.record("SetEVCompensation") }
func (f *fakeBackend) SetAutoHDR(bool) bool                         { return f.record("SetAutoHDR") }
func (f *fakeBackend) SetAutoRecord(bool) bool                      { return f.record("SetAutoRecord") }
func (f *fakeBackend) StartPhotoCapture() bool                      { return f.record("StartPhotoCapture") }
func (f *fakeBackend) StopPhotoCapture() bool                       { return f.record("StopPhotoCapture") }
func (f *fakeBackend) StartRecording() bool                         { return f.record("StartRecording") }
func (f *fakeBackend) StopRecording() bool                          { return f.record("StopRecording") }

func (f *fakeBackend) SetExposure(camera.ExposureMode, camera.ShutterSpeed, camera.ISOSensitivity, camera.ISOSensitivity, camera.MeteringMode) bool {
	return f.record("SetExposure")
}

func (f *fakeBackend) SetWhiteBalance(mode camera.WhiteBalanceMode, t camera.Temperature) bool {
	f.lastWB = camera.WhiteBalanceSettings{Mode: mode, Temperature: t}
	return f.record("SetWhiteBalance")
}

func (f *fakeBackend) SetPhoto(req camera.PhotoRequest) bool {
	f.photoReqs = append(f.photoReqs, req)
	return f.record("SetPhoto")
}

func (f *fakeBackend) SetRecording(req camera.RecordingRequest) bool {
	f.recordingReqs = append(f.recordingReqs, req)
	return f.record("SetRecording")
}

func (f *fakeBackend) SetStyle(camera.Style) bool { return f.record("SetStyle") }

func (f *fakeBackend) SetStyleParameters(saturation, contrast, sharpness int) bool {
	f.lastStyle = [3]int{saturation, contrast, sharpness}
	return f.record("SetStyleParameters")
}

func (f *fakeBackend) SetAlignment(yaw, pitch, roll float64) bool {
	f.lastAlignment = camera.AlignmentOffsets{Yaw: yaw, Pitch: pitch, Roll: roll}
	return f.record("SetAlignment")
}

func (f *fakeBackend) ResetAlignment() bool { return f.record("ResetAlignment") }

func (f *fakeBackend) SetExposureLock(camera.ExposureLockMode, float64, float64) bool {
	return f.record("SetExposureLock")
}

func (f *fakeBackend) SetWhiteBalanceLock(bool) bool { return f.record("SetWhiteBalanceLock") }

func (f *fakeBackend) SetMaxZoomSpeed(float64) bool { return f.record("SetMaxZoomSpeed") }

func (f *fakeBackend) SetQualityDegradationAllowance(bool) bool {
	return f.record("SetQualityDegradationAllowance")
}

func (f *fakeBackend) ControlZoom(_ camera.ZoomControlMode, target float64) {
	f.zoomCommands = append(f.zoomCommands, target)
	f.record("ControlZoom")
}

var _ camera.Backend = (*fakeBackend)(nil)

// changeCounter counts change notifications by origin.
type changeCounter struct {
	user   int
	device int
}

func (c *changeCounter) onChange(fromUser bool) {
	if fromUser {
		c.user++
	} else {
		c.device++
	}
}
