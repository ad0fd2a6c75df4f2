package interaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerolens/camsync/pkg/camera"
	"github.com/aerolens/camsync/pkg/interaction"
	"github.com/aerolens/camsync/pkg/log"
	"github.com/aerolens/camsync/pkg/setting"
	"github.com/aerolens/camsync/pkg/wire"
)

type dispatchFixture struct {
	cam        *camera.Camera
	client     *interaction.Client
	dispatcher *interaction.Dispatcher
	rec        *eventRecorder
	changes    int
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	t.Helper()
	f := &dispatchFixture{rec: &eventRecorder{}}
	f.client = interaction.NewClient(interaction.Config{SessionID: "test-session", QueueSize: 64})
	f.cam = camera.New(f.client)
	f.cam.SetTracer(func(tr setting.Transition) {
		f.rec.Log(log.TransitionEventFor("test-session", tr))
	})
	f.cam.OnChange(func(*camera.Camera) { f.changes++ })
	f.dispatcher = interaction.NewDispatcher(f.cam)
	return f
}

func (f *dispatchFixture) apply(t *testing.T, feature wire.FeatureID, b *wire.AttributeBuilder) {
	t.Helper()
	require.NoError(t, f.dispatcher.Apply(notification(t, feature, b)))
}

func (f *dispatchFixture) supportExposure(t *testing.T) {
	t.Helper()
	f.apply(t, wire.FeatureExposure, attrs().
		Put(wire.AttrExposureSupportedModes, wire.Enums(camera.ExposureAutomatic, camera.ExposureManual)).
		Put(wire.AttrExposureSupportedShutterSpeed, wire.Enums(camera.Shutter1Over1000, camera.Shutter1)).
		Put(wire.AttrExposureSupportedISOs, wire.Enums(camera.ISO50, camera.ISO100)).
		Put(wire.AttrExposureSupportedMaxISOs, wire.Enums(camera.ISO800, camera.ISO3200)))
}

func TestDispatcherExposureConfirmsRequest(t *testing.T) {
	f := newDispatchFixture(t)
	f.supportExposure(t)

	exposure := f.cam.Exposure()
	exposure.SetISO(camera.ISO100)
	require.True(t, exposure.IsUpdating())

	// Only the ISO is reported; the rest of the tuple is overlaid.
	f.apply(t, wire.FeatureExposure, attrs().Put(wire.AttrExposureISO, camera.ISO100))

	assert.False(t, exposure.IsUpdating())
	assert.Equal(t, camera.ISO100, exposure.ISO())
	assert.Equal(t, camera.DefaultExposure.MaxISO, exposure.MaxISO())
	assert.Equal(t, []string{"REQUEST", "CONFIRM"}, f.rec.Transitions("exposure"))
}

func TestDispatcherExposureOverridesRequest(t *testing.T) {
	f := newDispatchFixture(t)
	f.supportExposure(t)

	exposure := f.cam.Exposure()
	exposure.SetISO(camera.ISO100)

	f.apply(t, wire.FeatureExposure, attrs().Put(wire.AttrExposureISO, camera.ISO50))

	assert.False(t, exposure.IsUpdating())
	assert.Equal(t, camera.ISO50, exposure.ISO())
	assert.Equal(t, []string{"REQUEST", "OVERRIDE"}, f.rec.Transitions("exposure"))
}

func TestDispatcherCapabilityResync(t *testing.T) {
	f := newDispatchFixture(t)
	f.supportExposure(t)

	f.apply(t, wire.FeatureExposure, attrs().
		Put(wire.AttrExposureSupportedISOs, wire.Enums(camera.ISO100, camera.ISO200)))

	assert.Equal(t, camera.ISO100, f.cam.Exposure().ISO())
	assert.Equal(t, []string{"RESYNC"}, f.rec.Transitions("exposure"))
}

func TestDispatcherCameraAttributes(t *testing.T) {
	f := newDispatchFixture(t)

	f.apply(t, wire.FeatureCamera, attrs().
		Put(wire.AttrCameraSupportedModes, wire.Enums(camera.ModeRecording, camera.ModePhoto)).
		Put(wire.AttrCameraMode, camera.ModePhoto).
		Put(wire.AttrCameraAutoHDRSupported, true).
		Put(wire.AttrCameraAutoHDR, true).
		Put(wire.AttrCameraActive, true).
		Put(wire.AttrCameraPhotoState, camera.PhotoStopped).
		Put(wire.AttrCameraPhotoMediaID, "IMG_0001"))

	assert.Equal(t, camera.ModePhoto, f.cam.Mode().Get())
	assert.True(t, f.cam.Mode().Available().Contains(camera.ModeRecording))
	assert.True(t, f.cam.AutoHDR().IsSupported())
	assert.True(t, f.cam.AutoHDR().IsEnabled())
	assert.True(t, f.cam.IsActive())

	// A partial photo state update keeps the other fields.
	f.apply(t, wire.FeatureCamera, attrs().Put(wire.AttrCameraPhotoCount, 3))

	state, count, media := f.cam.PhotoState()
	assert.Equal(t, camera.PhotoStopped, state)
	assert.Equal(t, 3, count)
	assert.Equal(t, "IMG_0001", media)
}

func TestDispatcherPhotoCapabilities(t *testing.T) {
	f := newDispatchFixture(t)

	f.apply(t, wire.FeaturePhoto, attrs().
		Put(wire.AttrPhotoCapabilities, []wire.CapabilityEntry{
			{
				Modes:       wire.Enums(camera.PhotoSingle),
				Formats:     wire.Enums(camera.PhotoRectilinear, camera.PhotoFullFrame),
				FileFormats: wire.Enums(camera.PhotoJPEG, camera.PhotoDNG),
				HDR:         true,
			},
		}).
		Put(wire.AttrPhotoTimelapseRange, wire.Range{Min: 1, Max: 60}))

	photo := f.cam.Photo()
	assert.True(t, photo.SupportedModes().Contains(camera.PhotoSingle))
	assert.True(t, photo.SupportedFileFormats().Contains(camera.PhotoDNG))
	assert.Equal(t, setting.Range[float64]{Min: 1, Max: 60}, photo.TimelapseIntervalRange())
}

func TestDispatcherStyleParameters(t *testing.T) {
	f := newDispatchFixture(t)

	f.apply(t, wire.FeatureStyle, attrs().
		Put(wire.AttrStyleSupportedStyles, wire.Enums(camera.StyleStandard, camera.StylePlog)).
		Put(wire.AttrStyleStyle, camera.StylePlog).
		Put(wire.AttrStyleContrast, wire.Bounded{Min: -2, Value: 1, Max: 2}))

	style := f.cam.Style()
	assert.Equal(t, camera.StylePlog, style.Style())
	assert.Equal(t, 1, style.Parameter(camera.Contrast))
	assert.Equal(t, setting.Range[int]{Min: -2, Max: 2}, style.ParameterBounds(camera.Contrast))
}

func TestDispatcherCreatesLazyComponents(t *testing.T) {
	f := newDispatchFixture(t)
	require.Nil(t, f.cam.Zoom())
	require.Nil(t, f.cam.Alignment())

	f.apply(t, wire.FeatureZoom, attrs().
		Put(wire.AttrZoomAvailable, true).
		Put(wire.AttrZoomMaxLossyLevel, 3.0).
		Put(wire.AttrZoomCurrentLevel, 2.0).
		Put(wire.AttrZoomMaxSpeedRange, wire.Range{Min: 0.1, Max: 1}).
		Put(wire.AttrZoomMaxSpeed, 0.5))

	zoom := f.cam.Zoom()
	require.NotNil(t, zoom)
	assert.True(t, zoom.IsAvailable())
	assert.Equal(t, 2.0, zoom.CurrentLevel())
	assert.Equal(t, 0.5, zoom.MaxSpeed().Get())

	f.apply(t, wire.FeatureZoom, attrs().Put(wire.AttrZoomAvailable, false))
	assert.False(t, zoom.IsAvailable())
	assert.Equal(t, 1.0, zoom.CurrentLevel())

	f.apply(t, wire.FeatureAlignment, attrs().
		Put(wire.AttrAlignmentYawRange, wire.Range{Min: -5, Max: 5}).
		Put(wire.AttrAlignmentYaw, 1.5))

	alignment := f.cam.Alignment()
	require.NotNil(t, alignment)
	assert.Equal(t, setting.Range[float64]{Min: -5, Max: 5}, alignment.YawRange())
	assert.Equal(t, 1.5, alignment.Offsets().Yaw)

	f.apply(t, wire.FeatureWhiteBalanceLock, attrs().Put(wire.AttrWhiteBalanceLockLockable, true))
	require.NotNil(t, f.cam.WhiteBalanceLock())
	assert.True(t, f.cam.WhiteBalanceLock().IsLockable())
}

func TestDispatcherExposureLockOverlay(t *testing.T) {
	f := newDispatchFixture(t)

	f.apply(t, wire.FeatureExposureLock, attrs().
		Put(wire.AttrExposureLockMode, camera.ExposureLockRegion).
		Put(wire.AttrExposureLockCenterX, 0.5).
		Put(wire.AttrExposureLockCenterY, 0.5))

	lock := f.cam.ExposureLock()
	require.NotNil(t, lock)
	assert.Equal(t, camera.ExposureLockRegion, lock.Mode())

	f.apply(t, wire.FeatureExposureLock, attrs().Put(wire.AttrExposureLockWidth, 0.2))

	state := lock.State()
	assert.Equal(t, camera.ExposureLockRegion, state.Mode)
	assert.Equal(t, 0.5, state.CenterX)
	assert.Equal(t, 0.2, state.Width)
}

func TestDispatcherUnknownFeature(t *testing.T) {
	f := newDispatchFixture(t)

	err := f.dispatcher.Apply(notification(t, wire.FeatureID(99), attrs().Put(1, true)))
	assert.ErrorIs(t, err, interaction.ErrUnknownFeature)
}

func TestDispatcherDecodeErrorSkipsAttribute(t *testing.T) {
	f := newDispatchFixture(t)

	err := f.dispatcher.Apply(notification(t, wire.FeatureExposure, attrs().
		Put(wire.AttrExposureISO, "high").
		Put(wire.AttrExposureMetering, camera.MeteringCenterTop)))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Exposure")
	assert.Equal(t, camera.MeteringCenterTop, f.cam.Exposure().Metering())
	assert.Equal(t, camera.DefaultExposure.ISO, f.cam.Exposure().ISO())
}

func TestDispatcherFlushBatchesChanges(t *testing.T) {
	f := newDispatchFixture(t)
	f.cam.Publish()
	require.Equal(t, 1, f.changes)

	f.apply(t, wire.FeatureCamera, attrs().Put(wire.AttrCameraActive, true))
	f.apply(t, wire.FeatureStyle, attrs().Put(wire.AttrStyleSupportedStyles, wire.Enums(camera.StyleStandard)))
	assert.Equal(t, 1, f.changes)

	f.dispatcher.Flush()
	assert.Equal(t, 2, f.changes)

	f.dispatcher.Flush()
	assert.Equal(t, 2, f.changes)
}
