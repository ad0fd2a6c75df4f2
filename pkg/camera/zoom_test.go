package camera_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aerolens/camsync/pkg/camera"
	"github.com/aerolens/camsync/pkg/camera/mocks"
)

func TestZoomLevelClamped(t *testing.T) {
	backend := mocks.NewMockZoomBackend(t)
	z := camera.NewZoom(backend, nil).
		UpdateAvailability(true).
		UpdateMaxLossyLevel(3)

	backend.EXPECT().ControlZoom(camera.ZoomLevel, 3.0).Return().Once()
	backend.EXPECT().ControlZoom(camera.ZoomLevel, 1.0).Return().Once()
	backend.EXPECT().ControlZoom(camera.ZoomLevel, 2.5).Return().Once()

	z.Control(camera.ZoomLevel, 4)
	z.Control(camera.ZoomLevel, 0.2)
	z.Control(camera.ZoomLevel, 2.5)
}

func TestZoomVelocityClamped(t *testing.T) {
	backend := mocks.NewMockZoomBackend(t)
	z := camera.NewZoom(backend, nil)

	backend.EXPECT().ControlZoom(camera.ZoomVelocity, -1.0).Return().Once()
	backend.EXPECT().ControlZoom(camera.ZoomVelocity, 1.0).Return().Once()

	z.Control(camera.ZoomVelocity, -3)
	z.Control(camera.ZoomVelocity, 1.5)
}

func TestZoomReset(t *testing.T) {
	counter := &changeCounter{}
	z := camera.NewZoom(mocks.NewMockZoomBackend(t), counter.onChange).
		UpdateAvailability(true).
		UpdateCurrentLevel(2).
		UpdateMaxLossyLevel(4).
		UpdateMaxLosslessLevel(2)
	*counter = changeCounter{}

	z.Reset()

	assert.False(t, z.IsAvailable())
	assert.InDelta(t, 1.0, z.CurrentLevel(), 1e-9)
	assert.InDelta(t, 1.0, z.MaxLossyLevel(), 1e-9)
	assert.InDelta(t, 1.0, z.MaxLosslessLevel(), 1e-9)
	assert.Equal(t, 1, counter.device)

	z.Reset()
	assert.Equal(t, 2, counter.device)
}

func TestZoomMaxSpeed(t *testing.T) {
	backend := mocks.NewMockZoomBackend(t)
	z := camera.NewZoom(backend, nil)
	z.MaxSpeed().UpdateBounds(0.5, 10)

	backend.EXPECT().SetMaxZoomSpeed(10.0).Return(true).Once()

	z.MaxSpeed().Set(42)

	assert.InDelta(t, 10.0, z.MaxSpeed().Get(), 1e-9)
	assert.True(t, z.MaxSpeed().IsUpdating())

	z.MaxSpeed().UpdateValue(8)
	assert.False(t, z.MaxSpeed().IsUpdating())
	assert.InDelta(t, 8.0, z.MaxSpeed().Get(), 1e-9)
}

func TestZoomQualityDegradation(t *testing.T) {
	backend := mocks.NewMockZoomBackend(t)
	z := camera.NewZoom(backend, nil)

	z.VelocityQualityDegradationAllowance().SetEnabled(true)
	backend.AssertNotCalled(t, "SetQualityDegradationAllowance", true)

	z.UpdateQualityDegradationAllowance(false)
	assert.True(t, z.VelocityQualityDegradationAllowance().IsSupported())

	backend.EXPECT().SetQualityDegradationAllowance(true).Return(true).Once()
	z.VelocityQualityDegradationAllowance().SetEnabled(true)

	assert.True(t, z.VelocityQualityDegradationAllowance().IsEnabled())
}
