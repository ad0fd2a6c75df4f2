package interaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aerolens/camsync/pkg/camera"
	"github.com/aerolens/camsync/pkg/interaction"
	"github.com/aerolens/camsync/pkg/interaction/mocks"
	"github.com/aerolens/camsync/pkg/log"
	"github.com/aerolens/camsync/pkg/setting"
	"github.com/aerolens/camsync/pkg/wire"
)

func newTestClient(queueSize int) (*interaction.Client, *eventRecorder) {
	rec := &eventRecorder{}
	c := interaction.NewClient(interaction.Config{
		SessionID: "test-session",
		QueueSize: queueSize,
		Capture:   rec,
	})
	return c, rec
}

func TestClientWriteRequest(t *testing.T) {
	c, rec := newTestClient(4)

	require.True(t, c.SetMode(camera.ModePhoto))
	assert.Equal(t, 1, c.Outstanding())

	reqs := drain(t, c, 1)
	req := reqs[0]
	assert.Equal(t, uint32(1), req.MessageID)
	assert.Equal(t, wire.OpWrite, req.Operation)
	assert.Equal(t, wire.FeatureCamera, req.Feature)

	mode, err := wire.Get[camera.Mode](req.Params, wire.AttrCameraMode)
	require.NoError(t, err)
	assert.Equal(t, camera.ModePhoto, mode)

	events := rec.Events()
	require.Len(t, events, 1)
	assert.Equal(t, log.DirectionOut, events[0].Direction)
	require.NotNil(t, events[0].Message)
	assert.Equal(t, log.MessageTypeRequest, events[0].Message.Type)
}

func TestClientInvokeRequest(t *testing.T) {
	c, _ := newTestClient(4)

	require.True(t, c.StartRecording())
	c.ControlZoom(camera.ZoomLevel, 2.5)

	reqs := drain(t, c, 2)
	assert.Equal(t, wire.OpInvoke, reqs[0].Operation)
	assert.Equal(t, wire.CmdStartRecording, reqs[0].Command)
	assert.Empty(t, reqs[0].Params)

	assert.Equal(t, wire.FeatureZoom, reqs[1].Feature)
	assert.Equal(t, wire.CmdControlZoom, reqs[1].Command)
	target, err := wire.Get[float64](reqs[1].Params, wire.AttrZoomTarget)
	require.NoError(t, err)
	assert.Equal(t, 2.5, target)
}

func TestClientMessageIDsIncrement(t *testing.T) {
	c, _ := newTestClient(4)

	c.SetAutoHDR(true)
	c.SetAutoRecord(true)
	c.SetStyle(camera.StylePlog)

	reqs := drain(t, c, 3)
	for i, req := range reqs {
		assert.Equal(t, uint32(i+1), req.MessageID)
	}
}

func TestClientExposureSendsFullTuple(t *testing.T) {
	c, _ := newTestClient(4)

	c.SetExposure(camera.ExposureManual, camera.Shutter1Over1000, camera.ISO100, camera.ISO3200, camera.MeteringCenterTop)

	req := drain(t, c, 1)[0]
	assert.Equal(t, []wire.AttributeID{
		wire.AttrExposureMode,
		wire.AttrExposureShutterSpeed,
		wire.AttrExposureISO,
		wire.AttrExposureMaxISO,
		wire.AttrExposureMetering,
	}, req.Params.IDs())

	iso, err := wire.Get[camera.ISOSensitivity](req.Params, wire.AttrExposureISO)
	require.NoError(t, err)
	assert.Equal(t, camera.ISO100, iso)
}

func TestClientExposureLockCenterOnlyForRegion(t *testing.T) {
	c, _ := newTestClient(4)

	c.SetExposureLock(camera.ExposureLockRegion, 0.25, 0.75)
	c.SetExposureLock(camera.ExposureLockCurrentValues, 0.25, 0.75)

	reqs := drain(t, c, 2)

	region := reqs[0].Params
	assert.True(t, region.Has(wire.AttrExposureLockCenterX))
	x, err := wire.Get[float64](region, wire.AttrExposureLockCenterX)
	require.NoError(t, err)
	assert.Equal(t, 0.25, x)

	current := reqs[1].Params
	assert.True(t, current.Has(wire.AttrExposureLockMode))
	assert.False(t, current.Has(wire.AttrExposureLockCenterX))
	assert.False(t, current.Has(wire.AttrExposureLockCenterY))
}

func TestClientPhotoOmitsAbsentFields(t *testing.T) {
	c, _ := newTestClient(4)

	burst := camera.Burst14Over1s
	c.SetPhoto(camera.PhotoRequest{Mode: camera.PhotoBurst, Burst: &burst})

	req := drain(t, c, 1)[0]
	assert.Equal(t, []wire.AttributeID{wire.AttrPhotoMode, wire.AttrPhotoBurst}, req.Params.IDs())
}

func TestClientQueueFull(t *testing.T) {
	c, _ := newTestClient(1)

	assert.True(t, c.SetAutoHDR(true))
	assert.False(t, c.SetAutoRecord(true))
	assert.Equal(t, 1, c.Outstanding())
}

func TestClientQueueFullLeavesSettingUnchanged(t *testing.T) {
	c, rec := newTestClient(1)
	cam := camera.New(c)
	cam.SetTracer(func(tr setting.Transition) {
		rec.Log(log.TransitionEventFor("test-session", tr))
	})

	require.True(t, c.StartRecording())

	cam.AutoHDR().UpdateSupported(true)
	cam.AutoHDR().SetEnabled(true)

	assert.False(t, cam.AutoHDR().IsEnabled())
	assert.False(t, cam.AutoHDR().IsUpdating())
	assert.Equal(t, []string{"REJECT"}, rec.Transitions(cam.AutoHDR().Controller().Name()))
}

func TestClientClosed(t *testing.T) {
	c, _ := newTestClient(4)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	assert.False(t, c.SetMode(camera.ModePhoto))
	assert.Equal(t, 0, c.Outstanding())

	sender := mocks.NewMockSender(t)
	err := c.Run(context.Background(), sender)
	assert.ErrorIs(t, err, interaction.ErrClientClosed)
}

func TestClientRunSendError(t *testing.T) {
	c, _ := newTestClient(4)
	c.SetAutoHDR(true)

	sendErr := errors.New("broken pipe")
	sender := mocks.NewMockSender(t)
	sender.EXPECT().Send(mock.Anything).Return(sendErr).Once()

	err := c.Run(context.Background(), sender)
	assert.ErrorIs(t, err, sendErr)
}

func TestClientHandleResponse(t *testing.T) {
	c, rec := newTestClient(4)
	c.SetAutoHDR(true)
	c.SetAutoRecord(true)
	require.Equal(t, 2, c.Outstanding())

	require.NoError(t, c.HandleResponse(&wire.Response{MessageID: 1}))
	assert.Equal(t, 1, c.Outstanding())

	// A refusal is not an error: the camera follows up with a notification.
	require.NoError(t, c.HandleResponse(&wire.Response{MessageID: 2, Status: wire.StatusBusy, Message: "capturing"}))
	assert.Equal(t, 0, c.Outstanding())

	err := c.HandleResponse(&wire.Response{MessageID: 2})
	assert.ErrorIs(t, err, interaction.ErrUnexpectedReply)

	var responses int
	for _, e := range rec.Events() {
		if e.Message != nil && e.Message.Type == log.MessageTypeResponse {
			assert.Equal(t, log.DirectionIn, e.Direction)
			responses++
		}
	}
	assert.Equal(t, 3, responses)
}
