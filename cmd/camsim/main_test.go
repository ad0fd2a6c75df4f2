package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerolens/camsync/pkg/camera"
	"github.com/aerolens/camsync/pkg/log"
	"github.com/aerolens/camsync/pkg/sim"
	"github.com/aerolens/camsync/pkg/transport"
	"github.com/aerolens/camsync/pkg/wire"
)

func startSimulator(t *testing.T) (*transport.Server, *cameraSet) {
	t.Helper()
	profile, err := sim.LoadProfile(sim.DefaultProfile)
	require.NoError(t, err)

	cameras := newCameraSet(profile.WithLatency(0), slog.New(slog.DiscardHandler), log.NoopLogger{})
	server := transport.NewServer(transport.ServerConfig{
		Address:      "127.0.0.1:0",
		OnConnect:    cameras.connect,
		OnDisconnect: cameras.disconnect,
		OnMessage:    cameras.message,
	})
	require.NoError(t, server.Start(context.Background()))
	t.Cleanup(func() { server.Stop() })
	return server, cameras
}

func dial(t *testing.T, server transport.LinkServer) *transport.Link {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	link, err := transport.Dial(ctx, server.Addr().String(), transport.Config{WriteTimeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { link.Close() })
	return link
}

func receiveSnapshot(t *testing.T, link *transport.Link) []*wire.Notification {
	t.Helper()
	var snapshot []*wire.Notification
	for {
		data, err := link.Receive()
		require.NoError(t, err)
		n, err := wire.DecodeNotification(data)
		require.NoError(t, err)
		snapshot = append(snapshot, n)
		if n.Feature == wire.FeatureCamera {
			return snapshot
		}
	}
}

func TestSimulatorPushesSnapshot(t *testing.T) {
	server, _ := startSimulator(t)
	link := dial(t, server)

	snapshot := receiveSnapshot(t, link)
	assert.Len(t, snapshot, 10)
}

func TestSimulatorAnswersRequests(t *testing.T) {
	server, _ := startSimulator(t)
	link := dial(t, server)
	receiveSnapshot(t, link)

	params, err := wire.NewAttributeBuilder().Put(wire.AttrCameraMode, camera.ModePhoto).Build()
	require.NoError(t, err)
	data, err := wire.EncodeRequest(&wire.Request{
		MessageID: 1,
		Operation: wire.OpWrite,
		Feature:   wire.FeatureCamera,
		Params:    params,
	})
	require.NoError(t, err)
	require.NoError(t, link.Send(data))

	data, err = link.Receive()
	require.NoError(t, err)
	notif, err := wire.DecodeNotification(data)
	require.NoError(t, err)
	assert.Equal(t, wire.FeatureCamera, notif.Feature)

	data, err = link.Receive()
	require.NoError(t, err)
	resp, err := wire.DecodeResponse(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), resp.MessageID)
	assert.True(t, resp.Status.IsSuccess())
}

func TestSimulatorCameraPerLink(t *testing.T) {
	server, cameras := startSimulator(t)

	first := dial(t, server)
	receiveSnapshot(t, first)
	second := dial(t, server)
	receiveSnapshot(t, second)

	cameras.mu.Lock()
	assert.Len(t, cameras.devices, 2)
	cameras.mu.Unlock()

	first.Close()
	assert.Eventually(t, func() bool {
		cameras.mu.Lock()
		defer cameras.mu.Unlock()
		return len(cameras.devices) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
