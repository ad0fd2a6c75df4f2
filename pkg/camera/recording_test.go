package camera_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerolens/camsync/pkg/camera"
)

func standard(res []camera.Resolution, fps []camera.Framerate, hdr bool) camera.RecordingCapability {
	return camera.RecordingCapability{
		Modes:       []camera.RecordingMode{camera.RecordingStandard},
		Formats:     res,
		FileFormats: fps,
		HDR:         hdr,
	}
}

func TestRecordingResolutionResync(t *testing.T) {
	counter := &changeCounter{}
	r := camera.NewRecording(newFakeBackend(), counter.onChange)
	r.UpdateCapabilities([]camera.RecordingCapability{
		standard([]camera.Resolution{camera.ResolutionDCI4K, camera.Resolution1080p}, []camera.Framerate{camera.FPS30}, false),
	})
	require.Equal(t, camera.ResolutionDCI4K, r.Resolution())
	*counter = changeCounter{}

	r.UpdateCapabilities([]camera.RecordingCapability{
		standard([]camera.Resolution{camera.Resolution1080p, camera.Resolution720p}, []camera.Framerate{camera.FPS60, camera.FPS30}, false),
	})

	assert.Equal(t, camera.Resolution1080p, r.Resolution())
	assert.Equal(t, camera.FPS30, r.Framerate())
	assert.False(t, r.IsUpdating())
	assert.Equal(t, 1, counter.device)
}

func TestRecordingResyncSkippedWhileUpdating(t *testing.T) {
	backend := newFakeBackend()
	r := camera.NewRecording(backend, nil)
	r.UpdateCapabilities([]camera.RecordingCapability{
		standard([]camera.Resolution{camera.ResolutionDCI4K, camera.Resolution1080p}, []camera.Framerate{camera.FPS30}, false),
	})

	r.SetResolution(camera.Resolution1080p)
	require.True(t, r.IsUpdating())

	r.UpdateCapabilities([]camera.RecordingCapability{
		standard([]camera.Resolution{camera.Resolution720p}, []camera.Framerate{camera.FPS30}, false),
	})

	assert.Equal(t, camera.Resolution1080p, r.Resolution())
	assert.True(t, r.SupportedResolutions().Contains(camera.Resolution720p))
}

func TestRecordingHyperlapseMode(t *testing.T) {
	backend := newFakeBackend()
	r := camera.NewRecording(backend, nil).
		UpdateCapabilities([]camera.RecordingCapability{
			{
				Modes:       []camera.RecordingMode{camera.RecordingStandard, camera.RecordingHyperlapse},
				Formats:     []camera.Resolution{camera.ResolutionDCI4K},
				FileFormats: []camera.Framerate{camera.FPS30},
				HDR:         true,
			},
		}).
		UpdateSupportedHyperlapseValues(camera.HyperlapseRatio30, camera.HyperlapseRatio60)

	r.SetHyperlapseMode(camera.ResolutionDCI4K, camera.FPS30, camera.HyperlapseRatio240)
	assert.Empty(t, backend.recordingReqs)

	r.SetHyperlapseMode(camera.ResolutionDCI4K, camera.FPS30, camera.HyperlapseRatio60)

	require.Len(t, backend.recordingReqs, 1)
	req := backend.recordingReqs[0]
	assert.Equal(t, camera.RecordingHyperlapse, req.Mode)
	require.NotNil(t, req.Hyperlapse)
	assert.Equal(t, camera.HyperlapseRatio60, *req.Hyperlapse)
	assert.Equal(t, camera.RecordingHyperlapse, r.Mode())
	assert.True(t, r.IsHDRAvailable())
}

func TestRecordingBitrate(t *testing.T) {
	counter := &changeCounter{}
	r := camera.NewRecording(newFakeBackend(), counter.onChange)

	r.UpdateBitrate(24_000_000)
	r.UpdateBitrate(24_000_000)

	assert.Equal(t, uint32(24_000_000), r.Bitrate())
	assert.Equal(t, 1, counter.device)
}
