package interaction_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aerolens/camsync/pkg/interaction"
	"github.com/aerolens/camsync/pkg/interaction/mocks"
	"github.com/aerolens/camsync/pkg/log"
	"github.com/aerolens/camsync/pkg/wire"
)

// eventRecorder collects capture events.
type eventRecorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *eventRecorder) Log(event log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) Events() []log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]log.Event(nil), r.events...)
}

func (r *eventRecorder) Transitions(settingName string) []string {
	var kinds []string
	for _, e := range r.Events() {
		if e.Transition != nil && e.Transition.Setting == settingName {
			kinds = append(kinds, e.Transition.Kind)
		}
	}
	return kinds
}

// drain runs c against a mock sender until n requests were sent and
// returns them decoded.
func drain(t *testing.T, c *interaction.Client, n int) []*wire.Request {
	t.Helper()

	sender := mocks.NewMockSender(t)
	sent := make(chan []byte, n)
	sender.EXPECT().Send(mock.Anything).RunAndReturn(func(data []byte) error {
		sent <- data
		return nil
	}).Times(n)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, sender) }()

	reqs := make([]*wire.Request, 0, n)
	for range n {
		select {
		case data := <-sent:
			req, err := wire.DecodeRequest(data)
			require.NoError(t, err)
			reqs = append(reqs, req)
		case <-time.After(time.Second):
			cancel()
			t.Fatalf("timed out after %d of %d requests", len(reqs), n)
		}
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	return reqs
}

func notification(t *testing.T, feature wire.FeatureID, b *wire.AttributeBuilder) *wire.Notification {
	t.Helper()
	attrs, err := b.Build()
	require.NoError(t, err)
	return &wire.Notification{Feature: feature, Changes: attrs}
}

func attrs() *wire.AttributeBuilder {
	return wire.NewAttributeBuilder()
}
