package setting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A int
	B int
}

// changeRecorder counts change notifications by origin.
type changeRecorder struct {
	user   int
	device int
}

func (r *changeRecorder) onChange(fromUser bool) {
	if fromUser {
		r.user++
	} else {
		r.device++
	}
}

func (r *changeRecorder) total() int {
	return r.user + r.device
}

func accept[F any](calls *[]F) func(F) bool {
	return func(v F) bool {
		*calls = append(*calls, v)
		return true
	}
}

func reject[F any](calls *[]F) func(F) bool {
	return func(v F) bool {
		*calls = append(*calls, v)
		return false
	}
}

func TestControllerRequestSameValueIsNoop(t *testing.T) {
	rec := &changeRecorder{}
	c := NewController("test", pair{1, 2}, rec.onChange)

	var sent []pair
	ok := c.Request(pair{1, 2}, accept(&sent))

	assert.False(t, ok)
	assert.Empty(t, sent)
	assert.False(t, c.IsUpdating())
	assert.Equal(t, 0, rec.total())
}

func TestControllerRequestAppliesOptimistically(t *testing.T) {
	rec := &changeRecorder{}
	c := NewController("test", pair{1, 2}, rec.onChange)

	var sent []pair
	ok := c.Request(pair{3, 2}, func(v pair) bool {
		// value is already applied when the backend is called
		assert.Equal(t, pair{3, 2}, c.Get())
		sent = append(sent, v)
		return true
	})

	require.True(t, ok)
	assert.Equal(t, []pair{{3, 2}}, sent)
	assert.Equal(t, pair{3, 2}, c.Get())
	assert.True(t, c.IsUpdating())
	assert.Equal(t, 1, rec.user)

	snapshot, pending := c.Pending()
	assert.True(t, pending)
	assert.Equal(t, pair{1, 2}, snapshot)
}

func TestControllerRejectedSendLeavesStateUntouched(t *testing.T) {
	rec := &changeRecorder{}
	c := NewController("test", pair{1, 2}, rec.onChange)

	var sent []pair
	ok := c.Request(pair{5, 5}, reject(&sent))

	assert.False(t, ok)
	assert.Len(t, sent, 1)
	assert.Equal(t, pair{1, 2}, c.Get())
	assert.False(t, c.IsUpdating())
	assert.Equal(t, 0, rec.total())
}

func TestControllerUpdate(t *testing.T) {
	t.Run("ConfirmFlipsUpdatingAndNotifiesOnce", func(t *testing.T) {
		rec := &changeRecorder{}
		c := NewController("test", pair{1, 2}, rec.onChange)
		var sent []pair
		c.Request(pair{3, 2}, accept(&sent))
		rec.user, rec.device = 0, 0

		c.Update(pair{3, 2})

		assert.False(t, c.IsUpdating())
		assert.Equal(t, pair{3, 2}, c.Get())
		assert.Equal(t, 1, rec.device)
		assert.Equal(t, 0, rec.user)
	})

	t.Run("AuthoritativeOverride", func(t *testing.T) {
		rec := &changeRecorder{}
		c := NewController("test", pair{1, 2}, rec.onChange)
		var sent []pair
		c.Request(pair{3, 2}, accept(&sent))

		c.Update(pair{7, 7})

		assert.False(t, c.IsUpdating())
		assert.Equal(t, pair{7, 7}, c.Get())
	})

	t.Run("UnchangedWithoutPendingIsSilent", func(t *testing.T) {
		rec := &changeRecorder{}
		c := NewController("test", pair{1, 2}, rec.onChange)

		c.Update(pair{1, 2})

		assert.Equal(t, 0, rec.total())
	})

	t.Run("UpdateWithModifiesCopy", func(t *testing.T) {
		rec := &changeRecorder{}
		c := NewController("test", pair{1, 2}, rec.onChange)

		c.UpdateWith(func(p *pair) { p.B = 9 })

		assert.Equal(t, pair{1, 9}, c.Get())
		assert.Equal(t, 1, rec.device)
	})
}

func TestControllerSecondRequestKeepsLatestSnapshot(t *testing.T) {
	c := NewController("test", pair{1, 1}, nil)
	var sent []pair

	c.Request(pair{2, 2}, accept(&sent))
	c.Request(pair{3, 3}, accept(&sent))

	snapshot, ok := c.Pending()
	require.True(t, ok)
	assert.Equal(t, pair{2, 2}, snapshot)
	assert.Equal(t, pair{3, 3}, c.Get())
}

func TestControllerResync(t *testing.T) {
	t.Run("AppliesWhenIdle", func(t *testing.T) {
		rec := &changeRecorder{}
		c := NewController("test", pair{1, 2}, rec.onChange)

		changed := c.Resync(func(p *pair) { p.A = 0 })

		assert.True(t, changed)
		assert.Equal(t, pair{0, 2}, c.Get())
		assert.Equal(t, 1, rec.device)
	})

	t.Run("SkippedWhileUpdating", func(t *testing.T) {
		rec := &changeRecorder{}
		c := NewController("test", pair{1, 2}, rec.onChange)
		var sent []pair
		c.Request(pair{4, 2}, accept(&sent))

		changed := c.Resync(func(p *pair) { p.A = 0 })

		assert.False(t, changed)
		assert.Equal(t, pair{4, 2}, c.Get())
		assert.True(t, c.IsUpdating())
	})
}

func TestControllerDiscardDoesNotRestore(t *testing.T) {
	rec := &changeRecorder{}
	c := NewController("test", pair{1, 2}, rec.onChange)
	var sent []pair
	c.Request(pair{4, 2}, accept(&sent))
	rec.user = 0

	c.Discard()

	assert.False(t, c.IsUpdating())
	assert.Equal(t, pair{4, 2}, c.Get())
	assert.Equal(t, 0, rec.total())
}

func TestControllerTrace(t *testing.T) {
	c := NewController("exposure", 1, nil)
	var kinds []Kind
	c.SetTracer(func(tr Transition) {
		assert.Equal(t, "exposure", tr.Setting)
		kinds = append(kinds, tr.Kind)
	})

	var sent []int
	c.Request(2, accept(&sent))
	c.Update(2)
	c.Request(3, reject(&sent))
	c.Request(3, accept(&sent))
	c.Update(4)
	c.Update(5)
	c.Resync(func(v *int) { *v = 6 })
	c.Request(7, accept(&sent))
	c.Discard()

	assert.Equal(t, []Kind{
		KindRequest, KindConfirm,
		KindReject,
		KindRequest, KindOverride,
		KindUpdate,
		KindResync,
		KindRequest, KindDiscard,
	}, kinds)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "CONFIRM", KindConfirm.String())
	assert.Equal(t, "UNKNOWN", Kind(99).String())
}
