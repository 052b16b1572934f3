package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(zap.NewNop(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Shutdown() })
	return r
}

func TestStart_RejectsBadInterval(t *testing.T) {
	r := newTestRegistry(t)

	require.ErrorIs(t, r.Start(1, 0, func(int64) {}), ErrBadInterval)
	require.ErrorIs(t, r.Start(1, -time.Second, func(int64) {}), ErrBadInterval)
	assert.False(t, r.Active(1))
	assert.Equal(t, 0, r.Len())
}

func TestStart_FiresAtCadence(t *testing.T) {
	r := newTestRegistry(t)

	var ticks atomic.Int64
	require.NoError(t, r.Start(1, 20*time.Millisecond, func(id int64) {
		assert.EqualValues(t, 1, id)
		ticks.Add(1)
	}))

	require.Eventually(t, func() bool { return ticks.Load() >= 3 },
		2*time.Second, 10*time.Millisecond)
}

func TestStart_ReplacesExistingJob(t *testing.T) {
	r := newTestRegistry(t)

	var first, second atomic.Int64
	require.NoError(t, r.Start(1, 10*time.Millisecond, func(int64) { first.Add(1) }))
	require.NoError(t, r.Start(1, 15*time.Millisecond, func(int64) { second.Add(1) }))

	// Exactly one live job afterward, firing the second action.
	assert.Equal(t, 1, r.Len())
	require.Eventually(t, func() bool { return second.Load() >= 2 },
		2*time.Second, 10*time.Millisecond)

	// The superseded job must stop; give it slack for one in-flight tick.
	settled := first.Load()
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, first.Load(), settled+1)
}

func TestStart_FailedReplaceKeepsExistingJob(t *testing.T) {
	r := newTestRegistry(t)

	var ticks atomic.Int64
	require.NoError(t, r.Start(1, 20*time.Millisecond, func(int64) { ticks.Add(1) }))

	// A replacement that cannot be registered (nil action) must not tear
	// down the live job: never zero, never two.
	require.Error(t, r.Start(1, time.Hour, nil))
	assert.True(t, r.Active(1))
	assert.Equal(t, 1, r.Len())

	before := ticks.Load()
	require.Eventually(t, func() bool { return ticks.Load() > before },
		2*time.Second, 5*time.Millisecond)
}

func TestCancel_StopsFutureTicks(t *testing.T) {
	r := newTestRegistry(t)

	var ticks atomic.Int64
	require.NoError(t, r.Start(1, 15*time.Millisecond, func(int64) { ticks.Add(1) }))
	require.Eventually(t, func() bool { return ticks.Load() >= 1 },
		2*time.Second, 5*time.Millisecond)

	require.True(t, r.Cancel(1))
	assert.False(t, r.Active(1))

	settled := ticks.Load()
	time.Sleep(120 * time.Millisecond)
	assert.LessOrEqual(t, ticks.Load(), settled+1)
}

func TestCancel_AbsentIsNoOp(t *testing.T) {
	r := newTestRegistry(t)

	assert.False(t, r.Cancel(99))
	// Idempotent after a real cancel too.
	require.NoError(t, r.Start(5, time.Hour, func(int64) {}))
	assert.True(t, r.Cancel(5))
	assert.False(t, r.Cancel(5))
}

func TestJobsAreIndependentPerUser(t *testing.T) {
	r := newTestRegistry(t)

	var a, b atomic.Int64
	require.NoError(t, r.Start(1, 15*time.Millisecond, func(int64) { a.Add(1) }))
	require.NoError(t, r.Start(2, 15*time.Millisecond, func(int64) { b.Add(1) }))
	assert.Equal(t, 2, r.Len())

	require.True(t, r.Cancel(1))

	before := b.Load()
	require.Eventually(t, func() bool { return b.Load() > before },
		2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, r.Len())
}
