package replica

import (
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {

	logger := log.NewNopLogger()

	r, err := New("worker-1", 0, 3, logger, nil)
	require.NoError(t, err)
	assert.Equal(t, "worker-1", r.Name())

	_, err = New("", 0, 3, logger, nil)
	assert.Error(t, err)

	_, err = New("worker-2", 3, 3, logger, nil)
	assert.Error(t, err)

	_, err = New("worker-3", -1, 3, logger, nil)
	assert.Error(t, err)
}

func TestCounterConvergence(t *testing.T) {

	logger := log.NewNopLogger()

	a, err := New("a", 0, 2, logger, NopMetrics())
	require.NoError(t, err)
	b, err := New("b", 1, 2, logger, NopMetrics())
	require.NoError(t, err)

	require.NoError(t, a.Increment())
	require.NoError(t, a.Increment())
	require.NoError(t, a.Increment())
	require.NoError(t, a.Decrement())
	require.NoError(t, b.Increment())

	assert.EqualValues(t, 2, a.CounterValue())
	assert.EqualValues(t, 1, b.CounterValue())
	assert.False(t, a.Converged(b))

	require.NoError(t, a.Sync(b))

	assert.EqualValues(t, 3, a.CounterValue())
	assert.EqualValues(t, 3, b.CounterValue())
	assert.True(t, a.Converged(b))
}

func TestSetConvergence(t *testing.T) {

	logger := log.NewNopLogger()

	a, err := New("a", 0, 2, logger, nil)
	require.NoError(t, err)
	b, err := New("b", 1, 2, logger, nil)
	require.NoError(t, err)

	a.AddItem("x")
	require.NoError(t, a.Sync(b))
	require.True(t, b.ContainsItem("x"))

	// Concurrent re-add on a and remove on b: the add
	// wins after the next exchange.
	a.AddItem("x")
	b.RemoveItem("x")

	require.NoError(t, a.Sync(b))

	assert.True(t, a.ContainsItem("x"))
	assert.True(t, b.ContainsItem("x"))
	assert.True(t, a.Converged(b))
	assert.Equal(t, []string{"x"}, a.Items())
}

func TestSyncSelfAndMismatch(t *testing.T) {

	logger := log.NewNopLogger()

	a, err := New("a", 0, 2, logger, nil)
	require.NoError(t, err)

	// Self-sync is a harmless no-op.
	assert.NoError(t, a.Sync(a))
	assert.True(t, a.Converged(a))

	// A replica from a differently sized group refuses to
	// merge counters.
	odd, err := New("odd", 0, 3, logger, nil)
	require.NoError(t, err)

	assert.Error(t, a.Sync(odd))
}
