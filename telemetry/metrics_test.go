package telemetry

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIdempotent(t *testing.T) {
	Init()
	first := Events
	Init()
	assert.Same(t, first, Events)
	require.NotNil(t, Failures)
	require.NotNil(t, Renders)
	require.NotNil(t, RosterSize)
}

func TestCounters(t *testing.T) {
	Init()

	before := testutil.ToFloat64(Failures.WithLabelValues("edit", "not_found"))
	CountFailure("edit", "not_found")
	assert.Equal(t, before+1, testutil.ToFloat64(Failures.WithLabelValues("edit", "not_found")))

	SetRosterSize(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(RosterSize))
}

func TestCorrelation(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetCorrelation(ctx))

	ctx = WithCorrelation(ctx)
	id := GetCorrelation(ctx)
	assert.Len(t, id, 36)
	assert.NotNil(t, Logger(ctx))
}
