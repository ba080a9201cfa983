package webapp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIncrementsByOne(t *testing.T) {
	tracker, err := NewAttemptTracker(100)
	require.NoError(t, err)

	assert.Equal(t, 0, tracker.Count("203.0.113.1"))
	assert.Equal(t, 1, tracker.Record("203.0.113.1"))
	assert.Equal(t, 2, tracker.Record("203.0.113.1"))
	assert.Equal(t, 2, tracker.Count("203.0.113.1"))

	// Independent per address.
	assert.Equal(t, 1, tracker.Record("203.0.113.2"))
	assert.Equal(t, 2, tracker.Count("203.0.113.1"))
}

func TestCapacityBoundsTrackedAddresses(t *testing.T) {
	tracker, err := NewAttemptTracker(3)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		tracker.Record(fmt.Sprintf("10.0.0.%d", i))
	}
	assert.Equal(t, 3, tracker.Len())

	// The hottest key survives eviction pressure and keeps counting.
	tracker.Record("10.9.9.9")
	tracker.Record("10.9.9.9")
	for i := 0; i < 2; i++ {
		tracker.Record(fmt.Sprintf("10.1.0.%d", i))
		tracker.Record("10.9.9.9")
	}
	assert.Equal(t, 4, tracker.Count("10.9.9.9"))

	// An evicted address starts over at 1.
	assert.Equal(t, 0, tracker.Count("10.0.0.0"))
	assert.Equal(t, 1, tracker.Record("10.0.0.0"))
}
