package cluster

import (
	"testing"

	"penguinlab/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRecoversSeparatedBlobs(t *testing.T) {
	rows, truth := testkit.Blobs(3, 40, 7)

	result, err := Run(rows, Config{K: 3, MaxIter: 100, Seed: 42})
	require.NoError(t, err)

	// The blobs are far apart, so every true group must map onto exactly
	// one fitted cluster.
	mapping := make(map[int]int)
	for i, want := range truth {
		got := result.Assignments[i]
		if mapped, ok := mapping[want]; ok {
			assert.Equal(t, mapped, got, "row %d crossed blobs", i)
			continue
		}
		mapping[want] = got
	}
	assert.Len(t, mapping, 3)

	total := 0
	for _, size := range result.Sizes {
		total += size
	}
	assert.Equal(t, len(rows), total)
	assert.Positive(t, result.Iterations)
}

func TestRunIsDeterministicForSeed(t *testing.T) {
	rows, _ := testkit.Blobs(4, 30, 11)

	first, err := Run(rows, Config{K: 4, MaxIter: 100, Seed: 42})
	require.NoError(t, err)
	second, err := Run(rows, Config{K: 4, MaxIter: 100, Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Centroids, second.Centroids)
	assert.Equal(t, first.Inertia, second.Inertia)
}

func TestRunInputValidation(t *testing.T) {
	rows, _ := testkit.Blobs(2, 5, 1)

	_, err := Run(nil, Config{K: 2})
	assert.Error(t, err)

	_, err = Run(rows, Config{K: 1})
	assert.Error(t, err)

	_, err = Run(rows[:3], Config{K: 4})
	assert.Error(t, err)
}

func TestLabels(t *testing.T) {
	result := &Result{K: 2, Assignments: []int{0, 1, 0}}
	assert.Equal(t, []string{"cluster 1", "cluster 2", "cluster 1"}, result.Labels())
}

func TestInertiaShrinksWithMoreClusters(t *testing.T) {
	rows, _ := testkit.Blobs(4, 40, 3)

	loose, err := Run(rows, Config{K: 2, MaxIter: 100, Seed: 42})
	require.NoError(t, err)
	tight, err := Run(rows, Config{K: 4, MaxIter: 100, Seed: 42})
	require.NoError(t, err)

	assert.Less(t, tight.Inertia, loose.Inertia)
}
