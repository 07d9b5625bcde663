package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrain_SweepsGrid(t *testing.T) {
	idx := NewIndex(listing(
		"summer/beach.jpg",
		"winter/snow.jpg",
	))
	golden := []GoldenPair{
		{URL: "http://g/summer/t__beach.jpg", FullPath: "summer/beach.jpg"},
		{URL: "http://g/winter/t__snow.jpg", FullPath: "winter/snow.jpg"},
	}

	results := Train(golden, idx, DefaultOptions(), nil)
	require.NotEmpty(t, results)

	for _, r := range results {
		// Weights stay a valid convex combination on the grid
		assert.InDelta(t, 1.0, r.PathWeight+r.AlbumWeight+r.FileWeight, 1e-9)
		assert.Greater(t, r.FileWeight, 0.0)
		assert.Equal(t, 2, r.Total)
	}

	// Ranked best first, and a clean golden set is fully solvable
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Correct, results[i].Correct)
	}
	assert.Equal(t, 2, results[0].Correct)
}

func TestTrain_SkipsNonPositiveFileWeight(t *testing.T) {
	results := Train(nil, NewIndex(nil), DefaultOptions(), nil)
	for _, r := range results {
		assert.Greater(t, r.FileWeight, 0.0)
	}
	// 0.6+0.6 would leave no file weight; that cell must be absent
	for _, r := range results {
		assert.False(t, r.PathWeight == 0.6 && r.AlbumWeight == 0.6)
	}
}

func TestTrain_MalformedGoldenURLCountsAsWrong(t *testing.T) {
	idx := NewIndex(listing("summer/beach.jpg"))
	golden := []GoldenPair{
		{URL: "://not-a-url", FullPath: "summer/beach.jpg"},
		{URL: "http://g/summer/t__beach.jpg", FullPath: "summer/beach.jpg"},
	}

	results := Train(golden, idx, DefaultOptions(), nil)
	require.NotEmpty(t, results)
	assert.Equal(t, 2, results[0].Total)
	assert.Equal(t, 1, results[0].Correct)
}
