package repair

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAll_RanksByHitCount(t *testing.T) {
	idx := NewIndex(listing(
		"summer/beach.jpg",
		"winter/snow.jpg",
		"party/cake.jpg",
	))

	// One clean URL, one needing case folding, one needing fuzziness
	report := strings.Join([]string{
		"- http://g/summer/t__beach.jpg",
		"- http://g/SUMMER/t__BEACH.jpg",
		"- http://g/snowwy/t__snow.jpg",
	}, "\n")
	mismatches, err := ParseMismatchReport(strings.NewReader(report))
	require.NoError(t, err)
	require.Len(t, mismatches, 3)

	results := RunAll(mismatches, idx, DefaultOptions(), nil)
	require.Len(t, results, 11)

	// Ranked best first
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Hits, results[i].Hits)
	}

	// The strict exact strategy can only resolve the clean URL
	for _, r := range results {
		assert.Equal(t, 3, r.Total)
		if r.Strategy.Name() == "exact" {
			assert.Equal(t, 1, r.Hits)
			assert.Equal(t, "summer/beach.jpg", r.Matches["http://g/summer/t__beach.jpg"])
		}
	}

	// The winner must do at least as well as exact
	assert.GreaterOrEqual(t, results[0].Hits, 1)
}

func TestBuildArtifact(t *testing.T) {
	results := RunAll(nil, NewIndex(nil), DefaultOptions(), nil)
	require.NotEmpty(t, results)

	artifact := BuildArtifact(&results[0])
	assert.NotEmpty(t, artifact.Algorithm)
	assert.Contains(t, []string{"single", "consensus"}, artifact.Type)
	assert.Equal(t, 0, artifact.Total)
	assert.Equal(t, "0.0%", artifact.HitRate)
}

func TestWriteArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.json")

	artifact := Artifact{
		Algorithm: "weighted-consensus",
		Type:      "consensus",
		Params:    map[string]any{"top_k": 3},
		Hits:      42,
		Total:     50,
		HitRate:   "84.0%",
	}
	require.NoError(t, WriteArtifact(path, artifact))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Artifact
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, artifact.Algorithm, decoded.Algorithm)
	assert.Equal(t, artifact.Hits, decoded.Hits)
	assert.Equal(t, "84.0%", decoded.HitRate)
}
