package repair

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listing(paths ...string) []FileEntry {
	entries := make([]FileEntry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, newFileEntry(p))
	}
	return entries
}

func mismatchFor(t *testing.T, rawURL string) *Mismatch {
	t.Helper()
	m, err := parseMismatchURL(rawURL)
	require.NoError(t, err)
	return &m
}

func TestCandidates_UnionsThreeSources(t *testing.T) {
	idx := NewIndex(listing(
		"summer/beach.jpg",        // album match
		"Summer-2009/other.jpg",   // no match for this URL
		"sum_mer/beach_day.jpg",   // trigram match on filename
	))

	m := mismatchFor(t, "http://g/summer/t__beach.jpg")
	pool := idx.Candidates(m)

	paths := make([]string, 0, len(pool))
	for _, f := range pool {
		paths = append(paths, f.FullPath)
	}
	assert.Contains(t, paths, "summer/beach.jpg")
	assert.Contains(t, paths, "sum_mer/beach_day.jpg")
}

func TestCandidates_SeparatorVariantLookup(t *testing.T) {
	idx := NewIndex(listing("Summer-Trip/beach.jpg"))

	m := mismatchFor(t, "http://g/summer_trip/t__xyzq.jpg")
	pool := idx.Candidates(m)

	require.NotEmpty(t, pool)
	assert.Equal(t, "Summer-Trip/beach.jpg", pool[0].FullPath)
}

func TestCandidates_EmptyDirSegments(t *testing.T) {
	idx := NewIndex(listing("summer/beach.jpg"))

	// URL with a bare filename and no directory part
	m := mismatchFor(t, "http://g/t__beach.jpg")
	assert.Empty(t, m.DirSegments)
	assert.Nil(t, idx.Candidates(m))
}

func TestCandidates_NarrowedWhenPoolIsLarge(t *testing.T) {
	paths := make([]string, 0, 120)
	for i := 0; i < 120; i++ {
		paths = append(paths, fmt.Sprintf("album/photo_%03d.jpg", i))
	}
	idx := NewIndex(listing(paths...))

	m := mismatchFor(t, "http://g/album/t__photo_042.jpg")
	pool := idx.Candidates(m)

	assert.LessOrEqual(t, len(pool), scoringCap)

	// The exact-name candidate must survive the narrowing
	var found bool
	for _, f := range pool {
		if f.FullPath == "album/photo_042.jpg" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLookup(t *testing.T) {
	idx := NewIndex(listing("a/b/one.jpg", "a/b/two.jpg", "c/three.jpg"))

	assert.Len(t, idx.Lookup("b"), 2)
	assert.Len(t, idx.Lookup("c"), 1)
	assert.Empty(t, idx.Lookup("nope"))
}
