package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategies_LineupIsComplete(t *testing.T) {
	lineup := Strategies(DefaultOptions())
	require.Len(t, lineup, 11)

	names := make(map[string]bool)
	for _, s := range lineup {
		assert.False(t, names[s.Name()], "duplicate strategy name %s", s.Name())
		names[s.Name()] = true
		assert.Contains(t, []string{"single", "consensus"}, s.Type())
	}
	assert.True(t, names["weighted-consensus"])
}

func TestExactStrategy(t *testing.T) {
	idx := NewIndex(listing("album/photo.jpg", "album/other.jpg"))
	s := &exactStrategy{}

	got := s.Match(mismatchFor(t, "http://g/album/t__photo.jpg"), idx)
	require.NotNil(t, got)
	assert.Equal(t, "album/photo.jpg", got.FullPath)

	assert.Nil(t, s.Match(mismatchFor(t, "http://g/album/t__Photo.jpg"), idx), "case matters for exact")
	assert.Nil(t, s.Match(mismatchFor(t, "http://g/t__photo.jpg"), idx), "no directory segments, no match")
}

func TestExactFoldStrategy(t *testing.T) {
	idx := NewIndex(listing("Album/Photo.JPG"))
	s := &exactFoldStrategy{}

	got := s.Match(mismatchFor(t, "http://g/album/t__photo.jpg"), idx)
	require.NotNil(t, got)
	assert.Equal(t, "Album/Photo.JPG", got.FullPath)
}

func TestSeparatorStrategy(t *testing.T) {
	idx := NewIndex(listing("Summer-Trip/beach_day.jpg"))
	s := &separatorStrategy{}

	got := s.Match(mismatchFor(t, "http://g/summer_trip/t__beach-day.jpg"), idx)
	require.NotNil(t, got)
	assert.Equal(t, "Summer-Trip/beach_day.jpg", got.FullPath)
}

func TestUniqueFilenameStrategy(t *testing.T) {
	s := &uniqueFilenameStrategy{}

	unique := NewIndex(listing("a/one.jpg", "b/two.jpg"))
	got := s.Match(mismatchFor(t, "http://g/wrong_album/t__one.jpg"), unique)
	require.NotNil(t, got)
	assert.Equal(t, "a/one.jpg", got.FullPath)

	ambiguous := NewIndex(listing("a/one.jpg", "b/one.jpg"))
	assert.Nil(t, s.Match(mismatchFor(t, "http://g/wrong_album/t__one.jpg"), ambiguous),
		"two filename hits are ambiguous, not a match")
}

func TestSegmentLevenshteinStrategy(t *testing.T) {
	idx := NewIndex(listing("semester/photo.jpg"))
	s := &segmentLevenshteinStrategy{minSimilarity: 0.75}

	got := s.Match(mismatchFor(t, "http://g/semster/t__photo.jpg"), idx)
	require.NotNil(t, got, "one dropped letter in the album name is within tolerance")

	assert.Nil(t, s.Match(mismatchFor(t, "http://g/zzzzzzzz/t__photo.jpg"), idx))
}

func TestNumericSuffixStrategy(t *testing.T) {
	idx := NewIndex(listing("album/party.jpg"))
	s := &numericSuffixStrategy{}

	got := s.Match(mismatchFor(t, "http://g/album/t__party_2.jpg"), idx)
	require.NotNil(t, got)
	assert.Equal(t, "album/party.jpg", got.FullPath)
}

func TestStripNumericSuffix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"party_2.jpg", "party.jpg"},
		{"party-12.jpg", "party.jpg"},
		{"party2.jpg", "party.jpg"},
		{"party.jpg", "party.jpg"},
		{"123.jpg", "123.jpg"}, // all digits: left alone
		{"noext_7", "noext"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripNumericSuffix(tt.in), tt.in)
	}
}

func TestLastSegmentStrategy(t *testing.T) {
	idx := NewIndex(listing("real/path/album/pic.jpg", "elsewhere/pic.jpg"))
	s := &lastSegmentStrategy{}

	// Upper path segments are garbage but the album segment is right
	got := s.Match(mismatchFor(t, "http://g/bogus/wrong/album/t__pic.jpg"), idx)
	require.NotNil(t, got)
	assert.Equal(t, "real/path/album/pic.jpg", got.FullPath)
}

func TestTrigramStrategy_MinimumOverlap(t *testing.T) {
	idx := NewIndex(listing("album/xy.jpg"))
	s := &trigramStrategy{minOverlap: 3}

	// ".jpg" alone shares only two trigrams; below the floor
	assert.Nil(t, s.Match(mismatchFor(t, "http://g/album/t__qq.gif"), idx))

	got := s.Match(mismatchFor(t, "http://g/album/t__xy.jpeg"), idx)
	require.NotNil(t, got)
}

func TestWeightedStrategy_ExactMatchWins(t *testing.T) {
	idx := NewIndex(listing("summer/beach.jpg", "summer/sunset.jpg"))
	for _, s := range Strategies(DefaultOptions()) {
		if s.Type() == "consensus" || s.Name() == "weighted-jarowinkler" || s.Name() == "weighted-bigram" {
			got := s.Match(mismatchFor(t, "http://g/summer/t__beach.jpg"), idx)
			require.NotNil(t, got, s.Name())
			assert.Equal(t, "summer/beach.jpg", got.FullPath, s.Name())
		}
	}
}
