package repair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileListing(t *testing.T) {
	input := strings.Join([]string{
		"./summer/beach.jpg",
		`winter\hills\t__snow.jpg`,
		"",
		"   ",
		"rootfile.jpg",
	}, "\n")

	entries, err := ParseFileListing(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, FileEntry{
		FullPath:    "summer/beach.jpg",
		DirPath:     "summer",
		DirSegments: []string{"summer"},
		Filename:    "beach.jpg",
	}, entries[0])

	assert.Equal(t, "winter/hills/t__snow.jpg", entries[1].FullPath)
	assert.Equal(t, []string{"winter", "hills"}, entries[1].DirSegments)

	assert.Equal(t, "rootfile.jpg", entries[2].FullPath)
	assert.Empty(t, entries[2].DirSegments)
	assert.Equal(t, 0, entries[2].Depth())
}

func TestParseMismatchReport(t *testing.T) {
	input := strings.Join([]string{
		"# broken thumbnails",
		"",
		"some prose that mentions http://example.org/ignored.jpg",
		"- broken: http://gallery.example.org/summer/t__beach.jpg (404)",
		"- no url on this bullet",
		"- https://gallery.example.org/winter/hills/snow.jpg",
	}, "\n")

	mismatches, err := ParseMismatchReport(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, mismatches, 2)

	first := mismatches[0]
	assert.Equal(t, []string{"summer"}, first.DirSegments)
	assert.Equal(t, "t__beach.jpg", first.ThumbFilename)
	assert.Equal(t, "beach.jpg", first.BaseFilename, "thumb prefix stripped")
	assert.Equal(t, "summer", first.Album())

	second := mismatches[1]
	assert.Equal(t, []string{"winter", "hills"}, second.DirSegments)
	assert.Equal(t, "snow.jpg", second.BaseFilename)
}

func TestLoadGoldenSet(t *testing.T) {
	t.Run("JSON array", func(t *testing.T) {
		input := `[{"url":"http://g/a/t__x.jpg","fullPath":"a/x.jpg"}]`
		pairs, err := LoadGoldenSet(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, "a/x.jpg", pairs[0].FullPath)
	})

	t.Run("TSV", func(t *testing.T) {
		input := "http://g/a/t__x.jpg\ta/x.jpg\nhttp://g/b/t__y.jpg\tb/y.jpg\n"
		pairs, err := LoadGoldenSet(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, pairs, 2)
		assert.Equal(t, "b/y.jpg", pairs[1].FullPath)
	})

	t.Run("malformed TSV line", func(t *testing.T) {
		_, err := LoadGoldenSet(strings.NewReader("no tab here"))
		assert.Error(t, err)
	})
}
