package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Summer", "summer"},
		{"spaces become underscores", "Summer Trip", "summer_trip"},
		{"markup stripped", "[b]Party[/b] 2009", "party_2009"},
		// "&" and its flanking spaces each become "_"; the single-pass
		// collapse leaves one doubled underscore, exactly like the
		// legacy export did
		{"entities decoded", "Fish &amp; Chips", "fish__chips"},
		{"double encoded entities", "Tom &amp;amp; Jerry", "tom__jerry"},
		{"swedish letters", "Skärgården", "skargarden"},
		{"o umlaut", "Öland", "oland"},
		{"illegal characters", `a/b\c:d?e`, "a_b_c_d_e"},
		{"underscore runs collapsed", "a  b", "a_b"},
		{"dash silliness", "a - b", "a-b"},
		{"nul bytes dropped", "a\x00b", "ab"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.in))
		})
	}
}

func TestLinkTarget(t *testing.T) {
	// Title matches the stored component: no disambiguation marker
	assert.Equal(t, "beach.jpg", LinkTarget("beach", "BEACH"))

	// Title differs: component appended after the marker
	assert.Equal(t, "beach___img_0042.jpg", LinkTarget("beach", "img_0042"))

	// Doubled extension collapsed
	assert.Equal(t, "beach___img_0042.jpg", LinkTarget("beach", "img_0042.jpg"))
	assert.Equal(t, "beach.jpg", LinkTarget("beach.jpg", "beach.jpg"))
}

func TestThumbTarget(t *testing.T) {
	assert.Equal(t, "t__beach___img_0042.jpg", ThumbTarget("t__", "beach", "img_0042"))
	assert.Equal(t, "t__beach.jpg", ThumbTarget("t__", "beach", ""))
	assert.Equal(t, "t__beach___img.jpg", ThumbTarget("t__", "beach", "img.jpg"))

	// Title matching the component stays unmarked, like the link target
	assert.Equal(t, "t__beach.jpg", ThumbTarget("t__", "beach", "BEACH"))
}
