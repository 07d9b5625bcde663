package export

import (
	"html"
	"regexp"
	"strings"
)

var (
	reMarkup  = regexp.MustCompile(`\[.*?\]`)
	reIllegal = regexp.MustCompile(`[\[\]\\/?%:|"'><#\s&]`)
)

// transliterations maps the non-ASCII characters that actually occur in
// the legacy gallery titles to filesystem-safe ASCII.
var transliterations = strings.NewReplacer(
	"å", "a", "ä", "a", "Å", "a", "Ä", "a",
	"ö", "o", "Ö", "o",
	"ø", "o", "Ø", "o",
	"æ", "ae", "Æ", "ae",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"É", "e", "È", "e",
	"ü", "u", "Ü", "u",
	"ß", "ss",
)

// CleanTitle turns a raw Gallery 2 item title into a safe lowercase path
// component: NUL bytes and BBCode-style markup are stripped, HTML
// entities decoded until stable (titles were double-encoded by some
// gallery versions), non-ASCII letters transliterated, illegal filename
// characters replaced with underscores, and separator runs collapsed.
func CleanTitle(title string) string {
	s := strings.ReplaceAll(title, "\x00", "")
	s = reMarkup.ReplaceAllString(s, "")

	// Entities can be nested ("&amp;auml;"); decode until a fixed point
	for {
		decoded := html.UnescapeString(s)
		if decoded == s {
			break
		}
		s = decoded
	}

	s = transliterations.Replace(s)
	s = reIllegal.ReplaceAllString(s, "_")

	s = strings.ReplaceAll(s, "__", "_")
	s = strings.ReplaceAll(s, "_-_", "-")

	// Drop anything still outside printable ASCII
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x20 && s[i] < 0x7f {
			sb.WriteByte(s[i])
		}
	}

	return strings.ToLower(sb.String())
}

// LinkTarget returns the exported filename for a photo. When the cleaned
// title differs from the stored path component the component is appended
// after a "___" marker so two photos with the same title cannot collide.
// Legacy data contains names that already end in .jpg, so the doubled
// extension is collapsed.
func LinkTarget(cleanTitle, pathComponent string) string {
	suffix := ""
	if pathComponent != "" && !strings.EqualFold(cleanTitle, pathComponent) {
		suffix = "___" + pathComponent
	}
	name := strings.ToLower(cleanTitle + suffix + ".jpg")
	return strings.ReplaceAll(name, ".jpg.jpg", ".jpg")
}

// ThumbTarget returns the exported thumbnail filename for a photo:
// the thumb prefix in front of the photo's link target, so the
// thumbnail of any exported file is always prefix+filename.
func ThumbTarget(thumbPrefix, cleanTitle, pathComponent string) string {
	return thumbPrefix + LinkTarget(cleanTitle, pathComponent)
}
