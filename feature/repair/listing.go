package repair

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
)

// thumbPrefix is what the export prepends to thumbnail filenames; URLs
// in the mismatch report point at thumbnails, the listing holds real
// files under their base names.
const thumbPrefix = "t__"

var reBulletURL = regexp.MustCompile(`https?://[^\s)>\]]+`)

// ParseFileListing reads a newline-delimited list of relative file
// paths, one per line. Leading "./" is stripped and backslashes are
// normalized to forward slashes. Blank lines are skipped.
func ParseFileListing(r io.Reader) ([]FileEntry, error) {
	var entries []FileEntry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		line = strings.ReplaceAll(line, `\`, "/")
		line = strings.TrimPrefix(line, "./")

		entries = append(entries, newFileEntry(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file listing: %w", err)
	}

	return entries, nil
}

func newFileEntry(fullPath string) FileEntry {
	dir := ""
	file := fullPath
	if i := strings.LastIndex(fullPath, "/"); i >= 0 {
		dir = fullPath[:i]
		file = fullPath[i+1:]
	}

	var segments []string
	if dir != "" {
		segments = strings.Split(dir, "/")
	}

	return FileEntry{
		FullPath:    fullPath,
		DirPath:     dir,
		DirSegments: segments,
		Filename:    file,
	}
}

// ParseMismatchReport reads a Markdown report and extracts one mismatch
// per bullet line ("- ...") containing an HTTP(S) URL. Lines that are
// not bullets, or bullets without a URL, are ignored.
func ParseMismatchReport(r io.Reader) ([]Mismatch, error) {
	var mismatches []Mismatch

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		raw := reBulletURL.FindString(line)
		if raw == "" {
			continue
		}

		m, err := parseMismatchURL(raw)
		if err != nil {
			// A malformed URL in the report is noise, not a fatal input
			continue
		}
		mismatches = append(mismatches, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mismatch report: %w", err)
	}

	return mismatches, nil
}

func parseMismatchURL(raw string) (Mismatch, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Mismatch{}, err
	}

	p := strings.Trim(u.Path, "/")
	segments := strings.Split(p, "/")

	file := ""
	var dirs []string
	if len(segments) > 0 {
		file = segments[len(segments)-1]
		dirs = segments[:len(segments)-1]
	}

	return Mismatch{
		URL:           raw,
		URLPath:       u.Path,
		DirSegments:   dirs,
		ThumbFilename: file,
		BaseFilename:  strings.TrimPrefix(file, thumbPrefix),
	}, nil
}

// LoadGoldenSet reads hand-labeled (url, fullPath) pairs. Two formats
// are accepted: a JSON array of {"url","fullPath"} objects, or
// tab-separated "url<TAB>fullPath" lines.
func LoadGoldenSet(r io.Reader) ([]GoldenPair, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden set: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var pairs []GoldenPair
		if err := json.Unmarshal([]byte(trimmed), &pairs); err != nil {
			return nil, fmt.Errorf("failed to parse golden set JSON: %w", err)
		}
		return pairs, nil
	}

	var pairs []GoldenPair
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed golden set line: %q", line)
		}
		pairs = append(pairs, GoldenPair{URL: parts[0], FullPath: strings.TrimSpace(parts[1])})
	}
	return pairs, nil
}
