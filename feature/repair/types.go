package repair

import "gallery-manager/core/similarity"

// FileEntry is one real file from the on-disk listing, parsed once and
// treated as read-only reference data.
type FileEntry struct {
	// FullPath is the normalized relative path, forward slashes.
	FullPath string
	// DirPath is FullPath without the filename.
	DirPath string
	// DirSegments are the individual directory components of DirPath.
	DirSegments []string
	// Filename is the last path component.
	Filename string
}

// Depth returns the number of directory levels above the file.
func (f *FileEntry) Depth() int {
	return len(f.DirSegments)
}

// Mismatch is one known-bad asset URL from the report, consumed per run.
type Mismatch struct {
	// URL is the full original URL.
	URL string
	// URLPath is the path portion of the URL.
	URLPath string
	// DirSegments are the directory components of URLPath.
	DirSegments []string
	// ThumbFilename is the last path component as it appears in the URL.
	ThumbFilename string
	// BaseFilename is ThumbFilename with the thumbnail prefix stripped.
	BaseFilename string
}

// Album returns the innermost directory segment, the album the URL
// claims the file lives in. Empty when the URL had no directory part.
func (m *Mismatch) Album() string {
	if len(m.DirSegments) == 0 {
		return ""
	}
	return m.DirSegments[len(m.DirSegments)-1]
}

// SimilarityFunc scores two strings in [0,1].
type SimilarityFunc func(a, b string) float64

// Options bundle the scoring knobs. The threshold constants were tuned
// against one real mismatch report; re-validate them against a fresh
// golden set before trusting them on a different corpus.
type Options struct {
	// PathWeight, AlbumWeight, and FileWeight weight the three partial
	// similarities. They are normalized to sum to 1 before use.
	PathWeight  float64
	AlbumWeight float64
	FileWeight  float64

	// Threshold accepts the top candidate outright.
	Threshold float64
	// ConfidenceGap and LowerThreshold accept a weaker top candidate
	// when it clearly leads the runner-up.
	ConfidenceGap  float64
	LowerThreshold float64

	// Similarity is the string similarity used for all three parts.
	Similarity SimilarityFunc

	// Synonyms maps known album-name aliases (both directions are
	// consulted).
	Synonyms map[string]string

	// TopK is the number of ranked candidates each consensus run
	// contributes.
	TopK int
	// MinConsensusPoints is the Borda point floor for accepting a
	// consensus winner.
	MinConsensusPoints int
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		PathWeight:         0.3,
		AlbumWeight:        0.3,
		FileWeight:         0.4,
		Threshold:          0.55,
		ConfidenceGap:      0.3,
		LowerThreshold:     0.45,
		Similarity:         similarity.JaroWinkler,
		TopK:               3,
		MinConsensusPoints: 2,
	}
}

// normalizedWeights returns the three weights scaled to sum to 1.
func (o *Options) normalizedWeights() (path, album, file float64) {
	sum := o.PathWeight + o.AlbumWeight + o.FileWeight
	if sum <= 0 {
		def := DefaultOptions()
		return def.PathWeight, def.AlbumWeight, def.FileWeight
	}
	return o.PathWeight / sum, o.AlbumWeight / sum, o.FileWeight / sum
}

// Artifact is the serialized description of the winning strategy,
// consumed by the downstream bulk-repair tooling.
type Artifact struct {
	Algorithm string         `json:"algorithm"`
	Type      string         `json:"type"` // "single" or "consensus"
	Params    map[string]any `json:"params"`
	Hits      int            `json:"hits"`
	Total     int            `json:"total"`
	HitRate   string         `json:"hitRate"`
}

// GoldenPair is one hand-labeled training example.
type GoldenPair struct {
	URL      string `json:"url"`
	FullPath string `json:"fullPath"`
}
