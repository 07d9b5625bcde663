package repair

import (
	"strings"

	"gallery-manager/core/similarity"
)

// Strategy is one independent matching algorithm. Match returns the
// file it believes the mismatch URL should point at, or nil when it has
// no trustworthy answer. Strategies never guess: nil is a tallied miss.
type Strategy interface {
	// Name identifies the strategy in reports and artifacts.
	Name() string
	// Type is "single" or "consensus".
	Type() string
	// Params returns the tunable parameters for the artifact, nil when
	// the strategy has none.
	Params() map[string]any
	// Match resolves one mismatch against the index.
	Match(m *Mismatch, idx *Index) *FileEntry
}

// Strategies returns the full side-by-side lineup, cheap and strict
// first, fuzzy and expensive last. opts parameterizes the weighted ones.
func Strategies(opts Options) []Strategy {
	return []Strategy{
		&exactStrategy{},
		&exactFoldStrategy{},
		&separatorStrategy{},
		&uniqueFilenameStrategy{},
		&segmentLevenshteinStrategy{minSimilarity: 0.75},
		&numericSuffixStrategy{},
		&lastSegmentStrategy{},
		&trigramStrategy{minOverlap: 3},
		&weightedStrategy{name: "weighted-jarowinkler", sim: similarity.JaroWinkler, opts: opts},
		&weightedStrategy{name: "weighted-bigram", sim: similarity.TokenOverlap, opts: opts},
		&consensusStrategy{opts: opts},
	}
}

// exactStrategy matches the URL's directory path and base filename
// byte for byte.
type exactStrategy struct{}

func (s *exactStrategy) Name() string           { return "exact" }
func (s *exactStrategy) Type() string           { return "single" }
func (s *exactStrategy) Params() map[string]any { return nil }

func (s *exactStrategy) Match(m *Mismatch, idx *Index) *FileEntry {
	if len(m.DirSegments) == 0 {
		return nil
	}
	want := strings.Join(m.DirSegments, "/")
	for _, f := range idx.Lookup(m.Album()) {
		if f.DirPath == want && f.Filename == m.BaseFilename {
			return f
		}
	}
	return nil
}

// exactFoldStrategy is exactStrategy with case folding. The legacy
// export lowercased everything on some runs and not on others.
type exactFoldStrategy struct{}

func (s *exactFoldStrategy) Name() string           { return "exact-fold" }
func (s *exactFoldStrategy) Type() string           { return "single" }
func (s *exactFoldStrategy) Params() map[string]any { return nil }

func (s *exactFoldStrategy) Match(m *Mismatch, idx *Index) *FileEntry {
	if len(m.DirSegments) == 0 {
		return nil
	}
	wantDir := strings.ToLower(strings.Join(m.DirSegments, "/"))
	wantFile := strings.ToLower(m.BaseFilename)
	for i := range idx.Files() {
		f := &idx.Files()[i]
		if strings.ToLower(f.DirPath) == wantDir && strings.ToLower(f.Filename) == wantFile {
			return f
		}
	}
	return nil
}

// separatorStrategy folds case and hyphen/underscore variance across
// the whole path before comparing.
type separatorStrategy struct{}

func (s *separatorStrategy) Name() string           { return "normalized-separators" }
func (s *separatorStrategy) Type() string           { return "single" }
func (s *separatorStrategy) Params() map[string]any { return nil }

func (s *separatorStrategy) Match(m *Mismatch, idx *Index) *FileEntry {
	if len(m.DirSegments) == 0 {
		return nil
	}
	wantDir := similarity.NormalizeSeparators(strings.Join(m.DirSegments, "/"))
	wantFile := similarity.NormalizeSeparators(m.BaseFilename)
	for i := range idx.Files() {
		f := &idx.Files()[i]
		if similarity.NormalizeSeparators(f.DirPath) == wantDir &&
			similarity.NormalizeSeparators(f.Filename) == wantFile {
			return f
		}
	}
	return nil
}

// uniqueFilenameStrategy ignores directories entirely and accepts a
// case-folded filename match only when it is unique in the listing;
// two hits mean ambiguity, which is a miss.
type uniqueFilenameStrategy struct{}

func (s *uniqueFilenameStrategy) Name() string           { return "unique-filename" }
func (s *uniqueFilenameStrategy) Type() string           { return "single" }
func (s *uniqueFilenameStrategy) Params() map[string]any { return nil }

func (s *uniqueFilenameStrategy) Match(m *Mismatch, idx *Index) *FileEntry {
	if len(m.DirSegments) == 0 {
		return nil
	}
	want := strings.ToLower(m.BaseFilename)
	var hit *FileEntry
	for i := range idx.Files() {
		f := &idx.Files()[i]
		if strings.ToLower(f.Filename) != want {
			continue
		}
		if hit != nil {
			return nil
		}
		hit = f
	}
	return hit
}

// segmentLevenshteinStrategy requires a case-folded filename match and
// tolerates typos in the album directory name up to an edit-similarity
// floor.
type segmentLevenshteinStrategy struct {
	minSimilarity float64
}

func (s *segmentLevenshteinStrategy) Name() string { return "levenshtein-segment" }
func (s *segmentLevenshteinStrategy) Type() string { return "single" }
func (s *segmentLevenshteinStrategy) Params() map[string]any {
	return map[string]any{"min_similarity": s.minSimilarity}
}

func (s *segmentLevenshteinStrategy) Match(m *Mismatch, idx *Index) *FileEntry {
	if len(m.DirSegments) == 0 {
		return nil
	}
	album := strings.ToLower(m.Album())
	wantFile := strings.ToLower(m.BaseFilename)

	var best *FileEntry
	bestSim := s.minSimilarity
	for i := range idx.Files() {
		f := &idx.Files()[i]
		if strings.ToLower(f.Filename) != wantFile || f.Depth() == 0 {
			continue
		}
		fileAlbum := strings.ToLower(f.DirSegments[f.Depth()-1])
		if sim := similarity.LevenshteinSimilarity(album, fileAlbum); sim >= bestSim {
			best = f
			bestSim = sim
		}
	}
	return best
}

// numericSuffixStrategy strips trailing counter digits from the
// filename stem before a normalized comparison, so "party_2.jpg" can
// find "party.jpg" and vice versa.
type numericSuffixStrategy struct{}

func (s *numericSuffixStrategy) Name() string           { return "numeric-suffix" }
func (s *numericSuffixStrategy) Type() string           { return "single" }
func (s *numericSuffixStrategy) Params() map[string]any { return nil }

func (s *numericSuffixStrategy) Match(m *Mismatch, idx *Index) *FileEntry {
	if len(m.DirSegments) == 0 {
		return nil
	}
	want := stripNumericSuffix(similarity.NormalizeSeparators(m.BaseFilename))
	for _, f := range idx.Lookup(m.Album()) {
		if stripNumericSuffix(similarity.NormalizeSeparators(f.Filename)) == want {
			return f
		}
	}
	return nil
}

// stripNumericSuffix removes trailing digits (and a preceding
// separator) from the stem of name, keeping the extension.
func stripNumericSuffix(name string) string {
	stem := name
	ext := ""
	if i := strings.LastIndex(name, "."); i > 0 {
		stem, ext = name[:i], name[i:]
	}
	end := len(stem)
	for end > 0 && stem[end-1] >= '0' && stem[end-1] <= '9' {
		end--
	}
	if end > 0 && (stem[end-1] == '_' || stem[end-1] == '-') {
		end--
	}
	if end == 0 {
		// All digits; nothing sensible left to strip
		return name
	}
	return stem[:end] + ext
}

// lastSegmentStrategy trusts only the innermost directory: if the album
// exists in the listing and holds exactly one file whose name folds
// equal, that file wins. A last resort for URLs whose upper path is
// garbage.
type lastSegmentStrategy struct{}

func (s *lastSegmentStrategy) Name() string           { return "last-segment-priority" }
func (s *lastSegmentStrategy) Type() string           { return "single" }
func (s *lastSegmentStrategy) Params() map[string]any { return nil }

func (s *lastSegmentStrategy) Match(m *Mismatch, idx *Index) *FileEntry {
	if len(m.DirSegments) == 0 {
		return nil
	}
	want := strings.ToLower(m.BaseFilename)
	var hit *FileEntry
	for _, f := range idx.Lookup(m.Album()) {
		if strings.ToLower(f.Filename) != want {
			continue
		}
		if hit != nil {
			return nil
		}
		hit = f
	}
	return hit
}

// trigramStrategy picks the candidate sharing the most filename
// trigrams, requiring a minimum overlap so short names cannot match
// everything.
type trigramStrategy struct {
	minOverlap int
}

func (s *trigramStrategy) Name() string { return "trigram" }
func (s *trigramStrategy) Type() string { return "single" }
func (s *trigramStrategy) Params() map[string]any {
	return map[string]any{"min_overlap": s.minOverlap}
}

func (s *trigramStrategy) Match(m *Mismatch, idx *Index) *FileEntry {
	name := strings.ToLower(m.BaseFilename)
	var best *FileEntry
	bestOverlap := s.minOverlap - 1
	for _, f := range idx.Candidates(m) {
		overlap := similarity.TrigramOverlap(name, strings.ToLower(f.Filename))
		if overlap > bestOverlap {
			best = f
			bestOverlap = overlap
		}
	}
	return best
}

// weightedStrategy is the tiered-threshold scorer with a fixed
// similarity function.
type weightedStrategy struct {
	name string
	sim  SimilarityFunc
	opts Options
}

func (s *weightedStrategy) Name() string { return s.name }
func (s *weightedStrategy) Type() string { return "single" }
func (s *weightedStrategy) Params() map[string]any {
	p, a, f := s.opts.normalizedWeights()
	return map[string]any{
		"path_weight":     p,
		"album_weight":    a,
		"file_weight":     f,
		"threshold":       s.opts.Threshold,
		"confidence_gap":  s.opts.ConfidenceGap,
		"lower_threshold": s.opts.LowerThreshold,
	}
}

func (s *weightedStrategy) Match(m *Mismatch, idx *Index) *FileEntry {
	runOpts := s.opts
	runOpts.Similarity = s.sim
	return BestMatch(m, idx, &runOpts)
}

// consensusStrategy combines both weighted runs by Borda count.
type consensusStrategy struct {
	opts Options
}

func (s *consensusStrategy) Name() string { return "weighted-consensus" }
func (s *consensusStrategy) Type() string { return "consensus" }
func (s *consensusStrategy) Params() map[string]any {
	p, a, f := s.opts.normalizedWeights()
	return map[string]any{
		"path_weight":          p,
		"album_weight":         a,
		"file_weight":          f,
		"top_k":                s.opts.TopK,
		"min_consensus_points": s.opts.MinConsensusPoints,
	}
}

func (s *consensusStrategy) Match(m *Mismatch, idx *Index) *FileEntry {
	runOpts := s.opts
	return ConsensusMatch(m, idx, &runOpts)
}
