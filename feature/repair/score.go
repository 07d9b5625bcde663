package repair

import (
	"sort"
	"strings"

	"gallery-manager/core/similarity"
)

const (
	containmentBoost  = 1.2
	depthPenaltyStep  = 0.02
	depthPenaltyCeil  = 0.1
	containmentMinLen = 2
)

// ScoreCandidate computes the weighted similarity between a mismatch and
// one candidate file: path similarity, album (innermost directory)
// similarity, and filename similarity, each taken as the max of raw and
// vowel-stripped forms. Filenames additionally fall back to a numeric
// skeleton so names differing only in counters still match, and get a
// containment boost when one is a substring of the other. A depth
// penalty is subtracted when the URL and the file sit at different
// directory depths.
func ScoreCandidate(m *Mismatch, f *FileEntry, opts *Options) float64 {
	sim := opts.Similarity
	if sim == nil {
		sim = similarity.JaroWinkler
	}
	wPath, wAlbum, wFile := opts.normalizedWeights()

	urlPath := strings.ToLower(strings.Join(m.DirSegments, "/"))
	filePath := strings.ToLower(f.DirPath)
	pathSim := stemmedMax(sim, urlPath, filePath)

	albumSim := albumSimilarity(sim, strings.ToLower(m.Album()), f, opts)

	fileSim := filenameSimilarity(sim, strings.ToLower(m.BaseFilename), strings.ToLower(f.Filename))

	score := wPath*pathSim + wAlbum*albumSim + wFile*fileSim

	depthDiff := len(m.DirSegments) - f.Depth()
	if depthDiff < 0 {
		depthDiff = -depthDiff
	}
	penalty := depthPenaltyStep * float64(depthDiff)
	if penalty > depthPenaltyCeil {
		penalty = depthPenaltyCeil
	}

	score -= penalty
	if score < 0 {
		score = 0
	}
	return score
}

// stemmedMax scores a against b, raw and stemmed, keeping the best.
func stemmedMax(sim SimilarityFunc, a, b string) float64 {
	raw := sim(a, b)
	stemmed := sim(similarity.Stem(a), similarity.Stem(b))
	if stemmed > raw {
		return stemmed
	}
	return raw
}

func albumSimilarity(sim SimilarityFunc, album string, f *FileEntry, opts *Options) float64 {
	fileAlbum := ""
	if n := len(f.DirSegments); n > 0 {
		fileAlbum = strings.ToLower(f.DirSegments[n-1])
	}

	// Known aliases trump string distance, both directions
	if opts.Synonyms != nil {
		if opts.Synonyms[album] == fileAlbum || opts.Synonyms[fileAlbum] == album {
			return 1
		}
	}

	return stemmedMax(sim, album, fileAlbum)
}

func filenameSimilarity(sim SimilarityFunc, name, candidate string) float64 {
	best := stemmedMax(sim, name, candidate)

	// Numeric skeleton fallback for names differing only in counters
	if skel := sim(similarity.NumericSkeleton(name), similarity.NumericSkeleton(candidate)); skel > best {
		best = skel
	}

	// Containment boost; single-character names would make trivial
	// substrings of nearly everything, so they are excluded
	if len(name) >= containmentMinLen && len(candidate) >= containmentMinLen {
		if strings.Contains(name, candidate) || strings.Contains(candidate, name) {
			best *= containmentBoost
			if best > 1 {
				best = 1
			}
		}
	}

	return best
}

// scoredCandidate pairs a candidate with its score.
type scoredCandidate struct {
	file  *FileEntry
	score float64
}

// rankCandidates scores and sorts the pool, best first. Ties sort by
// path for determinism.
func rankCandidates(m *Mismatch, pool []*FileEntry, opts *Options) []scoredCandidate {
	ranked := make([]scoredCandidate, 0, len(pool))
	for _, f := range pool {
		ranked = append(ranked, scoredCandidate{file: f, score: ScoreCandidate(m, f, opts)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].file.FullPath < ranked[j].file.FullPath
	})
	return ranked
}

// BestMatch returns the most likely file for the mismatch, or nil when
// no candidate is trustworthy. The top candidate is accepted outright at
// or above Threshold. Below that, it is still accepted when it leads the
// runner-up by at least ConfidenceGap and clears LowerThreshold: a
// low-but-uncontested match is worth more than a mediocre one with a
// close rival. Anything else is a miss, never a guess.
func BestMatch(m *Mismatch, idx *Index, opts *Options) *FileEntry {
	ranked := rankCandidates(m, idx.Candidates(m), opts)
	if len(ranked) == 0 {
		return nil
	}

	top := ranked[0]
	if top.score >= opts.Threshold {
		return top.file
	}

	gap := top.score
	if len(ranked) > 1 {
		gap = top.score - ranked[1].score
	}
	if gap >= opts.ConfidenceGap && top.score >= opts.LowerThreshold {
		return top.file
	}

	return nil
}

// ConsensusMatch runs the scorer once with Jaro-Winkler and once with
// bigram overlap, takes each run's TopK candidates, and combines them by
// Borda count (TopK+1-rank points per list). The highest-point candidate
// is accepted when its combined points reach MinConsensusPoints;
// otherwise the single-strategy BestMatch decides.
func ConsensusMatch(m *Mismatch, idx *Index, opts *Options) *FileEntry {
	pool := idx.Candidates(m)
	if len(pool) == 0 {
		return nil
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = 3
	}

	points := make(map[*FileEntry]int)
	for _, sim := range []SimilarityFunc{similarity.JaroWinkler, similarity.TokenOverlap} {
		runOpts := *opts
		runOpts.Similarity = sim
		ranked := rankCandidates(m, pool, &runOpts)
		for rank := 0; rank < topK && rank < len(ranked); rank++ {
			points[ranked[rank].file] += topK + 1 - (rank + 1)
		}
	}

	var best *FileEntry
	bestPoints := 0
	for f, p := range points {
		if p > bestPoints || (p == bestPoints && best != nil && f.FullPath < best.FullPath) {
			best = f
			bestPoints = p
		}
	}

	if best != nil && bestPoints >= opts.MinConsensusPoints {
		return best
	}
	return BestMatch(m, idx, opts)
}
