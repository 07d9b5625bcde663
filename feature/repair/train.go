package repair

import (
	"sort"

	"go.uber.org/zap"
)

// TrainResult is the outcome of one weight combination in the sweep.
type TrainResult struct {
	PathWeight  float64 `json:"path_weight"`
	AlbumWeight float64 `json:"album_weight"`
	FileWeight  float64 `json:"file_weight"`
	Correct     int     `json:"correct"`
	Total       int     `json:"total"`
}

// Train sweeps a small grid of (pathWeight, albumWeight) combinations,
// with fileWeight as the remainder, against a hand-labeled golden set
// and returns every combination's correct-match count, best first. A
// plain grid search: the grid is tiny and exhaustive beats clever here.
func Train(golden []GoldenPair, idx *Index, base Options, logger *zap.Logger) []TrainResult {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Pre-parse the URLs once; a malformed golden URL counts as always
	// wrong rather than aborting the sweep
	mismatches := make([]*Mismatch, len(golden))
	for i, pair := range golden {
		if m, err := parseMismatchURL(pair.URL); err == nil {
			mismatches[i] = &m
		} else {
			logger.Warn("skipping malformed golden URL", zap.String("url", pair.URL), zap.Error(err))
		}
	}

	var results []TrainResult
	for path := 0.1; path <= 0.61; path += 0.1 {
		for album := 0.1; album <= 0.61; album += 0.1 {
			file := 1 - path - album
			if file <= 0 {
				continue
			}

			opts := base
			opts.PathWeight = path
			opts.AlbumWeight = album
			opts.FileWeight = file

			correct := 0
			for i, pair := range golden {
				if mismatches[i] == nil {
					continue
				}
				if f := BestMatch(mismatches[i], idx, &opts); f != nil && f.FullPath == pair.FullPath {
					correct++
				}
			}

			results = append(results, TrainResult{
				PathWeight:  round1(path),
				AlbumWeight: round1(album),
				FileWeight:  round1(file),
				Correct:     correct,
				Total:       len(golden),
			})
		}
	}

	// Best first; stable sort keeps the lower path weight on ties
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Correct > results[j].Correct
	})
	return results
}

// round1 trims float accumulation noise from the grid steps.
func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
