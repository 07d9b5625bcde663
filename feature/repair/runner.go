package repair

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
)

// StrategyResult is the tally for one strategy over a full report.
type StrategyResult struct {
	// Strategy is the algorithm that produced this tally.
	Strategy Strategy
	// Hits counts mismatches the strategy resolved to a file.
	Hits int
	// Total is the number of mismatches processed.
	Total int
	// Matches maps mismatch URL to the resolved path, for the repair map.
	Matches map[string]string
}

// HitRate returns the hit fraction, 0 when nothing was processed.
func (r *StrategyResult) HitRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Total)
}

// RunAll runs every strategy side by side over the mismatch report and
// returns the tallies ranked by raw hit count, best first. The ranking
// is what the operator uses to pick the algorithm for the one-time bulk
// repair; picking by hit count on a single report can overfit to that
// report's error distribution, so the choice stays with the operator.
func RunAll(mismatches []Mismatch, idx *Index, opts Options, logger *zap.Logger) []StrategyResult {
	if logger == nil {
		logger = zap.NewNop()
	}

	strategies := Strategies(opts)
	results := make([]StrategyResult, 0, len(strategies))

	for _, s := range strategies {
		result := StrategyResult{
			Strategy: s,
			Total:    len(mismatches),
			Matches:  make(map[string]string),
		}
		for i := range mismatches {
			m := &mismatches[i]
			if f := s.Match(m, idx); f != nil {
				result.Hits++
				result.Matches[m.URL] = f.FullPath
			}
		}
		logger.Info("strategy finished",
			zap.String("strategy", s.Name()),
			zap.Int("hits", result.Hits),
			zap.Int("total", result.Total),
		)
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Hits > results[j].Hits
	})
	return results
}

// BuildArtifact turns the winning tally into the JSON artifact shape the
// downstream repair tool consumes.
func BuildArtifact(r *StrategyResult) Artifact {
	return Artifact{
		Algorithm: r.Strategy.Name(),
		Type:      r.Strategy.Type(),
		Params:    r.Strategy.Params(),
		Hits:      r.Hits,
		Total:     r.Total,
		HitRate:   fmt.Sprintf("%.1f%%", r.HitRate()*100),
	}
}

// WriteArtifact serializes the artifact to path.
func WriteArtifact(path string, artifact Artifact) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", path, err)
	}
	return nil
}
