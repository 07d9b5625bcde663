package cmd

import (
	"fmt"
	"os"

	"gallery-manager/core/config"
	"gallery-manager/core/logger"
	"gallery-manager/feature/repair"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for repair commands
	repairListingPath  string
	repairReportPath   string
	repairArtifactPath string
	repairGoldenPath   string
)

// repairCmd is the parent command for the URL repair tooling.
var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Match broken gallery URLs against the real file listing",
	Long: `Repair takes the mismatch report produced by verify (or scraped from a
dead-link checker) and a listing of the files that actually exist, and
matches every broken URL against the listing with a battery of
strategies run side by side.`,
}

// repairRunCmd runs every strategy and writes the winner's artifact.
var repairRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all matching strategies and write the best one's artifact",
	Long: `Run parses the file listing and the mismatch report, runs all matching
strategies side by side, and writes the best performer's parameters and
hit rate as a JSON artifact. The ranking is printed so the operator can
overrule the raw hit count before the one-time bulk repair.

Examples:
  # Use the configured listing and report paths
  gallery-manager repair run

  # Explicit inputs
  gallery-manager repair run --listing files.txt --report mismatches.md`,
	RunE: runRepairRun,
}

// repairTrainCmd sweeps scorer weights against a golden set.
var repairTrainCmd = &cobra.Command{
	Use:   "train",
	Short: "Grid-search scorer weights against a hand-labeled golden set",
	Long: `Train evaluates the weighted scorer over a grid of path/album/file
weight combinations against a golden set of known URL-to-file pairs
(JSON array or TSV) and prints the combinations ranked by accuracy.`,
	RunE: runRepairTrain,
}

func init() {
	repairCmd.PersistentFlags().StringVar(&repairListingPath, "listing", "", "Override the file listing path")
	repairRunCmd.Flags().StringVar(&repairReportPath, "report", "", "Override the mismatch report path")
	repairRunCmd.Flags().StringVar(&repairArtifactPath, "artifact", "", "Override the artifact output path")
	repairTrainCmd.Flags().StringVar(&repairGoldenPath, "golden", "", "Override the golden set path")

	repairCmd.AddCommand(repairRunCmd)
	repairCmd.AddCommand(repairTrainCmd)
	RootCmd.AddCommand(repairCmd)
}

// loadRepairInputs loads config, logger, and the file listing index
// shared by both subcommands. Unreadable inputs are fatal.
func loadRepairInputs() (*config.Config, *zap.Logger, *repair.Index, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if repairListingPath != "" {
		cfg.Repair.ListingPath = repairListingPath
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l, uuid.NewString())

	listing, err := os.Open(cfg.Repair.ListingPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open listing: %w", err)
	}
	defer listing.Close()

	files, err := repair.ParseFileListing(listing)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse listing: %w", err)
	}
	l.Info("Listing loaded", zap.String("path", cfg.Repair.ListingPath), zap.Int("files", len(files)))

	return cfg, l, repair.NewIndex(files), nil
}

func runRepairRun(cmd *cobra.Command, args []string) error {
	cfg, l, idx, err := loadRepairInputs()
	if err != nil {
		return err
	}
	if repairReportPath != "" {
		cfg.Repair.ReportPath = repairReportPath
	}
	if repairArtifactPath != "" {
		cfg.Repair.ArtifactPath = repairArtifactPath
	}

	report, err := os.Open(cfg.Repair.ReportPath)
	if err != nil {
		return fmt.Errorf("failed to open mismatch report: %w", err)
	}
	defer report.Close()

	mismatches, err := repair.ParseMismatchReport(report)
	if err != nil {
		return fmt.Errorf("failed to parse mismatch report: %w", err)
	}
	l.Info("Report loaded", zap.String("path", cfg.Repair.ReportPath), zap.Int("mismatches", len(mismatches)))

	results := repair.RunAll(mismatches, idx, cfg.Repair.Options(), l)
	if len(results) == 0 {
		return fmt.Errorf("no strategies ran")
	}

	for _, r := range results {
		l.Info("Strategy ranked",
			zap.String("strategy", r.Strategy.Name()),
			zap.Int("hits", r.Hits),
			zap.Int("total", r.Total),
			zap.Float64("hit_rate", r.HitRate()),
		)
	}

	best := &results[0]
	artifact := repair.BuildArtifact(best)
	if err := repair.WriteArtifact(cfg.Repair.ArtifactPath, artifact); err != nil {
		return err
	}

	l.Info("Artifact written",
		zap.String("path", cfg.Repair.ArtifactPath),
		zap.String("algorithm", artifact.Algorithm),
		zap.String("hit_rate", artifact.HitRate),
	)
	return nil
}

func runRepairTrain(cmd *cobra.Command, args []string) error {
	cfg, l, idx, err := loadRepairInputs()
	if err != nil {
		return err
	}
	if repairGoldenPath != "" {
		cfg.Repair.GoldenPath = repairGoldenPath
	}

	goldenFile, err := os.Open(cfg.Repair.GoldenPath)
	if err != nil {
		return fmt.Errorf("failed to open golden set: %w", err)
	}
	defer goldenFile.Close()

	golden, err := repair.LoadGoldenSet(goldenFile)
	if err != nil {
		return fmt.Errorf("failed to load golden set: %w", err)
	}
	l.Info("Golden set loaded", zap.String("path", cfg.Repair.GoldenPath), zap.Int("pairs", len(golden)))

	results := repair.Train(golden, idx, cfg.Repair.Options(), l)
	if len(results) == 0 {
		return fmt.Errorf("no weight combinations evaluated")
	}

	// Show the leaders; the full grid is noise
	maxShow := 5
	if len(results) < maxShow {
		maxShow = len(results)
	}
	for _, r := range results[:maxShow] {
		l.Info("Weight combination",
			zap.Float64("path_weight", r.PathWeight),
			zap.Float64("album_weight", r.AlbumWeight),
			zap.Float64("file_weight", r.FileWeight),
			zap.Int("correct", r.Correct),
			zap.Int("total", r.Total),
		)
	}

	best := results[0]
	l.Info("Best weights",
		zap.Float64("path_weight", best.PathWeight),
		zap.Float64("album_weight", best.AlbumWeight),
		zap.Float64("file_weight", best.FileWeight),
		zap.Int("correct", best.Correct),
		zap.Int("total", best.Total),
	)
	return nil
}
