package cmd

import (
	"context"
	"fmt"

	"gallery-manager/core/config"
	"gallery-manager/core/logger"
	"gallery-manager/core/storage"
	galleryfs "gallery-manager/feature/gallery"
	"gallery-manager/feature/verify"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for verify command
	verifyReportPath string
	verifyOrphans    bool
)

// verifyCmd scans the exported tree for missing files.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Scan the exported tree for missing photos and thumbnails",
	Long: `Verify walks the exported gallery tree and checks that every photo and
thumbnail referenced by a children.json listing actually exists, on
local disk or in the storage bucket. Findings are written as the
Markdown mismatch report the repair command consumes.

Examples:
  # Scan the local export
  gallery-manager verify

  # Scan the bucket and also report unreferenced objects
  gallery-manager verify --orphans`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyReportPath, "report", "", "Override the report output path")
	verifyCmd.Flags().BoolVar(&verifyOrphans, "orphans", false, "Also list bucket objects no listing references")

	RootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if verifyReportPath != "" {
		cfg.Verify.ReportPath = verifyReportPath
	}
	if verifyOrphans {
		cfg.Verify.Orphans = true
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	var client storage.Client
	if cfg.Verify.FromStorage || cfg.Verify.Orphans {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	var fetcher galleryfs.Fetcher
	if cfg.Verify.FromStorage {
		fetcher = galleryfs.NewStorageFetcher(client, cfg.Storage.Bucket, cfg.Gallery.RootAlbumID)
	} else {
		fetcher = galleryfs.NewDirFetcher(cfg.Verify.Path, cfg.Gallery.RootAlbumID)
	}

	svc := verify.NewService(fetcher, &cfg.Verify, client, cfg.Storage.Bucket, l)
	report, err := svc.Run(ctx, cfg.Gallery.RootAlbumID)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if err := verify.WriteReport(cfg.Verify.ReportPath, report); err != nil {
		return err
	}

	l.Info("Report written",
		zap.String("path", cfg.Verify.ReportPath),
		zap.Int("missing", len(report.Missing)),
		zap.Int("orphans", len(report.Orphans)),
	)
	return nil
}
