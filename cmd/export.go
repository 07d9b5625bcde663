package cmd

import (
	"context"
	"fmt"

	"gallery-manager/core/config"
	"gallery-manager/core/database"
	"gallery-manager/core/logger"
	"gallery-manager/core/storage"
	"gallery-manager/feature/export"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for export command
	exportDryRun      bool
	exportNoThumbs    bool
	exportForceThumbs bool
	exportIgnore      []string
	exportOnly        []string
)

// exportCmd runs the Gallery 2 to static tree export.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the Gallery 2 database into a static gallery tree",
	Long: `Export walks the Gallery 2 database from the configured root album and
materializes a static tree: per-album children.json listings, renamed
photo copies, and center-cropped thumbnails. With export upload enabled
the tree is mirrored to the configured object storage bucket.

Examples:
  # Full export
  gallery-manager export

  # Walk the database without writing anything
  gallery-manager export --dry-run

  # Re-export a single album, regenerating its thumbnails
  gallery-manager export --only 2004_summer --force-thumbs`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "Walk the database but write nothing")
	exportCmd.Flags().BoolVar(&exportNoThumbs, "no-thumbs", false, "Skip thumbnail generation")
	exportCmd.Flags().BoolVar(&exportForceThumbs, "force-thumbs", false, "Regenerate thumbnails even when they exist")
	exportCmd.Flags().StringSliceVar(&exportIgnore, "ignore", nil, "Album path components to skip")
	exportCmd.Flags().StringSliceVar(&exportOnly, "only", nil, "Restrict the walk to these album path components")

	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l, uuid.NewString())

	l.Info("Starting export",
		zap.Int64("root_album", cfg.Export.RootAlbumID),
		zap.Bool("dry_run", exportDryRun),
	)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// The export only reads the legacy schema; refuse to start against a
	// database that does not look like Gallery 2
	if missing, err := database.VerifyGallerySchema(db, cfg.Export.TablePrefix); err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	} else if len(missing) > 0 {
		return fmt.Errorf("database is missing gallery tables: %v", missing)
	}

	var client storage.Client
	if cfg.Export.Upload {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc := export.NewService(db, client, cfg.Storage.Bucket, &cfg.Export, l)
	report, err := svc.Run(ctx, export.Options{
		DryRun:       exportDryRun,
		NoThumbs:     exportNoThumbs,
		ForceThumbs:  exportForceThumbs,
		IgnoreAlbums: exportIgnore,
		OnlyAlbums:   exportOnly,
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	for _, missing := range report.MissingFiles {
		l.Warn("original file missing", zap.String("path", missing))
	}
	l.Info("Export complete",
		zap.Int("albums", report.Albums),
		zap.Int("photos", report.Photos),
		zap.Int("thumbnails", report.Thumbnails),
		zap.Int("missing_files", len(report.MissingFiles)),
		zap.Int("uploaded", report.Uploaded),
	)
	return nil
}
