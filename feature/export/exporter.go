package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gallery-manager/core/gallery"
	"gallery-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// childrenFile is the per-album listing the runtime loaders consume.
const childrenFile = "children.json"

// Options control a single export run.
type Options struct {
	// DryRun walks the database but writes nothing to disk.
	DryRun bool
	// NoThumbs skips thumbnail generation.
	NoThumbs bool
	// ForceThumbs regenerates thumbnails even when they already exist.
	ForceThumbs bool
	// IgnoreAlbums lists album path components to skip.
	IgnoreAlbums []string
	// OnlyAlbums restricts the walk to the listed album path components.
	OnlyAlbums []string
}

// Report summarizes an export run.
type Report struct {
	Albums       int
	Photos       int
	Thumbnails   int
	MissingFiles []string
	Uploaded     int
}

// Service walks the Gallery 2 database and materializes the static
// gallery tree: per-album children.json listings, renamed photo copies,
// and center-cropped thumbnails, optionally mirrored to object storage.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	cfg    *Config
	logger *zap.Logger
}

// NewService creates a new export service. client may be nil when
// cfg.Upload is false.
func NewService(db *gorm.DB, client storage.Client, bucket string, cfg *Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:     db,
		client: client,
		bucket: bucket,
		cfg:    cfg,
		logger: logger,
	}
}

// Run exports the tree below the configured root album.
// Export is an operator-run batch job: any error is fatal for the run.
func (s *Service) Run(ctx context.Context, opts Options) (*Report, error) {
	if s.cfg.Upload && s.client == nil {
		return nil, fmt.Errorf("upload requested but no storage client configured")
	}

	report := &Report{}
	if err := s.walkAlbum(ctx, s.cfg.RootAlbumID, "", "", opts, report); err != nil {
		return nil, err
	}

	s.logger.Info("export finished",
		zap.Int("albums", report.Albums),
		zap.Int("photos", report.Photos),
		zap.Int("thumbnails", report.Thumbnails),
		zap.Int("missing_files", len(report.MissingFiles)),
		zap.Int("uploaded", report.Uploaded),
	)
	return report, nil
}

// walkAlbum exports one album and recurses into its child albums.
// uiPath is the cleaned output path, fsPath the original g2data path.
func (s *Service) walkAlbum(ctx context.Context, albumID int64, uiPath, fsPath string, opts Options, report *Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records, err := loadChildren(s.db, s.cfg, albumID)
	if err != nil {
		return err
	}

	report.Albums++

	var nodes []gallery.Node
	firstPhoto := true
	for _, rec := range records {
		if !rec.isExportable() {
			continue
		}

		node := rec.toNode(uiPath)

		switch {
		case node.Type == gallery.TypeAlbum:
			if skipAlbum(rec.PathComponent, node.Title, opts) {
				s.logger.Debug("skipping album", zap.String("path_component", rec.PathComponent))
				continue
			}
			nodes = append(nodes, node)
			childUI := node.Path
			childFS := path.Join(fsPath, rec.PathComponent)
			if err := s.walkAlbum(ctx, rec.ID, childUI, childFS, opts, report); err != nil {
				return err
			}

		default:
			if err := s.exportPhoto(&rec, node.Title, uiPath, fsPath, firstPhoto, opts, report); err != nil {
				return err
			}
			nodes = append(nodes, node)
			report.Photos++
			firstPhoto = false
		}
	}

	if opts.DryRun {
		return nil
	}
	return s.writeChildren(ctx, uiPath, nodes, report)
}

// exportPhoto copies the original into the export tree under its cleaned
// name and renders its thumbnail. A missing original is tallied, not fatal:
// the legacy albums reference files that were lost years ago and the
// repair tool exists precisely to chase those down.
func (s *Service) exportPhoto(rec *childRecord, cleanTitle, uiPath, fsPath string, firstPhoto bool, opts Options, report *Report) error {
	origPath := filepath.Join(s.cfg.SourcePath, filepath.FromSlash(fsPath), rec.PathComponent)
	if _, err := os.Stat(origPath); err != nil {
		report.MissingFiles = append(report.MissingFiles, origPath)
		return nil
	}

	if opts.DryRun {
		return nil
	}

	outDir := filepath.Join(s.cfg.OutputPath, filepath.FromSlash(uiPath))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create album directory %s: %w", outDir, err)
	}

	linkPath := filepath.Join(outDir, LinkTarget(cleanTitle, rec.PathComponent))
	if _, err := os.Stat(linkPath); err != nil {
		if err := copyFile(origPath, linkPath); err != nil {
			return err
		}
	}

	if opts.NoThumbs {
		return nil
	}

	thumbPath := filepath.Join(outDir, ThumbTarget(s.cfg.ThumbPrefix, cleanTitle, rec.PathComponent))
	_, statErr := os.Stat(thumbPath)
	if statErr == nil && !opts.ForceThumbs {
		return nil
	}

	if err := writeThumbnail(origPath, thumbPath, s.cfg.ThumbSize); err != nil {
		// A corrupt original should not kill a multi-hour run
		s.logger.Warn("thumbnail generation failed", zap.String("original", origPath), zap.Error(err))
		report.MissingFiles = append(report.MissingFiles, origPath)
		return nil
	}
	report.Thumbnails++

	// The first photo of an album doubles as the album cover
	if firstPhoto {
		coverPath := filepath.Join(outDir, s.cfg.ThumbPrefix+"album.jpg")
		if _, err := os.Stat(coverPath); err != nil {
			if err := copyFile(thumbPath, coverPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeChildren persists the album listing and optionally mirrors it to
// object storage.
func (s *Service) writeChildren(ctx context.Context, uiPath string, nodes []gallery.Node, report *Report) error {
	if nodes == nil {
		nodes = []gallery.Node{}
	}

	data, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal children of %q: %w", uiPath, err)
	}

	outDir := filepath.Join(s.cfg.OutputPath, filepath.FromSlash(uiPath))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create album directory %s: %w", outDir, err)
	}

	outFile := filepath.Join(outDir, childrenFile)
	if err := os.WriteFile(outFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outFile, err)
	}

	if !s.cfg.Upload {
		return nil
	}

	objectName := path.Join(uiPath, childrenFile)
	_, err = s.client.PutObject(ctx, s.bucket, objectName,
		strings.NewReader(string(data)), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	report.Uploaded++
	return nil
}

func skipAlbum(pathComponent, title string, opts Options) bool {
	for _, ignored := range opts.IgnoreAlbums {
		if pathComponent == ignored || title == ignored {
			return true
		}
	}
	if len(opts.OnlyAlbums) > 0 {
		for _, only := range opts.OnlyAlbums {
			if pathComponent == only {
				return false
			}
		}
		return true
	}
	return false
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
