package verify

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	galleryfs "gallery-manager/feature/gallery"

	"gallery-manager/core/gallery"
	"gallery-manager/core/storage"
)

// childrenFile is the per-album listing the exporter writes.
const childrenFile = "children.json"

// Missing is one tree entry whose backing file could not be found.
type Missing struct {
	// NodePath is the tree-relative path the listing references.
	NodePath string
	// URL is the public thumbnail URL, in the shape the repair tool
	// parses back out of the report.
	URL string
}

// Report summarizes an integrity scan.
type Report struct {
	Albums  int
	Photos  int
	Missing []Missing
	// Orphans are bucket objects no album listing references.
	Orphans []string
}

// Service walks an exported gallery tree and checks every photo and
// thumbnail it references against the files that actually exist.
type Service struct {
	fetcher galleryfs.Fetcher
	check   checker
	client  storage.Client
	bucket  string
	cfg     *Config
	logger  *zap.Logger

	// referenced collects every object path a listing mentions, for the
	// orphan scan.
	referenced map[string]struct{}
}

// NewService creates an integrity scanner over the exported tree.
// client may be nil unless cfg.FromStorage or cfg.Orphans is set.
func NewService(fetcher galleryfs.Fetcher, cfg *Config, client storage.Client, bucket string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	var check checker
	if cfg.FromStorage {
		check = &storageChecker{client: client, bucket: bucket}
	} else {
		check = &diskChecker{root: cfg.Path}
	}
	return &Service{
		fetcher:    fetcher,
		check:      check,
		client:     client,
		bucket:     bucket,
		cfg:        cfg,
		logger:     logger,
		referenced: make(map[string]struct{}),
	}
}

// Run scans the tree below rootAlbumID. An unreadable listing is fatal;
// a missing photo file is a finding, not an error.
func (s *Service) Run(ctx context.Context, rootAlbumID int64) (*Report, error) {
	if (s.cfg.FromStorage || s.cfg.Orphans) && s.client == nil {
		return nil, fmt.Errorf("storage scan requested but no storage client configured")
	}

	report := &Report{}
	if err := s.walkAlbum(ctx, rootAlbumID, "", report); err != nil {
		return nil, err
	}

	if s.cfg.Orphans {
		if err := s.scanOrphans(ctx, report); err != nil {
			return nil, err
		}
	}

	s.logger.Info("scan finished",
		zap.Int("albums", report.Albums),
		zap.Int("photos", report.Photos),
		zap.Int("missing", len(report.Missing)),
		zap.Int("orphans", len(report.Orphans)),
	)
	return report, nil
}

func (s *Service) walkAlbum(ctx context.Context, albumID int64, albumPath string, report *Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	nodes, err := s.fetcher.FetchChildren(ctx, albumID)
	if err != nil {
		return fmt.Errorf("failed to load album %d: %w", albumID, err)
	}

	report.Albums++
	s.referenced[path.Join(albumPath, childrenFile)] = struct{}{}
	// The album cover is derived from the first photo; optional but not
	// an orphan when present
	s.referenced[path.Join(albumPath, s.cfg.ThumbPrefix+"album.jpg")] = struct{}{}

	for i := range nodes {
		node := &nodes[i]
		switch {
		case node.Type == gallery.TypeAlbum:
			if node.HasChildren {
				if err := s.walkAlbum(ctx, node.ID, node.Path, report); err != nil {
					return err
				}
			}
		case node.Type == gallery.TypePhoto:
			if err := s.checkPhoto(ctx, node, report); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkPhoto verifies the full-size copy and its thumbnail.
func (s *Service) checkPhoto(ctx context.Context, node *gallery.Node, report *Report) error {
	report.Photos++

	dir := path.Dir(node.Path)
	if dir == "." {
		dir = ""
	}
	base := path.Base(node.Path)
	thumbRel := path.Join(dir, s.cfg.ThumbPrefix+base)

	s.referenced[node.Path] = struct{}{}
	s.referenced[thumbRel] = struct{}{}

	fileOK, err := s.check.exists(ctx, node.Path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", node.Path, err)
	}
	thumbOK, err := s.check.exists(ctx, thumbRel)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", thumbRel, err)
	}

	if fileOK && thumbOK {
		return nil
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/" + thumbRel
	report.Missing = append(report.Missing, Missing{NodePath: node.Path, URL: url})
	s.logger.Debug("missing file",
		zap.String("path", node.Path),
		zap.Bool("file", fileOK),
		zap.Bool("thumb", thumbOK),
	)
	return nil
}

// scanOrphans lists the bucket and reports objects nothing references.
func (s *Service) scanOrphans(ctx context.Context, report *Report) error {
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			return fmt.Errorf("failed to list bucket %s: %w", s.bucket, info.Err)
		}
		if _, ok := s.referenced[info.Key]; !ok {
			report.Orphans = append(report.Orphans, info.Key)
		}
	}
	sort.Strings(report.Orphans)
	return nil
}

// WriteReport renders the scan as the Markdown mismatch report the
// repair tool consumes: one bullet per missing file, orphans in a
// separate section the parser ignores.
func WriteReport(path string, report *Report) error {
	var b strings.Builder
	b.WriteString("# Gallery mismatch report\n\n")
	fmt.Fprintf(&b, "Scanned %d albums, %d photos; %d missing.\n\n",
		report.Albums, report.Photos, len(report.Missing))

	for _, m := range report.Missing {
		fmt.Fprintf(&b, "- %s\n", m.URL)
	}

	if len(report.Orphans) > 0 {
		b.WriteString("\n## Orphan objects\n\n")
		for _, o := range report.Orphans {
			fmt.Fprintf(&b, "%s\n", o)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
