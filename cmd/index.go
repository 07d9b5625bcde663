package cmd

import (
	"context"
	"fmt"

	"gallery-manager/core/cache"
	"gallery-manager/core/config"
	"gallery-manager/core/index"
	"gallery-manager/core/logger"
	"gallery-manager/core/storage"
	galleryfs "gallery-manager/feature/gallery"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// indexCmd is the parent command for search index operations.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and query the search index over the exported tree",
}

// indexSearchCmd builds the index and runs a query against it.
var indexSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search album and photo titles in the exported tree",
	Long: `Search builds the flat search index by walking the exported tree's
children.json listings and runs a substring query over titles and
descriptions, printing the ranked results.

Examples:
  gallery-manager index search summer
  gallery-manager index search "new year"`,
	Args: cobra.ExactArgs(1),
	RunE: runIndexSearch,
}

func init() {
	indexCmd.AddCommand(indexSearchCmd)
	RootCmd.AddCommand(indexCmd)
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	var fetcher galleryfs.Fetcher
	if cfg.Gallery.FromStorage {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		fetcher = galleryfs.NewStorageFetcher(client, cfg.Storage.Bucket, cfg.Gallery.RootAlbumID)
	} else {
		fetcher = galleryfs.NewDirFetcher(cfg.Gallery.Path, cfg.Gallery.RootAlbumID)
	}
	cached := galleryfs.NewCachedFetcher(fetcher, cache.New(cfg.Gallery.CacheSize))

	builder := index.NewBuilder(cached.FetchChildren, l)
	if err := builder.Build(ctx, cfg.Gallery.RootAlbumID); err != nil {
		return fmt.Errorf("index build aborted: %w", err)
	}

	stats := builder.Stats()
	l.Info("Index built",
		zap.Int("entries", builder.Count()),
		zap.Int("failed_subtrees", stats.FailedSubtrees),
	)

	results := builder.Search(query)
	if len(results) == 0 {
		l.Info("No results", zap.String("query", query))
		return nil
	}

	for _, r := range results {
		l.Info("Result",
			zap.Int64("id", r.Item.ID),
			zap.String("type", string(r.Item.Type)),
			zap.String("title", r.Item.Title),
			zap.String("path", r.Item.Node.Path),
			zap.Float64("score", r.Score),
		)
	}
	return nil
}
