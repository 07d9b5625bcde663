package index

import (
	"context"
	"sort"
	"strings"

	"gallery-manager/core/gallery"

	"go.uber.org/zap"
)

const (
	// maxDepth bounds the recursive walk. The exported tree mirrors a
	// filesystem hierarchy and is acyclic in practice; a deeper chain
	// indicates a corrupt export and is treated as a subtree failure.
	maxDepth = 32

	// maxResults caps Search output to bound rendering cost downstream.
	maxResults = 100

	scoreTitle       = 2.0
	scoreDescription = 1.0
)

// FetchFunc loads the direct children of an album node.
// Implementations may fail per call; the builder tolerates that.
type FetchFunc func(ctx context.Context, id int64) ([]gallery.Node, error)

// Entry is one indexed node.
type Entry struct {
	ID          int64
	Title       string
	Description string
	Type        gallery.NodeType
	Node        gallery.Node
}

// Result is one search hit.
type Result struct {
	Item                 *Entry
	Score                float64
	MatchedInTitle       bool
	MatchedInDescription bool
}

// BuildStats summarizes the outcome of a Build call.
type BuildStats struct {
	// Indexed is the number of entries stored.
	Indexed int
	// FailedSubtrees is the number of album fetches that errored and
	// were skipped. A non-zero value means the index is partial.
	FailedSubtrees int
}

// Builder flattens a lazily fetched album tree into a flat id lookup so
// free-text search runs over a map instead of re-walking the tree per
// query. Children are fetched sequentially, depth first.
type Builder struct {
	fetch   FetchFunc
	logger  *zap.Logger
	entries map[int64]*Entry
	order   []int64
	built   bool
	stats   BuildStats
}

// NewBuilder creates a Builder around the given child fetcher.
// A nil logger falls back to zap.NewNop().
func NewBuilder(fetch FetchFunc, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		fetch:   fetch,
		logger:  logger,
		entries: make(map[int64]*Entry),
	}
}

// Build walks the tree reachable from rootID and indexes every node.
// It is idempotent: a second call while already built is a no-op and
// performs no fetches, even if the tree was empty. Fetch failures are
// logged and skipped per subtree; a broken branch never aborts the walk.
// The only returned error is ctx.Err() on cancellation.
func (b *Builder) Build(ctx context.Context, rootID int64) error {
	if b.built {
		return nil
	}

	if err := b.walk(ctx, rootID, 0); err != nil {
		return err
	}

	b.built = true
	b.stats.Indexed = len(b.order)
	b.logger.Info("search index built",
		zap.Int64("root_id", rootID),
		zap.Int("entries", b.stats.Indexed),
		zap.Int("failed_subtrees", b.stats.FailedSubtrees),
	)
	return nil
}

// walk indexes the children of id and recurses into expandable albums.
func (b *Builder) walk(ctx context.Context, id int64, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth > maxDepth {
		b.stats.FailedSubtrees++
		b.logger.Error("album nesting exceeds depth limit, skipping subtree",
			zap.Int64("id", id), zap.Int("depth", depth))
		return nil
	}

	children, err := b.fetch(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.stats.FailedSubtrees++
		b.logger.Warn("failed to fetch album children, skipping subtree",
			zap.Int64("id", id), zap.Error(err))
		return nil
	}

	for _, child := range children {
		if _, seen := b.entries[child.ID]; !seen {
			b.entries[child.ID] = &Entry{
				ID:          child.ID,
				Title:       child.Title,
				Description: child.Description,
				Type:        child.Type,
				Node:        child,
			}
			b.order = append(b.order, child.ID)
		}

		if child.IsExpandable() {
			if err := b.walk(ctx, child.ID, depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}

// Search returns up to 100 entries whose title or description contains
// the query, case-insensitively. Title matches score strictly higher
// than description-only matches and therefore sort first; ties keep
// insertion order. An empty or whitespace-only query returns nil.
func (b *Builder) Search(query string) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []Result
	for _, id := range b.order {
		ent := b.entries[id]
		inTitle := strings.Contains(strings.ToLower(ent.Title), q)
		inDesc := strings.Contains(strings.ToLower(ent.Description), q)
		if !inTitle && !inDesc {
			continue
		}

		score := scoreDescription
		if inTitle {
			score = scoreTitle
		}
		results = append(results, Result{
			Item:                 ent,
			Score:                score,
			MatchedInTitle:       inTitle,
			MatchedInDescription: inDesc,
		})
	}

	// Stable sort preserves insertion order within a score tier.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// Item returns the entry for id, or nil if not indexed.
func (b *Builder) Item(id int64) *Entry {
	return b.entries[id]
}

// Count returns the number of indexed entries.
func (b *Builder) Count() int {
	return len(b.order)
}

// Stats returns the outcome of the last Build.
func (b *Builder) Stats() BuildStats {
	return b.stats
}

// Clear drops all entries and resets the built flag so a subsequent
// Build re-fetches the tree.
func (b *Builder) Clear() {
	b.entries = make(map[int64]*Entry)
	b.order = nil
	b.built = false
	b.stats = BuildStats{}
}
