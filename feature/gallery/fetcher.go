package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/minio/minio-go/v7"

	"gallery-manager/core/gallery"
	"gallery-manager/core/storage"
)

// childrenFile is the per-album child listing written by the exporter.
const childrenFile = "children.json"

// Fetcher loads the direct children of an album by id.
type Fetcher interface {
	FetchChildren(ctx context.Context, id int64) ([]gallery.Node, error)
}

// pathBook maps album ids to their tree-relative paths. The exported
// tree is laid out by path, not id, so each fetched child list teaches
// the book where the next level's albums live. Ids are only resolvable
// after their parent has been fetched, which holds for any top-down
// traversal.
type pathBook struct {
	mu    sync.Mutex
	paths map[int64]string
}

func newPathBook(rootID int64) *pathBook {
	return &pathBook{paths: map[int64]string{rootID: ""}}
}

func (b *pathBook) lookup(id int64) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.paths[id]
	return p, ok
}

func (b *pathBook) learn(nodes []gallery.Node) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range nodes {
		if nodes[i].IsExpandable() {
			b.paths[nodes[i].ID] = nodes[i].Path
		}
	}
}

// DirFetcher loads child listings from an exported tree on local disk.
type DirFetcher struct {
	root string
	book *pathBook
}

// NewDirFetcher creates a fetcher over the exported tree at root,
// addressing the top-level album as rootAlbumID.
func NewDirFetcher(root string, rootAlbumID int64) *DirFetcher {
	return &DirFetcher{root: root, book: newPathBook(rootAlbumID)}
}

// FetchChildren reads <root>/<album path>/children.json and parses it.
func (f *DirFetcher) FetchChildren(ctx context.Context, id int64) ([]gallery.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, ok := f.book.lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown album id %d: parent not fetched yet", id)
	}

	data, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(rel), childrenFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read children of album %d: %w", id, err)
	}
	return f.parse(id, data)
}

func (f *DirFetcher) parse(id int64, data []byte) ([]gallery.Node, error) {
	var nodes []gallery.Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to parse children of album %d: %w", id, err)
	}
	f.book.learn(nodes)
	return nodes, nil
}

// StorageFetcher loads child listings from an exported tree in an
// object storage bucket.
type StorageFetcher struct {
	client storage.Client
	bucket string
	book   *pathBook
}

// NewStorageFetcher creates a fetcher over the exported tree in bucket.
func NewStorageFetcher(client storage.Client, bucket string, rootAlbumID int64) *StorageFetcher {
	return &StorageFetcher{client: client, bucket: bucket, book: newPathBook(rootAlbumID)}
}

// FetchChildren downloads <album path>/children.json and parses it.
func (f *StorageFetcher) FetchChildren(ctx context.Context, id int64) ([]gallery.Node, error) {
	rel, ok := f.book.lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown album id %d: parent not fetched yet", id)
	}

	object := path.Join(rel, childrenFile)
	reader, err := f.client.GetObject(ctx, f.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", object, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", object, err)
	}

	var nodes []gallery.Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to parse children of album %d: %w", id, err)
	}
	f.book.learn(nodes)
	return nodes, nil
}
