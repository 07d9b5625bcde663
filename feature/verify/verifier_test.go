package verify

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	galleryfs "gallery-manager/feature/gallery"
	"gallery-manager/feature/repair"

	"gallery-manager/core/gallery"
	"gallery-manager/core/storage/mocks"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func writeListing(t *testing.T, root, rel string, nodes []gallery.Node) {
	t.Helper()
	data, err := json.Marshal(nodes)
	require.NoError(t, err)
	writeFile(t, root, filepath.Join(rel, "children.json"), string(data))
}

func testConfig(root string) *Config {
	return &Config{
		Path:        root,
		BaseURL:     "http://gallery.local",
		ThumbPrefix: "t__",
	}
}

func TestRun_DiskScan(t *testing.T) {
	root := t.TempDir()
	writeListing(t, root, "", []gallery.Node{
		{ID: 10, Type: gallery.TypeAlbum, HasChildren: true, Title: "trips", Path: "trips"},
	})
	writeListing(t, root, "trips", []gallery.Node{
		{ID: 11, Type: gallery.TypePhoto, Title: "beach.jpg", Path: "trips/beach.jpg"},
		{ID: 12, Type: gallery.TypePhoto, Title: "lost.jpg", Path: "trips/lost.jpg"},
	})
	// beach.jpg is intact, lost.jpg has neither file nor thumbnail
	writeFile(t, root, "trips/beach.jpg", "jpeg")
	writeFile(t, root, "trips/t__beach.jpg", "jpeg")

	cfg := testConfig(root)
	svc := NewService(galleryfs.NewDirFetcher(root, 7), cfg, nil, "", nil)

	report, err := svc.Run(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Albums)
	assert.Equal(t, 2, report.Photos)
	require.Len(t, report.Missing, 1)
	assert.Equal(t, "trips/lost.jpg", report.Missing[0].NodePath)
	assert.Equal(t, "http://gallery.local/trips/t__lost.jpg", report.Missing[0].URL)
}

func TestRun_MissingThumbnailIsAFinding(t *testing.T) {
	root := t.TempDir()
	writeListing(t, root, "", []gallery.Node{
		{ID: 11, Type: gallery.TypePhoto, Title: "solo.jpg", Path: "solo.jpg"},
	})
	writeFile(t, root, "solo.jpg", "jpeg")

	svc := NewService(galleryfs.NewDirFetcher(root, 7), testConfig(root), nil, "", nil)

	report, err := svc.Run(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, report.Missing, 1)
	assert.Equal(t, "http://gallery.local/t__solo.jpg", report.Missing[0].URL)
}

func TestRun_UnreadableTreeIsFatal(t *testing.T) {
	root := t.TempDir()
	svc := NewService(galleryfs.NewDirFetcher(root, 7), testConfig(root), nil, "", nil)

	_, err := svc.Run(context.Background(), 7)
	assert.ErrorContains(t, err, "failed to load album 7")
}

func TestRun_OrphanScan(t *testing.T) {
	root := t.TempDir()
	writeListing(t, root, "", []gallery.Node{
		{ID: 11, Type: gallery.TypePhoto, Title: "solo.jpg", Path: "solo.jpg"},
	})
	writeFile(t, root, "solo.jpg", "jpeg")
	writeFile(t, root, "t__solo.jpg", "jpeg")

	objects := make(chan minio.ObjectInfo, 3)
	objects <- minio.ObjectInfo{Key: "solo.jpg"}
	objects <- minio.ObjectInfo{Key: "children.json"}
	objects <- minio.ObjectInfo{Key: "stray/leftover.jpg"}
	close(objects)

	client := &mocks.Client{}
	client.On("ListObjects", mock.Anything, "gallery", mock.Anything).
		Return((<-chan minio.ObjectInfo)(objects))

	cfg := testConfig(root)
	cfg.Orphans = true
	svc := NewService(galleryfs.NewDirFetcher(root, 7), cfg, client, "gallery", nil)

	report, err := svc.Run(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"stray/leftover.jpg"}, report.Orphans)
	client.AssertExpectations(t)
}

func TestRun_StorageScanRequiresClient(t *testing.T) {
	cfg := testConfig("")
	cfg.FromStorage = true
	svc := NewService(galleryfs.NewDirFetcher("", 7), cfg, nil, "", nil)

	_, err := svc.Run(context.Background(), 7)
	assert.ErrorContains(t, err, "no storage client")
}

func TestStorageChecker_NoSuchKeyIsMissing(t *testing.T) {
	client := &mocks.Client{}
	client.On("StatObject", mock.Anything, "gallery", "gone.jpg", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})
	client.On("StatObject", mock.Anything, "gallery", "here.jpg", mock.Anything).
		Return(minio.ObjectInfo{Key: "here.jpg"}, nil)

	c := &storageChecker{client: client, bucket: "gallery"}

	ok, err := c.exists(context.Background(), "gone.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.exists(context.Background(), "here.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWriteReport_RoundTripsThroughRepairParser(t *testing.T) {
	report := &Report{
		Albums: 3,
		Photos: 12,
		Missing: []Missing{
			{NodePath: "trips/lost.jpg", URL: "http://gallery.local/trips/t__lost.jpg"},
			{NodePath: "attic/gone.jpg", URL: "http://gallery.local/attic/t__gone.jpg"},
		},
		Orphans: []string{"stray/leftover.jpg"},
	}

	out := filepath.Join(t.TempDir(), "mismatches.md")
	require.NoError(t, WriteReport(out, report))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Gallery mismatch report"))

	mismatches, err := repair.ParseMismatchReport(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, mismatches, 2)
	assert.Equal(t, "lost.jpg", mismatches[0].BaseFilename)
	assert.Equal(t, []string{"trips"}, mismatches[0].DirSegments)
}
