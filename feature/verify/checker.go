package verify

import (
	"context"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"

	"gallery-manager/core/storage"
)

// checker answers whether a tree-relative file exists in the exported
// output. Absence is an answer, not an error; errors are reserved for
// the backend being unreachable.
type checker interface {
	exists(ctx context.Context, rel string) (bool, error)
}

// diskChecker stats files below the export root.
type diskChecker struct {
	root string
}

func (c *diskChecker) exists(_ context.Context, rel string) (bool, error) {
	_, err := os.Stat(filepath.Join(c.root, filepath.FromSlash(rel)))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// storageChecker stats objects in the export bucket.
type storageChecker struct {
	client storage.Client
	bucket string
}

func (c *storageChecker) exists(ctx context.Context, rel string) (bool, error) {
	_, err := c.client.StatObject(ctx, c.bucket, rel, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
		return false, nil
	}
	return false, err
}
