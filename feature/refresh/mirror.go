package refresh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"planeage/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const (
	mirrorPrefix   = "datasets/"
	manifestObject = "manifest.json"
)

// Manifest identifies the current mirrored dataset generation. A reader-side
// backend resolves "current" through it instead of a local path.
type Manifest struct {
	UpdatedAt    time.Time `json:"updated_at"`
	MasterObject string    `json:"master_object"`
	RefObject    string    `json:"ref_object"`
}

// Mirror pushes refreshed dataset files to an object store under timestamped
// names and maintains the manifest pointing at the newest generation.
type Mirror struct {
	client storage.Client
	bucket string
	keep   int
	logger *zap.Logger
}

// NewMirror creates a dataset mirror retaining the newest keep generations.
func NewMirror(client storage.Client, bucket string, keep int, logger *zap.Logger) *Mirror {
	if keep < 1 {
		keep = 1
	}
	return &Mirror{client: client, bucket: bucket, keep: keep, logger: logger}
}

// Push uploads both dataset files under a fresh timestamped prefix, writes
// the manifest, and prunes generations beyond the retention count.
func (m *Mirror) Push(ctx context.Context, masterPath, refPath string) error {
	if err := m.ensureBucket(ctx); err != nil {
		return err
	}

	stamp := time.Now().UTC().Format("20060102T150405Z")
	manifest := Manifest{
		UpdatedAt:    time.Now().UTC(),
		MasterObject: mirrorPrefix + stamp + "/" + path.Base(masterPath),
		RefObject:    mirrorPrefix + stamp + "/" + path.Base(refPath),
	}

	if err := m.uploadFile(ctx, masterPath, manifest.MasterObject); err != nil {
		return err
	}
	if err := m.uploadFile(ctx, refPath, manifest.RefObject); err != nil {
		return err
	}
	if err := m.writeManifest(ctx, manifest); err != nil {
		return err
	}
	m.logger.Info("Dataset mirrored", zap.String("generation", stamp))

	m.prune(ctx, stamp)
	return nil
}

func (m *Mirror) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check mirror bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create mirror bucket: %w", err)
	}
	return nil
}

func (m *Mirror) uploadFile(ctx context.Context, filePath, object string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open %s for mirroring: %w", path.Base(filePath), err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	_, err = m.client.PutObject(ctx, m.bucket, object, f, fi.Size(), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", object, err)
	}
	return nil
}

func (m *Mirror) writeManifest(ctx context.Context, manifest Manifest) error {
	body, err := json.Marshal(manifest)
	if err != nil {
		return err
	}
	_, err = m.client.PutObject(ctx, m.bucket, manifestObject,
		bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
			ContentType: "application/json",
		})
	if err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// prune removes mirrored generations beyond the retention count. The current
// generation is always kept; pruning errors are logged and ignored.
func (m *Mirror) prune(ctx context.Context, current string) {
	objects := map[string][]string{}
	for info := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    mirrorPrefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			m.logger.Warn("Mirror listing failed", zap.Error(info.Err))
			return
		}
		rest := strings.TrimPrefix(info.Key, mirrorPrefix)
		stamp, _, ok := strings.Cut(rest, "/")
		if !ok {
			continue
		}
		objects[stamp] = append(objects[stamp], info.Key)
	}

	stamps := make([]string, 0, len(objects))
	for stamp := range objects {
		stamps = append(stamps, stamp)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(stamps)))

	for i, stamp := range stamps {
		if i < m.keep || stamp == current {
			continue
		}
		for _, key := range objects[stamp] {
			if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
				m.logger.Warn("Failed to prune mirrored object",
					zap.String("object", key), zap.Error(err))
			}
		}
	}
}
