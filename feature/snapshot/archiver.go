package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"boardgame-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver writes raw upstream payloads of one run to object storage
// under <prefix>/<runID>/<name>.xml.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	runID  string
	logger *zap.Logger
}

// NewArchiver creates an archiver for a run.
func NewArchiver(client storage.Client, cfg storage.Config, runID string, logger *zap.Logger) *Archiver {
	return &Archiver{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		runID:  runID,
		logger: logger,
	}
}

// Prepare makes sure the snapshot bucket exists.
func (a *Archiver) Prepare(ctx context.Context, region string) error {
	return storage.EnsureBucket(ctx, a.client, a.bucket, region)
}

// Save uploads body as the named payload.
func (a *Archiver) Save(ctx context.Context, name string, body []byte) error {
	key := a.ObjectKey(name)

	_, err := a.client.PutObject(
		ctx,
		a.bucket,
		key,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/xml"},
	)
	if err != nil {
		return fmt.Errorf("failed to store snapshot %s: %w", key, err)
	}

	a.logger.Debug("Stored snapshot", zap.String("key", key), zap.Int("bytes", len(body)))
	return nil
}

// ObjectKey returns the storage key of a named payload.
func (a *Archiver) ObjectKey(name string) string {
	return path.Join(a.prefix, a.runID, name+".xml")
}
