// Package storage archives generated declarations in S3-compatible object
// storage (MinIO-supported). Archiving is a best-effort audit trail: the
// service never fails a generation because the archive write failed.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions define optional parameters for archiving objects.
// Size should be the exact number of bytes if known; ContentType and
// Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an archived object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Archive is the write-side interface to the document archive.
// Implementations must rely on streaming I/O only, never local disk.
type Archive interface {
	// Put stores an object under the given key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
}
