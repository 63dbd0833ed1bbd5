package storage

import "context"

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectArchive captures the minimal S3-compatible operations the upload
// pipeline needs: raw spreadsheet uploads are archived before they are
// parsed, so a bad ingest can always be replayed.
type ObjectArchive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Download(ctx context.Context, key string) ([]byte, error)
}
