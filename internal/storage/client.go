package storage

import (
	"context"
	"time"
)

// Client defines the interface for S3-compatible storage operations. The
// uploader only needs to push local files and stat remote keys; everything
// else the SDK offers stays out of the contract.
type Client interface {
	// UploadFile uploads one local file to the given key.
	UploadFile(ctx context.Context, bucket, key, localPath string, opts UploadOptions) error
	// StatObject returns metadata for a remote key. exists is false when the
	// key is absent; err is reserved for transport failures.
	StatObject(ctx context.Context, bucket, key string) (info ObjectInfo, exists bool, err error)
}

// ObjectInfo contains remote object metadata.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	LastModified time.Time
	ContentType  string
}

// UploadOptions carries per-upload transfer headers. Empty fields are left
// unset on the request.
type UploadOptions struct {
	ContentType  string
	CacheControl string
	StorageClass string
}

// Config contains client configuration.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Secure    bool
}
