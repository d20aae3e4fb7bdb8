package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type BucketConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// objectStore is the part of the minio client a BucketSource relies on.
type objectStore interface {
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (io.ReadCloser, error)
}

type minioStore struct {
	*minio.Client
}

func (m minioStore) GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := m.Client.GetObject(ctx, bucket, object, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// BucketSource serves content stored as objects in an S3 compatible bucket.
// Object keys below Prefix play the role of file paths.
type BucketSource struct {
	client objectStore
	bucket string
	prefix string
}

func NewBucketSource(cfg BucketConfig) (*BucketSource, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return newBucketSource(minioStore{client}, bucket, cfg.Prefix), nil
}

func newBucketSource(store objectStore, bucket, prefix string) *BucketSource {
	return &BucketSource{
		client: store,
		bucket: bucket,
		prefix: normalizePrefix(prefix),
	}
}

func (s *BucketSource) Glob(ctx context.Context, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}

	listPrefix := s.prefix + staticPrefix(pattern)
	var matches []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    listPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s/%s: %w", s.bucket, listPrefix, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		if doublestar.MatchUnvalidated(pattern, name) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

func (s *BucketSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	key := s.prefix + strings.TrimLeft(name, "/")
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isMissingObject(err) {
			return nil, fmt.Errorf("get %s/%s: %w", s.bucket, key, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("get %s/%s: %w", s.bucket, key, err)
	}
	defer obj.Close()

	// minio defers the request until the first read, so a missing key
	// usually surfaces here.
	data, err := io.ReadAll(obj)
	if err != nil {
		if isMissingObject(err) {
			return nil, fmt.Errorf("get %s/%s: %w", s.bucket, key, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s/%s: %w", s.bucket, key, err)
	}
	return data, nil
}

func isMissingObject(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchBucket"
}

// staticPrefix is the leading part of pattern that contains no glob
// metacharacters, cut back to a whole directory.
func staticPrefix(pattern string) string {
	i := strings.IndexAny(pattern, "*?[{\\")
	if i < 0 {
		return pattern
	}
	head := pattern[:i]
	if j := strings.LastIndex(head, "/"); j >= 0 {
		return head[:j+1]
	}
	return ""
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

var _ Source = (*BucketSource)(nil)
var _ Source = (*FSSource)(nil)

// IsNotExist reports whether err means the requested content is absent in
// either kind of Source.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
