package services

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"sort"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticPrefix(t *testing.T) {
	tests := map[string]string{
		"content/post/*/index.md":  "content/post/",
		"content/post/**/index.md": "content/post/",
		"*/index.md":               "",
		"content/po?t/a/index.md":  "content/",
		"content/post/a/index.md":  "content/post/a/index.md",
	}
	for pattern, want := range tests {
		assert.Equal(t, want, staticPrefix(pattern), pattern)
	}
}

func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, "", normalizePrefix(""))
	assert.Equal(t, "", normalizePrefix(" / "))
	assert.Equal(t, "site/", normalizePrefix("site"))
	assert.Equal(t, "site/blog/", normalizePrefix("/site/blog/"))
}

func TestNewBucketSourceValidation(t *testing.T) {
	_, err := NewBucketSource(BucketConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"})
	assert.Error(t, err)

	_, err = NewBucketSource(BucketConfig{Endpoint: "localhost:9000", Bucket: "b"})
	assert.Error(t, err)

	_, err = NewBucketSource(BucketConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"})
	assert.Error(t, err)

	src, err := NewBucketSource(BucketConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "a",
		SecretKey: "s",
		Bucket:    "content",
		Prefix:    "/site/",
	})
	require.NoError(t, err)
	assert.Equal(t, "content", src.bucket)
	assert.Equal(t, "site/", src.prefix)
}

type fakeStore struct {
	objects  map[string]string
	listErr  error
	getErr   error
	prefixes []string
}

func (f *fakeStore) ListObjects(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	f.prefixes = append(f.prefixes, opts.Prefix)

	keys := make([]string, 0, len(f.objects))
	for key := range f.objects {
		if strings.HasPrefix(key, opts.Prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	ch := make(chan minio.ObjectInfo, len(keys)+1)
	for _, key := range keys {
		ch <- minio.ObjectInfo{Key: key}
	}
	if f.listErr != nil {
		ch <- minio.ObjectInfo{Err: f.listErr}
	}
	close(ch)
	return ch
}

func (f *fakeStore) GetObject(_ context.Context, _, object string, _ minio.GetObjectOptions) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	body, ok := f.objects[object]
	if !ok {
		return io.NopCloser(errReader{minio.ErrorResponse{Code: "NoSuchKey", Key: object}}), nil
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func bucketFixture() *fakeStore {
	return &fakeStore{objects: map[string]string{
		"site/content/post/":            "",
		"site/content/post/a/index.md":  "---\ntitle: A\ndate: 2024-01-01\n---\n",
		"site/content/post/b/index.md":  "---\ntitle: B\ndate: 2024-02-01\n---\n",
		"site/content/post/b/notes.txt": "scratch",
		"site/content/page/c/index.md":  "---\ntitle: C\n---\n",
		"other/content/post/d/index.md": "---\ntitle: D\n---\n",
	}}
}

func TestBucketSourceGlob(t *testing.T) {
	store := bucketFixture()
	src := newBucketSource(store, "content", "/site/")

	names, err := src.Glob(context.Background(), "content/post/*/index.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"content/post/a/index.md", "content/post/b/index.md"}, names)
	assert.Equal(t, []string{"site/content/post/"}, store.prefixes)
}

func TestBucketSourceGlobWithoutPrefix(t *testing.T) {
	store := bucketFixture()
	src := newBucketSource(store, "content", "")

	names, err := src.Glob(context.Background(), "**/index.md")
	require.NoError(t, err)
	assert.Len(t, names, 4)
	assert.Equal(t, []string{""}, store.prefixes)
}

func TestBucketSourceGlobBadPattern(t *testing.T) {
	store := bucketFixture()
	src := newBucketSource(store, "content", "site")

	_, err := src.Glob(context.Background(), "content/[post")
	require.ErrorIs(t, err, ErrBadPattern)
	assert.Empty(t, store.prefixes)
}

func TestBucketSourceGlobListError(t *testing.T) {
	listErr := errors.New("connection reset")
	store := bucketFixture()
	store.listErr = listErr
	src := newBucketSource(store, "content", "site")

	_, err := src.Glob(context.Background(), "content/post/*/index.md")
	require.ErrorIs(t, err, listErr)
}

func TestBucketSourceReadFile(t *testing.T) {
	src := newBucketSource(bucketFixture(), "content", "site")

	data, err := src.ReadFile(context.Background(), "/content/post/b/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "scratch", string(data))
}

func TestBucketSourceReadFileMissing(t *testing.T) {
	src := newBucketSource(bucketFixture(), "content", "site")

	_, err := src.ReadFile(context.Background(), "content/post/zzz/index.md")
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestBucketSourceReadFileGetErrors(t *testing.T) {
	store := bucketFixture()
	store.getErr = minio.ErrorResponse{Code: "NoSuchBucket"}
	src := newBucketSource(store, "content", "site")

	_, err := src.ReadFile(context.Background(), "content/post/a/index.md")
	assert.True(t, IsNotExist(err))

	store.getErr = minio.ErrorResponse{Code: "AccessDenied"}
	_, err = src.ReadFile(context.Background(), "content/post/a/index.md")
	require.Error(t, err)
	assert.False(t, IsNotExist(err))
}

func TestListerOverBucketSource(t *testing.T) {
	src := newBucketSource(bucketFixture(), "content", "site")
	l := &Lister{Source: src, Collection: postCollection}

	posts, err := l.Posts(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, links(posts))

	_, err = (&CollectionResolver{Source: src, Collection: postCollection}).Resolve(context.Background(), "missing")
	require.ErrorIs(t, err, ErrUnitNotFound)
}
