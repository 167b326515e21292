package repository

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/amankumarsingh77/media-studio/internal/config"
	"github.com/amankumarsingh77/media-studio/internal/media"
	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/amankumarsingh77/media-studio/pkg/db/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listBucketXML = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>configured-bucket</Name>
  <Prefix>media_studio_uploads/</Prefix>
  <KeyCount>2</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <IsTruncated>false</IsTruncated>
  <Contents>
    <Key>media_studio_uploads/cat.png</Key>
    <LastModified>2025-01-01T10:00:00.000Z</LastModified>
    <Size>10</Size>
  </Contents>
  <Contents>
    <Key>media_studio_uploads/video_outputs/j1/out.mp4</Key>
    <LastModified>2025-01-02T10:00:00.000Z</LastModified>
    <Size>2048</Size>
  </Contents>
</ListBucketResult>`

const noSuchKeyXML = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.URL.Path == "/configured-bucket" && r.URL.Query().Get("list-type") == "2" {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(listBucketXML))
		return
	}
	key := r.URL.Path[len("/configured-bucket/"):]
	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		b.objects[key] = data
		b.types[key] = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	case http.MethodHead, http.MethodGet:
		data, ok := b.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			if r.Method == http.MethodGet {
				_, _ = w.Write([]byte(noSuchKeyXML))
			}
			return
		}
		w.Header().Set("Content-Type", b.types[key])
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(data)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestRepo(t *testing.T) (media.AWSRepository, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	client, err := aws.NewStorageClient(&config.Config{Storage: config.StorageConfig{
		Endpoint:  srv.URL,
		Region:    "auto",
		AccessKey: "GOOGTEST",
		SecretKey: "secret",
		Bucket:    "configured-bucket",
	}})
	require.NoError(t, err)
	return NewAwsRepository(client), bucket
}

func TestAwsRepository_PutGetExists(t *testing.T) {
	t.Parallel()
	repo, bucket := newTestRepo(t)
	ctx := context.Background()
	key := "media_studio_uploads/temp_inputs/cat.png"

	exists, err := repo.ObjectExists(ctx, "configured-bucket", key)
	require.NoError(t, err)
	assert.False(t, exists)

	data := []byte("\x89PNG\r\n\x1a\n")
	require.NoError(t, repo.PutObject(ctx, &models.UploadInput{
		File:        bytes.NewReader(data),
		Key:         key,
		BucketName:  "configured-bucket",
		ContentType: "image/png",
		Size:        int64(len(data)),
	}))
	assert.Equal(t, data, bucket.objects[key])
	assert.Equal(t, "image/png", bucket.types[key])

	exists, err = repo.ObjectExists(ctx, "configured-bucket", key)
	require.NoError(t, err)
	assert.True(t, exists)

	obj, err := repo.GetObject(ctx, "configured-bucket", key)
	require.NoError(t, err)
	defer obj.Body.Close()
	got, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, int64(len(data)), obj.ContentLength)
}

func TestAwsRepository_GetMissing(t *testing.T) {
	t.Parallel()
	repo, _ := newTestRepo(t)

	_, err := repo.GetObject(context.Background(), "configured-bucket", "media_studio_uploads/missing.mp4")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestAwsRepository_ListObjects(t *testing.T) {
	t.Parallel()
	repo, _ := newTestRepo(t)

	objects, err := repo.ListObjects(context.Background(), "configured-bucket", "media_studio_uploads/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "media_studio_uploads/cat.png", objects[0].Key)
	assert.Equal(t, int64(10), objects[0].Size)
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), objects[0].LastModified.UTC())
	assert.Equal(t, "media_studio_uploads/video_outputs/j1/out.mp4", objects[1].Key)
}
