package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestUpload(t *testing.T) {
	fp := &fakePutter{}
	store := newS3Store(fp, S3Config{Bucket: "logos", Region: "af-south-1"})

	url, err := store.Upload(context.Background(), "tenants/t1/logo.webp", "image/webp", []byte("abc"))
	require.NoError(t, err)

	assert.Equal(t, "https://logos.s3.af-south-1.amazonaws.com/tenants/t1/logo.webp", url)
	assert.Equal(t, "logos", aws.ToString(fp.in.Bucket))
	assert.Equal(t, "image/webp", aws.ToString(fp.in.ContentType))
	assert.Equal(t, []byte("abc"), fp.body)
}

func TestUpload_BaseURLs(t *testing.T) {
	custom := newS3Store(&fakePutter{}, S3Config{Bucket: "b", Endpoint: "http://minio:9000/"})
	url, err := custom.Upload(context.Background(), "k", "image/webp", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/b/k", url)

	cdn := newS3Store(&fakePutter{}, S3Config{Bucket: "b", PublicBaseURL: "https://cdn.example.com/"})
	url, err = cdn.Upload(context.Background(), "k", "image/webp", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/k", url)
}

func TestUpload_Error(t *testing.T) {
	store := newS3Store(&fakePutter{err: errors.New("denied")}, S3Config{Bucket: "b", Region: "r"})
	_, err := store.Upload(context.Background(), "k", "image/webp", nil)
	assert.ErrorContains(t, err, "denied")
}
