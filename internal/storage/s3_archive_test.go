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

	"github.com/nurpe/fleet-reports/internal/config"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestStoreUploadsContent(t *testing.T) {
	client := &fakeS3{}
	archive := &S3Archive{client: client, bucket: "exports"}

	location, err := archive.Store(context.Background(), "exports/2024/03/load-report.csv", "text/csv", []byte("a,b"))

	require.NoError(t, err)
	assert.Equal(t, "s3://exports/exports/2024/03/load-report.csv", location)
	assert.Equal(t, "exports", aws.ToString(client.input.Bucket))
	assert.Equal(t, "text/csv", aws.ToString(client.input.ContentType))
	assert.Equal(t, []byte("a,b"), client.body)
}

func TestStoreErrors(t *testing.T) {
	archive := &S3Archive{client: &fakeS3{err: errors.New("denied")}, bucket: "exports"}

	_, err := archive.Store(context.Background(), "", "text/csv", nil)
	assert.Error(t, err)

	_, err = archive.Store(context.Background(), "k", "text/csv", nil)
	assert.ErrorContains(t, err, "denied")
}

func TestNewS3ArchiveRequiresBucket(t *testing.T) {
	_, err := NewS3Archive(context.Background(), config.ExportConfig{})
	assert.Error(t, err)
}

func TestNewS3ArchiveWithStaticCredentials(t *testing.T) {
	archive, err := NewS3Archive(context.Background(), config.ExportConfig{
		S3Bucket:    "exports",
		S3Endpoint:  "localhost:9000",
		S3Region:    "us-east-1",
		S3AccessKey: "key",
		S3SecretKey: "secret",
		S3PathStyle: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "exports", archive.bucket)
}
