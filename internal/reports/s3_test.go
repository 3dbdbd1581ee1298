package reports

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	bucket, key, contentType string
	body                     []byte
	err                      error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(params.Bucket)
	f.key = aws.ToString(params.Key)
	f.contentType = aws.ToString(params.ContentType)
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Archive_Put(t *testing.T) {
	fake := &fakeS3{}
	archive := newS3Archive(fake, "reports-bucket", "weekly-reports")
	day := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

	key, err := archive.Put(context.Background(), day, 12, []byte("<h1>report</h1>"))
	require.NoError(t, err)

	assert.Equal(t, "weekly-reports/2024-06-03/user-12.html", key)
	assert.Equal(t, "reports-bucket", fake.bucket)
	assert.Equal(t, key, fake.key)
	assert.Equal(t, "text/html; charset=utf-8", fake.contentType)
	assert.Equal(t, "<h1>report</h1>", string(fake.body))
}

func TestS3Archive_PutError(t *testing.T) {
	archive := newS3Archive(&fakeS3{err: errors.New("access denied")}, "b", "")

	_, err := archive.Put(context.Background(), time.Now(), 1, nil)
	assert.Error(t, err)
}

func TestS3Archive_KeyWithoutPrefix(t *testing.T) {
	archive := newS3Archive(&fakeS3{}, "b", "")
	assert.Equal(t, "2024-01-01/user-3.html", archive.Key(time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC), 3))
}
