// Package reports archives rendered weekly reports.
package reports

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pratik-mahalle/threatwatch/internal/config"
)

// Archive stores rendered reports
type Archive interface {
	Put(ctx context.Context, day time.Time, userID int64, body []byte) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archive writes reports to {prefix}/{yyyy-mm-dd}/user-{id}.html
type S3Archive struct {
	client putObjectAPI
	bucket string
	prefix string
}

// NewS3Archive builds an archive from config. Static credentials are used
// when both keys are set.
func NewS3Archive(ctx context.Context, cfg config.ReportsConfig) (*S3Archive, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKeyID != "" && cfg.S3SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Archive(client, cfg.S3Bucket, cfg.S3Prefix), nil
}

func newS3Archive(client putObjectAPI, bucket, prefix string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket, prefix: prefix}
}

// Key is the object key for a user's report on day
func (a *S3Archive) Key(day time.Time, userID int64) string {
	return path.Join(a.prefix, day.UTC().Format("2006-01-02"), fmt.Sprintf("user-%d.html", userID))
}

// Put uploads the report and returns its key
func (a *S3Archive) Put(ctx context.Context, day time.Time, userID int64, body []byte) (string, error) {
	key := a.Key(day, userID)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", key, err)
	}
	return key, nil
}
