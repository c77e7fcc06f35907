package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps assets in an S3 bucket. Stored paths are object keys.
type S3Store struct {
	client S3API
	bucket string
	prefix string
	logger *zap.Logger
}

// NewS3Store builds a client from the default AWS credential chain.
func NewS3Store(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3StoreWithClient(client, cfg.Bucket, cfg.Prefix, logger), nil
}

// NewS3StoreWithClient wraps an existing client.
func NewS3StoreWithClient(client S3API, bucket, prefix string, logger *zap.Logger) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger.Named("s3"),
	}
}

// Upload puts content under the prefixed key and returns the object key.
func (s *S3Store) Upload(ctx context.Context, key string, content io.Reader) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	objectKey := prefixed(s.prefix, key)

	contentType, content, err := sniffContentType(content)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}

	body, size, cleanup, err := seekable(content)
	if err != nil {
		return "", err
	}
	defer cleanup()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", pkgerrors.Unavailable("failed to upload to S3", err)
	}

	s.logger.Debug("stored asset",
		zap.String("bucket", s.bucket),
		zap.String("key", objectKey),
		zap.String("content_type", contentType),
		zap.Int64("bytes", size))
	return objectKey, nil
}

// Delete removes an object. S3 treats a missing key as success.
func (s *S3Store) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return pkgerrors.Unavailable("failed to delete from S3", err)
	}
	return nil
}

// seekable returns a seekable body with its size. Readers that are not
// already seekable are spooled to a temporary file.
func seekable(r io.Reader) (io.ReadSeeker, int64, func(), error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		size, err := rs.Seek(0, io.SeekEnd)
		if err == nil {
			_, err = rs.Seek(0, io.SeekStart)
		}
		if err == nil {
			return rs, size, func() {}, nil
		}
	}

	file, err := os.CreateTemp("", "catalog-upload-*")
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to create spool file: %w", err)
	}
	cleanup := func() {
		file.Close()
		os.Remove(file.Name())
	}

	size, err := io.Copy(file, r)
	if err == nil {
		_, err = file.Seek(0, io.SeekStart)
	}
	if err != nil {
		cleanup()
		return nil, 0, nil, fmt.Errorf("failed to spool content: %w", err)
	}
	return file, size, cleanup, nil
}
