// Package storage issues presigned S3 uploads served back through CloudFront.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	"github.com/fxdesk/remittance_backend/internal/middleware"
	"github.com/google/uuid"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// S3Storage presigns PUT requests against one bucket.
type S3Storage struct {
	presigner *s3.PresignClient
	bucket    string
	cdnBase   string
	expiry    time.Duration
}

var _ gateways.ObjectStorage = (*S3Storage)(nil)

// NewS3StorageFromEnv builds the S3 client from the default AWS credential chain.
func NewS3StorageFromEnv(ctx context.Context, region, bucket, cdnBase string, expiry time.Duration) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3Storage(s3.NewFromConfig(awsCfg), bucket, cdnBase, expiry), nil
}

// NewS3Storage wraps an existing S3 client.
func NewS3Storage(client *s3.Client, bucket, cdnBase string, expiry time.Duration) *S3Storage {
	return &S3Storage{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		cdnBase:   strings.TrimRight(cdnBase, "/"),
		expiry:    expiry,
	}
}

// PresignPut returns a time-limited PUT URL for folder/<uuid>-<fileName> and the CDN URL the object will have.
func (s *S3Storage) PresignPut(ctx context.Context, folder, fileName, contentType string) (*gateways.PresignedUpload, error) {
	if s.bucket == "" {
		return nil, apperrors.NewUpstreamError("object storage bucket is not configured", nil)
	}
	key := ObjectKey(folder, fileName)

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to presign upload", slog.String("key", key), slog.String("error", err.Error()))
		return nil, apperrors.NewUpstreamError("failed to presign upload", err)
	}

	return &gateways.PresignedUpload{
		Key:           key,
		PresignedURL:  req.URL,
		CloudFrontURL: s.cdnBase + "/" + key,
		ExpiresAt:     time.Now().UTC().Add(s.expiry),
	}, nil
}

// ObjectKey builds a collision-free object key under folder.
func ObjectKey(folder, fileName string) string {
	name := unsafeKeyChars.ReplaceAllString(path.Base(fileName), "_")
	folder = strings.Trim(path.Clean("/"+folder), "/")
	key := uuid.NewString() + "-" + name
	if folder == "" {
		return key
	}
	return folder + "/" + key
}
