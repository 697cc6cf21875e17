package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/manav1309/manavinverse-create-verse/internal/observability"
)

const (
	maxCoverImageSize = 5 * 1024 * 1024 // 5 MB
	presignedURLTTL   = 15 * time.Minute
	coverPathPrefix   = "covers"
)

var (
	ErrFileTooBig       = errors.New("file size exceeds 5MB limit")
	ErrInvalidFileType  = errors.New("invalid file type, only JPEG and PNG images are allowed")
	ErrInvalidMediaKind = errors.New("media kind must be blog, article or poem")
	ErrUploadFailed     = errors.New("failed to upload file")

	allowedImageTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
	}
	mediaKinds = map[string]struct{}{
		"blog":    {},
		"article": {},
		"poem":    {},
	}
)

// MediaService stores cover images for posts and poems.
type MediaService interface {
	UploadCoverImage(ctx context.Context, kind string, file io.Reader, size int64, contentType string) (string, error)
	CoverImageURL(ctx context.Context, objectKey string) (string, error)
	DeleteCoverImage(ctx context.Context, objectKey string) error
}

// MinIOMediaService implements MediaService on S3-compatible storage. The
// bucket is created lazily so an unreachable MinIO does not block startup.
type MinIOMediaService struct {
	client     *minio.Client
	bucketName string
}

func NewMinIOMediaService(endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOMediaService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinIOMediaService{client: client, bucketName: bucketName}, nil
}

func (s *MinIOMediaService) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

func (s *MinIOMediaService) UploadCoverImage(ctx context.Context, kind string, file io.Reader, size int64, contentType string) (string, error) {
	if _, ok := mediaKinds[kind]; !ok {
		observability.RecordMediaUploadEvent(ctx, "invalid_kind")
		return "", ErrInvalidMediaKind
	}
	if size > maxCoverImageSize {
		observability.RecordMediaUploadEvent(ctx, "too_big")
		return "", ErrFileTooBig
	}
	normalized := strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := allowedImageTypes[normalized]
	if !ok {
		observability.RecordMediaUploadEvent(ctx, "invalid_type")
		return "", ErrInvalidFileType
	}

	if err := s.ensureBucket(ctx); err != nil {
		observability.RecordMediaUploadEvent(ctx, "error")
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	objectKey := fmt.Sprintf("%s/%s/%s%s", coverPathPrefix, kind, uuid.New().String(), ext)
	_, err := s.client.PutObject(ctx, s.bucketName, objectKey, file, size, minio.PutObjectOptions{
		ContentType: normalized,
	})
	if err != nil {
		observability.RecordMediaUploadEvent(ctx, "error")
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	observability.RecordMediaUploadEvent(ctx, "success")
	return objectKey, nil
}

func (s *MinIOMediaService) CoverImageURL(ctx context.Context, objectKey string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucketName, objectKey, presignedURLTTL, nil)
	if err != nil {
		return "", fmt.Errorf("presign cover url: %w", err)
	}
	return u.String(), nil
}

func (s *MinIOMediaService) DeleteCoverImage(ctx context.Context, objectKey string) error {
	if !strings.HasPrefix(objectKey, coverPathPrefix+"/") || strings.Contains(objectKey, "..") {
		return ErrInvalidMediaKind
	}
	if err := s.client.RemoveObject(ctx, s.bucketName, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete cover image: %w", err)
	}
	return nil
}
