package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MediaStorage stores listing media in a MinIO/S3 bucket and hands back
// stable public URLs.
type MediaStorage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewMediaStorage(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool, logger *zap.Logger) (*MediaStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", endpoint, err)
	}

	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("make bucket %s: %w", bucket, err)
		}
	}
	logger.Info("media storage ready", zap.String("endpoint", endpoint), zap.String("bucket", bucket))

	return &MediaStorage{client: client, bucket: bucket, logger: logger}, nil
}

// Upload stores data under a fresh uuid key, keeping the original file
// extension, and returns the object's public URL.
func (s *MediaStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	ext := filepath.Ext(fileName)
	objectKey := fmt.Sprintf("properties/%s%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentTypeFor(ext)})
	if err != nil {
		s.logger.Error("media upload failed", zap.String("object_key", objectKey), zap.Error(err))
		return "", fmt.Errorf("upload %s: %w", objectKey, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Info("media uploaded", zap.String("object_key", objectKey), zap.Int("size", len(data)))
	return url, nil
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}
