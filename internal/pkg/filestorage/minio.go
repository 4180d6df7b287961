package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
	"github.com/yigit/coursenotes/internal/pkg/logger"
)

// MinIOConfig holds the settings of an S3-compatible bucket
type MinIOConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	CreateBucket bool
}

// MinIOStorage stores files as objects in an S3-compatible bucket
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

// normaliseEndpoint accepts either "minio:9000" or "http(s)://minio:9000".
func normaliseEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, fmt.Errorf("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}

	return raw, false, nil
}

// NewMinIOStorage connects to the bucket, creating it when allowed
func NewMinIOStorage(ctx context.Context, cfg MinIOConfig) (*MinIOStorage, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("minio configuration incomplete")
	}
	endpoint, secure, err := normaliseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid minio endpoint: %w", err)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if !cfg.CreateBucket {
			return nil, fmt.Errorf("minio bucket does not exist: %s", cfg.Bucket)
		}
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info().Str("bucket", cfg.Bucket).Msg("MinIO bucket created")
	}

	return &MinIOStorage{client: client, bucket: cfg.Bucket}, nil
}

// Save uploads the file as an object under subPath
func (ms *MinIOStorage) Save(ctx context.Context, fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error) {
	if fileHeader == nil {
		return nil, apperrors.NewBadRequestError("no file uploaded")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open uploaded file: %w", apperrors.ErrStorageFailure, err)
	}
	defer file.Close()

	contentType, err := detectContentType(file)
	if err != nil {
		return nil, err
	}

	key := objectPath(subPath, generateName(fileHeader.Filename))
	uploaded, err := ms.client.PutObject(ctx, ms.bucket, key, file, fileHeader.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to upload object")
		return nil, fmt.Errorf("%w: failed to upload object: %w", apperrors.ErrStorageFailure, err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("key", key).Int64("size", uploaded.Size).Msg("Object stored successfully")
	return &FileInfo{
		Path:     key,
		Filename: filepath.Base(fileHeader.Filename),
		FileSize: uploaded.Size,
		MimeType: contentType,
	}, nil
}

// Open streams an object back
func (ms *MinIOStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := ms.client.GetObject(ctx, ms.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get object: %w", apperrors.ErrStorageFailure, err)
	}
	// Force an early error for a missing object.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("%w: failed to stat object: %w", apperrors.ErrStorageFailure, err)
	}
	return obj, nil
}

// Delete removes an object; S3 treats a missing key as success
func (ms *MinIOStorage) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	if err := ms.client.RemoveObject(ctx, ms.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		logger.Error().Err(err).Str("key", path).Msg("Failed to delete object")
		return fmt.Errorf("%w: failed to delete object: %w", apperrors.ErrStorageFailure, err)
	}
	return nil
}
