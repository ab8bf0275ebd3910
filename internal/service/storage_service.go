package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"aitutor_backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService 统一本地与MinIO两种报告存储后端
type StorageService struct {
	Config *config.StorageConfig
	client *minio.Client
}

func NewStorageService(cfg *config.StorageConfig) (*StorageService, error) {
	s := &StorageService{Config: cfg}

	if cfg.Type == "minio" {
		client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
			Creds: credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		s.client = client

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		exists, err := client.BucketExists(ctx, cfg.MinioBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check minio bucket: %w", err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("failed to create minio bucket: %w", err)
			}
		}
	}

	return s, nil
}

// Save 写入一份报告文件，返回可供客户端访问的URL或路径
func (s *StorageService) Save(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	if s.Config.Type == "minio" && s.client != nil {
		_, err := s.client.PutObject(ctx, s.Config.MinioBucket, objectName,
			bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: contentType})
		if err != nil {
			return "", fmt.Errorf("failed to upload object: %w", err)
		}
		return fmt.Sprintf("%s/%s/%s", s.Config.MinioEndpoint, s.Config.MinioBucket, objectName), nil
	}

	path := filepath.Join(s.Config.LocalPath, objectName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(path), nil
}
