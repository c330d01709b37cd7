package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "deltahub/internal/config"
	"deltahub/pkg/utils"
)

// ==================== StorageService 图片存储服务 ====================

// StorageProvider 存储后端
type StorageProvider interface {
	Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}

// StorageService 图片存储服务，文件名统一用 uuid 派生，避免覆盖与路径注入
type StorageService struct {
	provider StorageProvider
}

// NewStorageServiceOrLocal 按配置初始化存储，失败时回退到本地磁盘
// 调用方拿到的实例永不为 nil，上传路径不会因初始化失败而空指针
func NewStorageServiceOrLocal(cfg *appconfig.Config) *StorageService {
	svc, err := NewStorageService(cfg)
	if err != nil {
		log.Printf("警告: %s 存储初始化失败，回退到本地存储: %v", cfg.StorageProvider, err)
		return &StorageService{provider: &localStorage{basePath: cfg.StoragePath}}
	}
	return svc
}

// NewStorageService 按配置选择存储后端
func NewStorageService(cfg *appconfig.Config) (*StorageService, error) {
	switch cfg.StorageProvider {
	case "s3":
		provider, err := newS3Storage(cfg)
		if err != nil {
			return nil, err
		}
		return &StorageService{provider: provider}, nil
	default:
		return &StorageService{provider: &localStorage{basePath: cfg.StoragePath}}, nil
	}
}

// SaveImage 保存图片并返回可访问 URL
func (s *StorageService) SaveImage(ctx context.Context, data []byte, ext string) (string, error) {
	ext = strings.ToLower(ext)
	if ext == "" {
		ext = ".jpg"
	}
	filename := uuid.New().String() + ext
	return s.provider.Upload(ctx, filename, data, utils.ContentTypeByExt(ext))
}

// ==================== 本地磁盘后端 ====================

type localStorage struct {
	basePath string
}

func (l *localStorage) Upload(_ context.Context, filename string, data []byte, _ string) (string, error) {
	if err := os.MkdirAll(l.basePath, 0o755); err != nil {
		return "", fmt.Errorf("创建上传目录失败: %w", err)
	}
	path := filepath.Join(l.basePath, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("写入图片文件失败: %w", err)
	}
	return "/images/" + filename, nil
}

// ==================== S3 后端 ====================

type s3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	cdnDomain string
}

func newS3Storage(cfg *appconfig.Config) (*s3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("加载 AWS 配置失败: %w", err)
	}
	return &s3Storage{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.AWSBucket,
		region:    cfg.AWSRegion,
		cdnDomain: cfg.CDNDomain,
	}, nil
}

func (s *s3Storage) Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	key := "images/" + filename
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("上传 S3 失败: %w", err)
	}

	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
