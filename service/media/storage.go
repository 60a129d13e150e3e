package media

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"conputodo.GO/config"
)

// StorageProvider stores binary objects and hands back public URLs.
// Upload keys follow products/{productId}/{filename}.
type StorageProvider interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// StorageConfig selects and configures a provider.
type StorageConfig struct {
	Provider  string // "s3" or "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
	BaseDir   string // local provider root
}

// StorageConfigFromEnv reads the STORAGE_* environment variables.
// Defaults to the local provider so development needs no cloud account.
func StorageConfigFromEnv() StorageConfig {
	return StorageConfig{
		Provider:  envOr("STORAGE_PROVIDER", "local"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Region:    os.Getenv("S3_REGION"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		BaseDir:   envOr("MEDIA_DIR", "media"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// NewStorageProvider builds the configured provider.
func NewStorageProvider(cfg StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return newS3Storage(cfg)
	case "local":
		return &localStorage{baseDir: cfg.BaseDir}, nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// ProductKey builds the canonical storage key for a product image.
func ProductKey(productID, filename string) string {
	return "products/" + productID + "/" + filepath.Base(filename)
}

// --- S3 ---

type s3Storage struct {
	client *s3.Client
	bucket string
	region string
}

func newS3Storage(cfg StorageConfig) (*s3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &s3Storage{client: client, bucket: cfg.Bucket, region: cfg.Region}, nil
}

func (s *s3Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: %w", key, err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func (s *s3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// --- Local disk ---

type localStorage struct {
	baseDir string
}

func (l *localStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path := filepath.Join(l.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	base := strings.TrimRight(config.AppConfig.MediaURL, "/")
	return base + "/" + key, nil
}

func (l *localStorage) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(l.baseDir, filepath.FromSlash(key)))
}
