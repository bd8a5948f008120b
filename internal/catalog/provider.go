package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Provider источник каталога занятий
type Provider interface {
	Load(ctx context.Context) ([]model.Slot, error)
}

// ProviderFunc позволяет использовать обычную функцию как Provider
type ProviderFunc func(ctx context.Context) ([]model.Slot, error)

func (f ProviderFunc) Load(ctx context.Context) ([]model.Slot, error) {
	return f(ctx)
}

// FileProvider читает каталог из локального файла
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Load(ctx context.Context) ([]model.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	return Decode(p.path, f)
}

// MinIOConfig параметры подключения к объектному хранилищу
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Object    string
}

// MinIOProvider скачивает файл каталога из бакета
type MinIOProvider struct {
	client *minio.Client
	bucket string
	object string
}

func NewMinIOProvider(cfg MinIOConfig) (*MinIOProvider, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOProvider{
		client: client,
		bucket: cfg.Bucket,
		object: cfg.Object,
	}, nil
}

func (p *MinIOProvider) Load(ctx context.Context) ([]model.Slot, error) {
	obj, err := p.client.GetObject(ctx, p.bucket, p.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", p.bucket, p.object, err)
	}
	defer obj.Close()

	slots, err := Decode(p.object, obj)
	if err != nil {
		return nil, fmt.Errorf("object %s/%s: %w", p.bucket, p.object, err)
	}
	return slots, nil
}
