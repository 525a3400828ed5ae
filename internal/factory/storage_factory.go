package factory

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/mikey/llm-fraud-checker/internal/adapters/storage"
	"github.com/mikey/llm-fraud-checker/internal/config"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"go.uber.org/zap"
)

// StorageFactory creates the store for accepted uploads
type StorageFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config, logger *zap.Logger) *StorageFactory {
	return &StorageFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateImageStore creates the image store selected by storage.type
func (f *StorageFactory) CreateImageStore() (core.ImageStore, error) {
	storageCfg := f.cfg.GetStorage()

	switch storageCfg.Type {
	case "local":
		return storage.NewLocalStore(storageCfg.UploadsDir, f.logger)
	case "azure":
		return storage.NewAzureStore(storageCfg.AzureAccountName, storageCfg.AzureAccountKey, storageCfg.AzureContainer, f.logger)
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(storageCfg.S3Region),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		return storage.NewS3Store(awsCfg, storage.S3Options{
			Region:    storageCfg.S3Region,
			Bucket:    storageCfg.S3Bucket,
			Prefix:    storageCfg.S3Prefix,
			Endpoint:  storageCfg.S3Endpoint,
			AccessKey: storageCfg.S3AccessKey,
			SecretKey: storageCfg.S3SecretKey,
		}, f.logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageCfg.Type)
	}
}
