package storage

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"go.uber.org/zap"
)

// AzureStore uploads images to an Azure Blob Storage container
type AzureStore struct {
	client    *azblob.Client
	container string
	logger    *zap.Logger
}

// NewAzureStore authenticates with a shared key against the account's blob endpoint
func NewAzureStore(accountName, accountKey, container string, logger *zap.Logger) (*AzureStore, error) {
	if accountName == "" || accountKey == "" {
		return nil, fmt.Errorf("azure storage account name and key are required")
	}
	if container == "" {
		return nil, fmt.Errorf("azure storage container is required")
	}

	cred, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid azure credentials: %w", err)
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure blob client: %w", err)
	}

	return &AzureStore{client: client, container: container, logger: logger}, nil
}

// Save uploads content as a block blob and returns its URL
func (s *AzureStore) Save(ctx context.Context, name string, content []byte) (string, error) {
	if _, err := s.client.UploadBuffer(ctx, s.container, name, content, nil); err != nil {
		return "", fmt.Errorf("failed to upload blob: %w", err)
	}

	blobURL, err := url.JoinPath(s.client.URL(), s.container, name)
	if err != nil {
		return "", fmt.Errorf("failed to build blob url: %w", err)
	}

	s.logger.Debug("Uploaded blob",
		zap.String("container", s.container),
		zap.String("blob", name),
		zap.Int("size", len(content)))
	return blobURL, nil
}
