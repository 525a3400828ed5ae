package tesseract

import (
	"context"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// Client runs the local Tesseract engine. Calls are serialized.
type Client struct {
	languages []string
	logger    *zap.Logger
	mu        sync.Mutex
}

// NewClient creates a Tesseract OCR client for the given languages
func NewClient(languages []string, logger *zap.Logger) *Client {
	if len(languages) == 0 {
		languages = []string{"kor", "eng"}
	}
	return &Client{
		languages: languages,
		logger:    logger,
	}
}

// Name implements core.OCRClient
func (c *Client) Name() string {
	return "tesseract"
}

// DetectText implements core.OCRClient
func (c *Client) DetectText(ctx context.Context, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(c.languages...); err != nil {
		return "", fmt.Errorf("failed to set tesseract languages: %w", err)
	}
	if err := client.SetImageFromBytes(content); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract failed: %w", err)
	}

	c.logger.Debug("Tesseract extracted text",
		zap.Strings("languages", c.languages),
		zap.Int("length", len(text)))

	return text, nil
}
