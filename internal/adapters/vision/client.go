package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mikey/llm-fraud-checker/internal/core"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	visionapi "google.golang.org/api/vision/v1"
)

const featureTextDetection = "TEXT_DETECTION"

// Client detects text with the Google Cloud Vision images:annotate endpoint
type Client struct {
	service       *visionapi.Service
	languageHints []string
	logger        *zap.Logger
}

// NewClient creates a new Vision client. Extra options let callers point
// the client at another endpoint or HTTP client.
func NewClient(ctx context.Context, apiKey string, languageHints []string, logger *zap.Logger, opts ...option.ClientOption) (*Client, error) {
	if apiKey != "" {
		opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	}

	service, err := visionapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vision client: %w", err)
	}

	return &Client{
		service:       service,
		languageHints: languageHints,
		logger:        logger,
	}, nil
}

// Name implements core.OCRClient
func (c *Client) Name() string {
	return "google-vision"
}

// DetectText implements core.OCRClient. An error object embedded in the
// first response is returned as a *core.ProviderError with the provider's
// message unchanged.
func (c *Client) DetectText(ctx context.Context, content []byte) (string, error) {
	req := &visionapi.BatchAnnotateImagesRequest{
		Requests: []*visionapi.AnnotateImageRequest{
			{
				Image: &visionapi.Image{
					Content: base64.StdEncoding.EncodeToString(content),
				},
				Features: []*visionapi.Feature{
					{Type: featureTextDetection},
				},
				ImageContext: &visionapi.ImageContext{
					LanguageHints: c.languageHints,
				},
			},
		},
	}

	resp, err := c.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("vision annotate failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return "", errors.New("vision annotate returned no responses")
	}

	first := resp.Responses[0]
	if first.Error != nil {
		return "", &core.ProviderError{
			Provider: "vision",
			Code:     int(first.Error.Code),
			Message:  first.Error.Message,
		}
	}

	if len(first.TextAnnotations) == 0 {
		c.logger.Debug("No text annotations in image", zap.Int("image_bytes", len(content)))
		return "", nil
	}

	return first.TextAnnotations[0].Description, nil
}
