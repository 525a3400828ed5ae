package factory

import (
	"context"
	"fmt"

	"github.com/mikey/llm-fraud-checker/internal/adapters/tesseract"
	"github.com/mikey/llm-fraud-checker/internal/adapters/vision"
	"github.com/mikey/llm-fraud-checker/internal/config"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// OCRFactory creates text detection clients
type OCRFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewOCRFactory creates a new OCR factory
func NewOCRFactory(cfg *config.Config, logger *zap.Logger) *OCRFactory {
	return &OCRFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateOCRClient creates the OCR client selected by ocr.provider
func (f *OCRFactory) CreateOCRClient() (core.OCRClient, error) {
	provider := f.cfg.GetString("ocr.provider")

	switch provider {
	case "vision":
		visionCfg := f.cfg.GetVision()
		if visionCfg.APIKey == "" {
			return nil, fmt.Errorf("vision API key is required")
		}
		var opts []option.ClientOption
		if visionCfg.Endpoint != "" {
			opts = append(opts, option.WithEndpoint(visionCfg.Endpoint))
		}
		return vision.NewClient(context.Background(), visionCfg.APIKey, visionCfg.LanguageHints, f.logger, opts...)
	case "tesseract":
		return tesseract.NewClient(f.cfg.GetStringSlice("tesseract.languages"), f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported OCR provider: %s", provider)
	}
}
