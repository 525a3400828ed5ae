package factory

import (
	"github.com/mikey/llm-fraud-checker/internal/config"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"github.com/mikey/llm-fraud-checker/internal/utils"
	"go.uber.org/zap"
)

// ServiceFactory resolves the settings and helpers the core service needs
type ServiceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewServiceFactory creates a new ServiceFactory
func NewServiceFactory(cfg *config.Config, logger *zap.Logger) *ServiceFactory {
	return &ServiceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTextProcessor creates a new TextProcessor
func (f *ServiceFactory) CreateTextProcessor() *utils.TextProcessor {
	return utils.NewTextProcessor(f.logger)
}

// CreatePromptBuilder selects the prompt template named by llm.prompt
func (f *ServiceFactory) CreatePromptBuilder() (*core.PromptBuilder, error) {
	return core.NewPromptBuilder(f.cfg.GetLLM().Prompt)
}

// CreateServiceConfig resolves the service settings
func (f *ServiceFactory) CreateServiceConfig() (core.ServiceConfig, error) {
	llmCfg := f.cfg.GetLLM()
	cacheCfg, err := f.cfg.GetCache()
	if err != nil {
		return core.ServiceConfig{}, err
	}

	return core.ServiceConfig{
		MaxTextSize:  llmCfg.MaxTextSize,
		OCRTimeout:   f.cfg.GetOCRTimeout(),
		LLMTimeout:   llmCfg.Timeout,
		CacheEnabled: cacheCfg.Enabled,
		CacheTTL:     cacheCfg.TTL,
	}, nil
}
