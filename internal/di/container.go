package di

import (
	"go.uber.org/dig"

	"github.com/mikey/llm-fraud-checker/internal/config"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"github.com/mikey/llm-fraud-checker/internal/factory"
	"github.com/mikey/llm-fraud-checker/internal/logging"
	"github.com/mikey/llm-fraud-checker/internal/ports"
	"github.com/mikey/llm-fraud-checker/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(func() (*config.Config, error) {
		cfg, err := config.New()
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideClients(container); err != nil {
		return nil, err
	}

	// Register cache repository and upload storage
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStorageFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.StorageFactory) (core.ImageStore, error) {
		return f.CreateImageStore()
	}); err != nil {
		return nil, err
	}

	// Register fraud check service
	if err := container.Provide(core.NewFraudCheckService); err != nil {
		return nil, err
	}

	// Register frontend
	if err := container.Provide(factory.NewFrontendFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.FrontendFactory) (ports.Frontend, error) {
		return f.CreateFrontend()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideClients registers the model, OCR and lookup clients together with
// the service helpers. It expects *config.Config and *zap.Logger.
func provideClients(container *dig.Container) error {
	// Register factories
	for _, constructor := range []any{
		factory.NewLLMFactory,
		factory.NewOCRFactory,
		factory.NewLookupFactory,
		factory.NewServiceFactory,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Register LLM and OCR clients
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.OCRFactory) (core.OCRClient, error) {
		return f.CreateOCRClient()
	}); err != nil {
		return err
	}

	// Register lookups
	if err := container.Provide(func(f *factory.LookupFactory) (
		core.URLChecker,
		core.SpamRegistry,
		core.FraudRegistry,
		core.DomainAllowlist,
	) {
		return f.CreateURLChecker(), f.CreateSpamRegistry(), f.CreateFraudRegistry(), f.CreateDomainAllowlist()
	}); err != nil {
		return err
	}

	// Register service helpers
	if err := container.Provide(func(f *factory.ServiceFactory) (*core.PromptBuilder, error) {
		return f.CreatePromptBuilder()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.ServiceFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return err
	}
	return container.Provide(func(f *factory.ServiceFactory) (core.ServiceConfig, error) {
		return f.CreateServiceConfig()
	})
}
