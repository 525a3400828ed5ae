package di

import (
	"flag"
	"os"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-fraud-checker/internal/adapters/frontend"
	"github.com/mikey/llm-fraud-checker/internal/config"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"github.com/mikey/llm-fraud-checker/internal/logging"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Provider flags
	OCRProvider string
	Provider    string
	Prompt      string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxTextSize int

	// Google flags
	VisionAPIKey    string
	GeminiAPIKey    string
	GeminiModelName string

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIModelName string

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Lookup flags
	UpstreamTimeout string

	// Input flags
	ImagePath string
	Text      string
	URL       string
	Keyword   string
	Key       string

	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// Request returns the checks named by the input flags
func (f *CLIFlags) Request() frontend.CLIRequest {
	return frontend.CLIRequest{
		ImagePath: f.ImagePath,
		Text:      f.Text,
		URL:       f.URL,
		Keyword:   f.Keyword,
		Key:       f.Key,
	}
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) *CLIFlags {
	flags := &CLIFlags{}

	// Provider flags
	fs.StringVar(&flags.OCRProvider, "ocr", "vision", "OCR engine (vision, tesseract)")
	fs.StringVar(&flags.Provider, "provider", "gemini", "LLM provider (gemini, openai, bedrock)")
	fs.StringVar(&flags.Prompt, "prompt", "fraud_probability", "Prompt template (fraud_probability, contact_extraction)")
	fs.IntVar(&flags.MaxTokens, "max-tokens", 1000, "Maximum tokens for LLM response")
	fs.Float64Var(&flags.Temperature, "temperature", 0.1, "Temperature for LLM generation")
	fs.Float64Var(&flags.TopP, "top-p", 0.9, "Top-p for LLM generation")
	fs.IntVar(&flags.MaxTextSize, "max-text-size", 8192, "Maximum text size in bytes to send to the LLM")

	// Google flags
	fs.StringVar(&flags.VisionAPIKey, "vision-api-key", os.Getenv("GOOGLE_VISION_API_KEY"), "API key for Google Cloud Vision")
	fs.StringVar(&flags.GeminiAPIKey, "gemini-api-key", os.Getenv("GEMINI_API_KEY"), "API key for Google Gemini")
	fs.StringVar(&flags.GeminiModelName, "gemini-model", "gemini-1.5-flash", "Gemini model name")

	// OpenAI flags
	fs.StringVar(&flags.OpenAIAPIKey, "openai-api-key", os.Getenv("OPENAI_API_KEY"), "API key for OpenAI")
	fs.StringVar(&flags.OpenAIModelName, "openai-model", "gpt-4o-mini", "OpenAI model name")

	// Bedrock flags
	fs.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	fs.StringVar(&flags.BedrockModelID, "bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Lookup flags
	fs.StringVar(&flags.UpstreamTimeout, "timeout", "10s", "Timeout for URL and registry lookups")

	// Input flags
	fs.StringVar(&flags.ImagePath, "image", "", "Image file to OCR and assess")
	fs.StringVar(&flags.Text, "text", "", "Text to assess")
	fs.StringVar(&flags.URL, "url", "", "URL to check")
	fs.StringVar(&flags.Keyword, "keyword", "", "Phone number or keyword to look up in the 114 registry")
	fs.StringVar(&flags.Key, "key", "", "Phone number or account to look up in the police registry")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	_ = fs.Parse(args)
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.NewFromFile(flags.ConfigFile)
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	if err := provideClients(container); err != nil {
		return nil, err
	}

	// No cache and no upload storage for the CLI
	if err := container.Provide(func() core.CacheRepository { return nil }); err != nil {
		return nil, err
	}
	if err := container.Provide(func() core.ImageStore { return nil }); err != nil {
		return nil, err
	}

	// Register fraud check service
	if err := container.Provide(core.NewFraudCheckService); err != nil {
		return nil, err
	}

	// Register CLI frontend
	if err := container.Provide(func(
		service *core.FraudCheckService,
		logger *zap.Logger,
		flags *CLIFlags,
	) (*frontend.CLIFrontend, error) {
		return frontend.NewCLIFrontend(service, logger, flags.Verbose)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set some cli specific settings
	v.Set("server.frontend", "cli")
	v.Set("cli.verbose", flags.Verbose)
	v.Set("cache.enabled", false)
	v.Set("http.upstream_timeout", flags.UpstreamTimeout)

	// Set OCR provider
	v.Set("ocr.provider", flags.OCRProvider)
	v.Set("vision.api_key", flags.VisionAPIKey)

	// Set LLM provider
	v.Set("llm.provider", flags.Provider)
	v.Set("llm.prompt", flags.Prompt)
	v.Set("llm.max_text_size", flags.MaxTextSize)

	// Set provider-specific configuration
	switch flags.Provider {
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
		v.Set("gemini.max_tokens", flags.MaxTokens)
		v.Set("gemini.temperature", flags.Temperature)
		v.Set("gemini.top_p", flags.TopP)
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.model_name", flags.OpenAIModelName)
		v.Set("openai.max_tokens", flags.MaxTokens)
		v.Set("openai.temperature", flags.Temperature)
		v.Set("openai.top_p", flags.TopP)
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
		v.Set("bedrock.max_tokens", flags.MaxTokens)
		v.Set("bedrock.temperature", flags.Temperature)
		v.Set("bedrock.top_p", flags.TopP)
	}

	return config.NewFromViper(v)
}
