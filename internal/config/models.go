package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServerConfig represents the configuration for the inbound HTTP surface
type ServerConfig struct {
	Frontend           string
	ListenAddress      string
	StaticRoot         string
	MaxRequestBodySize int64
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	Swagger            bool
}

// StorageConfig represents where accepted uploads are written
type StorageConfig struct {
	Type             string
	UploadsDir       string
	AzureAccountName string
	AzureAccountKey  string
	AzureContainer   string
	S3Region         string
	S3Bucket         string
	S3Prefix         string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
}

// VisionConfig represents the configuration for Google Cloud Vision
type VisionConfig struct {
	APIKey        string
	Endpoint      string
	LanguageHints []string
}

// LLMConfig represents the configuration shared by all text assessment providers
type LLMConfig struct {
	Provider    string
	Prompt      string
	MaxTextSize int
	Timeout     time.Duration
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// URLCheckConfig represents the configuration for the URL reputation checker
type URLCheckConfig struct {
	Endpoint       string
	UserAgent      string
	AcceptLanguage string
	TrustedDomains []string
	Timeout        time.Duration
}

// RegistryConfig represents the configuration for one scam registry
type RegistryConfig struct {
	Endpoint string
	Code     string
	Timeout  time.Duration
}

// CacheConfig represents the lookup cache configuration
type CacheConfig struct {
	Enabled          bool
	Type             string
	TTL              time.Duration
	CleanupFrequency time.Duration
	SQLitePath       string
	MySQLDSN         string
	RedisAddress     string
	RedisPassword    string
	RedisDB          int
}

// GetServer returns the server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		Frontend:           c.GetString("server.frontend"),
		ListenAddress:      c.GetString("server.listen_address"),
		StaticRoot:         c.GetString("server.static_root"),
		MaxRequestBodySize: c.GetInt64("server.max_request_body_size"),
		ReadTimeout:        c.durationOr("server.read_timeout", 60*time.Second),
		WriteTimeout:       c.durationOr("server.write_timeout", 90*time.Second),
		ShutdownTimeout:    c.durationOr("server.shutdown_timeout", 30*time.Second),
		Swagger:            c.GetBool("server.swagger"),
	}
}

// GetStorage returns the upload storage configuration
func (c *Config) GetStorage() StorageConfig {
	return StorageConfig{
		Type:             c.GetString("storage.type"),
		UploadsDir:       strings.TrimRight(c.GetString("server.static_root"), "/") + "/uploads",
		AzureAccountName: c.GetString("storage.azure.account_name"),
		AzureAccountKey:  c.GetString("storage.azure.account_key"),
		AzureContainer:   c.GetString("storage.azure.container"),
		S3Region:         c.GetString("storage.s3.region"),
		S3Bucket:         c.GetString("storage.s3.bucket"),
		S3Prefix:         c.GetString("storage.s3.prefix"),
		S3Endpoint:       c.GetString("storage.s3.endpoint"),
		S3AccessKey:      c.GetString("storage.s3.access_key"),
		S3SecretKey:      c.GetString("storage.s3.secret_key"),
	}
}

// GetVision returns the Google Cloud Vision configuration
func (c *Config) GetVision() VisionConfig {
	return VisionConfig{
		APIKey:        c.GetString("vision.api_key"),
		Endpoint:      c.GetString("vision.endpoint"),
		LanguageHints: c.GetStringSlice("vision.language_hints"),
	}
}

// GetOCRTimeout returns the bound on one text detection call
func (c *Config) GetOCRTimeout() time.Duration {
	return c.upstreamTimeout()
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider:    c.GetString("llm.provider"),
		Prompt:      c.GetString("llm.prompt"),
		MaxTextSize: c.GetInt("llm.max_text_size"),
		Timeout:     c.durationOr("llm.timeout", 30*time.Second),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetURLCheck returns the URL reputation checker configuration
func (c *Config) GetURLCheck() URLCheckConfig {
	return URLCheckConfig{
		Endpoint:       c.GetString("urlcheck.endpoint"),
		UserAgent:      c.GetString("urlcheck.user_agent"),
		AcceptLanguage: c.GetString("urlcheck.accept_language"),
		TrustedDomains: c.GetStringSlice("urlcheck.trusted_domains"),
		Timeout:        c.upstreamTimeout(),
	}
}

// GetSpam114 returns the 114 scam registry configuration
func (c *Config) GetSpam114() RegistryConfig {
	return RegistryConfig{
		Endpoint: c.GetString("spam114.endpoint"),
		Code:     c.GetString("spam114.type_code"),
		Timeout:  c.upstreamTimeout(),
	}
}

// GetPolice returns the police fraud registry configuration
func (c *Config) GetPolice() RegistryConfig {
	return RegistryConfig{
		Endpoint: c.GetString("police.endpoint"),
		Code:     c.GetString("police.field_type"),
		Timeout:  c.upstreamTimeout(),
	}
}

// GetCache returns the lookup cache configuration
func (c *Config) GetCache() (CacheConfig, error) {
	ttl, err := c.GetDuration("cache.ttl")
	if err != nil {
		return CacheConfig{}, fmt.Errorf("invalid cache ttl: %w", err)
	}
	cleanup, err := c.GetDuration("cache.cleanup_frequency")
	if err != nil {
		return CacheConfig{}, fmt.Errorf("invalid cache cleanup frequency: %w", err)
	}
	return CacheConfig{
		Enabled:          c.GetBool("cache.enabled"),
		Type:             c.GetString("cache.type"),
		TTL:              ttl,
		CleanupFrequency: cleanup,
		SQLitePath:       c.GetString("cache.sqlite_path"),
		MySQLDSN:         c.GetString("cache.mysql_dsn"),
		RedisAddress:     c.GetString("cache.redis_address"),
		RedisPassword:    c.GetString("cache.redis_password"),
		RedisDB:          c.GetInt("cache.redis_db"),
	}, nil
}

// Validate checks the settings without which the service cannot start
func (c *Config) Validate() error {
	var errs []error

	if c.GetString("ocr.provider") == "vision" && strings.TrimSpace(c.GetString("vision.api_key")) == "" {
		errs = append(errs, errors.New("GOOGLE_VISION_API_KEY is not set"))
	}

	switch c.GetString("llm.provider") {
	case "gemini":
		if strings.TrimSpace(c.GetString("gemini.api_key")) == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is not set"))
		}
	case "openai":
		if strings.TrimSpace(c.GetString("openai.api_key")) == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is not set"))
		}
	case "bedrock":
		// AWS default credential chain
	default:
		errs = append(errs, fmt.Errorf("unsupported LLM provider: %s", c.GetString("llm.provider")))
	}

	if c.GetInt64("server.max_request_body_size") <= 0 {
		errs = append(errs, fmt.Errorf("server.max_request_body_size must be > 0 (got %d)", c.GetInt64("server.max_request_body_size")))
	}
	if _, err := c.GetDuration("http.upstream_timeout"); err != nil {
		errs = append(errs, fmt.Errorf("invalid http.upstream_timeout: %w", err))
	}

	return errors.Join(errs...)
}

func (c *Config) upstreamTimeout() time.Duration {
	return c.durationOr("http.upstream_timeout", 10*time.Second)
}

func (c *Config) durationOr(key string, def time.Duration) time.Duration {
	d, err := c.GetDuration(key)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
