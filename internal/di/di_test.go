package di

import (
	"flag"
	"testing"

	"github.com/mikey/llm-fraud-checker/internal/adapters/frontend"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := parseFlags(fs, []string{
		"-provider", "openai",
		"-url", "http://example.com",
		"-keyword", "0212345678",
		"-verbose",
	})

	assert.Equal(t, "openai", flags.Provider)
	assert.Equal(t, "vision", flags.OCRProvider)
	assert.True(t, flags.Verbose)
	assert.Equal(t, frontend.CLIRequest{URL: "http://example.com", Keyword: "0212345678"}, flags.Request())
}

func TestCreateConfigFromFlags(t *testing.T) {
	cfg := createConfigFromFlags(&CLIFlags{
		OCRProvider:     "tesseract",
		Provider:        "openai",
		Prompt:          "contact_extraction",
		MaxTokens:       256,
		Temperature:     0.2,
		TopP:            0.8,
		MaxTextSize:     1024,
		OpenAIAPIKey:    "sk-test",
		OpenAIModelName: "gpt-4o-mini",
		UpstreamTimeout: "3s",
	})

	assert.Equal(t, "cli", cfg.GetServer().Frontend)
	assert.Equal(t, "tesseract", cfg.GetString("ocr.provider"))
	assert.Equal(t, "contact_extraction", cfg.GetLLM().Prompt)
	assert.Equal(t, 1024, cfg.GetLLM().MaxTextSize)
	assert.Equal(t, "sk-test", cfg.GetOpenAI().APIKey)
	assert.Equal(t, 256, cfg.GetOpenAI().MaxTokens)
	assert.Equal(t, "3s", cfg.GetSpam114().Timeout.String())

	cacheCfg, err := cfg.GetCache()
	require.NoError(t, err)
	assert.False(t, cacheCfg.Enabled)
}

func TestBuildCLIContainer(t *testing.T) {
	flags := &CLIFlags{
		OCRProvider:     "tesseract",
		Provider:        "openai",
		Prompt:          "fraud_probability",
		MaxTokens:       100,
		MaxTextSize:     1024,
		OpenAIAPIKey:    "sk-test",
		OpenAIModelName: "gpt-4o-mini",
		UpstreamTimeout: "1s",
	}

	container, err := BuildCLIContainer(flags)
	require.NoError(t, err)

	err = container.Invoke(func(cli *frontend.CLIFrontend, llm core.LLMClient, ocr core.OCRClient) {
		assert.NotNil(t, cli)
		assert.Equal(t, "gpt-4o-mini", llm.ModelName())
		assert.Equal(t, "tesseract", ocr.Name())
	})
	require.NoError(t, err)
}

func TestBuildCLIContainer_UnknownProvider(t *testing.T) {
	container, err := BuildCLIContainer(&CLIFlags{
		OCRProvider:     "tesseract",
		Provider:        "mystery",
		UpstreamTimeout: "1s",
	})
	require.NoError(t, err)

	err = container.Invoke(func(cli *frontend.CLIFrontend) {})
	assert.Error(t, err)
}
