package core

import (
	"context"
	"fmt"
)

// OCRClient detects text in an image
type OCRClient interface {
	// DetectText returns the full detected text, or "" when nothing was found
	DetectText(ctx context.Context, content []byte) (string, error)

	// Name identifies the engine in results and logs
	Name() string
}

// LLMClient defines the interface for interacting with LLM services
type LLMClient interface {
	// GenerateText sends a prompt and returns the model's text as-is
	GenerateText(ctx context.Context, prompt string) (string, error)

	// ModelName returns the model identifier used for generation
	ModelName() string
}

// URLChecker looks up the reputation of a URL
type URLChecker interface {
	CheckURL(ctx context.Context, url string) (*URLReputation, error)
}

// SpamRegistry looks up a keyword in the 114 scam registry
type SpamRegistry interface {
	LookupKeyword(ctx context.Context, keyword string) (*SpamReport, error)
}

// FraudRegistry looks up a key in the police fraud registry
type FraudRegistry interface {
	LookupKey(ctx context.Context, key string) (*FraudReport, error)
}

// ImageStore persists accepted uploads
type ImageStore interface {
	// Save stores content under name and returns the display path
	Save(ctx context.Context, name string, content []byte) (string, error)
}

// DomainAllowlist reports whether a URL belongs to a trusted domain
type DomainAllowlist interface {
	IsTrusted(rawURL string) bool
}

// CacheRepository defines the interface for caching lookup results
type CacheRepository interface {
	// Get retrieves a cached entry by key
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

// ProviderError is an error payload embedded in an otherwise successful
// provider response. Message is the provider's text, unchanged.
type ProviderError struct {
	Provider string
	Code     int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error %d: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}
