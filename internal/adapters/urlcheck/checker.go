package urlcheck

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mikey/llm-fraud-checker/internal/adapters/apiclient"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"github.com/mikey/llm-fraud-checker/internal/utils"
	"go.uber.org/zap"
)

// checkResponse is the public URL checker's answer
type checkResponse struct {
	Category *utils.FlexInt `json:"category"`
	URL      string         `json:"url"`
}

// Checker queries the NordVPN public URL checker
type Checker struct {
	client         *apiclient.Client
	endpoint       string
	userAgent      string
	acceptLanguage string
	logger         *zap.Logger
}

// NewChecker creates a new URL reputation checker
func NewChecker(client *apiclient.Client, endpoint, userAgent, acceptLanguage string, logger *zap.Logger) *Checker {
	return &Checker{
		client:         client,
		endpoint:       endpoint,
		userAgent:      userAgent,
		acceptLanguage: acceptLanguage,
		logger:         logger,
	}
}

// CheckURL implements core.URLChecker
func (c *Checker) CheckURL(ctx context.Context, url string) (*core.URLReputation, error) {
	// the checker rejects requests that do not look like a desktop browser
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")
	header.Set("Sec-Ch-Ua-Platform", "Windows")
	header.Set("Accept-Language", c.acceptLanguage)
	header.Set("User-Agent", c.userAgent)

	var resp checkResponse
	raw, err := c.client.DoJSON(ctx, apiclient.Request{
		Method: http.MethodPost,
		URL:    c.endpoint,
		Header: header,
		JSON:   map[string]string{"url": url},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("url check: %w", err)
	}

	rep := &core.URLReputation{URL: resp.URL, Raw: raw}
	if resp.Category != nil {
		category := resp.Category.Int()
		rep.Category = &category
	}

	c.logger.Debug("URL checked",
		zap.String("url", url),
		zap.Any("category", rep.Category))

	return rep, nil
}
