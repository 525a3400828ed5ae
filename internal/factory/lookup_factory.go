package factory

import (
	"net/http"

	"github.com/mikey/llm-fraud-checker/internal/adapters/apiclient"
	"github.com/mikey/llm-fraud-checker/internal/adapters/registry"
	"github.com/mikey/llm-fraud-checker/internal/adapters/urlcheck"
	"github.com/mikey/llm-fraud-checker/internal/config"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"github.com/mikey/llm-fraud-checker/internal/whitelist"
	"go.uber.org/zap"
)

// LookupFactory creates the URL checker and the scam registry clients.
// They share one HTTP client.
type LookupFactory struct {
	cfg        *config.Config
	logger     *zap.Logger
	httpClient *http.Client
}

// NewLookupFactory creates a new lookup factory
func NewLookupFactory(cfg *config.Config, logger *zap.Logger) *LookupFactory {
	return &LookupFactory{
		cfg:        cfg,
		logger:     logger,
		httpClient: &http.Client{},
	}
}

// CreateURLChecker creates the URL reputation checker
func (f *LookupFactory) CreateURLChecker() core.URLChecker {
	urlCfg := f.cfg.GetURLCheck()
	client := apiclient.New("nordvpn", f.httpClient, urlCfg.Timeout, f.logger)
	return urlcheck.NewChecker(client, urlCfg.Endpoint, urlCfg.UserAgent, urlCfg.AcceptLanguage, f.logger)
}

// CreateSpamRegistry creates the 114 registry client
func (f *LookupFactory) CreateSpamRegistry() core.SpamRegistry {
	regCfg := f.cfg.GetSpam114()
	client := apiclient.New("spam114", f.httpClient, regCfg.Timeout, f.logger)
	return registry.NewSpam114Client(client, regCfg.Endpoint, regCfg.Code, f.logger)
}

// CreateFraudRegistry creates the police registry client
func (f *LookupFactory) CreateFraudRegistry() core.FraudRegistry {
	regCfg := f.cfg.GetPolice()
	client := apiclient.New("police", f.httpClient, regCfg.Timeout, f.logger)
	return registry.NewPoliceClient(client, regCfg.Endpoint, regCfg.Code, f.logger)
}

// CreateDomainAllowlist creates the trusted domain checker for URL checks
func (f *LookupFactory) CreateDomainAllowlist() core.DomainAllowlist {
	return whitelist.NewChecker(f.cfg.GetURLCheck().TrustedDomains, f.logger)
}
