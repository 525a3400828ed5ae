package core

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/mikey/llm-fraud-checker/internal/utils"
	"go.uber.org/zap"
)

// Result sources
const (
	SourceUpstream = "upstream"
	SourceCache    = "cache"
	SourceTrusted  = "trusted"
)

// MsgAPIRequestFailed is reported when a lookup answers with a non-2xx status
const MsgAPIRequestFailed = "API request failed"

const maxLoggedBody = 512

// ServiceConfig holds the service settings resolved at startup
type ServiceConfig struct {
	MaxTextSize  int
	OCRTimeout   time.Duration
	LLMTimeout   time.Duration
	CacheEnabled bool
	CacheTTL     time.Duration
}

// FraudCheckService is the core service for fraud and scam checks
type FraudCheckService struct {
	ocr           OCRClient
	llm           LLMClient
	urls          URLChecker
	spam          SpamRegistry
	fraud         FraudRegistry
	store         ImageStore
	cache         CacheRepository
	allowlist     DomainAllowlist
	prompt        *PromptBuilder
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
	cfg           ServiceConfig
}

// NewFraudCheckService creates a new fraud check service. cache and
// allowlist may be nil.
func NewFraudCheckService(
	ocr OCRClient,
	llm LLMClient,
	urls URLChecker,
	spam SpamRegistry,
	fraud FraudRegistry,
	store ImageStore,
	cache CacheRepository,
	allowlist DomainAllowlist,
	prompt *PromptBuilder,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
	cfg ServiceConfig,
) *FraudCheckService {
	return &FraudCheckService{
		ocr:           ocr,
		llm:           llm,
		urls:          urls,
		spam:          spam,
		fraud:         fraud,
		store:         store,
		cache:         cache,
		allowlist:     allowlist,
		prompt:        prompt,
		textProcessor: textProcessor,
		logger:        logger,
		cfg:           cfg,
	}
}

// AnalyzeImage validates an upload, optionally stores it, extracts its text
// and assesses that text. Only validation and storage failures are returned
// as errors; provider failures are reported on the result.
func (s *FraudCheckService) AnalyzeImage(ctx context.Context, upload *UploadedImage, persist bool) (*ImageAnalysis, error) {
	if err := ValidateUpload(upload); err != nil {
		return nil, err
	}

	analysis := &ImageAnalysis{}

	if persist {
		name := UniqueFilename(upload.Filename)
		path, err := s.store.Save(ctx, name, upload.Content)
		if err != nil {
			s.logger.Error("Failed to store upload", zap.String("filename", name), zap.Error(err))
			return nil, err
		}
		analysis.ImagePath = path
	}

	analysis.OCR = s.ExtractText(ctx, upload.Content)
	if analysis.OCR.Error != "" {
		return analysis, nil
	}

	analysis.Assessment = s.AssessText(ctx, analysis.OCR.ExtractedText)
	return analysis, nil
}

// ExtractText runs OCR on raw image bytes
func (s *FraudCheckService) ExtractText(ctx context.Context, content []byte) *OcrResult {
	result := &OcrResult{Engine: s.ocr.Name()}

	if s.cfg.OCRTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.OCRTimeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.ocr.DetectText(ctx, content)
	if err != nil {
		var providerErr *ProviderError
		if errors.As(err, &providerErr) {
			result.Error = providerErr.Message
		} else {
			result.Error = err.Error()
		}
		s.logger.Warn("Text detection failed",
			zap.String("engine", result.Engine),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return result
	}

	if strings.TrimSpace(text) == "" {
		text = NoTextDetected
	}
	result.ExtractedText = text

	s.logger.Debug("Text detected",
		zap.String("engine", result.Engine),
		zap.Int("length", len(text)),
		zap.Duration("duration", time.Since(start)))

	return result
}

// AssessText asks the configured model how likely text is to be fraudulent
func (s *FraudCheckService) AssessText(ctx context.Context, text string) *AssessmentResult {
	result := &AssessmentResult{Model: s.llm.ModelName()}

	processed := s.textProcessor.ProcessText(text, s.cfg.MaxTextSize)
	prompt := s.prompt.Build(processed)

	if s.cfg.LLMTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.LLMTimeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.llm.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn("Text assessment failed",
			zap.String("model", result.Model),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		result.Error = err.Error()
		return result
	}

	s.logger.Debug("Text assessed",
		zap.String("model", result.Model),
		zap.String("prompt", s.prompt.Name()),
		zap.Duration("duration", time.Since(start)))

	result.ResultText = out
	return result
}

// CheckURL looks up the reputation of url
func (s *FraudCheckService) CheckURL(ctx context.Context, url string) *URLSafetyResult {
	if s.allowlist != nil && s.allowlist.IsTrusted(url) {
		s.logger.Info("Skipping URL check for trusted domain",
			zap.String("url", url),
			zap.String("action", "allowlist_bypass"))
		category := CategoryNormal
		return newURLSafetyResult(&URLReputation{Category: &category, URL: url}, SourceTrusted)
	}

	key := "url:" + url
	var cached URLSafetyResult
	if s.loadCached(ctx, key, &cached) {
		cached.Source = SourceCache
		return &cached
	}

	rep, err := s.urls.CheckURL(ctx, url)
	if err != nil {
		msg, status := s.describeFailure(err)
		s.logger.Warn("URL check failed", zap.String("url", url), zap.Int("status_code", status), zap.Error(err))
		return &URLSafetyResult{Error: msg, StatusCode: status}
	}

	result := newURLSafetyResult(rep, SourceUpstream)
	s.storeCached(ctx, key, result)
	return result
}

// CheckSpamKeyword looks up keyword in the 114 registry
func (s *FraudCheckService) CheckSpamKeyword(ctx context.Context, keyword string) *SpamCheckResult {
	key := "spam114:" + keyword
	var cached SpamCheckResult
	if s.loadCached(ctx, key, &cached) {
		cached.Source = SourceCache
		return &cached
	}

	report, err := s.spam.LookupKeyword(ctx, keyword)
	if err != nil {
		msg, status := s.describeFailure(err)
		s.logger.Warn("114 registry check failed", zap.String("keyword", keyword), zap.Int("status_code", status), zap.Error(err))
		return &SpamCheckResult{Keyword: keyword, Error: msg, StatusCode: status}
	}

	result := newSpamCheckResult(keyword, report)
	s.storeCached(ctx, key, result)
	return result
}

// CheckFraudReport looks up key in the police fraud registry
func (s *FraudCheckService) CheckFraudReport(ctx context.Context, key string) *FraudCheckResult {
	cacheKey := "police:" + key
	var cached FraudCheckResult
	if s.loadCached(ctx, cacheKey, &cached) {
		cached.Source = SourceCache
		return &cached
	}

	report, err := s.fraud.LookupKey(ctx, key)
	if err != nil {
		msg, status := s.describeFailure(err)
		s.logger.Warn("Police registry check failed", zap.String("key", key), zap.Int("status_code", status), zap.Error(err))
		return &FraudCheckResult{Key: key, Error: msg, StatusCode: status}
	}

	result := newFraudCheckResult(key, report)
	s.storeCached(ctx, cacheKey, result)
	return result
}

func newURLSafetyResult(rep *URLReputation, source string) *URLSafetyResult {
	isSafe, isMalicious := ClassifyCategory(rep.Category)
	return &URLSafetyResult{
		IsSafe:              &isSafe,
		IsMalicious:         &isMalicious,
		Category:            rep.Category,
		CategoryDescription: DescribeCategory(rep.Category),
		CheckedURL:          rep.URL,
		RawResponse:         rep.Raw,
		Source:              source,
	}
}

func newSpamCheckResult(keyword string, report *SpamReport) *SpamCheckResult {
	// any single source is enough to flag
	isSpam := report.Whowho.SpamCount > 0 ||
		report.Whowho.SpamTypeCount > 0 ||
		report.Kisa.SpamCountVoice > 0 ||
		report.Kisa.SpamCountSMS > 0

	return &SpamCheckResult{
		Keyword:     keyword,
		IsSpam:      isSpam,
		Whowho:      report.Whowho,
		Kisa:        report.Kisa,
		HasTheCheat: !utils.IsEmptyJSON(report.TheCheat),
		RawResponse: report.Raw,
		Source:      SourceUpstream,
	}
}

func newFraudCheckResult(key string, report *FraudReport) *FraudCheckResult {
	// textual comparison; a missing count is not "0"
	isFraud := !(report.CountSet && report.Count == "0")

	return &FraudCheckResult{
		Key:         key,
		IsFraud:     isFraud,
		Count:       report.Count,
		RawResponse: report.Raw,
		Source:      SourceUpstream,
	}
}

// describeFailure turns a lookup error into the message and status code
// carried on the result
func (s *FraudCheckService) describeFailure(err error) (string, int) {
	var bodyErr interface{ ResponseBody() []byte }
	if errors.As(err, &bodyErr) {
		body := bodyErr.ResponseBody()
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody]
		}
		s.logger.Debug("Lookup response body", zap.ByteString("body", body))
	}

	var statusErr interface{ HTTPStatus() int }
	if errors.As(err, &statusErr) {
		return MsgAPIRequestFailed, statusErr.HTTPStatus()
	}
	return err.Error(), 0
}

func (s *FraudCheckService) loadCached(ctx context.Context, key string, dst any) bool {
	if !s.cfg.CacheEnabled || s.cache == nil {
		return false
	}

	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(entry.Payload, dst); err != nil {
		s.logger.Warn("Discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Error("Failed to delete cache entry", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	s.logger.Debug("Cache hit", zap.String("key", key))
	return true
}

func (s *FraudCheckService) storeCached(ctx context.Context, key string, result any) {
	if !s.cfg.CacheEnabled || s.cache == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}

	now := time.Now()
	entry := &CacheEntry{
		Key:       key,
		Payload:   payload,
		LastSeen:  now,
		ExpiresAt: now.Add(s.cfg.CacheTTL),
	}
	if err := s.cache.Set(ctx, entry); err != nil {
		s.logger.Error("Failed to update cache", zap.Error(err))
	}
}
