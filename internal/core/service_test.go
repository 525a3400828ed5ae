package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mikey/llm-fraud-checker/internal/apperrors"
	"github.com/mikey/llm-fraud-checker/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeOCR struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCR) DetectText(ctx context.Context, content []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeOCR) Name() string { return "fake-ocr" }

// stalledOCR never answers until its context ends
type stalledOCR struct{}

func (stalledOCR) DetectText(ctx context.Context, content []byte) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (stalledOCR) Name() string { return "stalled-ocr" }

type fakeLLM struct {
	out        string
	err        error
	lastPrompt string
}

func (f *fakeLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.out, f.err
}

func (f *fakeLLM) ModelName() string { return "fake-model" }

type fakeURLChecker struct {
	rep   *URLReputation
	err   error
	calls int
}

func (f *fakeURLChecker) CheckURL(ctx context.Context, url string) (*URLReputation, error) {
	f.calls++
	return f.rep, f.err
}

type fakeSpamRegistry struct {
	report *SpamReport
	err    error
}

func (f *fakeSpamRegistry) LookupKeyword(ctx context.Context, keyword string) (*SpamReport, error) {
	return f.report, f.err
}

type fakeFraudRegistry struct {
	report *FraudReport
	err    error
}

func (f *fakeFraudRegistry) LookupKey(ctx context.Context, key string) (*FraudReport, error) {
	return f.report, f.err
}

type fakeStore struct {
	saved map[string][]byte
}

func (f *fakeStore) Save(ctx context.Context, name string, content []byte) (string, error) {
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[name] = content
	return UploadsPrefix + "/" + name, nil
}

type fakeAllowlist struct{ trusted string }

func (f fakeAllowlist) IsTrusted(rawURL string) bool { return rawURL == f.trusted }

type mapCache struct {
	mu      sync.Mutex
	entries map[string]*CacheEntry
	deleted []string
}

func (c *mapCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return e, nil
}

func (c *mapCache) Set(ctx context.Context, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]*CacheEntry)
	}
	c.entries[entry.Key] = entry
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *mapCache) Cleanup(ctx context.Context) error { return nil }

type bodyErr struct {
	code int
	body []byte
}

func (e *bodyErr) Error() string        { return fmt.Sprintf("unexpected status %d", e.code) }
func (e *bodyErr) HTTPStatus() int      { return e.code }
func (e *bodyErr) ResponseBody() []byte { return e.body }

type statusErr struct{ code int }

func (e *statusErr) Error() string   { return fmt.Sprintf("unexpected status %d", e.code) }
func (e *statusErr) HTTPStatus() int { return e.code }

type fixture struct {
	ocr   *fakeOCR
	llm   *fakeLLM
	urls  *fakeURLChecker
	spam  *fakeSpamRegistry
	fraud *fakeFraudRegistry
	store *fakeStore
	cache *mapCache
}

func newTestService(t *testing.T, f *fixture, cfg ServiceConfig, allowlist DomainAllowlist) *FraudCheckService {
	t.Helper()
	prompt, err := NewPromptBuilder(PromptFraudProbability)
	require.NoError(t, err)

	var cache CacheRepository
	if f.cache != nil {
		cache = f.cache
	}

	logger := zap.NewNop()
	return NewFraudCheckService(
		f.ocr, f.llm, f.urls, f.spam, f.fraud, f.store, cache, allowlist,
		prompt, utils.NewTextProcessor(logger), logger, cfg,
	)
}

func intPtr(i int) *int { return &i }

func TestAnalyzeImage_RejectsInvalidUploads(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		message  string
	}{
		{"empty filename", "", MsgNoFileSelected},
		{"no extension", "screenshot", MsgFileTypeNotAllowed},
		{"disallowed extension", "invoice.pdf", MsgFileTypeNotAllowed},
		{"trailing dot", "image.", MsgFileTypeNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fixture{ocr: &fakeOCR{text: "x"}, llm: &fakeLLM{}, store: &fakeStore{}}
			svc := newTestService(t, f, ServiceConfig{}, nil)

			_, err := svc.AnalyzeImage(context.Background(), &UploadedImage{Filename: tt.filename, Content: []byte("img")}, true)

			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
			assert.Equal(t, tt.message, apperrors.UserMessage(err))
			assert.Empty(t, f.store.saved, "nothing may be written")
			assert.Zero(t, f.ocr.calls)
		})
	}
}

func TestAnalyzeImage_StoresAndAssesses(t *testing.T) {
	f := &fixture{
		ocr:   &fakeOCR{text: "계좌로 송금하세요"},
		llm:   &fakeLLM{out: "가짜일 확률: 90%\n이유: 송금 요구"},
		store: &fakeStore{},
	}
	svc := newTestService(t, f, ServiceConfig{MaxTextSize: 1024}, nil)

	analysis, err := svc.AnalyzeImage(context.Background(), &UploadedImage{Filename: "Shot 1.PNG", Content: []byte("img")}, true)

	require.NoError(t, err)
	require.Len(t, f.store.saved, 1)
	assert.Regexp(t, `^uploads/[0-9a-f]{32}_Shot_1\.PNG$`, analysis.ImagePath)
	assert.Equal(t, "계좌로 송금하세요", analysis.OCR.ExtractedText)
	assert.Equal(t, "fake-ocr", analysis.OCR.Engine)
	require.NotNil(t, analysis.Assessment)
	assert.Equal(t, "가짜일 확률: 90%\n이유: 송금 요구", analysis.Assessment.ResultText)
	assert.Contains(t, f.llm.lastPrompt, "텍스트:\n계좌로 송금하세요")
}

func TestAnalyzeImage_WithoutPersist(t *testing.T) {
	f := &fixture{ocr: &fakeOCR{text: "hello"}, llm: &fakeLLM{out: "ok"}, store: &fakeStore{}}
	svc := newTestService(t, f, ServiceConfig{}, nil)

	analysis, err := svc.AnalyzeImage(context.Background(), &UploadedImage{Filename: "a.jpg", Content: []byte("img")}, false)

	require.NoError(t, err)
	assert.Empty(t, analysis.ImagePath)
	assert.Empty(t, f.store.saved)
}

func TestAnalyzeImage_OCRErrorSkipsAssessment(t *testing.T) {
	f := &fixture{
		ocr:   &fakeOCR{err: &ProviderError{Provider: "vision", Code: 3, Message: "Bad image data."}},
		llm:   &fakeLLM{out: "unused"},
		store: &fakeStore{},
	}
	svc := newTestService(t, f, ServiceConfig{}, nil)

	analysis, err := svc.AnalyzeImage(context.Background(), &UploadedImage{Filename: "a.gif", Content: []byte("img")}, false)

	require.NoError(t, err)
	assert.Empty(t, analysis.OCR.ExtractedText)
	assert.Equal(t, "Bad image data.", analysis.OCR.Error)
	assert.Nil(t, analysis.Assessment)
	assert.Empty(t, f.llm.lastPrompt)
}

func TestExtractText_Fallback(t *testing.T) {
	f := &fixture{ocr: &fakeOCR{text: "  "}, llm: &fakeLLM{}}
	svc := newTestService(t, f, ServiceConfig{}, nil)

	result := svc.ExtractText(context.Background(), []byte("img"))

	assert.Empty(t, result.Error)
	assert.Equal(t, NoTextDetected, result.ExtractedText)
}

func TestExtractText_Timeout(t *testing.T) {
	logger := zap.NewNop()
	prompt, err := NewPromptBuilder(PromptFraudProbability)
	require.NoError(t, err)
	svc := NewFraudCheckService(
		stalledOCR{}, &fakeLLM{}, nil, nil, nil, nil, nil, nil,
		prompt, utils.NewTextProcessor(logger), logger,
		ServiceConfig{OCRTimeout: 50 * time.Millisecond},
	)

	done := make(chan *OcrResult, 1)
	go func() { done <- svc.ExtractText(context.Background(), []byte("img")) }()

	select {
	case result := <-done:
		assert.Empty(t, result.ExtractedText)
		assert.Contains(t, result.Error, context.DeadlineExceeded.Error())
		assert.Equal(t, "stalled-ocr", result.Engine)
	case <-time.After(5 * time.Second):
		t.Fatal("text detection was not bounded by the OCR timeout")
	}
}

func TestAnalyzeImage_OCRTimeoutSkipsAssessment(t *testing.T) {
	logger := zap.NewNop()
	prompt, err := NewPromptBuilder(PromptFraudProbability)
	require.NoError(t, err)
	llm := &fakeLLM{out: "unused"}
	svc := NewFraudCheckService(
		stalledOCR{}, llm, nil, nil, nil, nil, nil, nil,
		prompt, utils.NewTextProcessor(logger), logger,
		ServiceConfig{OCRTimeout: 50 * time.Millisecond},
	)

	analysis, err := svc.AnalyzeImage(context.Background(), &UploadedImage{Filename: "a.png", Content: []byte("img")}, false)

	require.NoError(t, err)
	assert.NotEmpty(t, analysis.OCR.Error)
	assert.Nil(t, analysis.Assessment)
	assert.Empty(t, llm.lastPrompt)
}

func TestAssessText_Error(t *testing.T) {
	f := &fixture{llm: &fakeLLM{err: errors.New("quota exceeded")}}
	svc := newTestService(t, f, ServiceConfig{LLMTimeout: time.Second}, nil)

	result := svc.AssessText(context.Background(), "text")

	assert.Empty(t, result.ResultText)
	assert.Equal(t, "quota exceeded", result.Error)
	assert.Equal(t, "fake-model", result.Model)
}

func TestCheckURL_CategoryMapping(t *testing.T) {
	tests := []struct {
		category    *int
		isSafe      bool
		isMalicious bool
		description string
	}{
		{intPtr(0), false, false, "알 수 없음"},
		{intPtr(1), true, false, "일반 웹사이트"},
		{intPtr(2), false, true, "악성 웹사이트"},
		{intPtr(3), false, true, "피싱 웹사이트"},
		{intPtr(4), false, true, "스캠 웹사이트"},
		{intPtr(9), false, false, "알 수 없음"},
		{nil, false, false, "알 수 없음"},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.category != nil {
			name = fmt.Sprintf("category_%d", *tt.category)
		}
		t.Run(name, func(t *testing.T) {
			f := &fixture{urls: &fakeURLChecker{rep: &URLReputation{Category: tt.category, URL: "http://x.test"}}}
			svc := newTestService(t, f, ServiceConfig{}, nil)

			result := svc.CheckURL(context.Background(), "http://x.test")

			require.NotNil(t, result.IsSafe)
			require.NotNil(t, result.IsMalicious)
			assert.Equal(t, tt.isSafe, *result.IsSafe)
			assert.Equal(t, tt.isMalicious, *result.IsMalicious)
			assert.Equal(t, tt.description, result.CategoryDescription)
			assert.Equal(t, "http://x.test", result.CheckedURL)
			assert.Equal(t, SourceUpstream, result.Source)
		})
	}
}

func TestCheckURL_Failures(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		f := &fixture{urls: &fakeURLChecker{err: fmt.Errorf("check url: %w", &statusErr{code: 403})}}
		svc := newTestService(t, f, ServiceConfig{}, nil)

		result := svc.CheckURL(context.Background(), "http://x.test")

		assert.Equal(t, MsgAPIRequestFailed, result.Error)
		assert.Equal(t, 403, result.StatusCode)
		assert.Nil(t, result.IsSafe)
		assert.Nil(t, result.IsMalicious)

		body, err := json.Marshal(result)
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"API request failed","status_code":403}`, string(body))
	})

	t.Run("transport", func(t *testing.T) {
		f := &fixture{urls: &fakeURLChecker{err: errors.New("connection refused")}}
		svc := newTestService(t, f, ServiceConfig{}, nil)

		result := svc.CheckURL(context.Background(), "http://x.test")

		assert.Equal(t, "connection refused", result.Error)
		assert.Zero(t, result.StatusCode)
		assert.Nil(t, result.IsSafe)
	})
}

func TestCheckURL_TrustedDomainBypass(t *testing.T) {
	f := &fixture{urls: &fakeURLChecker{}}
	svc := newTestService(t, f, ServiceConfig{}, fakeAllowlist{trusted: "https://www.gov.kr"})

	result := svc.CheckURL(context.Background(), "https://www.gov.kr")

	assert.Zero(t, f.urls.calls)
	assert.True(t, *result.IsSafe)
	assert.Equal(t, CategoryNormal, *result.Category)
	assert.Equal(t, SourceTrusted, result.Source)
}

func TestCheckURL_Cache(t *testing.T) {
	f := &fixture{
		urls:  &fakeURLChecker{rep: &URLReputation{Category: intPtr(3), URL: "http://bad.test", Raw: json.RawMessage(`{"category":3}`)}},
		cache: &mapCache{},
	}
	svc := newTestService(t, f, ServiceConfig{CacheEnabled: true, CacheTTL: time.Hour}, nil)

	first := svc.CheckURL(context.Background(), "http://bad.test")
	second := svc.CheckURL(context.Background(), "http://bad.test")

	assert.Equal(t, 1, f.urls.calls)
	assert.Equal(t, SourceUpstream, first.Source)
	assert.Equal(t, SourceCache, second.Source)
	assert.True(t, *second.IsMalicious)
	assert.JSONEq(t, `{"category":3}`, string(second.RawResponse))
}

func TestCheckURL_FailuresAreNotCached(t *testing.T) {
	f := &fixture{urls: &fakeURLChecker{err: errors.New("timeout")}, cache: &mapCache{}}
	svc := newTestService(t, f, ServiceConfig{CacheEnabled: true, CacheTTL: time.Hour}, nil)

	svc.CheckURL(context.Background(), "http://x.test")
	svc.CheckURL(context.Background(), "http://x.test")

	assert.Equal(t, 2, f.urls.calls)
	assert.Empty(t, f.cache.entries)
}

func TestCheckURL_UnreadableCacheEntryIsEvicted(t *testing.T) {
	f := &fixture{
		urls: &fakeURLChecker{rep: &URLReputation{Category: intPtr(1), URL: "http://ok.test"}},
		cache: &mapCache{entries: map[string]*CacheEntry{
			"url:http://ok.test": {Key: "url:http://ok.test", Payload: json.RawMessage(`not json`)},
		}},
	}
	svc := newTestService(t, f, ServiceConfig{CacheEnabled: true, CacheTTL: time.Hour}, nil)

	result := svc.CheckURL(context.Background(), "http://ok.test")

	assert.Equal(t, SourceUpstream, result.Source)
	assert.Equal(t, 1, f.urls.calls)
	assert.Equal(t, []string{"url:http://ok.test"}, f.cache.deleted)
	require.Contains(t, f.cache.entries, "url:http://ok.test")
	var refreshed URLSafetyResult
	require.NoError(t, json.Unmarshal(f.cache.entries["url:http://ok.test"].Payload, &refreshed))
	assert.Equal(t, 1, *refreshed.Category)
}

func TestCheckFraudReport_LogsTruncatedResponseBody(t *testing.T) {
	observed, logs := observer.New(zap.DebugLevel)
	logger := zap.New(observed)
	body := []byte(strings.Repeat("x", maxLoggedBody+100))
	prompt, err := NewPromptBuilder(PromptFraudProbability)
	require.NoError(t, err)
	svc := NewFraudCheckService(nil, nil, nil, nil,
		&fakeFraudRegistry{err: fmt.Errorf("police: %w", &bodyErr{code: 502, body: body})},
		nil, nil, nil, prompt, utils.NewTextProcessor(logger), logger, ServiceConfig{})

	result := svc.CheckFraudReport(context.Background(), "01012345678")

	assert.Equal(t, MsgAPIRequestFailed, result.Error)
	assert.Equal(t, 502, result.StatusCode)
	entries := logs.FilterMessage("Lookup response body").All()
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].ContextMap()["body"], maxLoggedBody)
}

func TestCheckSpamKeyword_OrPolicy(t *testing.T) {
	tests := []struct {
		name   string
		report SpamReport
		isSpam bool
	}{
		{"all zero", SpamReport{}, false},
		{"whowho spam_count", SpamReport{Whowho: WhowhoCounts{SpamCount: 3}}, true},
		{"whowho spam_type_cnt", SpamReport{Whowho: WhowhoCounts{SpamTypeCount: 1}}, true},
		{"kisa voice", SpamReport{Kisa: KisaCounts{SpamCountVoice: 2}}, true},
		{"kisa sms", SpamReport{Kisa: KisaCounts{SpamCountSMS: 1}}, true},
		{"thecheat alone", SpamReport{TheCheat: json.RawMessage(`{"count":5}`)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := tt.report
			f := &fixture{spam: &fakeSpamRegistry{report: &report}}
			svc := newTestService(t, f, ServiceConfig{}, nil)

			result := svc.CheckSpamKeyword(context.Background(), "01012345678")

			assert.Equal(t, tt.isSpam, result.IsSpam)
			assert.Equal(t, "01012345678", result.Keyword)
			assert.Empty(t, result.Error)
		})
	}
}

func TestCheckSpamKeyword_TheCheatFlag(t *testing.T) {
	f := &fixture{spam: &fakeSpamRegistry{report: &SpamReport{TheCheat: json.RawMessage(`{"count":5}`)}}}
	svc := newTestService(t, f, ServiceConfig{}, nil)
	assert.True(t, svc.CheckSpamKeyword(context.Background(), "k").HasTheCheat)

	f.spam.report = &SpamReport{TheCheat: json.RawMessage(`null`)}
	assert.False(t, svc.CheckSpamKeyword(context.Background(), "k").HasTheCheat)
}

func TestCheckSpamKeyword_Failure(t *testing.T) {
	f := &fixture{spam: &fakeSpamRegistry{err: &statusErr{code: 500}}}
	svc := newTestService(t, f, ServiceConfig{}, nil)

	result := svc.CheckSpamKeyword(context.Background(), "k")

	assert.False(t, result.IsSpam)
	assert.Equal(t, MsgAPIRequestFailed, result.Error)
	assert.Equal(t, 500, result.StatusCode)
}

func TestCheckFraudReport_CountComparison(t *testing.T) {
	tests := []struct {
		name    string
		report  FraudReport
		isFraud bool
	}{
		{"zero string", FraudReport{Count: "0", CountSet: true}, false},
		{"two", FraudReport{Count: "2", CountSet: true}, true},
		{"missing", FraudReport{}, true},
		{"padded zero", FraudReport{Count: "00", CountSet: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := tt.report
			f := &fixture{fraud: &fakeFraudRegistry{report: &report}}
			svc := newTestService(t, f, ServiceConfig{}, nil)

			result := svc.CheckFraudReport(context.Background(), "1002-123")

			assert.Equal(t, tt.isFraud, result.IsFraud)
			assert.Equal(t, "1002-123", result.Key)
		})
	}
}

func TestCheckFraudReport_Failure(t *testing.T) {
	f := &fixture{fraud: &fakeFraudRegistry{err: context.DeadlineExceeded}}
	svc := newTestService(t, f, ServiceConfig{}, nil)

	result := svc.CheckFraudReport(context.Background(), "k")

	assert.False(t, result.IsFraud)
	assert.Equal(t, context.DeadlineExceeded.Error(), result.Error)
}
