package frontend

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikey/llm-fraud-checker/internal/adapters/apiclient"
	"github.com/mikey/llm-fraud-checker/internal/adapters/registry"
	"github.com/mikey/llm-fraud-checker/internal/adapters/urlcheck"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"github.com/mikey/llm-fraud-checker/internal/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubOCR struct {
	text  string
	err   error
	calls int
}

func (s *stubOCR) DetectText(ctx context.Context, content []byte) (string, error) {
	s.calls++
	return s.text, s.err
}

func (s *stubOCR) Name() string { return "stub-ocr" }

type stubLLM struct {
	out    string
	err    error
	prompt string
}

func (s *stubLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.out, s.err
}

func (s *stubLLM) ModelName() string { return "stub-model" }

type stubStore struct {
	saved []string
}

func (s *stubStore) Save(ctx context.Context, name string, content []byte) (string, error) {
	s.saved = append(s.saved, name)
	return core.UploadsPrefix + "/" + name, nil
}

// fakeUpstream answers as the URL checker and both registries would
func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/url", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"category":1,"url":"http://example-safe.com"}`))
	})
	mux.HandleFunc("/spam114", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("keyword") == "0212345678" {
			w.Write([]byte(`{"whowho":{"spam_count":"3"},"kisa":{},"thecheat":null}`))
			return
		}
		w.Write([]byte(`{"whowho":{"spam_count":0},"kisa":{"spam_count_voice":0,"spam_count_sms":0}}`))
	})
	mux.HandleFunc("/police", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("key") == "01099998888" {
			w.Write([]byte(`{"result":{"count":"2"}}`))
			return
		}
		w.Write([]byte(`{"result":{"count":"0"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, ocr core.OCRClient, llm core.LLMClient, store core.ImageStore) *core.FraudCheckService {
	t.Helper()
	upstream := fakeUpstream(t)
	logger := zap.NewNop()
	client := apiclient.New("test", upstream.Client(), time.Second, logger)

	prompt, err := core.NewPromptBuilder("")
	require.NoError(t, err)

	return core.NewFraudCheckService(
		ocr,
		llm,
		urlcheck.NewChecker(client, upstream.URL+"/url", "test-agent", "ko-KR,ko;q=0.9", logger),
		registry.NewSpam114Client(client, upstream.URL+"/spam114", "TEL", logger),
		registry.NewPoliceClient(client, upstream.URL+"/police", "H", logger),
		store,
		nil,
		nil,
		prompt,
		utils.NewTextProcessor(logger),
		logger,
		core.ServiceConfig{MaxTextSize: 4096, LLMTimeout: time.Second},
	)
}

func multipartImage(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

var errBoom = errors.New("boom")
