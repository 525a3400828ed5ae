package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mikey/llm-fraud-checker/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), "", []string{"ko"}, zap.NewNop(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return c
}

func TestDetectText_RequestShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/images:annotate"), r.URL.Path)

		var body struct {
			Requests []struct {
				Image struct {
					Content string `json:"content"`
				} `json:"image"`
				Features []struct {
					Type string `json:"type"`
				} `json:"features"`
				ImageContext struct {
					LanguageHints []string `json:"languageHints"`
				} `json:"imageContext"`
			} `json:"requests"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Requests, 1)

		req := body.Requests[0]
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("png-bytes")), req.Image.Content)
		require.Len(t, req.Features, 1)
		assert.Equal(t, "TEXT_DETECTION", req.Features[0].Type)
		assert.Equal(t, []string{"ko"}, req.ImageContext.LanguageHints)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responses":[{"textAnnotations":[{"description":"택배 주소 확인 바랍니다"},{"description":"택배"}]}]}`))
	})

	text, err := c.DetectText(context.Background(), []byte("png-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "택배 주소 확인 바랍니다", text)
}

func TestDetectText_EmptyAnnotations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responses":[{}]}`))
	})

	text, err := c.DetectText(context.Background(), []byte("img"))

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestDetectText_EmbeddedError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responses":[{"error":{"code":3,"message":"Bad image data."}}]}`))
	})

	_, err := c.DetectText(context.Background(), []byte("img"))

	var providerErr *core.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "Bad image data.", providerErr.Message)
	assert.Equal(t, 3, providerErr.Code)
}

func TestDetectText_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"API key not valid."}}`))
	})

	_, err := c.DetectText(context.Background(), []byte("img"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "vision annotate failed")
}

func TestDetectText_HonorsDeadline(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.DetectText(ctx, []byte("img"))

	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
