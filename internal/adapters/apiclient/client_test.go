package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDoJSON_SendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"url":"http://a.test"}`, string(body))
		w.Write([]byte(` {"ok":true} `))
	}))
	defer srv.Close()

	c := New("test", srv.Client(), time.Second, zap.NewNop())

	var out struct {
		OK bool `json:"ok"`
	}
	raw, err := c.DoJSON(context.Background(), Request{
		URL:    srv.URL,
		Header: http.Header{"User-Agent": []string{"test-agent"}},
		JSON:   map[string]string{"url": "http://a.test"},
	}, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, `{"ok":true}`, string(raw))
}

func TestDoJSON_SendsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "01012345678", r.PostForm.Get("keyword"))
		assert.Equal(t, "TEL", r.PostForm.Get("type"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New("test", srv.Client(), time.Second, zap.NewNop())
	_, err := c.DoJSON(context.Background(), Request{
		URL:  srv.URL,
		Form: url.Values{"keyword": {"01012345678"}, "type": {"TEL"}},
	}, nil)

	require.NoError(t, err)
}

func TestDo_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	c := New("test", srv.Client(), time.Second, zap.NewNop())
	_, err := c.Do(context.Background(), Request{URL: srv.URL})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.HTTPStatus())
	assert.Equal(t, "slow down", string(statusErr.ResponseBody()))
}

func TestDoJSON_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>blocked</html>"))
	}))
	defer srv.Close()

	c := New("test", srv.Client(), time.Second, zap.NewNop())
	_, err := c.DoJSON(context.Background(), Request{URL: srv.URL}, nil)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Contains(t, err.Error(), "malformed response")
	assert.Equal(t, "<html>blocked</html>", string(decodeErr.ResponseBody()))
}

func TestDo_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := New("test", srv.Client(), 50*time.Millisecond, zap.NewNop())
	_, err := c.Do(context.Background(), Request{URL: srv.URL})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
