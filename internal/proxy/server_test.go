package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/friday/internal/config"
	"github.com/yourusername/friday/internal/llm"
)

func testServer(t *testing.T, gen llm.Generator) *httptest.Server {
	t.Helper()
	srv := NewServer(config.ProxyConfig{Listen: ":0"}, gen, nil, zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func echo() llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "  Good evening, boss.\n", nil
	})
}

func post(t *testing.T, url, body string) (*http.Response, GenerateResponse) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestGenerate_Success(t *testing.T) {
	var seen string
	ts := testServer(t, llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return "  Good evening, boss.\n", nil
	}))

	resp, body := post(t, ts.URL+DefaultPath, `{"prompt":"hello there"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.True(t, body.Success)
	assert.Equal(t, "Good evening, boss.", body.Response)
	assert.Contains(t, seen, `"hello there"`)
	assert.Contains(t, seen, "F.R.I.D.A.Y.")
}

func TestGenerate_GeneratorFailure(t *testing.T) {
	ts := testServer(t, llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("quota exceeded")
	}))

	resp, body := post(t, ts.URL+DefaultPath, `{"prompt":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "Internal Server Error", body.Error)
}

func TestGenerate_BadRequests(t *testing.T) {
	ts := testServer(t, echo())

	for _, in := range []string{`not json`, `{"prompt":"   "}`, `{}`} {
		resp, body := post(t, ts.URL+DefaultPath, in)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, in)
		assert.False(t, body.Success, in)
		assert.NotEmpty(t, body.Error, in)
	}
}

func TestHealthProbe(t *testing.T) {
	ts := testServer(t, echo())

	resp, err := http.Get(ts.URL + DefaultPath)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true,"message":"F.R.I.D.A.Y. standing by."}`, string(raw))
}

func TestMethodNotAllowed(t *testing.T) {
	ts := testServer(t, echo())

	req, err := http.NewRequest(http.MethodDelete, ts.URL+DefaultPath, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "GET, POST", resp.Header.Get("Allow"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := testServer(t, echo())
	post(t, ts.URL+DefaultPath, `{"prompt":"hello"}`)

	scrape := func() string {
		resp, err := http.Get(ts.URL + "/metrics")
		if err != nil {
			return ""
		}
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		return string(raw)
	}

	assert.Eventually(t, func() bool {
		return strings.Contains(scrape(), `friday_proxy_requests_total{method="POST",status="200"} 1`)
	}, 2*time.Second, 20*time.Millisecond)
	assert.Contains(t, scrape(), "friday_generation_latency_seconds")
}

func TestCustomPath(t *testing.T) {
	srv := NewServer(config.ProxyConfig{Path: "/ask"}, echo(), nil, zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, body := post(t, ts.URL+"/ask", `{"prompt":"hello"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)
}
