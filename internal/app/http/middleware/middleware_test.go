package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func TestInternalAuth(t *testing.T) {
	h := InternalAuth("secret")(http.HandlerFunc(okHandler))

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"valid", "secret", http.StatusOK},
		{"wrong", "nope", http.StatusUnauthorized},
		{"missing", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/x", nil)
			if tt.token != "" {
				req.Header.Set(InternalTokenHeader, tt.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestInternalAuth_EmptyTokenRejectsAll(t *testing.T) {
	h := InternalAuth("")(http.HandlerFunc(okHandler))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(RequestLogger(logger))
	r.Get("/v1/quotes/{quoteID}", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/quotes/42", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "/v1/quotes/42", line["path"])
	assert.Equal(t, "/v1/quotes/{quoteID}", line["route"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.Greater(t, line["bytes"], float64(0))
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/v1/sessions/{sessionID}", okHandler)

	before := requestCount(t, "/v1/sessions/{sessionID}")
	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sessions/"+id, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, before+2, requestCount(t, "/v1/sessions/{sessionID}"))
	assert.Zero(t, requestCount(t, "/v1/sessions/a"))
}

func requestCount(t *testing.T, route string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "caution_http_requests_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["route"] == route && labels["method"] == http.MethodGet && labels["status"] == "200" {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestCORS_ExposesDocumentHeaders(t *testing.T) {
	h := CORS([]string{"https://app.leadway.ci"})(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/v1/quotes/1", nil)
	req.Header.Set("Origin", "https://app.leadway.ci")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.leadway.ci", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-Session-Id")

	req = httptest.NewRequest(http.MethodGet, "/v1/quotes/1", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
