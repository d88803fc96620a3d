package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxgenius/regime-calculator/internal/api"
	"github.com/taxgenius/regime-calculator/internal/cache"
	"github.com/taxgenius/regime-calculator/internal/config"
	"github.com/taxgenius/regime-calculator/internal/service"
)

func TestHTTPServer(t *testing.T) {
	repo := cache.NewMemoryCache(time.Minute)
	svc, err := service.NewTaxService(config.NewRuleRegistry(), config.DefaultGSTRules(), repo)
	require.NoError(t, err)
	limiter := api.NewRateLimiter(100, time.Minute)
	defer limiter.Stop()

	h := api.NewHandler(svc)
	h.CacheBackend = cache.Describe(repo)
	srv := httptest.NewServer(api.NewRouter(h, api.RouterOptions{Limiter: limiter, Quiet: true}))
	defer srv.Close()

	body := []byte(`{"annual_salary": 6000000}`)
	for i := 0; i < 2; i++ {
		resp, err := http.Post(srv.URL+"/api/tax/compare?year=AY2026-27", "application/json", bytes.NewReader(body))
		require.NoError(t, err)

		var cmp api.CompareResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&cmp))
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "1552980", cmp.New.TotalTax.String())
		assert.NotEmpty(t, resp.Header.Get("Content-Type"))
	}
	assert.Equal(t, 1, repo.Len(), "second request served from cache")

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	var health api.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "memory", health.Cache)
}
