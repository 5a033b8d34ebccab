package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frida212/code-analyzer/internal/analysis"
	"github.com/frida212/code-analyzer/internal/api/handler"
	"github.com/frida212/code-analyzer/internal/backend/cloudfunction"
	"github.com/frida212/code-analyzer/internal/backend/fallback"
	"github.com/frida212/code-analyzer/internal/cache"
	"github.com/frida212/code-analyzer/internal/config"
	"github.com/frida212/code-analyzer/pkg/models"
)

func fallbackOnlyService(t *testing.T) *analysis.Service {
	t.Helper()
	return analysis.NewService(nil, nil, nil, fallback.New(), nil, 5*time.Second)
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnalyze_MissingRepoPath(t *testing.T) {
	h := handler.Analyze(fallbackOnlyService(t), config.CloudFunctionConfig{})

	rec := postJSON(t, h, `{"useAI": true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "repoPath")
}

func TestAnalyze_MalformedBody(t *testing.T) {
	h := handler.Analyze(fallbackOnlyService(t), config.CloudFunctionConfig{})
	rec := postJSON(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_UnknownAnalysisType(t *testing.T) {
	h := handler.Analyze(fallbackOnlyService(t), config.CloudFunctionConfig{})
	rec := postJSON(t, h, `{"repoPath": "/tmp/x", "analysisType": "vibes"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_NoAI_FallbackScoreInRange(t *testing.T) {
	h := handler.Analyze(fallbackOnlyService(t), config.CloudFunctionConfig{})

	rec := postJSON(t, h, `{"repoPath": "/tmp/x", "useAI": false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.AnalysisResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))

	assert.True(t, res.Success)
	assert.False(t, res.AIPowered)
	assert.True(t, res.FallbackMode)
	assert.GreaterOrEqual(t, res.RepositoryAnalysis.OverallScore, 80.0)
	assert.Less(t, res.RepositoryAnalysis.OverallScore, 100.0)
}

func TestAnalyze_UnreachableCloudFunction_StillSucceeds(t *testing.T) {
	// Nothing listens on this address, so the cloud function attempt fails
	// fast and the chain falls through to the deterministic backend.
	cf := cloudfunction.New("http://127.0.0.1:1", time.Second)
	svc := analysis.NewService(cf, nil, nil, fallback.New(), nil, 5*time.Second)
	h := handler.Analyze(svc, config.CloudFunctionConfig{URL: "http://127.0.0.1:1", Preferred: true})

	rec := postJSON(t, h, `{"repoPath": "/tmp/x", "useCloudFunction": true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.AnalysisResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))

	assert.True(t, res.Success)
	assert.True(t, res.CloudFunctionFallback)
}

func TestAnalyze_DefaultsApplied(t *testing.T) {
	svc := &capturingService{result: models.AnalysisResult{Success: true}}
	h := handler.Analyze(svc, config.CloudFunctionConfig{Preferred: true})

	rec := postJSON(t, h, `{"repoPath": "/tmp/x"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "HEAD", svc.lastReq.CommitHash)
	assert.Equal(t, models.AnalysisComprehensive, svc.lastReq.AnalysisType)
	assert.True(t, svc.lastReq.UseAI)
	assert.True(t, svc.lastReq.UseCloudFunction)
}

func TestAnalyze_ExplicitFalseOverridesDefaults(t *testing.T) {
	svc := &capturingService{result: models.AnalysisResult{Success: true}}
	h := handler.Analyze(svc, config.CloudFunctionConfig{Preferred: true})

	rec := postJSON(t, h, `{"repoPath": "/tmp/x", "useAI": false, "useCloudFunction": false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.False(t, svc.lastReq.UseAI)
	assert.False(t, svc.lastReq.UseCloudFunction)
}

func TestAnalyze_FailureResultIs500(t *testing.T) {
	svc := &capturingService{result: models.AnalysisResult{
		Success:   false,
		Message:   "all analysis backends failed: boom",
		Retryable: true,
	}}
	h := handler.Analyze(svc, config.CloudFunctionConfig{})

	rec := postJSON(t, h, `{"repoPath": "/tmp/x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "all analysis backends failed")
}

type capturingService struct {
	lastReq models.AnalysisRequest
	result  models.AnalysisResult
	status  models.ProviderStatus
}

func (s *capturingService) Analyze(_ context.Context, req models.AnalysisRequest) models.AnalysisResult {
	s.lastReq = req
	return s.result
}

func (s *capturingService) Status(context.Context) models.ProviderStatus {
	return s.status
}

func TestIssues_SeverityCriticalFilter(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/issues?severity=critical", nil)
	handler.Issues().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Issues []models.Issue `json:"issues"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotEmpty(t, body.Issues)
	for _, is := range body.Issues {
		assert.Equal(t, models.SeverityCritical, is.Severity)
	}
}

func TestIssues_SortedByPriorityThenConfidence(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.Issues().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/issues", nil))

	var body struct {
		Issues []models.Issue `json:"issues"`
		Metadata struct {
			Total int `json:"total"`
		} `json:"metadata"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, len(body.Issues), body.Metadata.Total)

	for i := 1; i < len(body.Issues); i++ {
		prev, cur := body.Issues[i-1], body.Issues[i]
		assert.LessOrEqual(t, prev.RemediationPriority, cur.RemediationPriority)
		if prev.RemediationPriority == cur.RemediationPriority {
			assert.GreaterOrEqual(t, prev.Confidence, cur.Confidence)
		}
	}
}

func TestIssues_UnknownFilterRejected(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.Issues().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/issues?severity=apocalyptic", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssues_AIOnly(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.Issues().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/issues?ai_only=true", nil))

	var body struct {
		Issues []models.Issue `json:"issues"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotEmpty(t, body.Issues)
	for _, is := range body.Issues {
		assert.Equal(t, models.OriginAI, is.Origin)
	}
}

func TestHealth_ReportsReadiness(t *testing.T) {
	svc := &capturingService{status: models.ProviderStatus{VertexAIAvailable: true}}
	rec := httptest.NewRecorder()
	handler.Health(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "operational", body["ai_service"])
	assert.Equal(t, true, body["vertex_ai_ready"])
	assert.Equal(t, false, body["cloud_function_ready"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHealth_DegradedWithoutBackends(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.Health(&capturingService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "degraded", body["ai_service"])
}

func TestAgents_Roster(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.Agents().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/agents", nil))

	var agents []models.AgentStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&agents))
	assert.Len(t, agents, 4)
}

func TestMetrics_BoundedDemoNumbers(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.Metrics(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	score := body["qualityScore"].(float64)
	assert.GreaterOrEqual(t, score, 80.0)
	assert.Less(t, score, 100.0)
	assert.Equal(t, float64(6), body["totalIssues"])
	assert.Equal(t, float64(3), body["securityIssues"])
	assert.Contains(t, body, "ai_insights")
	// No store wired, so run history is omitted entirely.
	assert.NotContains(t, body, "analyses_completed")
}

type stubManager struct {
	endpointID  string
	initialized bool
	createID    string
	createErr   error
	createCalls int
}

func (m *stubManager) EndpointID() string { return m.endpointID }
func (m *stubManager) Initialized() bool  { return m.initialized }
func (m *stubManager) CreateEndpoint(context.Context) (string, error) {
	m.createCalls++
	return m.createID, m.createErr
}

func TestAIStatus_ReportsEndpoint(t *testing.T) {
	svc := &capturingService{status: models.ProviderStatus{
		VertexAIAvailable: true,
		LastChecked:       time.Now().UTC(),
	}}
	mgr := &stubManager{endpointID: "ep-123", initialized: true}

	rec := httptest.NewRecorder()
	handler.AIStatus(svc, mgr, cache.NewNoop()).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ai/status", nil))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, true, body["initialized"])
	assert.Equal(t, "ep-123", body["endpoint_id"])
	assert.Equal(t, true, body["vertex_ai_available"])
}

type memoryCache struct {
	cache.Noop
	data map[string][]byte
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if c.data == nil {
		c.data = map[string][]byte{}
	}
	c.data[key] = value
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func TestAIStatus_ServedFromCache(t *testing.T) {
	c := &memoryCache{}
	svc := &capturingService{status: models.ProviderStatus{VertexAIAvailable: true}}
	mgr := &stubManager{endpointID: "ep-1", initialized: true}
	h := handler.AIStatus(svc, mgr, c)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ai/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// A second request must hit the cache, so a changed endpoint ID is not
	// visible until the TTL expires or the cache is invalidated.
	mgr.endpointID = "ep-2"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ai/status", nil))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ep-1", body["endpoint_id"])
}

func TestCreateEndpoint_Success(t *testing.T) {
	mgr := &stubManager{createID: "ep-new"}
	rec := httptest.NewRecorder()
	handler.CreateEndpoint(mgr, cache.NewNoop()).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ai/create-endpoint", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ep-new", body["endpoint_id"])
	assert.Equal(t, 1, mgr.createCalls)
}

func TestCreateEndpoint_InvalidatesStatusCache(t *testing.T) {
	c := &memoryCache{data: map[string][]byte{
		cache.ProviderStatusKey(): []byte(`{"endpoint_id":"stale"}`),
	}}
	mgr := &stubManager{createID: "ep-new"}

	rec := httptest.NewRecorder()
	handler.CreateEndpoint(mgr, c).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ai/create-endpoint", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, c.data, cache.ProviderStatusKey())
}

func TestCreateEndpoint_BridgeFailure(t *testing.T) {
	mgr := &stubManager{createErr: errors.New("bridge exited 1")}
	rec := httptest.NewRecorder()
	handler.CreateEndpoint(mgr, cache.NewNoop()).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ai/create-endpoint", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCreateEndpoint_NoBridge(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.CreateEndpoint(nil, cache.NewNoop()).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ai/create-endpoint", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
