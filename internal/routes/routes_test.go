package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"journal-transporter/transporter/internal/api"
	"journal-transporter/transporter/internal/auth"
	"journal-transporter/transporter/internal/common"
	"journal-transporter/transporter/internal/config"
	"journal-transporter/transporter/internal/db/dbtest"
	"journal-transporter/transporter/internal/logging"
	"journal-transporter/transporter/internal/metrics"
	"journal-transporter/transporter/internal/models/dtos"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type server struct {
	handler http.Handler
	apiKey  string
}

func newServer(t *testing.T) *server {
	t.Helper()
	logging.InitNop()

	gdb := dbtest.Open(t)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	install, err := config.LoadInstall("")
	require.NoError(t, err)

	cfg := &config.Config{
		FilesRoot:      t.TempDir(),
		DefaultDomain:  "https://journals.example.org",
		Secret:         testSecret,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}

	reg := prometheus.NewRegistry()
	deps := api.InitDependencies(cfg, install, gdb, sqlx.NewDb(sqlDB, "sqlite3"), common.NewCacheService(60, 60), metrics.NewMetricsRegistry(reg))

	key, err := deps.Repo.Keys.Create(context.Background(), "routes-test")
	require.NoError(t, err)

	return &server{handler: RegisterRoutes(deps, reg, time.Now()), apiKey: key}
}

func (s *server) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, dtos.APIResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, APIPrefix+path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", s.apiKey)

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	var resp dtos.APIResponse
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	}
	return rr, resp
}

// create posts body and returns the created record's id.
func (s *server) create(t *testing.T, path string, body any) uint {
	t.Helper()
	rr, resp := s.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	data := resp.Data.(map[string]any)
	return uint(data["id"].(float64))
}

func TestRoutesRequireCredentials(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodGet, APIPrefix+"/journals", nil)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, APIPrefix+"/journals", nil)
	req.Header.Set("X-API-Key", "not-a-key")
	rr = httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestBearerTokenIsAccepted(t *testing.T) {
	s := newServer(t)

	token, err := auth.IssueToken([]byte(testSecret), "migration-client", time.Hour, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, APIPrefix+"/journals", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestJournalImportScenario(t *testing.T) {
	s := newServer(t)

	rr, resp := s.do(t, http.MethodPost, "/journals", map[string]any{"path": "testj", "title": "Test Journal"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	data := resp.Data.(map[string]any)
	assert.Contains(t, data["domain"], "testj")
	assert.Equal(t, "testj", data["path"])
	assert.Equal(t, "Test Journal", data["title"])
	assert.Equal(t, fmt.Sprintf("Journal:%v", data["id"]), data["source_record_key"])

	journalID := uint(data["id"].(float64))

	rr, resp = s.do(t, http.MethodGet, fmt.Sprintf("/journals/%d/sections", journalID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 1, resp.Data.(map[string]any)["count"])

	rr, resp = s.do(t, http.MethodPost, "/journals", map[string]any{"path": "testj", "title": "Again"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, []string{"Journal with this path already exists."}, resp.Errors["path"])
}

func TestDeepNestingAccumulatesAncestors(t *testing.T) {
	s := newServer(t)

	journalID := s.create(t, "/journals", map[string]any{"path": "deep", "title": "Deep"})
	otherJournalID := s.create(t, "/journals", map[string]any{"path": "other", "title": "Other"})
	articleID := s.create(t, fmt.Sprintf("/journals/%d/articles", journalID), map[string]any{"title": "Nested"})
	reviewerID := s.create(t, "/users", map[string]any{"email": "reviewer@example.com", "first_name": "Rev", "last_name": "Iewer"})

	roundsPath := fmt.Sprintf("/journals/%d/articles/%d/rounds", journalID, articleID)
	roundID := s.create(t, roundsPath, map[string]any{"round": 1})

	assignmentsPath := fmt.Sprintf("%s/%d/assignments", roundsPath, roundID)
	assignment := map[string]any{
		"reviewer":      map[string]any{"target_record_key": fmt.Sprintf("Account:%d", reviewerID)},
		"date_assigned": "2023-01-01T00:00:00+0000",
	}
	s.create(t, assignmentsPath, assignment)

	// same reviewer and round again returns the existing assignment
	rr, _ := s.do(t, http.MethodPost, assignmentsPath, assignment)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, resp := s.do(t, http.MethodGet, assignmentsPath, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 1, resp.Data.(map[string]any)["count"])

	// an article that does not exist under the captured journal
	rr, _ = s.do(t, http.MethodGet, fmt.Sprintf("/journals/%d/articles/%d", otherJournalID, articleID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = s.do(t, http.MethodGet, fmt.Sprintf("/journals/%d/articles/%d/rounds/999/assignments", journalID, articleID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteIsRejected(t *testing.T) {
	s := newServer(t)
	journalID := s.create(t, "/journals", map[string]any{"path": "nodelete", "title": "No Delete"})

	rr, _ := s.do(t, http.MethodDelete, fmt.Sprintf("/journals/%d", journalID), nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/journals/%d/issues", journalID), nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFileUploadAndDownload(t *testing.T) {
	s := newServer(t)
	journalID := s.create(t, "/journals", map[string]any{"path": "filej", "title": "Files"})
	filesPath := fmt.Sprintf("/journals/%d/articles/%d/files", journalID,
		s.create(t, fmt.Sprintf("/journals/%d/articles", journalID), map[string]any{"title": "With File"}))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("json", `{"label": "Manuscript"}`))
	part, err := mw.CreateFormFile("file", "paper.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 routes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, APIPrefix+filesPath, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-API-Key", s.apiKey)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp dtos.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	fileID := uint(resp.Data.(map[string]any)["id"].(float64))

	rr, _ = s.do(t, http.MethodGet, fmt.Sprintf("%s/%d/download", filesPath, fileID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "%PDF-1.4 routes", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "paper.pdf")
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	s := newServer(t)
	s.create(t, "/journals", map[string]any{"path": "metrics", "title": "Metrics"})

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthCheck", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	s.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `transporter_records_imported_total{entity="Journal",outcome="created"} 1`)
}

func TestPluginInfo(t *testing.T) {
	s := newServer(t)

	rr, resp := s.do(t, http.MethodGet, "/plugin", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, resp.Data.(map[string]any)["short_name"])
}
