package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racidash/adapters/memory"
	"racidash/app"
	"racidash/internal/config"
)

var testCSV = "Task,Owner,Reviewer\nDeploy service,R,C\nReview design,A,R\n"

func newTestServer(t *testing.T) (*Server, *app.DatasetService) {
	t.Helper()
	service := app.NewDatasetService(memory.NewSnapshotRepository())
	cfg := config.Load()
	cfg.Server.GinMode = gin.TestMode
	return NewServer(service, cfg), service
}

func uploadRequest(t *testing.T, filename, sheet, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	if sheet != "" {
		require.NoError(t, w.WriteField("sheet", sheet))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// TestHealthz tests the liveness route
func TestHealthz(t *testing.T) {
	server, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestDataWithoutDataset tests the 404 empty state
func TestDataWithoutDataset(t *testing.T) {
	server, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestUploadAndData tests the upload-then-read flow
func TestUploadAndData(t *testing.T) {
	server, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, uploadRequest(t, "matrix.csv", "", testCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Roles []struct {
			ID string `json:"id"`
		} `json:"roles"`
		Meta struct {
			Filename string `json:"filename"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "matrix.csv", payload.Meta.Filename)
	require.Len(t, payload.Roles, 2)
	assert.Equal(t, "owner", payload.Roles[0].ID)
}

// TestUploadUnparseable tests the 422 mapping for parse failures
func TestUploadUnparseable(t *testing.T) {
	server, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, uploadRequest(t, "people.csv", "", "Name,Age\nAnn,34\nBen,41\nCat,29\n"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NO_RACI_COLUMNS", body["code"])
}

// TestUploadMissingFile tests the 400 on a bad form
func TestUploadMissingFile(t *testing.T) {
	server, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("not a form"))
	server.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestUpdateCellRoute tests the PUT cell edit route
func TestUpdateCellRoute(t *testing.T) {
	server, service := newTestServer(t)
	_, err := service.LoadBytes(context.Background(), []byte(testCSV), "matrix.csv", "")
	require.NoError(t, err)

	body := `{"capability":"Deploy service","role_id":"reviewer","value":"A"}`
	req := httptest.NewRequest(http.MethodPut, "/api/raci/cell", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	item := service.Current().FindCapability("", "Deploy service")
	assert.Equal(t, "A", item.Assignments["reviewer"])

	// Unknown capability maps to 404
	body = `{"capability":"Nope","role_id":"reviewer","value":"A"}`
	req = httptest.NewRequest(http.MethodPut, "/api/raci/cell", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestExportHTMLRoute tests the export download
func TestExportHTMLRoute(t *testing.T) {
	server, service := newTestServer(t)
	_, err := service.LoadBytes(context.Background(), []byte(testCSV), "matrix.csv", "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/export/html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "window.__RACI_DATA__")
}

// TestExportPowerBIRoute tests the kit download
func TestExportPowerBIRoute(t *testing.T) {
	server, service := newTestServer(t)
	_, err := service.LoadBytes(context.Background(), []byte(testCSV), "matrix.csv", "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/export/powerbi", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
}

// TestHistoryRoute tests the snapshot listing
func TestHistoryRoute(t *testing.T) {
	server, service := newTestServer(t)
	_, err := service.LoadBytes(context.Background(), []byte(testCSV), "matrix.csv", "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 1, payload.Count)
}
