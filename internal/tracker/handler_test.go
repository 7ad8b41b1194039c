package tracker

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/shared/server/middleware"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ClientID())
	NewHandler(newTestService()).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, clientID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if clientID != "" {
		req.Header.Set("X-Client-Id", clientID)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestTrackerLifecycle(t *testing.T) {
	r := setupRouter(t)

	resp := do(t, r, http.MethodPost, "/api/v1/tracker", "alice", map[string]string{
		"url":     "https://www.indeed.com/viewjob?jk=1",
		"company": "Acme",
		"role":    "Engineer",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created EntryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Platform != "Indeed" || created.Status != StatusApplied {
		t.Fatalf("unexpected entry: %+v", created)
	}

	resp = do(t, r, http.MethodPatch, "/api/v1/tracker/"+created.ID, "alice", map[string]string{"status": "Offer"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = do(t, r, http.MethodGet, "/api/v1/tracker", "alice", nil)
	var listed struct {
		Entries []EntryResponse `json:"entries"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Entries) != 1 || listed.Entries[0].Status != StatusOffer {
		t.Fatalf("unexpected list: %+v", listed.Entries)
	}

	resp = do(t, r, http.MethodGet, "/api/v1/tracker", "bob", nil)
	if err := json.Unmarshal(resp.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Entries) != 0 {
		t.Fatalf("entries leaked across clients")
	}

	resp = do(t, r, http.MethodDelete, "/api/v1/tracker/"+created.ID, "alice", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	resp = do(t, r, http.MethodDelete, "/api/v1/tracker/"+created.ID, "alice", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestTrackerRejectsBadStatus(t *testing.T) {
	r := setupRouter(t)
	resp := do(t, r, http.MethodPost, "/api/v1/tracker", "", map[string]string{"status": "Ghosted"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Error.Code != "validation_error" {
		t.Fatalf("unexpected code %q", body.Error.Code)
	}
}

func TestTrackerMalformedIDWithPostgresStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo, mock := newMockRepo(t)
	r := gin.New()
	r.Use(middleware.ClientID())
	NewHandler(NewService(repo)).RegisterRoutes(r.Group("/api/v1"))

	if resp := do(t, r, http.MethodPatch, "/api/v1/tracker/abc", "alice", map[string]string{"status": "Offer"}); resp.Code != http.StatusNotFound {
		t.Fatalf("PATCH: expected 404, got %d", resp.Code)
	}
	if resp := do(t, r, http.MethodDelete, "/api/v1/tracker/abc", "alice", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("DELETE: expected 404, got %d", resp.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
