package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estatedesk/platform/httpkit"
	"estatedesk/platform/validator"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	// A nil service is safe here: ID parsing rejects the request before the
	// service is touched.
	h := New(nil, validator.New())
	h.RegisterLeadRoutes(engine.Group("/leads"))
	h.RegisterMatchRoutes(engine.Group("/matches"))

	return engine
}

func TestListForLead_InvalidLeadID(t *testing.T) {
	engine := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/leads/not-a-uuid/matches", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp httpkit.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != msgInvalidLeadID {
		t.Fatalf("expected %q, got %q", msgInvalidLeadID, resp.Error)
	}
}

func TestRegenerateForLead_InvalidLeadID(t *testing.T) {
	engine := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leads/42/matches/regenerate", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSetApproved_InvalidMatchID(t *testing.T) {
	engine := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/matches/nope/approve", strings.NewReader(`{"approved":true}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp httpkit.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != msgInvalidMatchID {
		t.Fatalf("expected %q, got %q", msgInvalidMatchID, resp.Error)
	}
}
