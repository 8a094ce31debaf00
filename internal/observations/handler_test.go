package observations_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"tramites-backend/internal/bootstrap"
	"tramites-backend/internal/observations"
	"tramites-backend/internal/shared/config"
)

func newTestApp(t *testing.T) (*bootstrap.App, *observations.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	repo, ok := app.ObservationsRepo.(*observations.MemoryRepo)
	if !ok {
		t.Fatalf("expected in-memory observations repo")
	}
	return app, repo
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-User-Id", "42")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestStatusEndpoint(t *testing.T) {
	app, repo := newTestApp(t)

	repo.Add(observations.Observation{TramiteID: 11, Stage: 3, UserID: 5, RoleID: 2, Approved: false, Remark: "corregir marco teórico"})
	repo.Add(observations.Observation{TramiteID: 11, Stage: 3, UserID: 6, RoleID: 2, Approved: true})

	resp := get(t, app.Router, "/api/v1/observations/status/11/3")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var status struct {
		HasCorrections             bool `json:"hasCorrections"`
		PendingCount               int  `json:"pendingCount"`
		AlreadySubmittedCorrection bool `json:"alreadySubmittedCorrection"`
		Observations               []struct {
			Remark string `json:"remark"`
		} `json:"observations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !status.HasCorrections || status.PendingCount != 1 {
		t.Fatalf("status = %+v, want one pending correction", status)
	}
	if status.AlreadySubmittedCorrection {
		t.Fatalf("no correction submitted yet")
	}
	if len(status.Observations) != 2 {
		t.Fatalf("observations = %d, want 2", len(status.Observations))
	}
}

func TestStatusEndpointRejectsStageOutsideCycle(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app.Router, "/api/v1/observations/status/11/9")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAllEndpointGroupsByStage(t *testing.T) {
	app, repo := newTestApp(t)

	repo.Add(observations.Observation{TramiteID: 11, Stage: 2, UserID: 5, RoleID: 2, Approved: false, Remark: "a"})
	repo.Add(observations.Observation{TramiteID: 11, Stage: 3, UserID: 5, RoleID: 2, Approved: false, Remark: "b"})
	repo.Add(observations.Observation{TramiteID: 11, Stage: 14, UserID: 5, RoleID: 2, Approved: false, Remark: "demasiado nueva"})

	resp := get(t, app.Router, "/api/v1/observations/all/11/11")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var grouped struct {
		Stages  []int                        `json:"stages"`
		ByStage map[string][]json.RawMessage `json:"byStage"`
		Total   int                          `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&grouped); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if grouped.Total != 2 {
		t.Fatalf("total = %d, want 2 (stage 14 is beyond the current stage)", grouped.Total)
	}
	if _, ok := grouped.ByStage["14"]; ok {
		t.Fatalf("stage 14 observations leaked into the response")
	}
}

func TestFileTypesEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app.Router, "/api/v1/observations/file-types/16")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var entries []struct {
		ID         int    `json:"id"`
		Name       string `json:"name"`
		Obligatory bool   `json:"obligatory"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.ID != 20 && e.ID != 21 {
			t.Fatalf("unexpected file type %d", e.ID)
		}
		if !e.Obligatory {
			t.Fatalf("type %d should be obligatory on first pass", e.ID)
		}
	}

	// Once a correction round exists nothing stays obligatory for stage 16.
	resp = get(t, app.Router, "/api/v1/observations/file-types/16?alreadyCorrected=true")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, e := range entries {
		if e.Obligatory {
			t.Fatalf("type %d should not be obligatory after a correction", e.ID)
		}
	}
}
