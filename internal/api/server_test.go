package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avelinek/campusdays/internal/engine"
	"github.com/avelinek/campusdays/internal/rng"
	"github.com/avelinek/campusdays/internal/rules"
)

func newTestServer(t *testing.T, wallet int) *Server {
	t.Helper()
	w, err := engine.New(rules.Default(), rng.NewSequence(0.99), engine.Options{
		PlayerName: "Aki",
		Wallet:     wallet,
		StartDate:  time.Date(2026, time.April, 7, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	return &Server{World: w, AdminKey: "sesame"}
}

func do(t *testing.T, s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t, 10000)

	rec := do(t, s, http.MethodGet, "/api/v1/status", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	out := decode(t, rec)
	if out["player"] != "Aki" {
		t.Errorf("player = %v, want Aki", out["player"])
	}
	if out["date"] != "2026-04-07" {
		t.Errorf("date = %v", out["date"])
	}
}

func TestAdminEndpointsGated(t *testing.T) {
	s := newTestServer(t, 10000)

	if rec := do(t, s, http.MethodPost, "/api/v1/command", `{"op":"move_to","location":"gym"}`, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want 401", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/command", "", "sesame"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: status = %d, want 405", rec.Code)
	}

	s.AdminKey = ""
	if rec := do(t, s, http.MethodPost, "/api/v1/command", `{"op":"move_to"}`, "sesame"); rec.Code != http.StatusForbidden {
		t.Errorf("no admin key configured: status = %d, want 403", rec.Code)
	}
}

func TestCommandDispatch(t *testing.T) {
	s := newTestServer(t, 10000)

	rec := do(t, s, http.MethodPost, "/api/v1/command", `{"op":"adjust_relationship","target":"mika","amount":25}`, "sesame")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	out := decode(t, rec)
	if out["tier"] != "Acquaintance" || out["score"].(float64) != 25 {
		t.Errorf("response = %v", out)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/command", `{"op":"start_courtship","target":"rin"}`, "sesame")
	if rec.Code != http.StatusOK {
		t.Fatalf("start_courtship: %d: %s", rec.Code, rec.Body.String())
	}
	rec = do(t, s, http.MethodPost, "/api/v1/command", `{"op":"grant_romance","target":"rin","amount":30}`, "sesame")
	if rec.Code != http.StatusOK {
		t.Fatalf("grant_romance: %d: %s", rec.Code, rec.Body.String())
	}
	out = decode(t, rec)
	if stages := out["advanced"].([]any); len(stages) != 2 {
		t.Errorf("advanced = %v, want two stages", stages)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/command", `{"op":"move_to","location":"library"}`, "sesame")
	if rec.Code != http.StatusOK {
		t.Fatalf("move_to: %d", rec.Code)
	}
	if s.World.Location != "library" {
		t.Errorf("location = %q, want library", s.World.Location)
	}
}

func TestCommandErrors(t *testing.T) {
	s := newTestServer(t, 100) // cannot afford therapy

	if rec := do(t, s, http.MethodPost, "/api/v1/command", `{"op":"attend_therapy"}`, "sesame"); rec.Code != http.StatusConflict {
		t.Errorf("unaffordable therapy: status = %d, want 409", rec.Code)
	}
	if s.World.Wallet != 100 {
		t.Errorf("wallet = %d, failed command must not mutate", s.World.Wallet)
	}

	if rec := do(t, s, http.MethodPost, "/api/v1/command", `{"op":"levitate"}`, "sesame"); rec.Code != http.StatusConflict {
		t.Errorf("unknown op: status = %d, want 409", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/command", `{"op":"create_rumor","content":"x","rumor_type":"cosmic"}`, "sesame"); rec.Code != http.StatusConflict {
		t.Errorf("unknown rumor type: status = %d, want 409", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/command", `{not json`, "sesame"); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", rec.Code)
	}
}

func TestCreateRumorCommand(t *testing.T) {
	s := newTestServer(t, 10000)

	rec := do(t, s, http.MethodPost, "/api/v1/command", `{"op":"create_rumor","content":"seen at the arcade","rumor_type":"social","originator":"mika"}`, "sesame")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	out := decode(t, rec)
	if out["id"] == "" || out["spread"].(float64) != 1 {
		t.Errorf("response = %v", out)
	}
	if s.World.Rumors.Len() != 1 {
		t.Errorf("pool size = %d, want 1", s.World.Rumors.Len())
	}
}

func TestSummaryFollowsAdvanceDay(t *testing.T) {
	s := newTestServer(t, 10000)

	if rec := do(t, s, http.MethodGet, "/api/v1/summary", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("summary before any day: status = %d, want 404", rec.Code)
	}

	if rec := do(t, s, http.MethodPost, "/api/v1/advance-day", "", "sesame"); rec.Code != http.StatusOK {
		t.Fatalf("advance-day: status = %d: %s", rec.Code, rec.Body.String())
	}

	rec := do(t, s, http.MethodGet, "/api/v1/summary", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: status = %d", rec.Code)
	}
	out := decode(t, rec)
	if !strings.HasPrefix(out["date"].(string), "2026-04-08") {
		t.Errorf("summary date = %v, want 2026-04-08", out["date"])
	}
}
