// Package api serves the world state over HTTP. GET endpoints are public
// read-only observation; POST endpoints mutate the world and require a bearer
// token. The engine itself is single-threaded, so every handler takes the
// server mutex before touching it.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/avelinek/campusdays/internal/engine"
	"github.com/avelinek/campusdays/internal/persistence"
	"github.com/avelinek/campusdays/internal/rumor"
)

// Server serves the world state over HTTP.
type Server struct {
	World    *engine.World
	Store    *persistence.Store
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	mu sync.Mutex
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public read-only endpoints.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/summary", s.handleSummary)
	mux.HandleFunc("/api/v1/relationships", s.handleRelationships)
	mux.HandleFunc("/api/v1/rumors", s.handleRumors)
	mux.HandleFunc("/api/v1/exes", s.handleExes)
	mux.HandleFunc("/api/v1/days", s.handleDays)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/advance-day", s.adminOnly(s.handleAdvanceDay))
	mux.HandleFunc("/api/v1/advance-tick", s.adminOnly(s.handleAdvanceTick))
	mux.HandleFunc("/api/v1/command", s.adminOnly(s.handleCommand))
	mux.HandleFunc("/api/v1/save", s.adminOnly(s.handleSave))

	return mux
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	handler := s.Handler()
	go func() {
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// adminOnly gates a handler behind the bearer token.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled", http.StatusForbidden)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	world := s.World
	cal := world.Calendar
	dayOfYear := int(cal.YearProgress / 100 * 365)

	writeJSON(w, map[string]any{
		"player":        world.PlayerName,
		"date":          cal.Date.Format("2006-01-02"),
		"tick":          cal.Tick,
		"school_year":   cal.SchoolYear,
		"year_progress": fmt.Sprintf("%.1f%% (%s day)", cal.YearProgress, humanize.Ordinal(dayOfYear)),
		"category":      cal.Categorize(cal.Date).String(),
		"accommodation": cal.Accommodation.String(),
		"holiday_mode":  cal.HolidayMode,
		"location":      world.Location,
		"wallet":        humanize.Comma(int64(world.Wallet)),
		"resources":     world.Resources,
		"mental":        world.Mental,
		"happiness":     world.Mental.Happiness(),
		"reputation":    world.Reputation,
		"atmosphere":    world.Atmosphere.Description(cal.Date),
		"year_complete": cal.YearComplete,
	})
}

// handleSummary returns the most recently completed day's report.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.World.LastDay == nil {
		http.Error(w, "no day completed yet", http.StatusNotFound)
		return
	}
	writeJSON(w, s.World.LastDay)
}

func (s *Server) handleRelationships(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type entry struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
		Tier  string `json:"tier"`
	}
	var out []entry
	for _, name := range s.World.Ledger.Names() {
		score := s.World.Ledger.Score(name)
		out = append(out, entry{Name: name, Score: score, Tier: s.World.Ledger.TierOf(score)})
	}
	writeJSON(w, map[string]any{
		"relationships": out,
		"romance":       s.World.Romance.Export(),
	})
}

func (s *Server) handleRumors(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.World.Rumors.Export())
}

func (s *Server) handleExes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.World.Exes.Export())
}

func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeJSON(w, []persistence.DayRow{})
		return
	}
	limit := 30
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 365 {
			limit = n
		}
	}
	rows, err := s.Store.RecentDays(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rows)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.World.Events
	if len(events) > 50 {
		events = events[len(events)-50:]
	}
	writeJSON(w, events)
}

func (s *Server) handleAdvanceDay(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum, err := s.World.AdvanceDay()
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if s.Store != nil {
		if err := s.Store.AppendDay(sum); err != nil {
			slog.Error("append day log", "error", err)
		}
		if err := s.Store.SaveSnapshot("auto", s.World.Snapshot()); err != nil {
			slog.Error("autosave failed", "error", err)
		}
	}
	writeJSON(w, sum)
}

func (s *Server) handleAdvanceTick(w http.ResponseWriter, r *http.Request) {
	n := 1
	if q := r.URL.Query().Get("n"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 {
			http.Error(w, "n must be a positive integer", http.StatusBadRequest)
			return
		}
		n = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.World.AdvanceTick(n)
	writeJSON(w, map[string]int{"tick": s.World.Calendar.Tick})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "no store configured", http.StatusServiceUnavailable)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot := r.URL.Query().Get("slot")
	if slot == "" {
		slot = "manual"
	}
	if err := s.Store.SaveSnapshot(slot, s.World.Snapshot()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"saved": slot})
}

// commandRequest is the JSON body of the command dispatcher. Which fields
// matter depends on the op; unused ones are ignored.
type commandRequest struct {
	Op         string `json:"op"`
	Target     string `json:"target"`
	Amount     int    `json:"amount"`
	Content    string `json:"content"`
	RumorType  string `json:"rumor_type"`
	Originator string `json:"originator"`
	Severity   int    `json:"severity"`
	Done       bool   `json:"done"`
	Location   string `json:"location"`
}

// handleCommand dispatches one engine command named by the request body.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.dispatch(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, out)
}

func (s *Server) dispatch(req commandRequest) (any, error) {
	world := s.World
	switch req.Op {
	case "move_to":
		world.MoveTo(req.Location)
		return map[string]string{"location": world.Location}, nil

	case "set_homework":
		world.SetHomework(req.Done)
		return map[string]bool{"homework_done": world.HomeworkDone}, nil

	case "adjust_relationship":
		tier, changed := world.AdjustRelationship(req.Target, req.Amount)
		return map[string]any{
			"score":        world.Ledger.Score(req.Target),
			"tier":         tier,
			"tier_changed": changed,
		}, nil

	case "start_courtship":
		return map[string]string{"partner": req.Target}, world.StartCourtship(req.Target)

	case "set_active_partner":
		return map[string]string{"active": req.Target}, world.SetActivePartner(req.Target)

	case "grant_romance":
		advanced, err := world.GrantRomancePoints(req.Target, req.Amount)
		if err != nil {
			return nil, err
		}
		return map[string]any{"advanced": advanced, "harem": world.Romance.HaremUnlocked()}, nil

	case "break_up":
		rec, err := world.BreakUp(req.Target)
		if err != nil {
			return nil, err
		}
		return map[string]string{"ex": rec.Name, "status": rec.Status.String()}, nil

	case "suffer_rejection":
		rec, err := world.SufferRejection(req.Target)
		if err != nil {
			return nil, err
		}
		return map[string]string{"ex": rec.Name, "status": rec.Status.String()}, nil

	case "create_rumor":
		t, err := rumor.ParseType(req.RumorType)
		if err != nil {
			return nil, err
		}
		created := world.CreateRumor(req.Content, t, req.Target, req.Originator)
		return map[string]any{"id": created.ID, "spread": created.Spread}, nil

	case "roll_ex_event":
		out, err := world.RollExPartnerEvent(req.Target)
		if err != nil {
			return nil, err
		}
		return out, nil

	case "confirm_reconciliation":
		return map[string]string{"partner": req.Target}, world.ConfirmReconciliation(req.Target)

	case "offer_ex_therapy":
		accepted, err := world.OfferExTherapy(req.Target)
		if err != nil {
			return nil, err
		}
		return map[string]bool{"accepted": accepted}, nil

	case "run_ex_therapy":
		improved, status, err := world.RunExTherapySession(req.Target)
		if err != nil {
			return nil, err
		}
		return map[string]any{"improved": improved, "status": status.String()}, nil

	case "attend_therapy":
		if err := world.AttendTherapy(); err != nil {
			return nil, err
		}
		return map[string]any{"wallet": world.Wallet, "sessions": world.Mental.TherapySessions}, nil

	case "report_bullying":
		world.ProcessBullyingEvent(req.Severity)
		return map[string]any{
			"incidents": world.Mental.BullyingIncidents,
			"stress":    world.Resources.Stress,
		}, nil
	}
	return nil, fmt.Errorf("unknown op %q", req.Op)
}
