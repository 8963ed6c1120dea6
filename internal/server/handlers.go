package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julianstephens/ledger/internal/ai"
	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/errors"
	"github.com/julianstephens/ledger/internal/insights"
	"github.com/julianstephens/ledger/internal/ledger"
	"github.com/julianstephens/ledger/internal/logger"
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/utils"
)

// maxBodyBytes bounds request bodies; entries are a few kilobytes at most.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string              `json:"error"`
	Kind   string              `json:"kind"`
	Fields []errors.FieldError `json:"fields,omitempty"`
}

type editableResponse struct {
	Date     string `json:"date"`
	Today    string `json:"today"`
	Editable bool   `json:"editable"`
}

type questRequest struct {
	Quest string `json:"quest"`
}

type tagsRequest struct {
	Text string `json:"text"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

type aiQuestRequest struct {
	WorkLog string         `json:"workLog"`
	Mood    constants.Mood `json:"mood"`
}

type aiQuestResponse struct {
	Quest string `json:"quest"`
}

type sparklineResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Points []int  `json:"points"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// statusFor maps an error category to its HTTP status
func statusFor(err error) (int, string) {
	if stderrors.Is(err, ai.ErrUnavailable) {
		return http.StatusServiceUnavailable, "unavailable"
	}
	switch kind := errors.Kind(err); kind {
	case "validation":
		return http.StatusUnprocessableEntity, kind
	case "read_only":
		return http.StatusForbidden, kind
	case "not_found":
		return http.StatusNotFound, kind
	case "persistence":
		return http.StatusServiceUnavailable, kind
	default:
		return http.StatusInternalServerError, kind
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, kind := statusFor(err)
	resp := errorResponse{Error: err.Error(), Kind: kind}
	var verr *errors.ValidationError
	if stderrors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err, "kind", kind)
	}
	writeJSON(w, status, resp)
}

func writeBadRequest(w http.ResponseWriter, format string, args ...any) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf(format, args...), Kind: "bad_request"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return false
	}
	return true
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, raw)
	}
	return n, nil
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	var (
		entries []models.Entry
		err     error
	)
	if from == "" && to == "" {
		entries, err = s.svc.Entries()
	} else {
		if from == "" {
			from = "0000-01-01"
		}
		if to == "" {
			to = "9999-12-31"
		}
		entries, err = s.svc.EntriesBetween(from, to)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.svc.Entry(r.PathValue("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleSaveEntry(w http.ResponseWriter, r *http.Request) {
	var draft models.Entry
	if !decodeBody(w, r, &draft) {
		return
	}
	date := r.PathValue("date")
	if draft.Date != "" && draft.Date != date {
		writeBadRequest(w, "body date %s does not match path date %s", draft.Date, date)
		return
	}
	draft.Date = date

	saved, err := s.svc.Save(draft)
	s.metrics.saves.WithLabelValues("save", outcome(err)).Inc()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleSetQuest(w http.ResponseWriter, r *http.Request) {
	var req questRequest
	if !decodeBody(w, r, &req) {
		return
	}
	saved, err := s.svc.SetQuest(r.PathValue("date"), req.Quest)
	s.metrics.saves.WithLabelValues("quest", outcome(err)).Inc()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleEditable(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if err := s.svc.Validator().ValidateDate(date); err != nil {
		writeError(w, err)
		return
	}
	today, err := s.svc.Today()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, editableResponse{Date: date, Today: today, Editable: ledger.IsEditable(date, today)})
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", constants.DefaultSkillLimit)
	if err != nil {
		writeBadRequest(w, "%v", err)
		return
	}
	entries, err := s.svc.Entries()
	if err != nil {
		writeError(w, err)
		return
	}
	now, err := s.svc.Now()
	if err != nil {
		writeError(w, err)
		return
	}
	skills := insights.Skills(entries, now, limit)
	if skills == nil {
		skills = []insights.Skill{}
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.Entries()
	if err != nil {
		writeError(w, err)
		return
	}
	now, err := s.svc.Now()
	if err != nil {
		writeError(w, err)
		return
	}
	badges := insights.Badges(entries, insights.Skills(entries, now, constants.DefaultSkillLimit))
	if badges == nil {
		badges = []insights.Badge{}
	}
	writeJSON(w, http.StatusOK, badges)
}

func (s *Server) handleLeaks(w http.ResponseWriter, r *http.Request) {
	top, err := intParam(r, "top", constants.TopLeakCount)
	if err != nil {
		writeBadRequest(w, "%v", err)
		return
	}
	entries, err := s.svc.Entries()
	if err != nil {
		writeError(w, err)
		return
	}

	ref := r.URL.Query().Get("month")
	if ref == "" {
		if ref, err = s.svc.Today(); err != nil {
			writeError(w, err)
			return
		}
	} else {
		ref += "-01"
		if err := s.svc.Validator().ValidateDate(ref); err != nil {
			writeError(w, err)
			return
		}
	}

	leaks := insights.TopLeaks(entries, ref, top)
	if leaks == nil {
		leaks = []insights.LeakCount{}
	}
	writeJSON(w, http.StatusOK, leaks)
}

func (s *Server) handleSparkline(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", constants.SparklineDays)
	if err != nil || days == 0 {
		writeBadRequest(w, "days must be a positive integer")
		return
	}
	entries, err := s.svc.Entries()
	if err != nil {
		writeError(w, err)
		return
	}
	today, err := s.svc.Today()
	if err != nil {
		writeError(w, err)
		return
	}

	points := insights.Sparkline(entries, today, days)
	from, err := utils.AddDays(today, -(days - 1))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sparklineResponse{From: from, To: today, Points: points})
}

func (s *Server) handleGrimoire(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.Entries()
	if err != nil {
		writeError(w, err)
		return
	}
	snippets := insights.FilterSnippets(insights.Harvest(entries), r.URL.Query().Get("filter"))
	if kind := r.URL.Query().Get("kind"); kind != "" {
		kept := snippets[:0]
		for _, sn := range snippets {
			if string(sn.Kind) == kind {
				kept = append(kept, sn)
			}
		}
		snippets = kept
	}
	if snippets == nil {
		snippets = []insights.Snippet{}
	}
	writeJSON(w, http.StatusOK, snippets)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeBadRequest(w, "query parameter q is required")
		return
	}
	entries, err := s.svc.Entries()
	if err != nil {
		writeError(w, err)
		return
	}
	matches := insights.Search(entries, query)
	if matches == nil {
		matches = []insights.Match{}
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleAITags(w http.ResponseWriter, r *http.Request) {
	if !s.enricher.Available() {
		s.metrics.aiCalls.WithLabelValues("tags", "unavailable").Inc()
		writeError(w, ai.ErrUnavailable)
		return
	}
	var req tagsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tags := s.enricher.SmartTags(r.Context(), req.Text)
	if tags == nil {
		tags = []string{}
	}
	s.metrics.aiCalls.WithLabelValues("tags", "ok").Inc()
	writeJSON(w, http.StatusOK, tagsResponse{Tags: tags})
}

func (s *Server) handleAIQuest(w http.ResponseWriter, r *http.Request) {
	if !s.enricher.Available() {
		s.metrics.aiCalls.WithLabelValues("quest", "unavailable").Inc()
		writeError(w, ai.ErrUnavailable)
		return
	}
	var req aiQuestRequest
	if !decodeBody(w, r, &req) {
		return
	}
	quest, err := s.enricher.Quest(r.Context(), req.WorkLog, req.Mood)
	s.metrics.aiCalls.WithLabelValues("quest", outcome(err)).Inc()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, aiQuestResponse{Quest: quest})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.Store().GetSettings(); err != nil {
		writeError(w, errors.Persistence("health check", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
