package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"tabroom-plus/notes"
	"tabroom-plus/power"
	"tabroom-plus/rankings"
	"tabroom-plus/tabroom"
	"tabroom-plus/templates"
)

// maxPageBytes bounds pasted page HTML.
const maxPageBytes = 8 << 20

func (s *server) homeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Only GET allowed", http.StatusMethodNotAllowed)
		return
	}

	all, err := s.book.JudgeNotes(r.Context())
	if err != nil {
		s.serverError(w, "Could not load judge notes", err)
		return
	}
	starred, err := s.book.Starred(r.Context())
	if err != nil {
		s.serverError(w, "Could not load starred tournaments", err)
		return
	}

	data := templates.HomePageData{
		RankingsURL: s.cfg.RankingsURL,
		JudgeNotes:  judgeNoteViews(all),
	}
	for _, t := range starred {
		data.Starred = append(data.Starred, templates.TournamentView{ID: t.ID, Name: t.Name, URL: t.URL, Starred: true})
	}

	templ.Handler(templates.Home(data)).ServeHTTP(w, r)
}

func (s *server) analyzeRoundHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := pageField(w, r)
	if err != nil {
		badRequest(w, err)
		return
	}
	pairings, err := tabroom.ParsePairings(strings.NewReader(page))
	if errors.Is(err, tabroom.ErrNoPairingsTable) {
		http.Error(w, "Could not find Gov/Opp or Aff/Neg columns", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	table, ok := s.loadRankings(w, r)
	if !ok {
		return
	}
	judgeNotes, err := s.book.JudgeNotes(r.Context())
	if err != nil {
		s.serverError(w, "Could not load judge notes", err)
		return
	}

	analysis := analyzeRound(s.rankings.Normalizer(), table, pairings, judgeNotes, s.cfg.Margin)
	s.logger.Info("round analyzed", zap.Int("pairings", len(analysis.Rows)), zap.Int("teams", analysis.RankedTeams))

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, analysis)
		return
	}
	templates.RoundResults(analysis).Render(r.Context(), w)
}

type classifyRequest struct {
	Pairings []TeamPair `json:"pairings"`
}

func (s *server) classifyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}

	var req classifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	table, ok := s.loadRankings(w, r)
	if !ok {
		return
	}

	out := make([]ClassifiedPair, 0, len(req.Pairings))
	for _, p := range req.Pairings {
		out = append(out, classifyPair(s.rankings.Normalizer(), table, p, s.cfg.Margin))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) resolveHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Only GET allowed", http.StatusMethodNotAllowed)
		return
	}
	text := r.URL.Query().Get("team")
	if text == "" {
		http.Error(w, "team required", http.StatusBadRequest)
		return
	}

	table, ok := s.loadRankings(w, r)
	if !ok {
		return
	}

	team := s.rankings.Normalizer().ResolveTeam(table, text)
	if team == nil {
		http.Error(w, "No data", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}
	table, err := s.rankings.Refresh(r.Context())
	if err != nil {
		s.rankingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"teams": table.Len()})
}

func (s *server) powerScoreHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := pageField(w, r)
	if err != nil {
		badRequest(w, err)
		return
	}
	rec, err := tabroom.ParseEntryRecord(strings.NewReader(page))
	if errors.Is(err, tabroom.ErrNoEntryRecord) {
		http.Error(w, "Not an entry record page", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	res := power.Compute(rec.Rows)
	badge := templates.PowerBadge{Entry: rec.Entry, Score: res.Score, Label: res.Label}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, badge)
		return
	}
	templates.Badge(badge).Render(r.Context(), w)
}

type saveNoteRequest struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

func (s *server) judgeNotesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		all, err := s.book.JudgeNotes(r.Context())
		if err != nil {
			s.serverError(w, "Could not load judge notes", err)
			return
		}
		writeJSON(w, http.StatusOK, all)
	case http.MethodPost:
		var req saveNoteRequest
		if err := decodeJSON(w, r, &req); err != nil {
			badRequest(w, err)
			return
		}
		if req.Key == "" {
			http.Error(w, "key required", http.StatusBadRequest)
			return
		}
		note, saved, err := s.book.SaveJudgeNote(r.Context(), req.Key, req.Text)
		if err != nil {
			s.serverError(w, "Could not save judge note", err)
			return
		}
		if !saved {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, note)
	default:
		http.Error(w, "Only GET or POST allowed", http.StatusMethodNotAllowed)
	}
}

func (s *server) starredHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.book.Starred(r.Context())
		if err != nil {
			s.serverError(w, "Could not load starred tournaments", err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var t notes.Tournament
		if err := decodeJSON(w, r, &t); err != nil {
			badRequest(w, err)
			return
		}
		if t.ID == "" {
			http.Error(w, "id required", http.StatusBadRequest)
			return
		}
		starred, err := s.book.ToggleStar(r.Context(), t)
		if err != nil {
			s.serverError(w, "Could not save starred tournaments", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"starred": starred})
	default:
		http.Error(w, "Only GET or POST allowed", http.StatusMethodNotAllowed)
	}
}

// upcomingHandler lists the tournaments on a pasted upcoming tournaments
// page, marking the starred ones.
func (s *server) upcomingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := pageField(w, r)
	if err != nil {
		badRequest(w, err)
		return
	}
	listings, err := tabroom.ParseUpcoming(strings.NewReader(page))
	if errors.Is(err, tabroom.ErrNoUpcomingTable) {
		http.Error(w, "Not an upcoming tournaments page", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	starred, err := s.book.Starred(r.Context())
	if err != nil {
		s.serverError(w, "Could not load starred tournaments", err)
		return
	}
	isStarred := make(map[string]bool, len(starred))
	for _, t := range starred {
		isStarred[t.ID] = true
	}

	out := make([]templates.TournamentView, 0, len(listings))
	for _, l := range listings {
		out = append(out, templates.TournamentView{ID: l.ID, Name: l.Name, URL: l.URL, Starred: isStarred[l.ID]})
	}
	writeJSON(w, http.StatusOK, out)
}

// loadRankings writes the error response itself and reports false on failure.
func (s *server) loadRankings(w http.ResponseWriter, r *http.Request) (rankings.Table, bool) {
	table, err := s.rankings.EnsureLoaded(r.Context())
	if err != nil {
		s.rankingsError(w, err)
		return nil, false
	}
	return table, true
}

func (s *server) rankingsError(w http.ResponseWriter, err error) {
	var fetchErr *rankings.FetchError
	if errors.As(err, &fetchErr) {
		s.logger.Warn("rankings unavailable", zap.Error(err))
		http.Error(w, "Failed to fetch rankings", http.StatusBadGateway)
		return
	}
	s.serverError(w, "Failed to load rankings", err)
}

func (s *server) serverError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	http.Error(w, msg, http.StatusInternalServerError)
}

// pageField returns the posted "page" form value, or the raw body when the
// request is not a form. Bodies over maxPageBytes fail with *http.MaxBytesError.
func pageField(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPageBytes)
	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxPageBytes); err != nil {
			return "", err
		}
		return r.PostFormValue("page"), nil
	case strings.HasPrefix(ct, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			return "", err
		}
		return r.PostFormValue("page"), nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPageBytes)).Decode(dst)
}

// badRequest answers 413 for an oversized body and 400 otherwise.
func badRequest(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, "Bad Request", http.StatusBadRequest)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func judgeNoteViews(all map[string]notes.JudgeNote) []templates.JudgeNoteView {
	views := make([]templates.JudgeNoteView, 0, len(all))
	for key, n := range all {
		views = append(views, templates.JudgeNoteView{
			Key:       key,
			Text:      n.Text,
			UpdatedAt: time.UnixMilli(n.UpdatedAt).Format("2006-01-02 15:04"),
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Key < views[j].Key })
	return views
}
