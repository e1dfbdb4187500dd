// Package server exposes hosted games over HTTP and WebSocket.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"patience/engine"
	"patience/internal/cache"
	"patience/internal/game"
	"patience/internal/share"
	"patience/internal/store"
)

// Server wires the session registry to its transports and optional
// persistence backends.
type Server struct {
	registry *game.Registry
	store    *store.Store
	cache    *cache.Cache
	share    *share.Builder
	log      *logrus.Logger

	mu   sync.Mutex
	hubs map[uuid.UUID]*hub
}

// New assembles a Server. store and cache may be nil.
func New(st *store.Store, c *cache.Cache, sh *share.Builder, log *logrus.Logger) *Server {
	return &Server{
		registry: game.NewRegistry(),
		store:    st,
		cache:    c,
		share:    sh,
		log:      log,
		hubs:     make(map[uuid.UUID]*hub),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/daily", s.handleDaily)
	r.Post("/games", s.handleCreateGame)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetGame)
		r.Get("/share", s.handleShare)
		r.Get("/share/qr", s.handleShareQR)
		r.Get("/history", s.handleHistory)
		r.Delete("/", s.handleFinishGame)
		r.Get("/ws", s.handleWS)
	})
	r.Get("/seeds/{seed}/stats", s.handleSeedStats)
	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("response write failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid game id")
		return nil, false
	}
	sess, ok := s.registry.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "game not found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createGameRequest struct {
	Seed    *int64 `json:"seed,omitempty"`
	Variant string `json:"variant"`
	Daily   bool   `json:"daily,omitempty"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	variant, ok := engine.ParseVariant(req.Variant)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "unknown variant")
		return
	}

	var seed int64
	switch {
	case req.Daily:
		seed = share.DailySeed(time.Now())
	case req.Seed != nil:
		seed = *req.Seed
	default:
		seed = time.Now().UnixMilli()
	}

	sess, err := game.NewSession(seed, variant, s.log)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if s.cache != nil {
		sess.SetRecorder(s.cache)
	}
	s.registry.Add(sess)

	if err := s.store.RecordDeal(r.Context(), sess.ID, seed, variant); err != nil {
		s.log.WithError(err).Warn("deal not persisted")
	}
	s.log.WithFields(logrus.Fields{
		"game_id": sess.ID,
		"variant": variant.String(),
		"seed":    seed,
	}).Info("game created")
	s.writeJSON(w, http.StatusCreated, sess.View())
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, sess.View())
}

type shareResponse struct {
	DealURL  string `json:"dealUrl"`
	StateURL string `json:"stateUrl"`
	Encoded  string `json:"encoded"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	encoded, err := sess.Share()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "could not encode state")
		return
	}
	s.writeJSON(w, http.StatusOK, shareResponse{
		DealURL:  s.share.DealURL(sess.Seed(), sess.Variant),
		StateURL: s.share.StateURL(encoded),
		Encoded:  encoded,
	})
}

func (s *Server) handleShareQR(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	encoded, err := sess.Share()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "could not encode state")
		return
	}
	png, err := share.QRCode(s.share.StateURL(encoded), 256)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "could not render qr code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		s.log.WithError(err).Warn("qr write failed")
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	records, err := s.cache.History(r.Context(), sess.ID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "could not read history")
		return
	}
	if records == nil {
		records = []game.MoveRecord{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

// handleFinishGame records the outcome and drops the session.
func (s *Server) handleFinishGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	won := sess.Won()
	moves := sess.State().MoveCount
	if err := s.store.RecordResult(r.Context(), sess.ID, won, moves, sess.Duration()); err != nil {
		s.log.WithError(err).Warn("result not persisted")
	}
	if err := s.cache.Drop(r.Context(), sess.ID); err != nil {
		s.log.WithError(err).Warn("history not dropped")
	}
	s.registry.Remove(sess.ID)
	s.closeHub(sess.ID)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"won":       won,
		"moveCount": moves,
	})
}

type dailyResponse struct {
	Date string `json:"date"`
	Seed int64  `json:"seed"`
}

func (s *Server) handleDaily(w http.ResponseWriter, _ *http.Request) {
	now := time.Now().UTC()
	s.writeJSON(w, http.StatusOK, dailyResponse{
		Date: now.Format("2006-01-02"),
		Seed: share.DailySeed(now),
	})
}

func (s *Server) handleSeedStats(w http.ResponseWriter, r *http.Request) {
	seed, err := strconv.ParseInt(chi.URLParam(r, "seed"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid seed")
		return
	}
	variant, ok := engine.ParseVariant(r.URL.Query().Get("variant"))
	if !ok {
		s.writeError(w, http.StatusBadRequest, "unknown variant")
		return
	}
	stats, err := s.store.StatsForSeed(r.Context(), seed, variant)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "could not read stats")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// Shutdown closes every live WebSocket hub.
func (s *Server) Shutdown() {
	s.mu.Lock()
	hubs := make([]*hub, 0, len(s.hubs))
	for _, h := range s.hubs {
		hubs = append(hubs, h)
	}
	s.hubs = make(map[uuid.UUID]*hub)
	s.mu.Unlock()
	for _, h := range hubs {
		h.closeAll()
	}
}
