// Package web serves the Spymaster over HTTP.
package web

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"sync"

	codenames "github.com/bcspragu/spymaster"
	"github.com/bcspragu/spymaster/boardgen"
	"github.com/bcspragu/spymaster/hub"
	"github.com/bcspragu/spymaster/risk"
	"github.com/bcspragu/spymaster/spymaster"
	"github.com/bcspragu/spymaster/state"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	defaultHintsLimit = 20
	maxExplain        = 50
)

type Config struct {
	// Engine gives the hints. Required.
	Engine *spymaster.Engine
	// DB records every hint given. Required.
	DB codenames.HintLog
	// Risks is what /api/risks lists. It should be the table Engine uses.
	Risks *risk.Table
	// DefaultRisk is used for boards that don't name a risk.
	DefaultRisk string
	// BoardWords are dealt by /api/board. If empty, that route is disabled.
	BoardWords []string
	// Rand deals boards.
	Rand *rand.Rand
	// AuthSecret, if set, must be sent as the Authorization header on every
	// /api request.
	AuthSecret string
	Logger     *zerolog.Logger
}

type Srv struct {
	ai          *spymaster.Engine
	db          codenames.HintLog
	h           *hub.Hub
	mux         *mux.Router
	risks       *risk.Table
	defaultRisk string
	boardWords  []string
	authSecret  string
	log         zerolog.Logger
	upgrader    websocket.Upgrader

	// rmu guards r.
	rmu sync.Mutex
	r   *rand.Rand
}

// New returns an initialized server.
func New(cfg *Config) (*Srv, error) {
	if cfg.Engine == nil {
		return nil, errors.New("cfg.Engine cannot be nil")
	}
	if cfg.DB == nil {
		return nil, errors.New("cfg.DB cannot be nil")
	}

	s := &Srv{
		ai:          cfg.Engine,
		db:          cfg.DB,
		h:           hub.New(),
		risks:       cfg.Risks,
		defaultRisk: cfg.DefaultRisk,
		boardWords:  cfg.BoardWords,
		authSecret:  cfg.AuthSecret,
		r:           cfg.Rand,
		log:         zerolog.Nop(),
	}
	if s.risks == nil {
		s.risks = risk.Default()
	}
	if s.r == nil {
		s.r = rand.New(rand.NewSource(rand.Int63()))
	}
	if cfg.Logger != nil {
		s.log = cfg.Logger.With().Str("component", "web").Logger()
	}

	s.mux = s.initMux()

	return s, nil
}

func (s *Srv) initMux() *mux.Router {
	m := mux.NewRouter()
	m.HandleFunc("/healthz", s.serveHealth).Methods("GET")

	api := m.PathPrefix("/api").Subrouter()
	// Get a hint for a board.
	api.HandleFunc("/hint", s.handleError(s.auth(s.serveHint))).Methods("POST")
	// Recent hints, newest first.
	api.HandleFunc("/hints", s.handleError(s.auth(s.serveHints))).Methods("GET")
	// A single hint.
	api.HandleFunc("/hints/{id}", s.handleError(s.auth(s.serveGetHint))).Methods("GET")
	// WebSocket feed of hints as they're given.
	api.HandleFunc("/feed", s.handleError(s.auth(s.serveFeed))).Methods("GET")
	// The risk profiles boards can ask for.
	api.HandleFunc("/risks", s.handleError(s.auth(s.serveRisks))).Methods("GET")
	// A freshly dealt board, in the state file format.
	api.HandleFunc("/board", s.handleError(s.auth(s.serveBoard))).Methods("GET")

	return m
}

func (s *Srv) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close disconnects every feed subscriber.
func (s *Srv) Close() {
	s.h.Close()
}

func (s *Srv) serveHealth(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, struct {
		OK bool `json:"ok"`
	}{true})
}

func (s *Srv) serveHint(w http.ResponseWriter, r *http.Request) error {
	rec, err := state.Read(r.Body)
	if err != nil {
		return badRequest("failed to read board: %w", err).withMessage(err.Error())
	}
	if rec.Risk == "" {
		rec.Risk = s.defaultRisk
	}
	bs, err := rec.BoardState()
	if err != nil {
		return badRequest("invalid board: %w", err).withMessage(err.Error())
	}

	explain, err := intParam(r, "explain", 0)
	if err != nil {
		return err
	}

	res, err := s.ai.Run(r.Context(), bs)
	if err != nil {
		return err
	}

	id, err := s.db.RecordHint(&codenames.HintEntry{Board: bs, Hint: res.Hint})
	if err != nil {
		return err
	}
	entry, err := s.db.Hint(id)
	if err != nil {
		return err
	}
	if err := s.h.Broadcast(&HintGiven{Entry: entry}); err != nil {
		s.log.Error().Err(err).Msg("failed to broadcast hint")
	}

	resp := &HintResponse{
		ID:       id,
		Clue:     res.Hint.Clue,
		Number:   res.Hint.Number,
		Risk:     res.Risk.Name,
		GameOver: res.Hint.IsGameOver(),
	}
	if explain > 0 {
		resp.Ranked = res.Ranked[:min(explain, maxExplain, len(res.Ranked))]
	}
	jsonResp(w, resp)
	return nil
}

func (s *Srv) serveHints(w http.ResponseWriter, r *http.Request) error {
	limit, err := intParam(r, "limit", defaultHintsLimit)
	if err != nil {
		return err
	}
	hints, err := s.db.Hints(limit)
	if err != nil {
		return err
	}
	if hints == nil {
		hints = []*codenames.HintEntry{}
	}
	jsonResp(w, hints)
	return nil
}

func (s *Srv) serveGetHint(w http.ResponseWriter, r *http.Request) error {
	id := codenames.HintID(mux.Vars(r)["id"])
	h, err := s.db.Hint(id)
	if err != nil {
		return err
	}
	jsonResp(w, h)
	return nil
}

func (s *Srv) serveFeed(w http.ResponseWriter, r *http.Request) error {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		s.log.Warn().Err(err).Msg("failed to upgrade feed connection")
		return nil
	}
	if err := s.h.Register(ws, &Subscribed{}); err != nil {
		s.log.Warn().Err(err).Msg("failed to register feed connection")
	}
	return nil
}

func (s *Srv) serveRisks(w http.ResponseWriter, r *http.Request) error {
	jsonResp(w, struct {
		Profiles []risk.Profile `json:"profiles"`
		Fallback string         `json:"fallback"`
	}{s.risks.Profiles(), s.risks.Fallback().Name})
	return nil
}

func (s *Srv) serveBoard(w http.ResponseWriter, r *http.Request) error {
	if len(s.boardWords) == 0 {
		return newError(http.StatusNotFound, "no board words configured")
	}
	starter, err := codenames.ParseTeam(r.URL.Query().Get("starter"))
	if err != nil {
		return badRequest("bad starter: %w", err).withMessage(err.Error())
	}

	s.rmu.Lock()
	b, err := boardgen.New(starter, s.boardWords, s.r)
	s.rmu.Unlock()
	if err != nil {
		return err
	}

	jsonResp(w, state.FromBoard(starter, s.defaultRisk, b))
	return nil
}

func (s *Srv) auth(h handlerFunc) handlerFunc {
	if s.authSecret == "" {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			return unauthorized("no auth in %s request", r.URL.Path).withMessage("no auth given")
		}
		if auth != s.authSecret {
			return forbidden("bad auth secret in %s request", r.URL.Path).withMessage("invalid auth")
		}
		return h(w, r)
	}
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Srv) handleError(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		code, userMsg := extract(err)
		ev := s.log.Warn()
		if code >= 500 {
			ev = s.log.Error()
		}
		ev.Err(err).Str("path", r.URL.Path).Int("code", code).Msg("request failed")

		http.Error(w, userMsg, code)
	}
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest("bad %s %q: %w", name, v, err).withMessage("invalid " + name)
	}
	return n, nil
}

func jsonResp(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
