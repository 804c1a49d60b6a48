package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"mintwrap/gl"
	"mintwrap/wallet"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Status is what the host page shows.
type Status struct {
	Address        string `json:"address"`
	Status         string `json:"status"`
	Phase          string `json:"phase"`
	Class          string `json:"class"`
	Connected      bool   `json:"connected"`
	MintEnabled    bool   `json:"mintEnabled"`
	ShowConnect    bool   `json:"showConnect"`
	ShowDisconnect bool   `json:"showDisconnect"`
}

// API serves the page controls of one session over http.
type API struct {
	minter  *Minter
	session *wallet.Session
	board   *Board
	ctx     context.Context
	router  chi.Router
}

// NewAPI builds the routes. ctx bounds the background mint sequences.
func NewAPI(ctx context.Context, m *Minter, sess *wallet.Session, board *Board) *API {
	a := &API{minter: m, session: sess, board: board, ctx: ctx}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/status", a.handleStatus)
	r.Post("/connect", a.handleConnect)
	r.Post("/disconnect", a.handleDisconnect)
	r.Post("/mint", a.handleMint)
	r.Method(http.MethodGet, "/metrics", metricsHandler())
	a.router = r
	return a
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *API) Status() Status {
	phase, msg := a.board.Last()
	s := Status{
		Status: msg,
		Phase:  phase.String(),
		Class:  a.board.Class(),
	}
	if addr, ok := a.session.Address(); ok {
		s.Address = wallet.ShortAddress(addr.Hex())
		s.Connected = true
	}
	s.MintEnabled = s.Connected && !a.minter.Busy()
	s.ShowConnect = !s.Connected
	s.ShowDisconnect = s.Connected
	return s
}

func (a *API) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Status())
}

func (a *API) handleConnect(w http.ResponseWriter, r *http.Request) {
	if _, err := a.minter.Connect(r.Context(), a.session); err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, wallet.ErrNoWalletAvailable) {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, a.Status())
		return
	}
	writeJSON(w, http.StatusOK, a.Status())
}

func (a *API) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	a.minter.Disconnect(a.session)
	writeJSON(w, http.StatusOK, a.Status())
}

func (a *API) handleMint(w http.ResponseWriter, r *http.Request) {
	if _, err := a.minter.Start(a.ctx, a.session); err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, wallet.ErrNotConnected):
			code = http.StatusPreconditionFailed
		case errors.Is(err, ErrMintInFlight):
			code = http.StatusConflict
		}
		writeJSON(w, code, a.Status())
		return
	}
	writeJSON(w, http.StatusAccepted, a.Status())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		gl.Error("write response error. %v", err)
	}
}
