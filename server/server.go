// Package server exposes the playback request handler over HTTP and streams
// status notices to websocket subscribers.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"
	"github.com/vidload/vidload/constant"
	"github.com/vidload/vidload/loader"
	"github.com/vidload/vidload/log"
	"github.com/vidload/vidload/media"
	"github.com/vidload/vidload/metrics"
	"github.com/vidload/vidload/status"
)

// Options configure a Server.
type Options struct {
	// Origins lists the origins allowed to open the notice stream.
	// Empty means same-host only; "*" allows any origin.
	Origins []string
	Loader  loader.Options
}

type Server struct {
	hub      *Hub
	board    *status.Board
	handler  *loader.Handler
	upgrader websocket.Upgrader
}

// New returns a server that loads videos into surface.
func New(surface loader.Surface, options Options) *Server {
	hub := NewHub()
	board := status.NewBoard(status.Multi(hub, status.DisplayFunc(logNotice)), status.Clock{})

	return &Server{
		hub:     hub,
		board:   board,
		handler: loader.New(surface, board, options.Loader),
		upgrader: websocket.Upgrader{
			CheckOrigin: checkOrigin(options.Origins),
		},
	}
}

func logNotice(n status.Notice) {
	if n.Stage != status.Visible {
		return
	}
	log.WithFields(log.Fields{"request": n.RequestID, "kind": n.Kind.String()}).Info(n.Text)
}

// Router creates the chi.Router serving every endpoint.
func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer, metrics.HTTP())

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)
	r.Post("/load", s.handleLoad)
	r.Get("/status", s.handleStatus)
	r.Get("/ws", s.handleWS)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	go s.hub.Run(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Infof("serving on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": constant.Vidload,
		"version": constant.Version,
	})
}

type loadRequest struct {
	URL string `json:"url"`
}

type loadResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var body loadRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	id, err := s.handler.Submit(body.URL)
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, loadResponse{RequestID: id})
	case errors.Is(err, media.ErrMediaLoad):
		writeJSON(w, http.StatusBadGateway, loadResponse{RequestID: id, Error: loader.Message(err)})
	default:
		writeJSON(w, http.StatusUnprocessableEntity, loadResponse{RequestID: id, Error: loader.Message(err)})
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	n := s.board.Current()
	if n.Text == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("ws upgrade: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	select {
	case s.hub.register <- client:
	case <-s.hub.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || lo.Contains(allowed, "*") || lo.Contains(allowed, origin) {
			return true
		}
		if len(allowed) > 0 {
			return false
		}

		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("encode response: %v", err)
	}
}
