package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/export"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/state"
)

const (
	defaultPNGWidth  = 1280
	defaultPNGHeight = 800
	maxPNGDimension  = 4096
)

// Server serves the board to viewers on the local network.
type Server struct {
	store    *state.Store
	hub      *Hub
	upgrader websocket.Upgrader
	http     *http.Server
	log      *zap.Logger
}

// NewServer wires the HTTP routes and starts the hub loop. Call Start to
// begin listening and Shutdown to stop.
func NewServer(store *state.Store, addr string, log *zap.Logger) *Server {
	s := &Server{
		store: store,
		hub:   newHub(log),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Viewers connect from other devices on the LAN, so any
			// origin is acceptable here.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go s.hub.run()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/board", s.handleBoard)
		r.Get("/board.pdf", s.handleBoardPDF)
		r.Get("/board.png", s.handleBoardPNG)
	})
	r.Get("/live", s.handleLive)
	return r
}

// Handler exposes the route tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("share server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("share server: %w", err)
	}
	return nil
}

// Shutdown stops the listener and disconnects all viewers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.stop()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("share server shutdown: %w", err)
	}
	return nil
}

// Publish pushes the current board to every connected viewer.
func (s *Server) Publish() {
	s.hub.Broadcast(s.store.Snapshot())
}

// Viewers reports how many viewers are connected right now.
func (s *Server) Viewers() int {
	return s.hub.ViewerCount()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleBoard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.store.Snapshot()); err != nil {
		s.log.Warn("encode board snapshot", zap.Error(err))
	}
}

func (s *Server) handleBoardPDF(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="board.pdf"`)
	if err := export.PDF(w, s.store.Snapshot()); err != nil {
		s.log.Warn("export pdf", zap.Error(err))
	}
}

func (s *Server) handleBoardPNG(w http.ResponseWriter, r *http.Request) {
	width := pngDimension(r.URL.Query().Get("width"), defaultPNGWidth)
	height := pngDimension(r.URL.Query().Get("height"), defaultPNGHeight)
	w.Header().Set("Content-Type", "image/png")
	if err := export.PNG(w, s.store.Snapshot(), width, height); err != nil {
		s.log.Warn("export png", zap.Error(err))
	}
}

func pngDimension(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 16 || n > maxPNGDimension {
		return fallback
	}
	return n
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err), zap.String("remoteAddr", r.RemoteAddr))
		return
	}
	c := newClient(s.hub, conn, s.log)
	c.start()

	// Seed the new viewer with the current board.
	if data, err := encodeBoard(s.store.Snapshot()); err == nil {
		select {
		case c.send <- data:
		default:
		}
	}
}

// requestLogger logs each request once it completes.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", chimiddleware.GetReqID(r.Context())),
				zap.String("remoteAddr", r.RemoteAddr),
			)
		})
	}
}
