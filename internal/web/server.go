package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/peterkuimelis/quizcards/internal/game"
	quiznet "github.com/peterkuimelis/quizcards/internal/net"
	"github.com/peterkuimelis/quizcards/internal/quiz"
)

//go:embed static
var staticFiles embed.FS

// RewardInfo is the JSON representation of a reward kind for /api/rewards.
type RewardInfo struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// Config configures the web server.
type Config struct {
	Questions []quiz.Question // empty: embedded default bank
	Seed      int64           // 0 for random
	Logger    *log.Logger     // nil: stdout with a [web] prefix
}

// Server is the quizcards web UI server. Each WebSocket connection plays its
// own games through the same JSON protocol as the TCP server.
type Server struct {
	questions []quiz.Question
	seed      int64
	logger    *log.Logger
	router    chi.Router
}

// NewServer creates a new web server.
func NewServer(cfg Config) *Server {
	questions := cfg.Questions
	if len(questions) == 0 {
		questions = quiz.Default()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[web] ", log.LstdFlags)
	}
	s := &Server{
		questions: questions,
		seed:      cfg.Seed,
		logger:    logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogging)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := io.Copy(w, f); err != nil {
			s.logger.Printf("write index.html: %v", err)
		}
	})

	// Static CSS/JS
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	r.Get("/api/rewards", s.handleRewards)
	r.Get("/api/questions/count", s.handleQuestionCount)

	// Game sessions
	r.Get("/ws", s.handleWebSocket)

	s.router = r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogging logs one line per request. WebSocket sessions are logged
// when they close.
func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Printf("method=%s path=%s status=%d duration=%v request_id=%s",
			r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	var rewards []RewardInfo
	for _, k := range game.RewardKinds {
		rewards = append(rewards, RewardInfo{
			Kind:        k.String(),
			Description: k.Description(),
			Count:       k.Count(),
		})
	}
	s.writeJSON(w, http.StatusOK, rewards)
}

func (s *Server) handleQuestionCount(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]int{"count": len(s.questions)})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	conn := websocket.NetConn(ctx, wsConn, websocket.MessageText)
	defer conn.Close()

	sess := &quiznet.Session{Questions: s.questions, Seed: s.seed}
	if err := sess.Serve(ctx, conn); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Printf("session %s: %v", middleware.GetReqID(ctx), err)
		wsConn.Close(websocket.StatusInternalError, "session error")
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "session ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("write json response: %v", err)
	}
}
