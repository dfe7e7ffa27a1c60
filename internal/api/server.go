package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mimicry-labs/personad/internal/service"
)

type Server struct {
	router *chi.Mux
	chat   *service.ChatService
	logger *slog.Logger
	port   int
}

// Options configures the server boundary.
type Options struct {
	Port           int
	AllowedOrigins []string
	StrictCORS     bool
}

func NewServer(chat *service.ChatService, logger *slog.Logger, opts Options) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(corsGate(opts.AllowedOrigins, opts.StrictCORS))

	s := &Server{
		router: router,
		chat:   chat,
		logger: logger,
		port:   opts.Port,
	}

	router.Get("/health", s.health)
	router.Post("/upload_chat_history", s.uploadChatHistory)
	router.Get("/get_demo_chats", s.getDemoChats)
	router.Post("/load_demo_chat", s.loadDemoChat)
	router.Get("/get_chat_history/{sessionID}", s.getChatHistory)
	router.Post("/chat/{sessionID}", s.chatWithPersona)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError renders every failure in the uniform {detail} shape. CORS
// headers are already on the response by the time handlers run.
func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}
