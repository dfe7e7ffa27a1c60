package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mimicry-labs/personad/internal/chatlog"
	"github.com/mimicry-labs/personad/internal/service"
	"github.com/mimicry-labs/personad/internal/session"
)

// Transcript uploads are small text files; cap reads defensively.
const maxUploadBytes = 10 << 20

type ingestResponse struct {
	Message      string   `json:"message"`
	SessionID    string   `json:"sessionId"`
	Participants []string `json:"participants"`
}

func (s *Server) uploadChatHistory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded or invalid file type.")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded or invalid file type.")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Error reading uploaded file.")
		return
	}

	sessionID, participants, err := s.chat.Ingest(r.Context(), string(raw))
	if err != nil {
		s.renderServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ingestResponse{
		Message:      "Chat history uploaded and processed successfully!",
		SessionID:    sessionID,
		Participants: participants,
	})
}

func (s *Server) getDemoChats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"demos": service.ListDemos()})
}

func (s *Server) loadDemoChat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DemoID string `json:"demoId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.DemoID == "" {
		respondError(w, http.StatusBadRequest, "Invalid demo ID provided.")
		return
	}

	sessionID, participants, err := s.chat.IngestDemo(r.Context(), body.DemoID)
	if err != nil {
		s.renderServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ingestResponse{
		Message:      "Demo chat '" + body.DemoID + "' loaded successfully!",
		SessionID:    sessionID,
		Participants: participants,
	})
}

func (s *Server) getChatHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	persona := r.URL.Query().Get("persona")
	if persona == "" {
		respondError(w, http.StatusBadRequest, "Persona is required.")
		return
	}

	messages, participants, err := s.chat.History(r.Context(), sessionID, persona)
	if err != nil {
		s.renderServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"messages":     messages,
		"participants": participants,
	})
}

func (s *Server) chatWithPersona(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	persona := r.URL.Query().Get("persona")
	if persona == "" {
		respondError(w, http.StatusBadRequest, "Persona is required.")
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	reply, err := s.chat.Reply(r.Context(), sessionID, persona, body.Message)
	if err != nil {
		s.renderServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"response": reply})
}

// renderServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unmatched is a server fault.
func (s *Server) renderServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatlog.ErrAmbiguousSpeakers):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnknownDemo):
		respondError(w, http.StatusBadRequest, "Invalid demo ID provided.")
	case errors.Is(err, service.ErrBadPersona):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNotFound):
		respondError(w, http.StatusNotFound, "Session not found or expired. Please upload chat history file again.")
	case errors.Is(err, service.ErrEmptyAIResponse):
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
