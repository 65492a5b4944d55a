package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"fjacquet/finsight/internal/voice"
)

type transcriptRequest struct {
	Transcript string `json:"transcript"`
	// Final marks recognizer output; interim transcripts are only echoed.
	Final *bool `json:"final,omitempty"`
}

type confirmRequest struct {
	Confirm bool `json:"confirm"`
}

type speechErrorRequest struct {
	Code string `json:"code"`
}

type eventsResponse struct {
	Executed bool          `json:"executed"`
	Events   []voice.Event `json:"events"`
}

type voiceStateResponse struct {
	SessionID string                `json:"sessionId"`
	Supported bool                  `json:"supported"`
	Listening bool                  `json:"listening"`
	Pending   *voice.PendingCommand `json:"pending,omitempty"`
}

func (s *Server) handleVoiceCommands(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, voice.HelpCatalogue())
}

func (s *Server) handleVoiceTranscript(w http.ResponseWriter, r *http.Request) {
	var req transcriptRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Transcript) == "" {
		s.respondError(w, http.StatusBadRequest, "transcript is required")
		return
	}

	session := s.voice.Session(chi.URLParam(r, "userID"))
	if req.Final != nil && !*req.Final {
		ev := session.HandleInterim(req.Transcript)
		s.respondJSON(w, http.StatusAccepted, eventsResponse{Events: []voice.Event{ev}})
		return
	}

	events, err := session.HandleFinal(r.Context(), req.Transcript)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, eventsResponse{Executed: executed(events), Events: nonNil(events)})
}

func (s *Server) handleVoiceConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if !s.decode(w, r, &req) {
		return
	}

	ran, events, err := s.voice.Session(chi.URLParam(r, "userID")).Confirm(r.Context(), req.Confirm)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, eventsResponse{Executed: ran, Events: nonNil(events)})
}

func (s *Server) handleVoiceError(w http.ResponseWriter, r *http.Request) {
	var req speechErrorRequest
	if !s.decode(w, r, &req) {
		return
	}
	ev := s.voice.Session(chi.URLParam(r, "userID")).HandleError(req.Code)
	s.respondJSON(w, http.StatusOK, ev)
}

func (s *Server) handleVoiceHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.voice.Session(chi.URLParam(r, "userID")).History()
	if entries == nil {
		entries = []voice.HistoryEntry{}
	}
	s.respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleVoiceState(w http.ResponseWriter, r *http.Request) {
	session := s.voice.Session(chi.URLParam(r, "userID"))
	s.respondJSON(w, http.StatusOK, voiceStateResponse{
		SessionID: session.ID(),
		Supported: session.Supported(),
		Listening: session.Listening(),
		Pending:   session.Pending(),
	})
}

// executed reports whether any event carries an executed command result.
func executed(events []voice.Event) bool {
	for _, ev := range events {
		if ev.Result != nil {
			return true
		}
	}
	return false
}

func nonNil(events []voice.Event) []voice.Event {
	if events == nil {
		return []voice.Event{}
	}
	return events
}
