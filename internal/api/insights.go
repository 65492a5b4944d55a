package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fjacquet/finsight/internal/models"
	"fjacquet/finsight/internal/store"
)

type healthScoreResponse struct {
	UserID    string `json:"userId"`
	Score     *int   `json:"score"`
	Available bool   `json:"available"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.List(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if !s.decode(w, r, &tx) {
		return
	}
	tx.ID = ""
	tx.UserID = chi.URLParam(r, "userID")

	created, err := s.store.Create(r.Context(), tx)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var patch store.Patch
	if !s.decode(w, r, &patch) {
		return
	}
	updated, err := s.store.Update(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "txID"), patch)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "txID")); err != nil {
		s.respondFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetInsights recomputes the full report from the user's transactions.
func (s *Server) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	txs, err := s.store.List(r.Context(), userID)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.engine.Analyze(txs, s.profile(userID)))
}

func (s *Server) handleGetHealthScore(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	txs, err := s.store.List(r.Context(), userID)
	if err != nil {
		s.respondFailure(w, err)
		return
	}

	resp := healthScoreResponse{UserID: userID}
	if score, ok := s.engine.HealthScore(txs); ok {
		resp.Score = &score
		resp.Available = true
	}
	s.respondJSON(w, http.StatusOK, resp)
}
