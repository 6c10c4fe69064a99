package http

import (
	"net/http"

	"github.com/sableworks/grimoire/pkg/utils/errutil"
	"github.com/sableworks/grimoire/pkg/utils/logging"
)

type healthResponse struct {
	Status string `json:"status"`
	Docs   *int   `json:"docs,omitempty"`
}

type addResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}

	// The service is up even when the store is not; report the count
	// opportunistically.
	if count, err := s.uc.CountDocuments(r.Context()); err != nil {
		logging.From(r.Context()).Warn("failed to count documents", "error", err.Error())
	} else {
		resp.Docs = &count
	}

	respondJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		q = r.FormValue("q")
	}

	answer, err := s.uc.Ask(r.Context(), q)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errutil.StatusOf(err))
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, answer)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		text = r.FormValue("text")
	}

	id, err := s.uc.AddDocument(r.Context(), text)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errutil.StatusOf(err))
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, addResponse{
		Status:  "success",
		Message: "Content added to knowledge base",
		ID:      id,
	})
}

func (s *Server) handleLoadMITRE(w http.ResponseWriter, r *http.Request) {
	result, err := s.uc.IngestTechniques(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errutil.StatusOf(err))
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, result)
}
