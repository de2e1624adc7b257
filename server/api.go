package server

import (
	"net/http"

	"github.com/hupe1980/eliza/engine"
)

type errorResponse struct {
	Error string `json:"error"`
}

type sessionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	Text    string `json:"text"`
	Keyword string `json:"keyword"`
	Source  string `json:"source"`
}

func newMessageResponse(r engine.Reply) messageResponse {
	return messageResponse{Text: r.Text, Keyword: r.Keyword, Source: r.Source.String()}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess, err := s.store.Create()
	if err != nil {
		s.logger.Error("Create session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	r, err := sess.Reply("")
	if err != nil {
		s.store.Delete(sess.ID)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID, Name: sess.Name(), Text: r.Text})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := sess.Reply(req.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, newMessageResponse(reply))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
