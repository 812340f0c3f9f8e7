package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/board"
	"github.com/rocketscienceinc/inarow/internal/repository"
)

type boardResponse struct {
	board.State
	Render string `json:"render"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping", "error", err)
	}
}

func (that *Server) currentBoard(w http.ResponseWriter, _ *http.Request) {
	b := that.boards.Current()
	if b == nil {
		that.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: apperror.ErrNoActiveMatch.Error()})
		return
	}

	that.writeJSON(w, http.StatusOK, boardResponse{
		State:  b.Snapshot(),
		Render: b.RenderWith(termenv.Ascii),
	})
}

func (that *Server) resultByID(w http.ResponseWriter, r *http.Request) {
	result, err := that.results.GetResultByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrResultNotFound) {
			that.writeJSON(w, http.StatusNotFound, errorResponse{Error: repository.ErrResultNotFound.Error()})
			return
		}

		that.internalError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

func (that *Server) tally(w http.ResponseWriter, r *http.Request) {
	tally, err := that.results.GetTally(r.Context())
	if err != nil {
		that.internalError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, tally)
}

func (that *Server) recentResults(w http.ResponseWriter, r *http.Request) {
	ids, err := that.results.GetRecent(r.Context())
	if err != nil {
		that.internalError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, ids)
}

func (that *Server) internalError(w http.ResponseWriter, err error) {
	that.logger.Error("request failed", "error", err)
	that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
