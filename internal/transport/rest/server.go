// Package rest serves a read-only view of the running match over HTTP.
package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/inarow/internal/board"
	"github.com/rocketscienceinc/inarow/internal/service"
)

const shutdownTimeout = 5 * time.Second

type boardProvider interface {
	Current() *board.Board
}

type Server struct {
	logger  *slog.Logger
	boards  boardProvider
	results service.ResultService
}

// New builds the API. results may be nil, in which case the result routes
// are not mounted.
func New(logger *slog.Logger, boards boardProvider, results service.ResultService) *Server {
	return &Server{
		logger:  logger.With("component", "rest"),
		boards:  boards,
		results: results,
	}
}

func (that *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ping", that.ping)
	r.Get("/board", that.currentBoard)

	if that.results != nil {
		r.Route("/results", func(r chi.Router) {
			r.Get("/", that.recentResults)
			r.Get("/tally", that.tally)
			r.Get("/{id}", that.resultByID)
		})
	}

	return r
}

// Start serves on port until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
