package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/inarow/internal/board"
	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/rocketscienceinc/inarow/internal/repository"
)

var errRedisDown = errors.New("redis down")

type staticBoard struct {
	board *board.Board
}

func (that staticBoard) Current() *board.Board {
	return that.board
}

type mockResultService struct {
	mock.Mock
}

func (m *mockResultService) RecordResult(ctx context.Context, result *entity.Result) error {
	return m.Called(ctx, result).Error(0)
}

func (m *mockResultService) GetResultByID(ctx context.Context, id string) (*entity.Result, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*entity.Result)
	return result, args.Error(1)
}

func (m *mockResultService) GetTally(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	tally, _ := args.Get(0).(map[string]int64)
	return tally, args.Error(1)
}

func (m *mockResultService) GetRecent(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestServer_Ping(t *testing.T) {
	rec := get(t, New(discardLogger(), staticBoard{}, nil).Routes(), "/ping")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServer_Board(t *testing.T) {
	t.Run("No match yet", func(t *testing.T) {
		rec := get(t, New(discardLogger(), staticBoard{}, nil).Routes(), "/board")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "no active match")
	})

	t.Run("Live board", func(t *testing.T) {
		// Given: a board with X in the centre
		b, err := board.New(3, 3)
		require.NoError(t, err)
		require.True(t, b.Play(context.Background(), entity.X, 1, 1))

		// When: requesting the board
		rec := get(t, New(discardLogger(), staticBoard{board: b}, nil).Routes(), "/board")

		// Then: the snapshot and a plain render are returned
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body struct {
			Size   int    `json:"size"`
			Turn   string `json:"turn"`
			Over   bool   `json:"over"`
			Render string `json:"render"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 3, body.Size)
		assert.Equal(t, "O", body.Turn)
		assert.False(t, body.Over)
		assert.Equal(t, ". . .\n. X .\n. . .", body.Render)
	})
}

func TestServer_Results(t *testing.T) {
	t.Run("Result routes are absent without storage", func(t *testing.T) {
		rec := get(t, New(discardLogger(), staticBoard{}, nil).Routes(), "/results/tally")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Result by id", func(t *testing.T) {
		svc := &mockResultService{}
		svc.On("GetResultByID", mock.Anything, "m1").
			Return(&entity.Result{ID: "m1", Outcome: entity.OutcomeWin, Winner: entity.X}, nil).
			Once()

		rec := get(t, New(discardLogger(), staticBoard{}, svc).Routes(), "/results/m1")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"winner":"X"`)
		svc.AssertExpectations(t)
	})

	t.Run("Unknown result", func(t *testing.T) {
		svc := &mockResultService{}
		svc.On("GetResultByID", mock.Anything, "nope").
			Return(nil, fmt.Errorf("wrapped: %w", repository.ErrResultNotFound)).
			Once()

		rec := get(t, New(discardLogger(), staticBoard{}, svc).Routes(), "/results/nope")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Tally", func(t *testing.T) {
		svc := &mockResultService{}
		svc.On("GetTally", mock.Anything).Return(map[string]int64{"X": 3, "draw": 1}, nil).Once()

		rec := get(t, New(discardLogger(), staticBoard{}, svc).Routes(), "/results/tally")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"X":3,"draw":1}`, rec.Body.String())
	})

	t.Run("Recent", func(t *testing.T) {
		svc := &mockResultService{}
		svc.On("GetRecent", mock.Anything).Return([]string{"b", "a"}, nil).Once()

		rec := get(t, New(discardLogger(), staticBoard{}, svc).Routes(), "/results/")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `["b","a"]`, rec.Body.String())
	})

	t.Run("Storage failure", func(t *testing.T) {
		svc := &mockResultService{}
		svc.On("GetTally", mock.Anything).Return(nil, errRedisDown).Once()

		rec := get(t, New(discardLogger(), staticBoard{}, svc).Routes(), "/results/tally")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "redis down")
	})
}
