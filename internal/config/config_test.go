package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a full config file
		path := writeConfig(t, `
log-level: debug
http-port: "9090"
board:
  size: 5
  win-length: 4
match:
  timeout: 30s
  seed: 7
players:
  - name: Ahmed
    symbol: X
    kind: console
  - name: Hamza
    symbol: O
    kind: limited
    max-attempts: 3
    think-delay: 100ms
redis:
  enabled: true
  host: cache
  port: "6380"
`)

		// When: loading it
		conf, err := Load(path)

		// Then: every value is picked up
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, Board{Size: 5, WinLength: 4}, conf.Board)
		assert.Equal(t, 30*time.Second, conf.Match.Timeout)
		assert.Equal(t, int64(7), conf.Match.Seed)
		require.Len(t, conf.Players, 2)
		assert.Equal(t, KindConsole, conf.Players[0].Kind)
		assert.Equal(t, 3, conf.Players[1].MaxAttempts)
		assert.Equal(t, 100*time.Millisecond, conf.Players[1].ThinkDelay)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, int64(20), conf.Redis.RecentLimit)
	})

	t.Run("Falls back to defaults and environment without a file", func(t *testing.T) {
		// Given: no config file but a board size in the environment
		t.Setenv("BOARD_SIZE", "4")

		// When: loading a missing path
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults apply
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, 4, conf.Board.Size)
		assert.Equal(t, 3, conf.Board.WinLength)
		assert.Equal(t, DefaultPlayers(), conf.Players)
		assert.False(t, conf.Redis.Enabled)
	})

	t.Run("Rejects an unknown player kind", func(t *testing.T) {
		path := writeConfig(t, `
players:
  - {name: a, symbol: X, kind: genius}
  - {name: b, symbol: O}
`)

		_, err := Load(path)

		require.ErrorIs(t, err, ErrUnknownKind)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Fills names and kinds", func(t *testing.T) {
		conf := &Config{Players: []Player{{Symbol: "x"}, {Symbol: "O", Name: "Hamza"}}}

		require.NoError(t, conf.Validate())
		assert.Equal(t, "player-1", conf.Players[0].Name)
		assert.Equal(t, KindRandom, conf.Players[0].Kind)
	})

	t.Run("Needs both symbols", func(t *testing.T) {
		conf := &Config{Players: []Player{{Symbol: "X"}, {Symbol: "X"}}}

		require.ErrorIs(t, conf.Validate(), ErrInvalidPlayers)
	})

	t.Run("Rejects the empty symbol", func(t *testing.T) {
		conf := &Config{Players: []Player{{Symbol: ""}, {Symbol: "O"}}}

		require.ErrorIs(t, conf.Validate(), ErrInvalidPlayers)
	})

	t.Run("Limited player needs an attempt limit", func(t *testing.T) {
		conf := &Config{Players: []Player{{Symbol: "X", Kind: KindLimited}, {Symbol: "O"}}}

		require.ErrorIs(t, conf.Validate(), ErrInvalidPlayers)
	})
}
