package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/inarow/internal/entity"
)

const (
	KindRandom  = "random"
	KindLimited = "limited"
	KindConsole = "console"
)

var (
	ErrInvalidPlayers = errors.New("invalid players configuration")
	ErrUnknownKind    = errors.New("unknown player kind")
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string   `yaml:"http-port" env:"HTTP_PORT" env-default:""`
	Board    Board    `yaml:"board"`
	Match    Match    `yaml:"match"`
	Players  []Player `yaml:"players"`
	Redis    Redis    `yaml:"redis"`
}

type Board struct {
	Size      int `yaml:"size" env:"BOARD_SIZE" env-default:"3"`
	WinLength int `yaml:"win-length" env:"BOARD_WIN_LENGTH" env-default:"3"`
}

type Match struct {
	Timeout time.Duration `yaml:"timeout" env:"MATCH_TIMEOUT" env-default:"0s"`
	// Seed for random players; 0 picks one from the clock.
	Seed int64 `yaml:"seed" env:"MATCH_SEED" env-default:"0"`
}

type Player struct {
	Name        string        `yaml:"name"`
	Symbol      string        `yaml:"symbol"`
	Kind        string        `yaml:"kind"`
	MaxAttempts int           `yaml:"max-attempts"`
	ThinkDelay  time.Duration `yaml:"think-delay"`
}

type Redis struct {
	Enabled     bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host        string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	RecentLimit int64  `yaml:"recent-limit" env:"REDIS_RECENT_LIMIT" env-default:"20"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads path when it exists and the environment otherwise, then fills
// player defaults and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the player list. Board dimensions are checked by board.New.
func (that *Config) Validate() error {
	if len(that.Players) == 0 {
		that.Players = DefaultPlayers()
	}

	seen := map[entity.Symbol]bool{}
	for i := range that.Players {
		player := &that.Players[i]

		symbol, err := entity.ParseSymbol(player.Symbol)
		if err != nil || !symbol.IsPlayable() {
			return fmt.Errorf("%w: player %d has symbol %q", ErrInvalidPlayers, i, player.Symbol)
		}
		seen[symbol] = true

		if player.Kind == "" {
			player.Kind = KindRandom
		}

		switch player.Kind {
		case KindRandom, KindConsole:
		case KindLimited:
			if player.MaxAttempts <= 0 {
				return fmt.Errorf("%w: limited player %q needs max-attempts", ErrInvalidPlayers, player.Name)
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownKind, player.Kind)
		}

		if player.Name == "" {
			player.Name = fmt.Sprintf("player-%d", i+1)
		}
	}

	if !seen[entity.X] || !seen[entity.O] {
		return fmt.Errorf("%w: both X and O need at least one player", ErrInvalidPlayers)
	}

	return nil
}

func DefaultPlayers() []Player {
	return []Player{
		{Name: "Ahmed", Symbol: "X", Kind: KindRandom},
		{Name: "Hamza", Symbol: "O", Kind: KindRandom},
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
