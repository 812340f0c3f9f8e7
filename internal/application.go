package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/inarow/internal/config"
	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/rocketscienceinc/inarow/internal/participant"
	"github.com/rocketscienceinc/inarow/internal/repository"
	"github.com/rocketscienceinc/inarow/internal/repository/storage"
	"github.com/rocketscienceinc/inarow/internal/service"
	"github.com/rocketscienceinc/inarow/internal/transport/console"
	"github.com/rocketscienceinc/inarow/internal/transport/rest"
	"github.com/rocketscienceinc/inarow/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - plays one match as configured and returns when it is over or a
// shutdown signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var resultService service.ResultService
	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		resultRepo := repository.NewResultRepository(redisStorage.Connection, conf.Redis.RecentLimit)
		resultService = service.NewResultService(resultRepo)
	}

	printer := console.NewPrinter(os.Stdout)
	terminal := console.New(os.Stdin, os.Stdout)

	opts := []usecase.MatchOption{usecase.WithMoveListener(printer)}
	if resultService != nil {
		opts = append(opts, usecase.WithResultService(resultService))
	}
	runner := usecase.NewMatchRunner(logger, opts...)

	spec, err := matchSpec(conf, terminal)
	if err != nil {
		return err
	}

	// run HTTP server
	if conf.HTTPPort != "" {
		httpServer := rest.New(logger, runner, resultService)
		go func() {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			if httpErr := httpServer.Start(ctx, conf.HTTPPort); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
			}
		}()
	}

	names := make([]string, 0, len(conf.Players))
	for _, p := range conf.Players {
		names = append(names, fmt.Sprintf("%s (%s, %s)", p.Name, p.Symbol, p.Kind))
	}
	printer.Banner(spec.Size, spec.WinLength, names)

	result, err := runner.Run(ctx, spec)
	if result != nil {
		printer.Result(result)
	}

	if err != nil {
		if errors.Is(err, usecase.ErrMatchAbandoned) {
			log.Warn("match abandoned", "error", err)
			return nil
		}
		return fmt.Errorf("match failed: %w", err)
	}

	return nil
}

func matchSpec(conf *config.Config, terminal *console.Console) (usecase.MatchSpec, error) {
	seed := conf.Match.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	spec := usecase.MatchSpec{
		Size:      conf.Board.Size,
		WinLength: conf.Board.WinLength,
		Timeout:   conf.Match.Timeout,
	}

	for i, p := range conf.Players {
		symbol, err := entity.ParseSymbol(p.Symbol)
		if err != nil {
			return usecase.MatchSpec{}, fmt.Errorf("player %q: %w", p.Name, err)
		}

		ps := usecase.PlayerSpec{
			Name:       p.Name,
			Symbol:     symbol,
			ThinkDelay: p.ThinkDelay,
		}

		switch p.Kind {
		case config.KindConsole:
			ps.Source = terminal.Source(symbol)
		case config.KindLimited:
			ps.Source = participant.NewRandomSource(seed + int64(i))
			ps.MaxAttempts = p.MaxAttempts
		default:
			ps.Source = participant.NewRandomSource(seed + int64(i))
		}

		spec.Players = append(spec.Players, ps)
	}

	return spec, nil
}
