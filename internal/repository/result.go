package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/inarow/internal/entity"
)

const (
	tallyKey  = "results:tally"
	recentKey = "results:recent"
)

var ErrResultNotFound = errors.New("result not found")

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	GetByID(ctx context.Context, id string) (*entity.Result, error)
	Tally(ctx context.Context) (map[string]int64, error)
	Recent(ctx context.Context) ([]string, error)
}

type dbResult struct {
	client      *redis.Client
	recentLimit int64
}

// NewResultRepository keeps the ids of the last recentLimit matches in the
// recent list.
func NewResultRepository(client *redis.Client, recentLimit int64) ResultRepository {
	if recentLimit <= 0 {
		recentLimit = 1
	}

	return &dbResult{
		client:      client,
		recentLimit: recentLimit,
	}
}

func resultKey(id string) string {
	return "match:" + id
}

// Save stores the result and counts its outcome in one transaction.
func (that *dbResult) Save(ctx context.Context, result *entity.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resultKey(result.ID), resultJSON, 0)
		pipe.HIncrBy(ctx, tallyKey, result.TallyKey(), 1)
		pipe.LPush(ctx, recentKey, result.ID)
		pipe.LTrim(ctx, recentKey, 0, that.recentLimit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, id string) (*entity.Result, error) {
	response, err := that.client.Get(ctx, resultKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}

	var result entity.Result
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// Tally returns how often each outcome occurred, keyed by "X", "O", "draw"
// and "abandoned".
func (that *dbResult) Tally(ctx context.Context) (map[string]int64, error) {
	raw, err := that.client.HGetAll(ctx, tallyKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get tally: %w", err)
	}

	tally := make(map[string]int64, len(raw))
	for outcome, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tally for %s: %w", outcome, err)
		}
		tally[outcome] = n
	}

	return tally, nil
}

// Recent returns match ids, newest first.
func (that *dbResult) Recent(ctx context.Context) ([]string, error) {
	ids, err := that.client.LRange(ctx, recentKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	return ids, nil
}
