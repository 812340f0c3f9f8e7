package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/inarow/internal/entity"
)

var ErrEmptyResultID = errors.New("result has no id")

type ResultService interface {
	RecordResult(ctx context.Context, result *entity.Result) error
	GetResultByID(ctx context.Context, id string) (*entity.Result, error)
	GetTally(ctx context.Context) (map[string]int64, error)
	GetRecent(ctx context.Context) ([]string, error)
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	GetByID(ctx context.Context, id string) (*entity.Result, error)
	Tally(ctx context.Context) (map[string]int64, error)
	Recent(ctx context.Context) ([]string, error)
}

type resultService struct {
	resultRepo resultRepo
}

func NewResultService(resultRepo resultRepo) ResultService {
	return &resultService{
		resultRepo: resultRepo,
	}
}

func (that *resultService) RecordResult(ctx context.Context, result *entity.Result) error {
	if result.ID == "" {
		return ErrEmptyResultID
	}

	if err := that.resultRepo.Save(ctx, result); err != nil {
		return fmt.Errorf("failed to save result to storage: %w", err)
	}

	return nil
}

func (that *resultService) GetResultByID(ctx context.Context, id string) (*entity.Result, error) {
	result, err := that.resultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve result from storage: %w", err)
	}

	return result, nil
}

func (that *resultService) GetTally(ctx context.Context) (map[string]int64, error) {
	tally, err := that.resultRepo.Tally(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tally from storage: %w", err)
	}

	return tally, nil
}

func (that *resultService) GetRecent(ctx context.Context) ([]string, error) {
	ids, err := that.resultRepo.Recent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recent results from storage: %w", err)
	}

	return ids, nil
}
