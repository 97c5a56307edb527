package service

import (
	"context"
	"github.com/langowen/fxtrend/internal/entities"
)

type Fetcher interface {
	FetchRates(ctx context.Context, base string, targets []string, r entities.DateRange) (map[string]map[string]float64, error)
}
