package service

import (
	"context"
	"github.com/langowen/fxtrend/internal/entities"
)

type TableCache interface {
	Get(ctx context.Context, q entities.Query) (*entities.RateTable, error)
}
