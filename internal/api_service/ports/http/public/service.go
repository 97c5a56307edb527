package public

import (
	"context"
	"github.com/langowen/fxtrend/internal/entities"
	"time"
)

type Service interface {
	Resolve(ctx context.Context, base string, targets []string, startYear, endYear int, now time.Time) (*entities.Resolution, error)
	Catalog(now time.Time) entities.Catalog
}
