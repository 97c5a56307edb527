package service

import (
	"context"
	"github.com/langowen/fxtrend/internal/api_service/assembler"
	"github.com/langowen/fxtrend/internal/api_service/change"
	"github.com/langowen/fxtrend/internal/api_service/query"
	"github.com/langowen/fxtrend/internal/entities"
	"github.com/pkg/errors"
	"log/slog"
	"time"
)

type Service struct {
	cache   TableCache
	catalog entities.Catalog
}

func NewService(cache TableCache, catalog entities.Catalog) (*Service, error) {
	if cache == nil {
		return nil, errors.New("service.NewService: nil cache")
	}

	return &Service{
		cache:   cache,
		catalog: catalog,
	}, nil
}

// Loader returns the cache loader: one provider call, then assembly.
func Loader(f Fetcher) func(ctx context.Context, q entities.Query) (*entities.RateTable, error) {
	return func(ctx context.Context, q entities.Query) (*entities.RateTable, error) {
		const op = "service.Load"

		raw, err := f.FetchRates(ctx, q.Base, q.Targets, q.Range)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}

		table, err := assembler.Assemble(q.Base, q.Targets, raw)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}

		return table, nil
	}
}

// Resolve normalizes the selection, gets its table through the cache and
// computes the metrics. It fails with entities.ErrInvalidQuery before any
// network access, or with entities.ErrProviderUnavailable when no table
// could be built.
func (s *Service) Resolve(ctx context.Context, base string, targets []string, startYear, endYear int, now time.Time) (*entities.Resolution, error) {
	const op = "service.Resolve"

	q, err := query.Normalize(base, targets, startYear, endYear, now)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	table, err := s.cache.Get(ctx, *q)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	metrics, missing := change.CalculateAll(q.Base, table)
	if len(missing) > 0 {
		slog.Debug("targets without observations", "op", op, "query", q.Key(), "targets", missing)
	}

	return &entities.Resolution{
		Query:   *q,
		Table:   table,
		Metrics: metrics,
		Missing: missing,
	}, nil
}

// Catalog returns the selection controls with the year slider ending at now.
func (s *Service) Catalog(now time.Time) entities.Catalog {
	c := s.catalog
	c.MinYear = query.MinYear
	c.MaxYear = now.Year()
	c.Currencies = append([]string(nil), s.catalog.Currencies...)
	c.DefaultTargets = append([]string(nil), s.catalog.DefaultTargets...)

	return c
}
