package public

import (
	"errors"
	"fmt"
	"github.com/langowen/fxtrend/deploy/config"
	"github.com/langowen/fxtrend/internal/api_service/change"
	"github.com/langowen/fxtrend/internal/entities"
	"log/slog"
	"net/http"
	"strconv"
)

type RatesResponse struct {
	Query   entities.Query     `json:"query"`
	Columns []string           `json:"columns"`
	Rows    []entities.RateRow `json:"rows"`
	Metrics []MetricResponse   `json:"metrics"`
	Missing []string           `json:"missing,omitempty"`
}

type MetricResponse struct {
	Target    string  `json:"target"`
	Label     string  `json:"label"`
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
	Previous  float64 `json:"previous"`
	Delta     float64 `json:"delta"`
	Precision int     `json:"precision"`
	ValueText string  `json:"value_text"`
	DeltaText string  `json:"delta_text"`
}

// GetRates serves GET /rates?base=USD&targets=KRW,JPY&start=2015&end=2026.
// Missing start and end fall back to the catalog defaults.
func (s *Server) GetRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := s.clock()
	params := r.URL.Query()
	catalog := s.service.Catalog(now)

	base := params.Get("base")
	if base == "" {
		base = catalog.DefaultBase
	}

	targets := config.Split(params.Get("targets"))
	if _, ok := params["targets"]; !ok {
		targets = catalog.DefaultTargets
	}

	startYear, err := yearParam(params.Get("start"), catalog.DefaultStartYear)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid start year", err.Error())
		return
	}

	endYear, err := yearParam(params.Get("end"), now.Year())
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid end year", err.Error())
		return
	}

	res, err := s.service.Resolve(ctx, base, targets, startYear, endYear, now)
	switch {
	case errors.Is(err, entities.ErrInvalidQuery):
		RespondWithError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	case errors.Is(err, entities.ErrProviderUnavailable):
		slog.Warn("exchange rates unavailable", "error", err.Error())
		RespondWithError(w, http.StatusBadGateway, "exchange rates could not be loaded")
		return
	case err != nil:
		slog.Error("resolve failed", "error", err.Error())
		RespondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	RespondWithJSON(w, http.StatusOK, newRatesResponse(res))
}

func (s *Server) GetCatalog(w http.ResponseWriter, _ *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.service.Catalog(s.clock()))
}

func newRatesResponse(res *entities.Resolution) RatesResponse {
	out := RatesResponse{
		Query:   res.Query,
		Columns: res.Table.Columns,
		Rows:    res.Table.Rows,
		Metrics: make([]MetricResponse, 0, len(res.Metrics)),
		Missing: res.Missing,
	}

	for _, target := range res.Table.Columns {
		m, ok := res.Metrics[target]
		if !ok {
			continue
		}
		out.Metrics = append(out.Metrics, MetricResponse{
			Target:    m.Target,
			Label:     fmt.Sprintf("1 %s ➔ %s", res.Query.Base, m.Target),
			Date:      m.Date.Format(entities.DateLayout),
			Value:     m.Current,
			Previous:  m.Previous,
			Delta:     m.Delta,
			Precision: int(m.Precision),
			ValueText: change.Format(m.Current, m.Precision),
			DeltaText: change.Format(m.Delta, m.Precision),
		})
	}

	return out
}

func yearParam(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}
