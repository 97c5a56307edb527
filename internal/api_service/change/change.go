// Package change derives the latest value and day-over-day change of every
// column in a rate table.
package change

import (
	"github.com/langowen/fxtrend/internal/entities"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// fineBase is always shown with fine precision: its rates are large numbers
// whose daily moves sit in the decimals.
const fineBase = "KRW"

// Calculate builds the metric of one target. A single observation has no
// prior change, so Previous equals Current and Delta is zero.
func Calculate(base string, table *entities.RateTable, target string) (entities.Metric, error) {
	const op = "change.Calculate"

	series := table.Series(target)
	if len(series) == 0 {
		return entities.Metric{}, errors.Wrapf(entities.ErrNoObservations, "%s: %s", op, target)
	}

	last := series[len(series)-1]
	previous := last.Value
	if len(series) > 1 {
		previous = series[len(series)-2].Value
	}

	return entities.Metric{
		Target:    target,
		Date:      last.Date,
		Current:   last.Value,
		Previous:  previous,
		Delta:     last.Value - previous,
		Precision: PrecisionFor(base, last.Value),
	}, nil
}

// CalculateAll computes a metric per table column. Columns without
// observations are returned in missing and do not affect the others.
func CalculateAll(base string, table *entities.RateTable) (metrics map[string]entities.Metric, missing []string) {
	if table == nil {
		return map[string]entities.Metric{}, nil
	}

	metrics = make(map[string]entities.Metric, len(table.Columns))
	for _, target := range table.Columns {
		m, err := Calculate(base, table, target)
		if err != nil {
			missing = append(missing, target)
			continue
		}
		metrics[target] = m
	}

	return metrics, missing
}

func PrecisionFor(base string, current float64) entities.Precision {
	if base == fineBase || current < 1 {
		return entities.PrecisionFine
	}
	return entities.PrecisionCoarse
}

// Format renders v with exactly p decimal digits.
func Format(v float64, p entities.Precision) string {
	return decimal.NewFromFloat(v).StringFixed(int32(p))
}
