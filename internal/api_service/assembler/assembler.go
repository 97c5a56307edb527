// Package assembler turns the provider's date-keyed payload into a rate table.
package assembler

import (
	"github.com/langowen/fxtrend/internal/entities"
	"github.com/pkg/errors"
	"sort"
	"time"
)

// Assemble transposes raw {date: {code: rate}} into rows sorted by date with
// one column per target. Cells for other codes are dropped, missing cells
// stay absent and dates without any requested cell produce no row.
func Assemble(base string, targets []string, raw map[string]map[string]float64) (*entities.RateTable, error) {
	const op = "assembler.Assemble"

	rows := make([]entities.RateRow, 0, len(raw))
	for day, cells := range raw {
		date, err := time.Parse(entities.DateLayout, day)
		if err != nil {
			return nil, errors.Wrapf(entities.ErrProviderUnavailable, "%s: date %q: %v", op, day, err)
		}

		rates := make(map[string]float64, len(targets))
		for _, code := range targets {
			if v, ok := cells[code]; ok {
				rates[code] = v
			}
		}
		if len(rates) == 0 {
			continue
		}

		rows = append(rows, entities.RateRow{Date: date, Rates: rates})
	}

	if len(rows) == 0 {
		return nil, errors.Wrapf(entities.ErrProviderUnavailable, "%s: no rows", op)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	columns := make([]string, len(targets))
	copy(columns, targets)

	return &entities.RateTable{
		Base:    base,
		Columns: columns,
		Rows:    rows,
	}, nil
}
