package change

import (
	"github.com/langowen/fxtrend/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func table(base string, columns []string, rows ...entities.RateRow) *entities.RateTable {
	return &entities.RateTable{Base: base, Columns: columns, Rows: rows}
}

func TestCalculate_Delta(t *testing.T) {
	t.Parallel()

	cur, prev := 1310.2, 1300.5
	tbl := table("USD", []string{"KRW"},
		entities.RateRow{Date: day(2), Rates: map[string]float64{"KRW": prev}},
		entities.RateRow{Date: day(3), Rates: map[string]float64{"KRW": cur}},
	)

	m, err := Calculate("USD", tbl, "KRW")
	require.NoError(t, err)

	assert.Equal(t, "KRW", m.Target)
	assert.Equal(t, day(3), m.Date)
	assert.Equal(t, 1310.2, m.Current)
	assert.Equal(t, 1300.5, m.Previous)
	assert.Equal(t, cur-prev, m.Delta)
	assert.Equal(t, entities.PrecisionCoarse, m.Precision)
}

func TestCalculate_SkipsAbsentCells(t *testing.T) {
	t.Parallel()

	tbl := table("USD", []string{"JPY", "KRW"},
		entities.RateRow{Date: day(2), Rates: map[string]float64{"JPY": 142.0, "KRW": 1300.5}},
		entities.RateRow{Date: day(3), Rates: map[string]float64{"JPY": 143.3, "KRW": 1305.0}},
		entities.RateRow{Date: day(4), Rates: map[string]float64{"JPY": 144.1}},
	)

	m, err := Calculate("USD", tbl, "KRW")
	require.NoError(t, err)

	assert.Equal(t, day(3), m.Date)
	assert.Equal(t, 1305.0, m.Current)
	assert.Equal(t, 1300.5, m.Previous)
}

func TestCalculate_SingleObservation(t *testing.T) {
	t.Parallel()

	tbl := table("USD", []string{"KRW"},
		entities.RateRow{Date: day(2), Rates: map[string]float64{"KRW": 1300.5}},
	)

	m, err := Calculate("USD", tbl, "KRW")
	require.NoError(t, err)

	assert.Equal(t, 1300.5, m.Current)
	assert.Equal(t, m.Current, m.Previous)
	assert.Zero(t, m.Delta)
}

func TestCalculate_NoObservations(t *testing.T) {
	t.Parallel()

	tbl := table("USD", []string{"JPY", "KRW"},
		entities.RateRow{Date: day(2), Rates: map[string]float64{"JPY": 142.0}},
	)

	_, err := Calculate("USD", tbl, "KRW")
	assert.ErrorIs(t, err, entities.ErrNoObservations)
}

func TestCalculateAll(t *testing.T) {
	t.Parallel()

	tbl := table("USD", []string{"GBP", "JPY", "KRW"},
		entities.RateRow{Date: day(2), Rates: map[string]float64{"GBP": 0.79, "JPY": 142.0}},
		entities.RateRow{Date: day(3), Rates: map[string]float64{"GBP": 0.78, "JPY": 143.3}},
	)

	metrics, missing := CalculateAll("USD", tbl)

	assert.Equal(t, []string{"KRW"}, missing)
	require.Len(t, metrics, 2)
	assert.Equal(t, entities.PrecisionFine, metrics["GBP"].Precision)
	assert.Equal(t, entities.PrecisionCoarse, metrics["JPY"].Precision)
}

func TestPrecisionFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		base    string
		current float64
		want    entities.Precision
	}{
		{"KRW base with small value", "KRW", 0.00075, entities.PrecisionFine},
		{"KRW base with large value", "KRW", 10.2, entities.PrecisionFine},
		{"large value", "USD", 1300.5, entities.PrecisionCoarse},
		{"exactly one", "USD", 1, entities.PrecisionCoarse},
		{"sub-unit value", "USD", 0.92, entities.PrecisionFine},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PrecisionFor(tt.base, tt.current))
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1310.20", Format(1310.2, entities.PrecisionCoarse))
	assert.Equal(t, "0.9213", Format(0.92126, entities.PrecisionFine))
	assert.Equal(t, "-9.70", Format(1300.5-1310.2, entities.PrecisionCoarse))
	assert.Equal(t, "0.0000", Format(0, entities.PrecisionFine))
}
