package assembler

import (
	"github.com/langowen/fxtrend/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestAssemble_SortsByDate(t *testing.T) {
	t.Parallel()

	raw := map[string]map[string]float64{
		"2024-01-03": {"KRW": 1310.2},
		"2024-01-02": {"KRW": 1300.5},
	}

	table, err := Assemble("USD", []string{"KRW"}, raw)
	require.NoError(t, err)

	assert.Equal(t, []float64{1300.5, 1310.2}, table.Column("KRW"))
	assert.Equal(t, "2024-01-02", table.Rows[0].Date.Format(entities.DateLayout))
	assert.Equal(t, "2024-01-03", table.Rows[1].Date.Format(entities.DateLayout))
}

func TestAssemble_KeepsGapsAbsent(t *testing.T) {
	t.Parallel()

	raw := map[string]map[string]float64{
		"2024-01-05": {"JPY": 144.1, "KRW": 1315.0},
		"2024-01-02": {"JPY": 142.0, "KRW": 1300.5},
		"2024-01-03": {"JPY": 143.3},
		"2024-01-04": {"GBP": 0.79},
	}

	table, err := Assemble("USD", []string{"JPY", "KRW"}, raw)
	require.NoError(t, err)

	assert.Equal(t, "USD", table.Base)
	assert.Equal(t, []string{"JPY", "KRW"}, table.Columns)
	require.Equal(t, 3, table.Len())

	assert.Equal(t, []float64{142.0, 143.3, 144.1}, table.Column("JPY"))
	assert.Equal(t, []float64{1300.5, 1315.0}, table.Column("KRW"))
	assert.NotContains(t, table.Rows[1].Rates, "KRW")

	series := table.Series("KRW")
	require.Len(t, series, 2)
	assert.Equal(t, "2024-01-05", series[1].Date.Format(entities.DateLayout))
}

func TestAssemble_Unavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  map[string]map[string]float64
	}{
		{"nil payload", nil},
		{"zero rows", map[string]map[string]float64{}},
		{"no requested cells", map[string]map[string]float64{"2024-01-02": {"GBP": 0.79}}},
		{"bad date", map[string]map[string]float64{"02.01.2024": {"KRW": 1300.5}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table, err := Assemble("USD", []string{"KRW"}, tt.raw)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, entities.ErrProviderUnavailable)
		})
	}
}
