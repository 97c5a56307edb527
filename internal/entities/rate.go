package entities

import (
	"encoding/json"
	"time"
)

// RateTable is a date-ascending rate series for one base currency. Columns
// keeps the normalized target order; a row holds only the cells the
// provider published for that date.
type RateTable struct {
	Base    string    `json:"base"`
	Columns []string  `json:"columns"`
	Rows    []RateRow `json:"rows"`
}

type RateRow struct {
	Date  time.Time
	Rates map[string]float64
}

type Point struct {
	Date  time.Time
	Value float64
}

type rateRowJSON struct {
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func (r RateRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(rateRowJSON{Date: r.Date.Format(DateLayout), Rates: r.Rates})
}

func (r *RateRow) UnmarshalJSON(data []byte) error {
	var raw rateRowJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	date, err := time.Parse(DateLayout, raw.Date)
	if err != nil {
		return err
	}

	r.Date = date
	r.Rates = raw.Rates

	return nil
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string  `json:"date"`
		Value float64 `json:"value"`
	}{Date: p.Date.Format(DateLayout), Value: p.Value})
}

func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Column returns the published values for code in date order, skipping
// absent cells.
func (t *RateTable) Column(code string) []float64 {
	if t == nil {
		return nil
	}

	out := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if v, ok := row.Rates[code]; ok {
			out = append(out, v)
		}
	}

	return out
}

// Series is Column with the observation dates attached.
func (t *RateTable) Series(code string) []Point {
	if t == nil {
		return nil
	}

	out := make([]Point, 0, len(t.Rows))
	for _, row := range t.Rows {
		if v, ok := row.Rates[code]; ok {
			out = append(out, Point{Date: row.Date, Value: v})
		}
	}

	return out
}
