package entities

import "time"

type Precision int

const (
	PrecisionCoarse Precision = 2
	PrecisionFine   Precision = 4
)

// Metric is the latest value of one target and its change since the
// previous published observation.
type Metric struct {
	Target    string
	Date      time.Time
	Current   float64
	Previous  float64
	Delta     float64
	Precision Precision
}
