package entities

import (
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Query is the canonical form of a dashboard selection. Targets are unique,
// sorted and never contain Base.
type Query struct {
	Base      string    `json:"base"`
	Targets   []string  `json:"targets"`
	StartYear int       `json:"start_year"`
	EndYear   int       `json:"end_year"`
	Range     DateRange `json:"range"`
}

type DateRange struct {
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r DateRange) StartDate() string { return r.Start.Format(DateLayout) }
func (r DateRange) EndDate() string   { return r.End.Format(DateLayout) }

func (r DateRange) MarshalJSON() ([]byte, error) {
	return []byte(`{"start":"` + r.StartDate() + `","end":"` + r.EndDate() + `"}`), nil
}

// Key identifies the query in caches. Two queries with the same base, the
// same targets and the same resolved range share a key.
func (q Query) Key() string {
	var b strings.Builder
	b.WriteString(q.Base)
	b.WriteByte(':')
	b.WriteString(strings.Join(q.Targets, ","))
	b.WriteByte(':')
	b.WriteString(q.Range.StartDate())
	b.WriteString("..")
	b.WriteString(q.Range.EndDate())

	return b.String()
}

func (q Query) String() string {
	return q.Key() + " (" + strconv.Itoa(q.StartYear) + "-" + strconv.Itoa(q.EndYear) + ")"
}
