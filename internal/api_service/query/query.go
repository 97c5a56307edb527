// Package query turns raw dashboard selections into canonical requests.
package query

import (
	"github.com/langowen/fxtrend/internal/entities"
	"github.com/pkg/errors"
	"sort"
	"strings"
	"time"
)

// MinYear is the first year the provider publishes daily reference rates for.
const MinYear = 1999

// Normalize validates a selection and returns its canonical query. now is the
// caller's clock; it decides the current year and the end of an open range.
func Normalize(base string, targets []string, startYear, endYear int, now time.Time) (*entities.Query, error) {
	base = normalizeCode(base)
	if !validCode(base) {
		return nil, errors.Wrapf(entities.ErrInvalidQuery, "base currency %q", base)
	}

	codes, err := normalizeTargets(base, targets)
	if err != nil {
		return nil, err
	}

	currentYear := now.Year()
	switch {
	case startYear < MinYear:
		return nil, errors.Wrapf(entities.ErrInvalidQuery, "start year %d is before %d", startYear, MinYear)
	case startYear > endYear:
		return nil, errors.Wrapf(entities.ErrInvalidQuery, "start year %d is after end year %d", startYear, endYear)
	case endYear > currentYear:
		return nil, errors.Wrapf(entities.ErrInvalidQuery, "end year %d is after %d", endYear, currentYear)
	}

	return &entities.Query{
		Base:      base,
		Targets:   codes,
		StartYear: startYear,
		EndYear:   endYear,
		Range:     ResolveRange(startYear, endYear, now),
	}, nil
}

// ResolveRange starts on January 4th of startYear and ends on December 31st of
// endYear, or on now's date when endYear is the current year.
func ResolveRange(startYear, endYear int, now time.Time) entities.DateRange {
	end := time.Date(endYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	if endYear >= now.Year() {
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	return entities.DateRange{
		Start: time.Date(startYear, time.January, 4, 0, 0, 0, 0, time.UTC),
		End:   end,
	}
}

func normalizeTargets(base string, targets []string) ([]string, error) {
	seen := make(map[string]struct{}, len(targets))
	codes := make([]string, 0, len(targets))

	for _, t := range targets {
		code := normalizeCode(t)
		if code == "" {
			continue
		}
		if !validCode(code) {
			return nil, errors.Wrapf(entities.ErrInvalidQuery, "target currency %q", code)
		}
		if code == base {
			return nil, errors.Wrapf(entities.ErrInvalidQuery, "target %s equals base", code)
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	if len(codes) == 0 {
		return nil, errors.Wrap(entities.ErrInvalidQuery, "no target currencies")
	}

	sort.Strings(codes)

	return codes, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
