package entities

import "errors"

var (
	// ErrInvalidQuery is returned before any network access for selections
	// that cannot be turned into a provider request.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrProviderUnavailable covers transport failures, timeouts, non-2xx
	// statuses, malformed bodies and responses without usable rows.
	ErrProviderUnavailable = errors.New("rate provider unavailable")

	// ErrNoObservations is scoped to a single target column.
	ErrNoObservations = errors.New("no observations")
)
