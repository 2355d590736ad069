package service

import "errors"

var (
	// ErrEmptyQuery rejects a blank query before any outbound call.
	ErrEmptyQuery = errors.New("query is required")

	// ErrMissingSignal rejects an intent that names neither a destination nor
	// an interest. Raised before any places call is issued.
	ErrMissingSignal = errors.New("query must mention a destination or an interest")

	// ErrNoResults signals that filtering produced an empty set.
	ErrNoResults = errors.New("no places matched the request")
)
