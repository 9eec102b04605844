package sentinel

import "errors"

// ErrUnavailable marks a backing service that cannot be reached. Stores wrap
// it so callers can tell an outage from a bad query.
var ErrUnavailable = errors.New("unavailable")
