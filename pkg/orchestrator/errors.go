package orchestrator

import "errors"

// ErrPageNotFound is returned when no page with the requested id is
// configured.
var ErrPageNotFound = errors.New("orchestrator: page not found")
