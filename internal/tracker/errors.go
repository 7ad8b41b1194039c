package tracker

import "resume-tailor/internal/apperr"

// ErrNotFound is returned when an entry does not exist in the client's namespace.
var ErrNotFound = apperr.NotFound("tracker entry not found")
