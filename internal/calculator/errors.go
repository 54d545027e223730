package calculator

import "errors"

// ErrInvalidInput covers empty member sets, malformed percentages and
// non-finite or negative amounts. It is never retryable: the caller must
// fix the input and resubmit.
var ErrInvalidInput = errors.New("invalid input")
