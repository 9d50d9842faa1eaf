package domain

import "errors"

// ErrNotFound marks a local lookup miss. It is recoverable: callers surface it
// to the end user as "insufficient data" and must not log it as an error.
var ErrNotFound = errors.New("not found")
