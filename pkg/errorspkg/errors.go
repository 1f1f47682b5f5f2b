// Package errorspkg provides errors shared by every layer.
package errorspkg

import "errors"

// ErrInternal is returned to clients in place of any error that is not a
// domain error. The underlying cause is only logged.
var ErrInternal = errors.New("internal error")
