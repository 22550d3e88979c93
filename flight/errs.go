package flight

import "errors"

var (
	ErrMalformed = errors.New("malformed flight data")
)
