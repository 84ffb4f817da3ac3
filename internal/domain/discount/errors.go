package discount

import "errors"

var (
	ErrNotFound = errors.New("discount not found")
)
