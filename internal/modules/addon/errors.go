package addon

import "errors"

var ErrNotFound = errors.New("add-on service not found")
