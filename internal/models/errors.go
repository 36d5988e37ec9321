package models

import "errors"

// ErrUnknownFilter indicates a list filter name that is not recognised
var ErrUnknownFilter = errors.New("unknown task filter")
