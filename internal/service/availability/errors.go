package availability

import "errors"

var (
	ErrTableNotFound = errors.New("table not found")
)
