package rotation

import "errors"

var (
	ErrInvalidGroup    = errors.New("night group must be A or B")
	ErrServiceRequired = errors.New("service is required")
)
