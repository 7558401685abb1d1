package physics

import "errors"

var (
	ErrDuplicateBody = errors.New("body already exists")
	ErrBodyNotFound  = errors.New("body not found")
	ErrInvalidConfig = errors.New("invalid scene configuration")
)
