package ministry

import "errors"

var (
	ErrMinistryNotFound = errors.New("ministry not found")
	ErrNameTaken        = errors.New("ministry name already exists")
)
