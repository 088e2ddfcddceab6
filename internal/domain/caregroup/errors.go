package caregroup

import "errors"

var (
	ErrCareGroupNotFound = errors.New("care group not found")
	ErrNameTaken         = errors.New("care group name already exists")
)
