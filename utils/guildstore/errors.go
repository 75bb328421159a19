package guildstore

import "errors"

// Sentinel errors returned by Store operations. Callers classify them with
// errors.Is and render their own user-facing text.
var (
	ErrCategoryExists        = errors.New("category already exists")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrRoleAlreadyInCategory = errors.New("role already in category")
	ErrRoleNotInCategory     = errors.New("role not in category")
	ErrInvalidSetting        = errors.New("unrecognized setting")
)
