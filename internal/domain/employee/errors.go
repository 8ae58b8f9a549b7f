package employee

import "errors"

var (
	ErrProfileNotFound    = errors.New("employee profile not found")
	ErrDepartmentNotFound = errors.New("department not found")
)
