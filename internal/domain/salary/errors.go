package salary

import "errors"

var (
	ErrSalaryNotFound   = errors.New("salary not found")
	ErrEmployeeNotFound = errors.New("employee not found")
)
