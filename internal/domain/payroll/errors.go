package payroll

import "errors"

var (
	ErrPayRunNotFound    = errors.New("pay run not found")
	ErrPayStubNotFound   = errors.New("pay stub not found")
	ErrInvalidRunState   = errors.New("payroll can only be processed from Pending status")
	ErrRunNotDeletable   = errors.New("only pending pay runs can be deleted")
	ErrDuplicatePayStub  = errors.New("pay stub already exists for this run and employee")
	ErrProcessingFailed  = errors.New("payroll processing failed")
)
