package response

import (
	"errors"
	"net/http"

	"github.com/peoplehq/hrms-backend-go/internal/domain/department"
	"github.com/peoplehq/hrms-backend-go/internal/domain/employee"
	"github.com/peoplehq/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplehq/hrms-backend-go/internal/domain/salary"
	"github.com/peoplehq/hrms-backend-go/internal/domain/title"
	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		BadRequest(w, "validation failed", validationErrs.ToMap())
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, user.ErrEmailClaimMissing):
		Forbidden(w, "Token has no usable email claim")
	case errors.Is(err, user.ErrInvalidSyncPayload):
		BadRequest(w, "Missing subject id or verified email", nil)
	case errors.Is(err, user.ErrProvisioningFailed):
		InternalServerError(w, "Could not provision user account")

	// Employee domain errors
	case errors.Is(err, employee.ErrProfileNotFound):
		NotFound(w, "Employee profile not found")
	case errors.Is(err, employee.ErrDepartmentNotFound),
		errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "Department name already exists")

	// Compensation domain errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary not found")
	case errors.Is(err, salary.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, title.ErrTitleHistoryNotFound):
		NotFound(w, "Title history entry not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayRunNotFound):
		NotFound(w, "Pay run not found")
	case errors.Is(err, payroll.ErrPayStubNotFound):
		NotFound(w, "Pay stub not found")
	case errors.Is(err, payroll.ErrInvalidRunState):
		BadRequest(w, "Pay run is not in a processable state", nil)
	case errors.Is(err, payroll.ErrRunNotDeletable):
		BadRequest(w, "Only pending pay runs can be deleted", nil)
	case errors.Is(err, payroll.ErrDuplicatePayStub):
		Conflict(w, "Pay stub already exists for this run and employee")
	case errors.Is(err, payroll.ErrProcessingFailed):
		InternalServerError(w, "Pay run processing failed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
