package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserEmailExists    = errors.New("email already registered")
	ErrAccountInactive    = errors.New("user account is inactive")
	ErrEmailClaimMissing  = errors.New("missing email claim in token")
	ErrProvisioningFailed = errors.New("could not provision user profile")
	ErrRoleNotAllowed     = errors.New("role does not have permission")
	ErrInvalidSyncPayload = errors.New("missing subject id or verified email")
)
