package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRole        = errors.New("invalid role")
	ErrMissingSchoolID    = errors.New("schoolId is required for this role")
	ErrUserNotFound       = errors.New("user not found")
	ErrTeacherNotFound    = fmt.Errorf("%w: no teacher with this email for the given school id or school name", ErrUserNotFound)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailMissing       = errors.New("no email address on record for this user")
	ErrEmailSend          = errors.New("failed to send verification email")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	// ErrSchoolNotAssociated is a data problem, not a user mistake.
	ErrSchoolNotAssociated = errors.New("teacher is not associated with any school")
	ErrWeakPassword        = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes")
)
