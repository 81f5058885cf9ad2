package domain

import "errors"

// Error kinds. Every error returned by the services unwraps to exactly one of these,
// and the HTTP layer maps the kind to a status code.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
	ErrDelivery   = errors.New("delivery failed")
	ErrThrottled  = errors.New("too many requests")
)

// Error is a specific failure that belongs to one of the kinds above.
type Error struct {
	kind error
	code string
	msg  string
}

func newError(kind error, code, msg string) *Error {
	return &Error{kind: kind, code: code, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind so errors.Is(err, ErrValidation) works on wrapped errors.
func (e *Error) Unwrap() error { return e.kind }

// Code is a stable machine-readable identifier, e.g. "duplicate_review".
func (e *Error) Code() string { return e.code }

var (
	ErrInvalidFormat          = newError(ErrValidation, "invalid_format", "username may contain only letters, digits and @.+-_")
	ErrUsernameTooLong        = newError(ErrValidation, "username_too_long", "username must be at most 150 characters")
	ErrReservedName           = newError(ErrValidation, "reserved_name", `username "me" is reserved`)
	ErrInvalidCode            = newError(ErrValidation, "invalid_code", "invalid username or confirmation code")
	ErrYearTooEarly           = newError(ErrValidation, "year_too_early", "year must be a positive number")
	ErrYearInFuture           = newError(ErrValidation, "year_in_future", "year cannot be later than the current year")
	ErrScoreOutOfRange        = newError(ErrValidation, "score_out_of_range", "score must be between 1 and 10")
	ErrInvalidRole            = newError(ErrValidation, "invalid_role", "role must be one of user, moderator, admin")
	ErrInvalidSlug            = newError(ErrValidation, "invalid_slug", "slug may contain only letters, digits, hyphens and underscores")
	ErrUnknownGenre           = newError(ErrValidation, "unknown_genre", "genre slug does not exist")
	ErrUnknownCategory        = newError(ErrValidation, "unknown_category", "category slug does not exist")
	ErrEmailAlreadyRegistered = newError(ErrConflict, "email_already_registered", "a user with this email is already registered")
	ErrEmailMismatch          = newError(ErrConflict, "email_mismatch", "email does not match the registered username")
	ErrUsernameTaken          = newError(ErrConflict, "username_taken", "a user with this username already exists")
	ErrEmailTaken             = newError(ErrConflict, "email_taken", "a user with this email already exists")
	ErrDuplicateReview        = newError(ErrConflict, "duplicate_review", "you have already reviewed this title")
	ErrSlugTaken              = newError(ErrConflict, "slug_taken", "slug already in use")
	ErrForbidden              = newError(ErrPermission, "forbidden", "you do not have permission to perform this action")
	ErrTooManyRequests        = newError(ErrThrottled, "too_many_requests", "too many signup attempts, try again later")
)

// CodeOf returns the specific error code, or "" for plain kind errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}
