package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNameLength     = 256
	MaxSlugLength     = 50
	MaxTextLength     = 200
	MinScore          = 1
	MaxScore          = 10
	MinYear           = 1
	ReservedUsername  = "me"
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// ValidateUsername checks the general username format used everywhere.
func ValidateUsername(candidate string) error {
	if candidate == "" || !usernamePattern.MatchString(candidate) {
		return ErrInvalidFormat
	}
	if utf8.RuneCountInString(candidate) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	return nil
}

// ValidateSignupUsername additionally rejects the reserved "me".
func ValidateSignupUsername(candidate string) error {
	if err := ValidateUsername(candidate); err != nil {
		return err
	}
	if candidate == ReservedUsername {
		return ErrReservedName
	}
	return nil
}

// ValidateSlug accepts URL-safe identifiers of at most MaxSlugLength characters.
func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) || len(slug) > MaxSlugLength {
		return ErrInvalidSlug
	}
	return nil
}

// Clock supplies the current time so year checks stay deterministic under test.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// ValidateYear reads the clock on every call; the upper bound is never cached.
func ValidateYear(year int, clock Clock) error {
	if year < MinYear {
		return ErrYearTooEarly
	}
	if year > clock.Now().Year() {
		return ErrYearInFuture
	}
	return nil
}

func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return ErrScoreOutOfRange
	}
	return nil
}

// NormalizeEmail is the stored form of an email: trimmed and lower-cased,
// so one mailbox can only ever belong to one account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
