package domain

import "errors"

// Domain errors.
var (
	ErrRegistrationClosed = errors.New("registration is closed")
	ErrEmptyUsername      = errors.New("username is empty")
	ErrInvalidCharacters  = errors.New("username contains characters other than letters and digits")
	ErrUsernameTooLong    = errors.New("username is too long")
	ErrDuplicateUsername  = errors.New("username already registered")
	ErrNoParticipants     = errors.New("no participants to draw from")
)

// Error codes double as message ids in the translation catalogues.
const (
	CodeRegistrationClosed = "registration_closed"
	CodeEmptyUsername      = "empty_username"
	CodeInvalidCharacters  = "invalid_characters"
	CodeUsernameTooLong    = "username_too_long"
	CodeDuplicateUsername  = "duplicate_username"
	CodeNoParticipants     = "no_participants"
)

var codes = map[error]string{
	ErrRegistrationClosed: CodeRegistrationClosed,
	ErrEmptyUsername:      CodeEmptyUsername,
	ErrInvalidCharacters:  CodeInvalidCharacters,
	ErrUsernameTooLong:    CodeUsernameTooLong,
	ErrDuplicateUsername:  CodeDuplicateUsername,
	ErrNoParticipants:     CodeNoParticipants,
}

// Code returns the stable code of a domain error, or "" when err is not one.
// Wrapped errors are unwrapped.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for sentinel, code := range codes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}

// IsRejection reports whether err is a registration rejection the operator
// can recover from by submitting another username.
func IsRejection(err error) bool {
	switch Code(err) {
	case CodeRegistrationClosed, CodeEmptyUsername, CodeInvalidCharacters,
		CodeUsernameTooLong, CodeDuplicateUsername:
		return true
	}
	return false
}
