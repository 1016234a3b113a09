package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MaxUsernameLength is the longest accepted username, in characters.
const MaxUsernameLength = 20

var (
	validate = validator.New()

	// Tags are checked left to right and validation stops at the first failure,
	// which gives the empty > characters > length precedence.
	usernameRules = fmt.Sprintf("required,alphanum,max=%d", MaxUsernameLength)
)

// ValidateUsername checks the shape of an already trimmed username.
// It does not know about registration state or duplicates.
func ValidateUsername(username string) error {
	err := validate.Var(username, usernameRules)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Tag() {
	case "required":
		return ErrEmptyUsername
	case "alphanum":
		return ErrInvalidCharacters
	case "max":
		return ErrUsernameTooLong
	default:
		return err
	}
}
