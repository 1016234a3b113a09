package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{name: "letters", username: "alice"},
		{name: "mixed case and digits", username: "Alice2024"},
		{name: "max length", username: strings.Repeat("x", MaxUsernameLength)},
		{name: "empty", username: "", wantErr: ErrEmptyUsername},
		{name: "exclamation", username: "bob!", wantErr: ErrInvalidCharacters},
		{name: "space", username: "a b", wantErr: ErrInvalidCharacters},
		{name: "underscore", username: "a_b", wantErr: ErrInvalidCharacters},
		{name: "accented", username: "émile", wantErr: ErrInvalidCharacters},
		{name: "one over max", username: strings.Repeat("x", MaxUsernameLength+1), wantErr: ErrUsernameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
