package client

import (
	"errors"
	"net/http"
	"regexp"
)

// Messages shown after a password change attempt
const (
	PasswordChangedMessage   = "Password updated successfully."
	IncorrectPasswordMessage = "Current password is incorrect."
)

var incorrectPasswordPattern = regexp.MustCompile(`(?i)current password|incorrect`)

// PasswordChangeMessage turns the result of a password change into a user-facing message.
// A 401 or a message about the current password is reported as an incorrect password;
// anything else gets the raw error appended.
func PasswordChangeMessage(err error) string {
	if err == nil {
		return PasswordChangedMessage
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusUnauthorized || incorrectPasswordPattern.MatchString(apiErr.Message) {
			return IncorrectPasswordMessage
		}
	}

	return "Failed to change password: " + err.Error()
}
