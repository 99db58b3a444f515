package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionExpired indicates the bearer token was rejected. Callers
	// must clear session state and direct the user back to login.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotAuthenticated indicates a call that requires a session was made
	// without a stored token.
	ErrNotAuthenticated = errors.New("not logged in")
)

// RequestError wraps a non-2xx response that does not match the session
// expiration pattern. Message carries the server-provided text when present.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed (%d)", e.StatusCode)
}

// expiredPhrases are the known message bodies some endpoints return with
// 400/403 instead of a clean 401 when the token has expired.
var expiredPhrases = []string{
	"token expired",
	"token has expired",
	"expired token",
	"jwt expired",
	"session expired",
	"invalid or expired",
	"authentication expired",
}

// isExpiredMessage reports whether a response body text matches a known
// token-expiration phrase.
func isExpiredMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, phrase := range expiredPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
