package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
)

// newRememberToken returns a fresh opaque token: 32 random bytes, base64url.
func newRememberToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("remember token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// encodeRememberCookie packs the user id together with the token so that
// resolution is a lookup by id plus a token compare, not a table scan.
func encodeRememberCookie(userID, token string) string {
	return userID + ":" + token
}

// decodeRememberCookie splits a remember cookie value. A malformed value is
// reported via ok=false, never an error.
func decodeRememberCookie(value string) (userID, token string, ok bool) {
	userID, token, ok = strings.Cut(value, ":")
	if !ok || userID == "" || token == "" {
		return "", "", false
	}
	return userID, token, true
}

// tokenMatches compares a presented token against the stored one. An empty
// stored token (signed out, or never remembered) matches nothing.
func tokenMatches(stored, presented string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
