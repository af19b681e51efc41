package auth

import (
	"net/http"
	"strings"

	"cafe-pos/internal/apperr"
	"cafe-pos/internal/staff"
)

const AccessTokenCookie = "access_token"

// ExtractAccessToken reads the token from the access_token cookie, falling
// back to an Authorization: Bearer header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	return ""
}

// Authenticate resolves the staff claims carried by r.
func Authenticate(r *http.Request, secret string) (*staff.CustomClaims, error) {
	token := ExtractAccessToken(r)
	if token == "" {
		return nil, apperr.ErrUnauthenticated
	}

	claims, err := staff.ParseJWT(secret, token)
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}
	return claims, nil
}
