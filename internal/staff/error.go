package staff

import (
	"errors"
	"fmt"

	"cafe-pos/internal/apperr"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or PIN", apperr.ErrUnauthenticated)
	ErrMissingSecret      = errors.New("JWT secret is not set")
)
