package model

import "errors"

// ErrInvalidCredentials is returned when a login names a known player
// with the wrong secret.
var ErrInvalidCredentials = errors.New("invalid credentials")
