package common

import "errors"

// ErrTokenExpired marks a persisted session token whose exp claim has passed.
var ErrTokenExpired = errors.New("token expired")
