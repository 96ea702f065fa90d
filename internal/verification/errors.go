package verification

import "errors"

// ErrEmptyBullet indicates the bullet text was empty or whitespace.
var ErrEmptyBullet = errors.New("verification: bullet text cannot be empty")
