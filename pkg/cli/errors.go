package cli

import "errors"

// Common CLI errors
var (
	ErrNoFixtures = errors.New("no fixture files given - pass paths as arguments, use --fixtures, or set MOCKHTTP_FIXTURES")
)
