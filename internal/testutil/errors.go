package testutil

import "errors"

// ErrSimulated stands in for a failing collaborator (cipher, disk) in tests.
var ErrSimulated = errors.New("simulated error for testing")
