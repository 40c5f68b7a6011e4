package ctrl

import "errors"

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when a resource already exists.
var ErrAlreadyExists = errors.New("already exists")

// ErrCodeIsNotValid is returned when the step-up code is not valid.
var ErrCodeIsNotValid = errors.New("code is not valid")

// ErrNoChallenge is returned when no step-up challenge is pending for the
// account, including when a concurrent verification consumed it first.
var ErrNoChallenge = errors.New("no pending challenge")

// ErrChallengeExpired is returned when the pending challenge outlived its
// five-minute window. The challenge is discarded.
var ErrChallengeExpired = errors.New("challenge expired")

// ErrCannotRemoveCurrentDevice is returned when a device tries to remove
// its own registration.
var ErrCannotRemoveCurrentDevice = errors.New("cannot remove current device")

// ErrResetTokenInvalid is returned when a password reset token is unknown,
// expired or already redeemed. The three cases are indistinguishable on
// purpose.
var ErrResetTokenInvalid = errors.New("invalid or expired reset token")
