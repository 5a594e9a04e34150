package model

import "errors"

// ErrNoIdentity is returned when an operation that needs a signed-in user
// runs without one.
var ErrNoIdentity = errors.New("no authenticated identity")

// ErrUnknownRole is returned when a role value falls outside the closed set.
var ErrUnknownRole = errors.New("unknown role")
