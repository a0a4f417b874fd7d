package core

import "errors"

// ErrNoVersion is returned when a resolution is attempted with a purl that
// does not encode a version. This is the one hard failure in the resolver;
// every other "nothing found" condition is a nil result.
var ErrNoVersion = errors.New("purl has no version")
