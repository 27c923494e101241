package sigs

import "github.com/iov-one/lendpool/errors"

// ErrInvalidSequence is returned when a signature carries a sequence that
// does not match the signer's account.
var ErrInvalidSequence = errors.Register(120, "invalid sequence")
