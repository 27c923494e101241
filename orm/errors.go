package orm

import (
	"github.com/iov-one/lendpool/errors"
)

// Orm reserves 100~109 error codes

// ErrInvalidIndex is returned when an index specified is invalid
var ErrInvalidIndex = errors.Register(100, "invalid index")

// ErrUniqueConstraint is returned when a unique index is violated
var ErrUniqueConstraint = errors.Register(101, "duplicate unique key")
