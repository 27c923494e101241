package lending

import "github.com/iov-one/lendpool/errors"

var (
	// ErrInsufficientFunds is returned when an account does not hold
	// the requested amount or a withdrawal exceeds the unlocked interest.
	ErrInsufficientFunds = errors.Register(2000, "insufficient funds")

	// ErrArithmetic is returned when a computation overflows or
	// underflows.
	ErrArithmetic = errors.Register(2001, "arithmetic error")

	// ErrInvalidAccountConfig is returned when a vault does not match
	// the account derived for its pool.
	ErrInvalidAccountConfig = errors.Register(2002, "invalid account configuration")

	ErrPoolPaused              = errors.Register(2003, "pool paused")
	ErrInvalidAgreement        = errors.Register(2004, "invalid agreement")
	ErrInvalidLoanTerm         = errors.Register(2005, "invalid loan term")
	ErrInvalidPaymentFrequency = errors.Register(2006, "invalid payment frequency")

	// ErrInvalidTokenMint is returned for an asset that is not allowed to
	// be lent.
	ErrInvalidTokenMint = errors.Register(2007, "invalid token mint")
)
