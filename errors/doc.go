/*
Package errors implements the error kinds used across lendpool.

Every error returned by a handler should wrap one of the root errors
declared with Register. A root error carries a numeric code that stays
stable for clients, while the wrapping layers add context:

	if err := bucket.One(db, key, &pool); err != nil {
		return errors.Wrap(err, "cannot load pool")
	}

Use Is to test the kind of an error, regardless of how many times it was
wrapped:

	if ErrNotFound.Is(err) { ... }

The first Wrap attaches a stack trace. Format an error with %+v to print
it.
*/
package errors
