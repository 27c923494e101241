/*
Package x contains the pieces shared by the lending ledger extensions,
most importantly the Authenticator used by every handler to find out who
signed a transaction.
*/
package x

import (
	"github.com/iov-one/lendpool"
)

// Authenticator tells which conditions the current transaction fulfils.
// Handlers receive it in their constructor, so that any authentication
// scheme can be plugged in.
type Authenticator interface {
	// GetConditions returns all fulfilled conditions.
	GetConditions(lendpool.Context) []lendpool.Condition
	// HasAddress returns true if any fulfilled condition has this
	// address.
	HasAddress(lendpool.Context, lendpool.Address) bool
}

// ChainAuth returns an Authenticator granting everything any of the given
// authenticators grants.
func ChainAuth(impls ...Authenticator) Authenticator {
	return multiAuth(impls)
}

type multiAuth []Authenticator

// GetConditions returns the conditions of all authenticators, each
// condition once.
func (m multiAuth) GetConditions(ctx lendpool.Context) []lendpool.Condition {
	var res []lendpool.Condition
	for _, impl := range m {
	next:
		for _, c := range impl.GetConditions(ctx) {
			for _, have := range res {
				if have.Equals(c) {
					continue next
				}
			}
			res = append(res, c)
		}
	}
	return res
}

func (m multiAuth) HasAddress(ctx lendpool.Context, addr lendpool.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first fulfilled condition or nil.
func MainSigner(ctx lendpool.Context, auth Authenticator) lendpool.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// HasAllAddresses returns true if every address is authenticated.
func HasAllAddresses(ctx lendpool.Context, auth Authenticator, required []lendpool.Address) bool {
	for _, addr := range required {
		if !auth.HasAddress(ctx, addr) {
			return false
		}
	}
	return true
}
