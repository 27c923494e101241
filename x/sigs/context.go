package sigs

import (
	"context"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/x"
)

type signersKey struct{}

// withSigners is unexported so that only verified signatures end up in
// the context.
func withSigners(ctx lendpool.Context, signers []lendpool.Condition) lendpool.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate grants the conditions of all signatures verified by the
// Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx lendpool.Context) []lendpool.Condition {
	signers, _ := ctx.Value(signersKey{}).([]lendpool.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx lendpool.Context, addr lendpool.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
