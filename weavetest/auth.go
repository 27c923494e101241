package weavetest

import (
	"context"

	"github.com/iov-one/lendpool"
)

// Auth is an x.Authenticator granting Signer and all Signers.
type Auth struct {
	Signer  lendpool.Condition
	Signers []lendpool.Condition
}

func (a *Auth) GetConditions(lendpool.Context) []lendpool.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]lendpool.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	return append(conds, a.Signer)
}

func (a *Auth) HasAddress(ctx lendpool.Context, addr lendpool.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is an x.Authenticator granting the conditions stored in the
// context under Key. Use SetConditions to grant them.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context granting given conditions.
func (a *CtxAuth) SetConditions(ctx lendpool.Context, conds ...lendpool.Condition) lendpool.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx lendpool.Context) []lendpool.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]lendpool.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx lendpool.Context, addr lendpool.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []lendpool.Condition, addr lendpool.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
