package cash

import (
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/x"
)

// RegisterRoutes registers the handlers of all cash messages.
func RegisterRoutes(r lendpool.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// NewSendHandler returns a handler that moves coins between two accounts.
// The source account owner must sign the transaction.
func NewSendHandler(auth x.Authenticator, control Controller) lendpool.Handler {
	return &sendHandler{auth: auth, control: control}
}

type sendHandler struct {
	auth    x.Authenticator
	control Controller
}

func (h *sendHandler) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &lendpool.CheckResult{}, nil
}

func (h *sendHandler) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, errors.Wrap(err, "send")
	}
	return &lendpool.DeliverResult{Log: msg.Amount.String()}, nil
}

func (h *sendHandler) validate(ctx lendpool.Context, tx lendpool.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := lendpool.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source account signature missing")
	}
	return &msg, nil
}
