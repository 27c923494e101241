package sigs

import (
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/weavetest"
)

// signedTx is a transaction carrying a raw payload and its signatures.
type signedTx struct {
	weavetest.Tx
	payload []byte
	sigs    []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func newSignedTx(payload string) *signedTx {
	return &signedTx{
		Tx:      weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/signed"}},
		payload: []byte(payload),
	}
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.payload, nil
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.sigs
}

// signersHandler records the conditions authenticated for the last call.
type signersHandler struct {
	signers []lendpool.Condition
}

func (h *signersHandler) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.CheckResult, error) {
	h.signers = Authenticate{}.GetConditions(ctx)
	return &lendpool.CheckResult{}, nil
}

func (h *signersHandler) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.DeliverResult, error) {
	h.signers = Authenticate{}.GetConditions(ctx)
	return &lendpool.DeliverResult{}, nil
}
