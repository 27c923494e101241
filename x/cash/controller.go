package cash

import (
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/orm"
)

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins is a safe transfer between two accounts. It fails if the
	// source account does not hold the whole amount.
	MoveCoins(db lendpool.KVStore, src, dest lendpool.Address, amount coin.Coin) error
}

// CoinMinter is an interface to create new coins.
type CoinMinter interface {
	// IssueCoins creates new coins and deposits them in the
	// destination account.
	IssueCoins(db lendpool.KVStore, dest lendpool.Address, amount coin.Coin) error
}

// Balancer is an interface to query the content of an account.
type Balancer interface {
	// Balance returns all coins held by given address. An address that
	// was never used returns an empty set.
	Balance(db lendpool.ReadOnlyKVStore, owner lendpool.Address) (coin.Coins, error)
}

// Controller is the functionality needed by other extensions to read and
// move funds.
type Controller interface {
	CoinMover
	CoinMinter
	Balancer
}

// BaseController is a simple implementation of Controller using the
// wallet bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given wallet bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db lendpool.ReadOnlyKVStore, owner lendpool.Address) (coin.Coins, error) {
	w, err := c.wallet(db, owner)
	if err != nil {
		return nil, err
	}
	return w.Coins.Clone(), nil
}

func (c BaseController) MoveCoins(db lendpool.KVStore, src, dest lendpool.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same account")
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "%s holds less than %s", src, amount)
	}
	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}

	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return errors.Wrap(err, "withdraw")
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return errors.Wrap(err, "deposit")
	}

	if _, err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	if _, err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

func (c BaseController) IssueCoins(db lendpool.KVStore, dest lendpool.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	w, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if w.Coins, err = w.Coins.Add(amount); err != nil {
		return err
	}
	_, err = c.bucket.Put(db, dest, w)
	return err
}

// wallet returns the wallet stored under given address or an empty one if
// it does not exist yet.
func (c BaseController) wallet(db lendpool.ReadOnlyKVStore, owner lendpool.Address) (*Wallet, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	var w Wallet
	switch err := c.bucket.One(db, owner, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &lendpool.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrapf(err, "wallet %s", owner)
	}
}
