package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds all coins owned by a single address. Coins are always kept
// in the normalized form.
type Wallet struct {
	Metadata *lendpool.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3"`
	Coins    coin.Coins         `protobuf:"bytes,2,rep,name=coins,proto3"`
}

var _ orm.Model = (*Wallet)(nil)

// WalletWith creates a wallet holding given coins.
func WalletWith(coins ...*coin.Coin) (*Wallet, error) {
	cs, err := coin.NormalizeCoins(coins)
	if err != nil {
		return nil, err
	}
	w := &Wallet{
		Metadata: &lendpool.Metadata{Schema: 1},
		Coins:    cs,
	}
	return w, w.Validate()
}

// Validate requires that all coins are in alphabetical order.
func (w *Wallet) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", w.Metadata.Validate())
	errs = errors.AppendField(errs, "Coins", w.Coins.Validate())
	return errs
}

func (w *Wallet) Marshal() ([]byte, error) {
	return proto.Marshal((*walletData)(w))
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*walletData)(w))
}

type walletData Wallet

func (m *walletData) Reset()         { *m = walletData{} }
func (m *walletData) String() string { return proto.CompactTextString(m) }
func (*walletData) ProtoMessage()    {}

// NewBucket returns a bucket that stores wallets by the owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
