package lending

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/gconf"
)

// confPkg is the name the configuration is stored under.
const confPkg = "lending"

// AssetFee declares an asset that pools can be created for together with
// the fee charged on every deposit.
type AssetFee struct {
	Ticker     string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker"`
	FeePercent uint32 `protobuf:"varint,2,opt,name=fee_percent,json=feePercent,proto3" json:"fee_percent"`
}

func (a *AssetFee) Validate() error {
	var errs error
	if !coin.IsCC(a.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", a.Ticker))
	}
	if a.FeePercent > 100 {
		errs = errors.AppendField(errs, "FeePercent", errors.Wrap(errors.ErrInput, "must not exceed 100"))
	}
	return errs
}

func (a *AssetFee) Marshal() ([]byte, error) {
	return proto.Marshal((*assetFeeData)(a))
}

func (a *AssetFee) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*assetFeeData)(a))
}

type assetFeeData AssetFee

func (m *assetFeeData) Reset()         { *m = assetFeeData{} }
func (m *assetFeeData) String() string { return proto.CompactTextString(m) }
func (*assetFeeData) ProtoMessage()    {}

// Configuration holds the lending parameters that are not provided by
// the pool creator.
type Configuration struct {
	Metadata *lendpool.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	// Assets is the allow list of assets with their deposit fee.
	Assets []*AssetFee `protobuf:"bytes,2,rep,name=assets,proto3" json:"assets"`
	// VaultReserve is the minimal amount of the pool asset a vault
	// account must hold. It is paid by the pool admin on creation.
	VaultReserve uint64 `protobuf:"varint,3,opt,name=vault_reserve,json=vaultReserve,proto3" json:"vault_reserve"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration returns the configuration used when none was
// declared in the genesis.
func DefaultConfiguration() Configuration {
	return Configuration{
		Metadata: &lendpool.Metadata{Schema: 1},
		Assets: []*AssetFee{
			{Ticker: "SOL", FeePercent: 5},
			{Ticker: "USDC", FeePercent: 3},
		},
	}
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if len(c.Assets) == 0 {
		errs = errors.AppendField(errs, "Assets", errors.ErrEmpty)
	}
	seen := make(map[string]struct{}, len(c.Assets))
	for _, a := range c.Assets {
		if a == nil {
			errs = errors.AppendField(errs, "Assets", errors.Wrap(errors.ErrEmpty, "nil asset"))
			continue
		}
		if _, ok := seen[a.Ticker]; ok {
			errs = errors.AppendField(errs, "Assets", errors.Wrapf(errors.ErrDuplicate, "ticker %s", a.Ticker))
		}
		seen[a.Ticker] = struct{}{}
		errs = errors.AppendField(errs, "Assets", a.Validate())
	}
	return errs
}

// FeePercent returns the deposit fee of given asset. ErrInvalidTokenMint
// is returned for assets that are not allowed.
func (c *Configuration) FeePercent(ticker string) (uint32, error) {
	for _, a := range c.Assets {
		if a.Ticker == ticker {
			return a.FeePercent, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidTokenMint, "%q is not allowed", ticker)
}

func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationData)(c))
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationData)(c))
}

type configurationData Configuration

func (m *configurationData) Reset()         { *m = configurationData{} }
func (m *configurationData) String() string { return proto.CompactTextString(m) }
func (*configurationData) ProtoMessage()    {}

// loadConf returns the stored configuration or the default one if none
// was stored.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}
