package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/weavetest/assert"
)

func TestCompareCoin(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantRes int
	}{
		"a greater than b": {
			a:       NewCoin(20, "SOL"),
			b:       NewCoin(19, "SOL"),
			wantRes: 1,
		},
		"a smaller than b": {
			a:       NewCoin(1, "USDC"),
			b:       NewCoin(2, "USDC"),
			wantRes: -1,
		},
		"zero value coins": {
			a:       Coin{},
			b:       Coin{},
			wantRes: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantRes, tc.a.Compare(tc.b))
		})
	}
}

func TestAddCoin(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same ticker": {
			a:    NewCoin(5, "SOL"),
			b:    NewCoin(7, "SOL"),
			want: NewCoin(12, "SOL"),
		},
		"zero coin without a ticker": {
			a:    Coin{},
			b:    NewCoin(7, "SOL"),
			want: NewCoin(7, "SOL"),
		},
		"different tickers": {
			a:       NewCoin(5, "SOL"),
			b:       NewCoin(7, "USDC"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(math.MaxUint64, "SOL"),
			b:       NewCoin(1, "SOL"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	got, err := NewCoin(10, "SOL").Subtract(NewCoin(4, "SOL"))
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(6, "SOL"), got)

	_, err = NewCoin(3, "SOL").Subtract(NewCoin(4, "SOL"))
	assert.IsErr(t, errors.ErrOverflow, err)

	_, err = NewCoin(3, "SOL").Subtract(NewCoin(1, "USDC"))
	assert.IsErr(t, errors.ErrCurrency, err)

	got, err = NewCoin(3, "SOL").Subtract(Coin{})
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(3, "SOL"), got)
}

func TestCoinGTE(t *testing.T) {
	assert.Equal(t, true, NewCoin(5, "SOL").IsGTE(NewCoin(5, "SOL")))
	assert.Equal(t, false, NewCoin(4, "SOL").IsGTE(NewCoin(5, "SOL")))
	assert.Equal(t, false, NewCoin(9, "SOL").IsGTE(NewCoin(5, "USDC")))
}

func TestCoinValidate(t *testing.T) {
	assert.Nil(t, NewCoin(1, "SOL").Validate())
	assert.Nil(t, NewCoin(0, "USDC").Validate())
	assert.IsErr(t, errors.ErrCurrency, NewCoin(1, "sol").Validate())
	assert.IsErr(t, errors.ErrCurrency, NewCoin(1, "TOOLONG").Validate())
}

func TestCoinDeserialization(t *testing.T) {
	cases := map[string]struct {
		serialized string
		wantErr    *errors.Error
		wantCoin   Coin
	}{
		"old format": {
			serialized: `{"ticker": "SOL", "amount": 42}`,
			wantCoin:   NewCoin(42, "SOL"),
		},
		"human readable format": {
			serialized: `"950 USDC"`,
			wantCoin:   NewCoin(950, "USDC"),
		},
		"human readable without space": {
			serialized: `"1SOL"`,
			wantCoin:   NewCoin(1, "SOL"),
		},
		"negative amount is not allowed": {
			serialized: `"-1 SOL"`,
			wantErr:    errors.ErrInput,
		},
		"fractions are not allowed": {
			serialized: `"1.5 SOL"`,
			wantErr:    errors.ErrInput,
		},
		"amount too big": {
			serialized: `"99999999999999999999999 SOL"`,
			wantErr:    errors.ErrOverflow,
		},
		"invalid json": {
			serialized: `[1, 2]`,
			wantErr:    errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var c Coin
			err := json.Unmarshal([]byte(tc.serialized), &c)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantCoin, c)
			}
		})
	}
}

func TestCoinString(t *testing.T) {
	assert.Equal(t, "12 SOL", NewCoin(12, "SOL").String())
	assert.Equal(t, "0", Coin{}.String())

	parsed, err := ParseHumanFormat(NewCoin(77, "USDC").String())
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(77, "USDC"), parsed)
}

func TestCoinBinaryEncoding(t *testing.T) {
	c := NewCoinp(math.MaxUint64, "SOL")
	raw, err := c.Marshal()
	assert.Nil(t, err)

	var got Coin
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, *c, got)
}
