package lendpool_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	assert.Equal(t, "414243", lendpool.Address("ABC").String())
	assert.Equal(t, "(nil)", lendpool.Address(nil).String())

	cond := lendpool.NewCondition("lending", "vault", []byte{0xAB, 0x01})
	assert.Equal(t, "lending/vault/AB01", cond.String())
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := lendpool.NewAddress([]byte("some key"))
	b32, err := addr.Bech32("lend")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr lendpool.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf("%q", addr.String()),
			wantAddr: addr,
		},
		"hex decoding": {
			json:     fmt.Sprintf("%q", "hex:"+addr.String()),
			wantAddr: addr,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: lendpool.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"bech32 decoding": {
			json:     fmt.Sprintf("%q", "bech32:"+b32),
			wantAddr: addr,
		},
		"invalid bech32": {
			json:    `"bech32:lend1xxxxxx"`,
			wantErr: errors.ErrInput,
		},
		"hex address of a wrong length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a lendpool.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition lendpool.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: lendpool.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got lendpool.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("got condition: %v", got)
			}
		})
	}
}

func TestConditionMarshalRoundtrip(t *testing.T) {
	cond := lendpool.NewCondition("lending", "vault", []byte{1, 2, 3})
	raw, err := json.Marshal(cond)
	require.NoError(t, err)
	assert.Equal(t, `"lending/vault/010203"`, string(raw))

	var got lendpool.Condition
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, cond.Equals(got))
}

func TestConditionValidate(t *testing.T) {
	assert.NoError(t, lendpool.NewCondition("lending", "vault", []byte{0}).Validate())
	assert.True(t, errors.ErrInput.Is(lendpool.Condition("no-slashes").Validate()))
	assert.True(t, errors.ErrInput.Is(lendpool.NewCondition("x", "vault", []byte{1}).Validate()))
}

func TestAddressValidate(t *testing.T) {
	assert.True(t, errors.ErrEmpty.Is(lendpool.Address(nil).Validate()))
	assert.True(t, errors.ErrInput.Is(lendpool.Address([]byte{1, 2}).Validate()))
	assert.NoError(t, lendpool.NewAddress([]byte("x")).Validate())
}

func TestDeriveAddress(t *testing.T) {
	a := lendpool.DeriveAddress([]byte("ab"), []byte("c"))
	b := lendpool.DeriveAddress([]byte("a"), []byte("bc"))
	assert.False(t, a.Equals(b), "seed boundaries must matter")

	again := lendpool.DeriveAddress([]byte("ab"), []byte("c"))
	assert.True(t, a.Equals(again))
	assert.Len(t, a, lendpool.AddressLength)
}
