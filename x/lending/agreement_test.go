package lending

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/lendpool/weavetest/assert"
)

func TestAgreementHash(t *testing.T) {
	terms := AgreementTerms{
		Name:             "Savings",
		InterestRate:     10,
		LoanTermMonths:   12,
		PaymentFrequency: 1,
		Ticker:           "SOL",
		Text:             "interest is paid monthly",
	}

	a, err := AgreementHash(terms)
	assert.Nil(t, err)
	assert.Equal(t, HashSize, len(a))

	b, err := AgreementHash(terms)
	assert.Nil(t, err)
	assert.Equal(t, hex.EncodeToString(a), hex.EncodeToString(b))

	terms.InterestRate = 11
	c, err := AgreementHash(terms)
	assert.Nil(t, err)
	if bytes.Equal(a, c) {
		t.Fatal("changed terms produce the same hash")
	}
}
