package lending

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/iov-one/lendpool/errors"
)

// AgreementTerms is the lending agreement a depositor accepts. Its hash
// is published by the pool and must be provided with every deposit.
type AgreementTerms struct {
	Name             string `json:"name"`
	InterestRate     uint64 `json:"interest_rate"`
	LoanTermMonths   uint64 `json:"loan_term_months"`
	PaymentFrequency uint64 `json:"payment_frequency"`
	Ticker           string `json:"ticker"`
	Text             string `json:"text"`
}

// AgreementHash returns the sha256 of the JSON encoded terms.
func AgreementHash(t AgreementTerms) ([]byte, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	h := sha256.Sum256(raw)
	return h[:], nil
}
