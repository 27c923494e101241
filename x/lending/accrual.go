package lending

import (
	"time"

	"github.com/iov-one/lendpool/errors"
)

// AvailableInterest returns the interest of the deposit unlocked until
// given time. Every completed period of PaymentFrequency months unlocks
// TotalInterest/LoanTermMonths. Months past the loan term are not counted,
// so the rounding remainder and an incomplete last period never unlock.
// Withdrawals are not subtracted.
func AvailableInterest(d *Deposit, now time.Time) (uint64, error) {
	if d.LoanTermMonths == 0 {
		return 0, errors.Wrap(ErrInvalidLoanTerm, "zero loan term")
	}
	if d.PaymentFrequency == 0 {
		return 0, errors.Wrap(ErrInvalidPaymentFrequency, "zero payment frequency")
	}

	elapsed := now.Unix() - int64(d.StartTime)
	if elapsed < 0 {
		elapsed = 0
	}
	months := uint64(elapsed) / secondsPerMonth
	if months > d.LoanTermMonths {
		months = d.LoanTermMonths
	}

	periods := months / d.PaymentFrequency
	perPeriod := d.TotalInterest / d.LoanTermMonths
	available, err := mul(periods, perPeriod)
	if err != nil {
		return 0, errors.Wrap(err, "available interest")
	}
	return available, nil
}

// remainingInterest returns the unlocked interest that was not withdrawn
// yet.
func remainingInterest(d *Deposit, now time.Time) (uint64, error) {
	available, err := AvailableInterest(d, now)
	if err != nil {
		return 0, err
	}
	remaining, err := sub(available, d.WithdrawnToDate)
	if err != nil {
		return 0, errors.Wrap(err, "withdrawn more than available")
	}
	return remaining, nil
}
