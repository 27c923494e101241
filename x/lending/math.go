package lending

import (
	"math/bits"

	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
)

func mul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, errors.Wrapf(ErrArithmetic, "%d * %d", a, b)
	}
	return lo, nil
}

func add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errors.Wrapf(ErrArithmetic, "%d + %d", a, b)
	}
	return sum, nil
}

func sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, errors.Wrapf(ErrArithmetic, "%d - %d", a, b)
	}
	return diff, nil
}

// addCoin adds c to the set, reporting an overflow as ErrArithmetic.
func addCoin(cs coin.Coins, c coin.Coin) (coin.Coins, error) {
	res, err := cs.Add(c)
	if errors.ErrOverflow.Is(err) {
		return nil, errors.Wrap(ErrArithmetic, err.Error())
	}
	return res, err
}
