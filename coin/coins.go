package coin

import (
	"sort"

	"github.com/iov-one/lendpool/errors"
)

// Coins is a set of holdings in different assets. A normalized set is
// ordered by ticker and holds each ticker at most once, never with a zero
// amount. All methods returning a set return a new one.
type Coins []*Coin

// CombineCoins builds a normalized set out of any list of coins.
func CombineCoins(cs ...Coin) (Coins, error) {
	set := make(Coins, 0, len(cs))
	for _, c := range cs {
		next, err := set.Add(c)
		if err != nil {
			return nil, err
		}
		set = next
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// Clone returns a deep copy of the set.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	out := make(Coins, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Clone())
	}
	return out
}

// search returns the position of given ticker, or the position it would
// be inserted at and false.
func (cs Coins) search(ticker string) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	return i, i < len(cs) && cs[i].Ticker == ticker
}

// Add returns the set with c added to it.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	out := cs.Clone()
	i, found := out.search(c.Ticker)
	if !found {
		out = append(out[:i], append(Coins{&c}, out[i:]...)...)
		return out, nil
	}
	sum, err := out[i].Add(c)
	if err != nil {
		return nil, err
	}
	out[i] = &sum
	return out, nil
}

// Subtract returns the set with c taken out of it. ErrOverflow is returned
// if the set does not hold enough of c.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	i, found := cs.search(c.Ticker)
	if !found {
		return nil, errors.Wrapf(errors.ErrOverflow, "no %s in the set", c.Ticker)
	}
	left, err := cs[i].Subtract(c)
	if err != nil {
		return nil, err
	}
	out := cs.Clone()
	if left.IsZero() {
		return append(out[:i], out[i+1:]...), nil
	}
	out[i] = &left
	return out, nil
}

// Combine returns a set holding everything from both cs and o.
func (cs Coins) Combine(o Coins) (Coins, error) {
	out := cs
	for _, c := range o {
		next, err := out.Add(*c)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out.Clone(), nil
}

// Contains returns true if the set holds at least c.
func (cs Coins) Contains(c Coin) bool {
	return cs.Get(c.Ticker).Amount >= c.Amount
}

// Get returns the holding of given asset. A zero coin is returned if
// the asset is not part of the set.
func (cs Coins) Get(ticker string) Coin {
	if i, found := cs.search(ticker); found {
		return *cs[i]
	}
	return Coin{Ticker: ticker}
}

func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

func (cs Coins) Count() int {
	return len(cs)
}

// Equals returns true if both sets hold the same coins in the same order.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i, c := range cs {
		if !c.Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate returns an error if the set is not normalized or any of its
// coins is invalid.
func (cs Coins) Validate() error {
	var err error
	for i, c := range cs {
		if c == nil {
			err = errors.Append(err, errors.Wrapf(errors.ErrState, "coin %d is nil", i))
			continue
		}
		if e := c.Validate(); e != nil {
			err = errors.Append(err, errors.Wrapf(e, "coin %d", i))
		}
		if c.IsZero() {
			err = errors.Append(err, errors.Wrapf(errors.ErrState, "coin %d is zero", i))
		}
		if i > 0 && cs[i-1] != nil && cs[i-1].Ticker >= c.Ticker {
			err = errors.Append(err, errors.Wrapf(errors.ErrState, "coin %d is out of order", i))
		}
	}
	return err
}

// NormalizeCoins merges duplicates, drops zero values and orders the set
// by ticker. A set that is already normalized is returned as it is.
func NormalizeCoins(cs Coins) (Coins, error) {
	if cs.normalized() {
		return cs, nil
	}
	var out Coins
	for _, c := range cs {
		if c == nil {
			continue
		}
		next, err := out.Add(*c)
		if err != nil {
			return nil, errors.Wrap(err, "cannot sum coins")
		}
		out = next
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (cs Coins) normalized() bool {
	for i, c := range cs {
		if IsEmpty(c) {
			return false
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return false
		}
	}
	return true
}
