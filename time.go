package lendpool

import (
	"encoding/json"
	"time"

	"github.com/iov-one/lendpool/errors"
)

// UnixTime is a point in time with a second precision, counted from the
// UNIX epoch. Block times and all accrual timestamps use it.
type UnixTime int64

// Time converts t into a time.Time value.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add returns t moved by d. Precision below a second is dropped.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// AsUnixTime truncates t to a second precision.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// UnmarshalJSON accepts either a number of seconds or an RFC 3339 string,
// so that genesis files can use the readable form.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var secs int64
	if err := json.Unmarshal(raw, &secs); err != nil {
		var when time.Time
		if err := json.Unmarshal(raw, &when); err != nil {
			return errors.Wrap(errors.ErrInput, "invalid time format")
		}
		secs = when.Unix()
	}
	if secs < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = UnixTime(secs)
	return nil
}

// Validate rejects times before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}


func (t UnixTime) String() string {
	return t.Time().UTC().String()
}
