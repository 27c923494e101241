package assert

import (
	"testing"

	"github.com/iov-one/lendpool/errors"
)

// recorder implements Tester and counts failures instead of stopping the
// test.
type recorder struct {
	*testing.T
	failed int
}

func (r *recorder) Fatal(args ...interface{}) {
	r.T.Log(args...)
	r.failed++
}

func (r *recorder) Fatalf(format string, args ...interface{}) {
	r.T.Logf(format, args...)
	r.failed++
}

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		want, got error
		fail      bool
	}{
		"same error":       {want: errors.ErrEmpty, got: errors.ErrEmpty},
		"wrapped":          {want: errors.ErrEmpty, got: errors.Wrap(errors.ErrEmpty, "test")},
		"both nil":         {},
		"compared to nil":  {got: errors.ErrEmpty, fail: true},
		"different errors": {want: errors.ErrEmpty, got: errors.ErrState, fail: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := &recorder{T: t}
			IsErr(r, tc.want, tc.got)
			if (r.failed > 0) != tc.fail {
				t.Fatalf("want failure %v, got %d failures", tc.fail, r.failed)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	cases := map[string]struct {
		err   error
		field string
		want  *errors.Error
		fail  bool
	}{
		"error found": {
			err:   errors.Field("name", errors.ErrHuman, "invalid human name"),
			field: "name",
			want:  errors.ErrHuman,
		},
		"no error for another field": {
			err:   errors.Field("name", errors.ErrHuman, "invalid human name"),
			field: "age",
		},
		"unexpected error": {
			err:   errors.Field("name", errors.ErrHuman, "invalid human"),
			field: "name",
			fail:  true,
		},
		"one of many matches": {
			err: errors.Append(
				errors.Field("name", errors.ErrEmpty, "first"),
				errors.Field("name", errors.ErrHuman, "second"),
			),
			field: "name",
			want:  errors.ErrHuman,
		},
		"no match": {
			err:   errors.Field("name", errors.ErrEmpty, "empty"),
			field: "name",
			want:  errors.ErrHuman,
			fail:  true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := &recorder{T: t}
			FieldError(r, tc.err, tc.field, tc.want)
			if (r.failed > 0) != tc.fail {
				t.Fatalf("want failure %v, got %d failures", tc.fail, r.failed)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var ptr *int
	var err error
	for _, v := range []interface{}{nil, ptr, err, []byte(nil)} {
		r := &recorder{T: t}
		Nil(r, v)
		if r.failed != 0 {
			t.Fatalf("%#v must be nil", v)
		}
	}
	r := &recorder{T: t}
	Nil(r, 0)
	if r.failed != 1 {
		t.Fatal("zero int is not nil")
	}
}
