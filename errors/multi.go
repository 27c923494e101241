package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no error or only nil values were provided, nil is returned.
// If only a single non nil error was provided, it is returned as is.
// Otherwise a multi error is returned. Multi errors are flattened so that
// appending a multi error to another does not create a tree.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (errs multiErr) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = fmt.Sprintf("* %s", e)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(errs), strings.Join(msgs, "\n\t"))
}

// Unpack returns all grouped errors.
func (errs multiErr) Unpack() []error {
	return errs
}

// ABCICode returns the code of the first grouped error.
func (errs multiErr) ABCICode() uint32 {
	return ABCICode(errs[0])
}

type unpacker interface {
	Unpack() []error
}
