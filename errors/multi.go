package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If none of the provided errors is a nil value, returned error is nil.
// When exactly one of the provided errors is not nil, that error is returned
// unchanged.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		// Flatten so that the grouping is never more than one level
		// deep.
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
			continue
		}
		res = append(res, e)
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
	points := make([]string, len(errs))
	for i, err := range errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf(
		"%d errors occurred:\n\t%s\n",
		len(errs), strings.Join(points, "\n\t"))
}

// Unpack implements the unpacker interface.
func (errs multiErr) Unpack() []error {
	return errs
}

// ABCICode returns the code of the first error in the group. The group is
// treated as a fail-fast result.
func (errs multiErr) ABCICode() uint32 {
	return abciCode(errs[0])
}
