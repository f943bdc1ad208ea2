/*
Package assert holds the error assertions that testify does not
express: matching registered error kinds and field errors.
*/
package assert

import (
	"testing"

	"github.com/iov-one/quorum/errors"
)

// FieldError ensures that given error contains a field error for
// fieldName that is of the want kind. Use a nil want to assert that the
// field has no error.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			t.Fatalf("expected no %q error, got %q", fieldName, errs)
		}
		return
	}
	for _, e := range errs {
		if want.Is(e) {
			return
		}
	}
	if len(errs) == 0 {
		t.Fatalf("no %q error found in %v", fieldName, err)
	}
	t.Fatalf("want %q error for %q, got %q", want, fieldName, errs)
}

// IsErr checks if the errors are a match and prints out the difference
// if not as well as failing the assertion. A nil want expects no error.
func IsErr(t testing.TB, want *errors.Error, got error) {
	t.Helper()

	if want == nil {
		if got != nil {
			t.Fatalf("want no error, got %+v", got)
		}
		return
	}
	if !want.Is(got) {
		t.Fatalf("want %q, got %+v", want, got)
	}
}
