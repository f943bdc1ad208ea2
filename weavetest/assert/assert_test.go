package assert

import (
	"testing"

	"github.com/iov-one/quorum/errors"
)

func TestFieldErrorMatches(t *testing.T) {
	err := errors.Append(
		errors.Field("Owners", errors.ErrEmpty, "required"),
		errors.Field("Threshold", errors.ErrInput, "too high"),
	)
	FieldError(t, err, "Owners", errors.ErrEmpty)
	FieldError(t, err, "Threshold", errors.ErrInput)
	FieldError(t, err, "Nonce", nil)
}

func TestIsErr(t *testing.T) {
	IsErr(t, nil, nil)
	IsErr(t, errors.ErrNotFound, errors.Wrap(errors.ErrNotFound, "group"))
}
