package cash

import "github.com/iov-one/quorum/errors"

var (
	// ErrInsufficientFunds is returned when a wallet cannot cover a transfer.
	ErrInsufficientFunds = errors.Register(31, "insufficient funds")

	// ErrEmptyAccount is returned when the source wallet does not exist.
	ErrEmptyAccount = errors.Register(32, "empty account")
)
