package multisig

import (
	"github.com/iov-one/quorum/errors"
)

var (
	ErrInvalidOwner        = errors.Register(6000, "the given owner is not part of this multisig")
	ErrNotEnoughOwners     = errors.Register(6001, "owners length must be non zero")
	ErrTooManyOwners       = errors.Register(6002, "the number of owners cannot be increased")
	ErrNotEnoughSigners    = errors.Register(6003, "not enough owners signed this transaction")
	ErrInstructionMismatch = errors.Register(6004, "instructions do not match the proposal")
	ErrAlreadyExecuted     = errors.Register(6007, "the given transaction has already been executed")
	ErrInvalidThreshold    = errors.Register(6008, "threshold must be less than or equal to the number of owners and greater than zero")
	ErrUniqueOwners        = errors.Register(6009, "owners must be unique")
)
