package errors

import (
	"errors"
	"fmt"
)

// SuccessABCICode is the code of every successful ABCI response.
const SuccessABCICode uint32 = 0

// Errors that do not carry a registered code are reported under the
// internal code. Outside of debug mode their message is hidden.
const (
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of the ABCI response for err. In
// debug mode the log is the full formatted error, stack trace included.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// abciCode returns the code of the first registered error found in the
// cause chain of err.
func abciCode(err error) uint32 {
	type coder interface {
		ABCICode() uint32
	}
	if isNilErr(err) {
		return SuccessABCICode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok || isNilErr(c.Cause()) {
			return internalABCICode
		}
		err = c.Cause()
	}
}

// Redact hides every error that is not a registered error, and panics,
// behind a generic internal error. It does nothing in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

// ABCIError reverses ABCIInfo: it returns the registered error for code
// wrapped with log, so clients can test the kind with Is. Unknown codes
// become internal errors.
func ABCIError(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	root, ok := usedCodes[code]
	if !ok {
		root = usedCodes[internalABCICode]
	}
	return Wrap(root, log)
}
