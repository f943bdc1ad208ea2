package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field marks err as caused by the named message attribute. Nested
// attributes use dot notation with zero based indexes, for example
// Owners.2 or Instructions.0.Accounts.1. A nil err returns nil.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: name, desc: description}
}

// AppendField adds the field error, if any, to the collected errors.
func AppendField(collected error, name string, err error) error {
	return Append(collected, Field(name, err, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	msg := e.parent.Error()
	if e.desc != "" {
		msg = e.desc + ": " + msg
	}
	return fmt.Sprintf("field %q: %s", e.field, msg)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Field() string { return e.field }

// FieldErrors collects every error attached to the named field. Multi
// errors are searched recursively.
func FieldErrors(err error, name string) []error {
	var found []error
	for !isNilErr(err) {
		switch e := err.(type) {
		case interface{ Field() string }:
			if e.Field() == name {
				return append(found, err)
			}
		case unpacker:
			for _, inner := range e.Unpack() {
				found = append(found, FieldErrors(inner, name)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}
