package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"constraint errors are distinct": {
			a:      ErrConstraintRaw,
			b:      Wrap(ErrConstraintSeeds, "signer"),
			wantIs: false,
		},
		"multiple wraps": {
			a:      ErrConstraintSeeds,
			b:      Wrap(Wrap(ErrConstraintSeeds, "signer"), "execute"),
			wantIs: true,
		},
		"grouped errors match any member": {
			a:      ErrEmpty,
			b:      Append(ErrMsg, Wrap(ErrEmpty, "owners")),
			wantIs: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v wanted:%v", got, tc.wantIs)
			}
		})
	}
}

func TestRegisterDuplicatedCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Register(ErrConstraintRaw.ABCICode(), "duplicate")
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	single := Wrap(ErrMsg, "one")
	if err := Append(nil, single); err != single {
		t.Fatalf("want the single error back, got %v", err)
	}
	group := Append(ErrEmpty, Append(ErrMsg, ErrState))
	if n := len(group.(multiErr)); n != 3 {
		t.Fatalf("want a flat group of 3, got %d", n)
	}
	if code, _ := ABCIInfo(group, false); code != ErrEmpty.ABCICode() {
		t.Fatalf("want the first error code, got %d", code)
	}
}

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil error": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"registered error": {
			err:      Wrap(ErrConstraintRaw, "stale version"),
			wantCode: 2003,
			wantLog:  "stale version: a raw constraint was violated",
		},
		"stdlib error is redacted": {
			err:      fmt.Errorf("secret"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestABCIErrorRoundTrip(t *testing.T) {
	code, log := ABCIInfo(Wrap(ErrConstraintSeeds, "signer"), false)
	err := ABCIError(code, log)
	if !ErrConstraintSeeds.Is(err) {
		t.Fatalf("want constraint seeds error, got %v", err)
	}
	if ABCIError(SuccessABCICode, "") != nil {
		t.Fatal("success code must produce no error")
	}
}

func TestField(t *testing.T) {
	err := Append(
		Field("Owners", ErrEmpty, "required"),
		Field("Threshold", ErrMsg, "must be positive"),
	)
	if got := FieldErrors(err, "Owners"); len(got) != 1 || !ErrEmpty.Is(got[0]) {
		t.Fatalf("unexpected owners field errors: %v", got)
	}
	if got := FieldErrors(err, "Nonce"); len(got) != 0 {
		t.Fatalf("unexpected nonce field errors: %v", got)
	}
}
