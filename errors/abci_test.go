package errors

import (
	"io"
	"testing"
)

func TestABCInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrNotFound,
			debug:    false,
			wantLog:  "not found",
			wantCode: ErrNotFound.code,
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrNotFound, "foo"), "bar"),
			debug:    false,
			wantLog:  "bar: foo: not found",
			wantCode: ErrNotFound.code,
		},
		"wrapped registered error in debug mode has no stack trace": {
			err:      Wrap(ErrBalance, "maker"),
			debug:    true,
			wantLog:  "maker: insufficient balance",
			wantCode: ErrBalance.code,
		},
		"nil is empty message": {
			err:      nil,
			debug:    false,
			wantLog:  "",
			wantCode: 0,
		},
		"nil registered error is not an error": {
			err:      (*Error)(nil),
			debug:    false,
			wantLog:  "",
			wantCode: 0,
		},
		"stdlib is generic message": {
			err:      io.EOF,
			debug:    false,
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib returns error message in debug mode": {
			err:      io.EOF,
			debug:    true,
			wantLog:  "EOF",
			wantCode: 1,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(io.EOF, "cannot read file"),
			debug:    false,
			wantLog:  "internal error",
			wantCode: 1,
		},
		"wrapped stdlib is a full message in debug mode": {
			err:      Wrap(io.EOF, "cannot read file"),
			debug:    true,
			wantLog:  "cannot read file: EOF",
			wantCode: 1,
		},
		"custom error": {
			err:      customErr{},
			debug:    false,
			wantLog:  "custom",
			wantCode: 999,
		},
		"custom error in debug mode": {
			err:      customErr{},
			debug:    true,
			wantLog:  "custom",
			wantCode: 999,
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

// customErr is a custom implementation of an error that provides an ABCICode
// method.
type customErr struct{}

func (customErr) ABCICode() uint32 { return 999 }

func (customErr) Error() string { return "custom" }

func TestABCIErrorResolvesRegisteredCodes(t *testing.T) {
	err := ABCIError(ErrUnauthorized.ABCICode(), "cannot deliver tx: unauthorized")
	if !ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized error, got %+v", err)
	}

	unknown := ABCIError(424242, "what is this")
	if ErrUnauthorized.Is(unknown) || ErrNotFound.Is(unknown) {
		t.Fatalf("unknown code must not match any registered error: %+v", unknown)
	}
	if code, _ := ABCIInfo(unknown, false); code != 424242 {
		t.Fatalf("unknown code must be preserved, got %d", code)
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(Wrap(ErrPanic, "boom"), false); ErrPanic.Is(err) {
		t.Fatal("panic must be redacted")
	}
	if err := Redact(Wrap(ErrNotFound, "nope"), false); !ErrNotFound.Is(err) {
		t.Fatal("registered errors must be preserved")
	}
	if err := Redact(io.EOF, true); err != io.EOF {
		t.Fatal("debug mode must not redact")
	}
}
