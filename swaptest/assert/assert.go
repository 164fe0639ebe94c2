/*
Package assert is a thin layer over testify's require package. Every
assertion stops the test on failure and errors are printed with their stack
trace.
*/
package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Nil stops the test if value is not nil. Typed nil pointers count as nil.
func Nil(t testing.TB, value interface{}) {
	t.Helper()
	require.Nil(t, value, "%+v", value)
}

// Equal stops the test unless both values are deeply equal.
func Equal(t testing.TB, want, got interface{}) {
	t.Helper()
	require.Equal(t, want, got)
}

// Panics stops the test unless fn panics.
func Panics(t testing.TB, fn func()) {
	t.Helper()
	require.Panics(t, fn)
}

// IsErr stops the test unless got is, or wraps, the registered error want.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	require.FailNow(t, "unexpected error", "want %q, got %+v", want, got)
}
