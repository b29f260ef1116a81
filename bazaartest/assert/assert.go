// Package assert provides the minimal set of test assertions used across
// the repository.
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/bazaar/errors"
)

// Tester is the minimal subset of testing.TB needed to run most assert
// commands.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if given value is not nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of errors that carry one.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) (isnil bool) {
	if value == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			isnil = false
		}
	}()
	// IsNil panics for values that cannot be nil.
	return reflect.ValueOf(value).IsNil()
}

// Equal fails the test if two values are not deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics runs given function and fails the test if it did not panic.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails the test if got is not of the want error kind. A nil want
// expects no error.
func IsErr(t Tester, want *errors.Error, got error) {
	t.Helper()
	if !want.Is(got) {
		t.Fatalf("want %v error, got %+v", want, got)
	}
}

// FieldError ensures that the error contains a single field error for the
// given field, of the given kind. Use a nil kind to ensure there is no
// error for that field.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			t.Fatalf("expected no %s field error, got %q", fieldName, errs)
		}
		return
	}

	switch len(errs) {
	case 0:
		t.Fatalf("no %s field error found", fieldName)
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("unexpected %s field error: %q", fieldName, errs[0])
		}
	default:
		for i, e := range errs {
			t.Logf("\terror %d: %q", i+1, e)
		}
		t.Fatalf("want one %s field error, got %d", fieldName, len(errs))
	}
}
