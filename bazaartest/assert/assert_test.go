package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/bazaar/errors"
)

type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestNil(t *testing.T) {
	var nilErr *errors.Error
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":                {value: nil},
		"typed nil pointer":  {value: nilErr},
		"error":              {value: fmt.Errorf("x"), wantFail: true},
		"non nillable value": {value: 42, wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			Nil(&r, tc.value)
			if r.failed != tc.wantFail {
				t.Fatalf("want failure %v", tc.wantFail)
			}
		})
	}
}

func TestIsErr(t *testing.T) {
	var r recorder
	IsErr(&r, errors.ErrNotFound, errors.Wrap(errors.ErrNotFound, "listing"))
	if r.failed {
		t.Fatal("wrapped error must match")
	}
	IsErr(&r, nil, errors.ErrNotFound)
	if !r.failed {
		t.Fatal("unexpected error must fail")
	}
}
