package testing_assert

import (
	"reflect"
	"testing"
)

func Assert(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Fatal(msg)
	}
}

func SimpleAssert(t *testing.T, condition bool) {
	t.Helper()
	if !condition {
		t.Fatal("assertion failed")
	}
}

func Equals(t *testing.T, expected interface{}, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

func Ok(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
