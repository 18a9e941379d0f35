package cmp_test

import (
	"testing"

	"github.com/stellarburgers/burger/pkg/cmp"
)

func TestSliceEq(t *testing.T) {
	for name, testcase := range map[string]struct {
		a, b     []int
		expected bool
	}{
		"same":            {a: []int{1, 2, 3}, b: []int{1, 2, 3}, expected: true},
		"both empty":      {a: []int{}, b: nil, expected: true},
		"different order": {a: []int{1, 2, 3}, b: []int{3, 2, 1}, expected: false},
		"different size":  {a: []int{1, 2}, b: []int{1, 2, 3}, expected: false},
	} {
		t.Run(name, func(t *testing.T) {
			if got := cmp.SliceEq(testcase.a, testcase.b); got != testcase.expected {
				t.Errorf("SliceEq(%v, %v) = %v", testcase.a, testcase.b, got)
			}
		})
	}
}

func TestSliceContentEqWith(t *testing.T) {
	eq := func(a, b int) bool { return a == b }
	for name, testcase := range map[string]struct {
		a, b     []int
		expected bool
	}{
		"same order":           {a: []int{1, 2, 2}, b: []int{1, 2, 2}, expected: true},
		"different order":      {a: []int{2, 1, 2}, b: []int{2, 2, 1}, expected: true},
		"different multiplity": {a: []int{1, 1, 2}, b: []int{1, 2, 2}, expected: false},
		"different size":       {a: []int{1}, b: []int{1, 1}, expected: false},
	} {
		t.Run(name, func(t *testing.T) {
			if got := cmp.SliceContentEqWith(testcase.a, testcase.b, eq); got != testcase.expected {
				t.Errorf("SliceContentEqWith(%v, %v) = %v", testcase.a, testcase.b, got)
			}
		})
	}
}

func TestPEqualWith(t *testing.T) {
	eq := func(a, b string) bool { return a == b }
	a, b, c := "a", "a", "c"
	if !cmp.PEqualWith[string](nil, nil, eq) {
		t.Error("nils should be equal")
	}
	if cmp.PEqualWith(&a, nil, eq) {
		t.Error("nil and non-nil should not be equal")
	}
	if !cmp.PEqualWith(&a, &b, eq) {
		t.Error("same values should be equal")
	}
	if cmp.PEqualWith(&a, &c, eq) {
		t.Error("different values should not be equal")
	}
}
