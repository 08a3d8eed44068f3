// Package fib computes Fibonacci numbers and maps Fibonacci values back to
// their position in the sequence. Results are memoized per Oracle instance.
package fib

import (
	"errors"
	"fmt"
)

// MaxIndex is the largest n for which F(n) fits in an int64.
const MaxIndex = 92

var (
	// ErrInvalidArgument is returned for sequence positions outside [1, MaxIndex].
	ErrInvalidArgument = errors.New("fib: invalid argument")

	// ErrNotFibonacci is returned when a value is not part of the sequence.
	ErrNotFibonacci = errors.New("fib: not a Fibonacci number")
)

// Oracle answers Fibonacci and index queries.
// It is not safe for concurrent use; every board owns its own Oracle.
type Oracle struct {
	values  []int       // values[n] = F(n), values[0] unused
	indices map[int]int // value -> smallest n >= 2 with F(n) = value
}

// NewOracle creates an empty Oracle.
func NewOracle() *Oracle {
	return &Oracle{
		values:  []int{0, 1, 1},
		indices: make(map[int]int),
	}
}

// Fibonacci returns F(n) with F(1) = F(2) = 1.
func (o *Oracle) Fibonacci(n int) (int, error) {
	if n < 1 || n > MaxIndex {
		return 0, fmt.Errorf("%w: n=%d out of range [1, %d]", ErrInvalidArgument, n, MaxIndex)
	}

	for len(o.values) <= n {
		k := len(o.values)
		o.values = append(o.values, o.values[k-1]+o.values[k-2])
	}
	return o.values[n], nil
}

// Index returns the smallest n >= 2 such that F(n) = x.
// The scan starts at 2, so Index(1) is 2 and index 1 is never returned.
func (o *Oracle) Index(x int) (int, error) {
	if n, ok := o.indices[x]; ok {
		return n, nil
	}

	for n := 2; n <= MaxIndex; n++ {
		v, err := o.Fibonacci(n)
		if err != nil {
			return 0, err
		}
		if v == x {
			o.indices[x] = n
			return n, nil
		}
		if v > x {
			break
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrNotFibonacci, x)
}

// IsFibonacci reports whether x is a positive Fibonacci number.
func (o *Oracle) IsFibonacci(x int) bool {
	_, err := o.Index(x)
	return err == nil
}
