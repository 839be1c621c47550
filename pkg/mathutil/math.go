package mathutil

import (
	"errors"
	"math/bits"
)

var (
	// ErrOverflow is returned when the result of an operation does not fit
	// into an uint64.
	ErrOverflow = errors.New("uint64 overflow")
	// ErrUnderflow is returned when a subtraction would go below zero.
	ErrUnderflow = errors.New("uint64 underflow")
	// ErrDivisionByZero ...
	ErrDivisionByZero = errors.New("division by zero")
)

// CheckedAdd returns x + y or ErrOverflow if the sum wraps.
func CheckedAdd(x, y uint64) (uint64, error) {
	sum, carry := bits.Add64(x, y, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// CheckedSub returns x - y or ErrUnderflow if y > x.
func CheckedSub(x, y uint64) (uint64, error) {
	diff, borrow := bits.Sub64(x, y, 0)
	if borrow != 0 {
		return 0, ErrUnderflow
	}
	return diff, nil
}

// CheckedMul returns x * y or ErrOverflow if the product needs more than 64
// bits.
func CheckedMul(x, y uint64) (uint64, error) {
	hi, lo := bits.Mul64(x, y)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

// MulDiv returns floor(x * y / z). The product is computed on 128 bits but
// must fit into 64 bits, otherwise ErrOverflow is returned.
func MulDiv(x, y, z uint64) (uint64, error) {
	if z == 0 {
		return 0, ErrDivisionByZero
	}
	hi, lo := bits.Mul64(x, y)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo / z, nil
}
