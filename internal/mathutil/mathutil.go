// Package mathutil provides the low-level 256-bit numeric primitives the
// fixed-point engine is built on: a double-width multiply-then-divide, an
// integer square root, and a most-significant-bit index.
package mathutil

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	// ErrDivisionByZero is returned by MulDiv for a zero denominator.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrOverflow is returned by MulDiv when the quotient does not fit 256 bits.
	ErrOverflow = errors.New("result does not fit 256 bits")
)

var one = uint256.NewInt(1)

// MulDiv returns floor(x*y/denominator). The product is computed at full
// double width, so it may exceed 256 bits as long as the quotient fits.
func MulDiv(x, y, denominator *uint256.Int) (*uint256.Int, error) {
	if denominator.IsZero() {
		return nil, ErrDivisionByZero
	}
	p := new(big.Int).Mul(x.ToBig(), y.ToBig())
	p.Quo(p, denominator.ToBig())
	z, overflow := uint256.FromBig(p)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// Sqrt returns floor(sqrt(x)), computed by the Babylonian method.
// The initial guess 2^ceil(bitlen/2) bounds sqrt(x) from above, so the
// iteration decreases monotonically and stops at the floor.
func Sqrt(x *uint256.Int) *uint256.Int {
	if x.LtUint64(2) {
		return x.Clone()
	}
	z := new(uint256.Int).Lsh(one, uint(x.BitLen()+1)/2)
	t := new(uint256.Int)
	for {
		t.Div(x, z)
		t.Add(t, z)
		t.Rsh(t, 1)
		if !t.Lt(z) {
			return z
		}
		z, t = t, z
	}
}

// Msb returns the zero-based index of the highest set bit of x.
// x must be non-zero.
func Msb(x *uint256.Int) int {
	return x.BitLen() - 1
}
