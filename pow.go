package fixed256

import (
	"fmt"

	"github.com/avdva/fixed256/internal/mathutil"
	"github.com/holiman/uint256"
)

// sqrtCeilU is the first magnitude whose product with the scale leaves the
// domain; Sqrt rejects arguments above it.
var sqrtCeilU = new(uint256.Int).Div(maxU, scaleU)

// Pow returns v raised to the integer power n, by squaring the base and
// multiplying the bits of n into an accumulator. Every step goes through
// the double-width multiply-divide, so no error accumulates beyond the
// truncation of each rescale. v^0 is 1 for every v, including 0; the result
// is negative iff v < 0 and n is odd. Returns ErrOverflow when the
// magnitude of the result, or of an intermediate square, exceeds Max.
func (v Value) Pow(n uint64) (Value, error) {
	var xa uint256.Int
	xa.Abs(&v.u)
	neg := v.u.Sign() < 0 && n&1 == 1

	r := new(uint256.Int).Set(scaleU)
	if n&1 == 1 {
		r.Set(&xa)
	}
	base := new(uint256.Int).Set(&xa)
	var err error
	for n >>= 1; n > 0; n >>= 1 {
		if base, err = mathutil.MulDiv(base, base, scaleU); err != nil {
			return zero, fmt.Errorf("pow: %w", ErrOverflow)
		}
		if n&1 == 1 {
			if r, err = mathutil.MulDiv(r, base, scaleU); err != nil {
				return zero, fmt.Errorf("pow: %w", ErrOverflow)
			}
		}
	}
	out, err := signedValue(r, neg)
	if err != nil {
		return zero, fmt.Errorf("pow: %w", err)
	}
	return out, nil
}

// Sqrt returns the square root of v, rounded down.
// Returns ErrDomain for negative arguments and ErrOverflow for arguments
// above Max / 10^18, where the scale-correcting intermediate v*10^18 would
// leave the domain.
func (v Value) Sqrt() (Value, error) {
	if v.u.Sign() < 0 {
		return zero, fmt.Errorf("sqrt: negative argument: %w", ErrDomain)
	}
	if v.u.Gt(sqrtCeilU) {
		return zero, fmt.Errorf("sqrt: %w", ErrOverflow)
	}
	var p uint256.Int
	p.Mul(&v.u, scaleU)
	return Value{u: *mathutil.Sqrt(&p)}, nil
}

// Gm returns the geometric mean of v and other, sqrt(v*other), rounded
// down. The raw product of two scaled operands carries exactly one extra
// scale factor, which the integer square root removes, so no rescaling
// happens. Returns ErrDomain when the product is negative (a real
// geometric mean is undefined for mixed signs) and ErrOverflow when the
// product leaves the domain.
func (v Value) Gm(other Value) (Value, error) {
	if v.u.IsZero() || other.u.IsZero() {
		return zero, nil
	}
	if (v.u.Sign() < 0) != (other.u.Sign() < 0) {
		return zero, fmt.Errorf("gm: mixed-sign operands: %w", ErrDomain)
	}
	var xa, ya, p uint256.Int
	xa.Abs(&v.u)
	ya.Abs(&other.u)
	if _, overflow := p.MulOverflow(&xa, &ya); overflow || p.Gt(maxU) {
		return zero, fmt.Errorf("gm: %w", ErrOverflow)
	}
	return Value{u: *mathutil.Sqrt(&p)}, nil
}
