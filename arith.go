package fixed256

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Add returns v + other. Returns ErrOverflow if the sum leaves the domain.
func (v Value) Add(other Value) (Value, error) {
	var r uint256.Int
	r.Add(&v.u, &other.u)
	xNeg, yNeg := v.u.Sign() < 0, other.u.Sign() < 0
	if xNeg == yNeg && (r.Sign() < 0) != xNeg {
		return zero, fmt.Errorf("add: %w", ErrOverflow)
	}
	return Value{u: r}, nil
}

// Sub returns v - other. Returns ErrOverflow if the difference leaves the domain.
func (v Value) Sub(other Value) (Value, error) {
	var r uint256.Int
	r.Sub(&v.u, &other.u)
	xNeg, yNeg := v.u.Sign() < 0, other.u.Sign() < 0
	if xNeg != yNeg && (r.Sign() < 0) != xNeg {
		return zero, fmt.Errorf("sub: %w", ErrOverflow)
	}
	return Value{u: r}, nil
}

// Neg returns -v. Returns ErrOverflow for Min, whose negation is not
// representable.
func (v Value) Neg() (Value, error) {
	if v.u.Eq(minU) {
		return zero, fmt.Errorf("neg: %w", ErrOverflow)
	}
	var r uint256.Int
	r.Neg(&v.u)
	return Value{u: r}, nil
}

// Abs returns |v|. Returns ErrDomain for Min, whose negation is not
// representable.
func (v Value) Abs() (Value, error) {
	if v.u.Eq(minU) {
		return zero, fmt.Errorf("abs: %w", ErrDomain)
	}
	var r uint256.Int
	r.Abs(&v.u)
	return Value{u: r}, nil
}

// Avg returns the arithmetic mean of v and other, rounded toward negative
// infinity. The operands are halved independently with arithmetic shifts and
// the two lost half-units are recombined when both operands are odd, so the
// sum never overflows even at the domain extremes.
func (v Value) Avg(other Value) Value {
	var hx, hy, odd, r uint256.Int
	hx.SRsh(&v.u, 1)
	hy.SRsh(&other.u, 1)
	odd.And(&v.u, &other.u)
	odd.And(&odd, oneU)
	r.Add(&hx, &hy)
	r.Add(&r, &odd)
	return Value{u: r}
}

// Frac returns the fractional part of v: the sign-following remainder of
// dividing the raw value by the scale. For negative v the result is
// negative.
func (v Value) Frac() Value {
	var r uint256.Int
	r.SMod(&v.u, scaleU)
	return Value{u: r}
}

// Ceil rounds v toward positive infinity to the nearest whole unit.
// Returns ErrDomain for arguments above MaxWhole, where the adjustment
// would leave the domain.
func (v Value) Ceil() (Value, error) {
	if maxWholeU.Slt(&v.u) {
		return zero, fmt.Errorf("ceil: %w", ErrDomain)
	}
	var rem, r uint256.Int
	rem.SMod(&v.u, scaleU)
	if rem.IsZero() {
		return v, nil
	}
	r.Sub(&v.u, &rem)
	if v.u.Sign() > 0 {
		r.Add(&r, scaleU)
	}
	return Value{u: r}, nil
}

// Floor rounds v toward negative infinity to the nearest whole unit.
// Returns ErrDomain for arguments below MinWhole.
func (v Value) Floor() (Value, error) {
	if v.u.Slt(minWholeU) {
		return zero, fmt.Errorf("floor: %w", ErrDomain)
	}
	var rem, r uint256.Int
	rem.SMod(&v.u, scaleU)
	if rem.IsZero() {
		return v, nil
	}
	r.Sub(&v.u, &rem)
	if v.u.Sign() < 0 {
		r.Sub(&r, scaleU)
	}
	return Value{u: r}, nil
}

// Mul returns v * other, rounding half away from zero in the 18th decimal
// digit. The raw 256-bit product is computed before rescaling, so the call
// fails with ErrOverflow whenever that product leaves the domain, even if
// the rescaled result would have fit.
func (v Value) Mul(other Value) (Value, error) {
	if v.u.IsZero() || other.u.IsZero() {
		return zero, nil
	}
	neg := (v.u.Sign() < 0) != (other.u.Sign() < 0)
	var xa, ya, p uint256.Int
	xa.Abs(&v.u)
	ya.Abs(&other.u)
	if _, overflow := p.MulOverflow(&xa, &ya); overflow {
		return zero, fmt.Errorf("mul: %w", ErrOverflow)
	}
	if err := checkMagnitude(&p, neg); err != nil {
		return zero, fmt.Errorf("mul: %w", err)
	}
	p.Add(&p, halfScaleU)
	p.Div(&p, scaleU)
	r, err := signedValue(&p, neg)
	if err != nil {
		return zero, fmt.Errorf("mul: %w", err)
	}
	return r, nil
}

// Div returns v / other, truncating toward zero. The numerator is scaled by
// 10^18 before the division, so the call fails with ErrOverflow when that
// intermediate leaves the domain, and with ErrDivisionByZero for a zero
// divisor.
func (v Value) Div(other Value) (Value, error) {
	if other.u.IsZero() {
		return zero, fmt.Errorf("div: %w", ErrDivisionByZero)
	}
	if v.u.IsZero() {
		return zero, nil
	}
	var xa, ya, p uint256.Int
	xa.Abs(&v.u)
	if _, overflow := p.MulOverflow(&xa, scaleU); overflow {
		return zero, fmt.Errorf("div: %w", ErrOverflow)
	}
	if err := checkMagnitude(&p, v.u.Sign() < 0); err != nil {
		return zero, fmt.Errorf("div: %w", err)
	}
	ya.Abs(&other.u)
	p.Div(&p, &ya)
	r, err := signedValue(&p, (v.u.Sign() < 0) != (other.u.Sign() < 0))
	if err != nil {
		return zero, fmt.Errorf("div: %w", err)
	}
	return r, nil
}

// Inv returns 1 / v, truncating toward zero.
// Returns ErrDivisionByZero for a zero argument.
func (v Value) Inv() (Value, error) {
	if v.u.IsZero() {
		return zero, fmt.Errorf("inv: %w", ErrDivisionByZero)
	}
	var xa, r uint256.Int
	xa.Abs(&v.u)
	r.Div(scaleSqU, &xa)
	if v.u.Sign() < 0 {
		r.Neg(&r)
	}
	return Value{u: r}, nil
}

// checkMagnitude reports ErrOverflow if an intermediate magnitude cannot be
// represented with the given sign: the domain is asymmetric, negative values
// reach one unit further.
func checkMagnitude(mag *uint256.Int, neg bool) error {
	if neg {
		if mag.Gt(minU) {
			return ErrOverflow
		}
		return nil
	}
	if mag.Gt(maxU) {
		return ErrOverflow
	}
	return nil
}
