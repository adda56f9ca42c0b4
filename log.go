package fixed256

import (
	"fmt"

	"github.com/avdva/fixed256/internal/mathutil"
	"github.com/holiman/uint256"
)

// log2FracIters bounds the fractional bit extraction in Log2. Each
// iteration halves the weight of the next bit, so the fractional part is
// resolved to 2^-log2FracIters.
const log2FracIters = 18

var (
	// ln2 is ln(2) truncated to 18 digits.
	ln2 = Value{u: *uint256.NewInt(693147180559945309)}
	// log2Ten is log2(10) truncated to 18 digits.
	log2Ten = Value{u: *uint256.NewInt(3321928094887362347)}

	// pow10Table[i] is the raw form of 10^(i-18): every exact power of ten
	// the domain can hold, from 10^-18 up to 10^58.
	pow10Table [77]uint256.Int
)

func init() {
	ten := uint256.NewInt(10)
	pow10Table[0].SetUint64(1)
	for i := 1; i < len(pow10Table); i++ {
		pow10Table[i].Mul(&pow10Table[i-1], ten)
	}
}

// Log2 returns the binary logarithm of v.
// Returns ErrDomain for non-positive arguments.
//
// Arguments below one are folded in with log2(x) = -log2(1/x). The integer
// part is the index of the highest set bit of the whole-unit quotient; the
// fractional part comes from repeated squaring of the remaining mantissa,
// emitting one bit per crossing of 2.0. The fraction is resolved to
// 2^-18, so results are approximate in the last decimal digits; powers of
// two come out exact.
func (v Value) Log2() (Value, error) {
	if v.u.Sign() <= 0 {
		return zero, fmt.Errorf("log2: non-positive argument: %w", ErrDomain)
	}
	x := v.u
	neg := false
	if x.Lt(scaleU) {
		neg = true
		var t uint256.Int
		t.Div(scaleSqU, &x)
		x = t
	}
	var q uint256.Int
	q.Div(&x, scaleU)
	n := mathutil.Msb(&q)

	var result uint256.Int
	result.Mul(uint256.NewInt(uint64(n)), scaleU)
	var y uint256.Int
	y.Rsh(&x, uint(n))
	if y.Eq(scaleU) { // the mantissa is exactly one, no fractional bits
		if neg {
			result.Neg(&result)
		}
		return Value{u: result}, nil
	}

	delta := uint256.NewInt(halfScale)
	var t uint256.Int
	for i := 0; i < log2FracIters; i++ {
		t.Mul(&y, &y) // y < 2.0, the square stays far below 256 bits
		y.Div(&t, scaleU)
		if !y.Lt(twoScaleU) {
			result.Add(&result, delta)
			y.Rsh(&y, 1)
		}
		delta.Rsh(delta, 1)
	}
	if neg {
		result.Neg(&result)
	}
	return Value{u: result}, nil
}

// Ln returns the natural logarithm of v, as Log2(v) * ln 2.
// Log2 failure modes and its accuracy caveat carry over.
func (v Value) Ln() (Value, error) {
	lg, err := v.Log2()
	if err != nil {
		return zero, fmt.Errorf("ln: %w", ErrDomain)
	}
	r, err := lg.Mul(ln2)
	if err != nil {
		return zero, fmt.Errorf("ln: %w", err)
	}
	return r, nil
}

// Log10 returns the common logarithm of v.
// Returns ErrDomain for non-positive arguments.
//
// Exact powers of ten in [10^-18, 10^58] hit a closed lookup table and
// return the literal exponent with no approximation error; everything else
// falls back to Log2(v) / log2 10.
func (v Value) Log10() (Value, error) {
	if v.u.Sign() <= 0 {
		return zero, fmt.Errorf("log10: non-positive argument: %w", ErrDomain)
	}
	for i := range pow10Table {
		if v.u.Eq(&pow10Table[i]) {
			return FromInt64(int64(i) - digits), nil
		}
	}
	lg, err := v.Log2()
	if err != nil {
		return zero, fmt.Errorf("log10: %w", ErrDomain)
	}
	r, err := lg.Div(log2Ten)
	if err != nil {
		return zero, fmt.Errorf("log10: %w", err)
	}
	return r, nil
}
