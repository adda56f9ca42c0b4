// Copyright 2023 Aleksandr Demakin. All rights reserved.

// Package fixed256 implements a deterministic fixed-point decimal number
// with 18 digits of fractional precision over a 256-bit signed domain.
// A value is a two's complement 256-bit integer interpreted as raw / 10^18,
// so every operation is bit-exact and reproducible: the same inputs always
// produce the same output, with no dependence on platform floating point.
package fixed256

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	// digits is the number of decimal digits in the fractional part.
	digits = 18

	scale     = 1e18
	halfScale = 5e17

	delim = '.'
)

const zeroPad = "000000000000000000"

var (
	// ErrOverflow is returned when a result, or an intermediate the result
	// needs, exceeds the representable 256-bit domain.
	ErrOverflow = errors.New("overflow")
	// ErrDomain is returned when an argument violates an operation's
	// precondition: a non-positive logarithm argument, a negative square
	// root argument, an exponent outside a function's valid range.
	ErrDomain = errors.New("argument outside domain")
	// ErrDivisionByZero is returned for a zero divisor or a zero inverse
	// argument.
	ErrDivisionByZero = errors.New("division by zero")
)

var (
	zero Value

	oneU       = uint256.NewInt(1)
	scaleU     = uint256.NewInt(scale)
	halfScaleU = uint256.NewInt(halfScale)
	twoScaleU  = uint256.NewInt(2 * scale)
	scaleSqU   = new(uint256.Int).Mul(scaleU, scaleU)

	// maxU is 2^255-1, the raw magnitude of Max. minU is 2^255: both the
	// raw bit pattern of Min and its magnitude.
	maxU = new(uint256.Int).Sub(new(uint256.Int).Lsh(oneU, 255), oneU)
	minU = new(uint256.Int).Lsh(oneU, 255)

	// whole-unit bounds: the domain extremes truncated toward zero to the
	// last exact multiple of the scale.
	maxWholeU    = new(uint256.Int).Sub(maxU, new(uint256.Int).Mod(maxU, scaleU))
	minWholeAbsU = new(uint256.Int).Sub(minU, new(uint256.Int).Mod(minU, scaleU))
	minWholeU    = new(uint256.Int).Neg(minWholeAbsU)

	eU  = fpU(2, 718281828459045235)
	piU = fpU(3, 141592653589793238)
)

type posError struct {
	pos int
	err string
}

func newPosError(err string, pos int) *posError {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

// Value is a signed fixed-point number: a 256-bit two's complement integer
// interpreted as raw / 10^18. The zero value is 0.
type Value struct {
	u uint256.Int
}

// fpU builds the raw representation of integ.frac, both parts given in
// their natural units (frac already scaled to 18 digits).
func fpU(integ, frac uint64) *uint256.Int {
	z := new(uint256.Int).Mul(uint256.NewInt(integ), scaleU)
	return z.Add(z, uint256.NewInt(frac))
}

// Scale returns the value representing 1.0, whose raw form is 10^18.
func Scale() Value { return Value{u: *scaleU} }

// HalfScale returns the value representing 0.5, used by Mul for
// round-half-away-from-zero.
func HalfScale() Value { return Value{u: *halfScaleU} }

// Max returns the largest representable value, (2^255-1)/10^18.
func Max() Value { return Value{u: *maxU} }

// Min returns the smallest representable value, -2^255/10^18.
func Min() Value { return Value{u: *minU} }

// MaxWhole returns the largest representable multiple of 1.0.
func MaxWhole() Value { return Value{u: *maxWholeU} }

// MinWhole returns the smallest representable multiple of 1.0.
func MinWhole() Value { return Value{u: *minWholeU} }

// E returns Euler's number truncated to 18 decimal digits.
func E() Value { return Value{u: *eU} }

// Pi returns pi truncated to 18 decimal digits.
func Pi() Value { return Value{u: *piU} }

// signedValue assembles a value from a magnitude and a sign, rejecting
// magnitudes outside the asymmetric two's complement domain.
func signedValue(mag *uint256.Int, neg bool) (Value, error) {
	if neg {
		if mag.Gt(minU) {
			return zero, ErrOverflow
		}
		var r uint256.Int
		r.Neg(mag)
		return Value{u: r}, nil
	}
	if mag.Gt(maxU) {
		return zero, ErrOverflow
	}
	return Value{u: *mag}, nil
}

// FromInt64 returns the value representing the whole number v.
func FromInt64(v int64) Value {
	neg := v < 0
	mag := uint64(v)
	if neg {
		mag = -mag
	}
	var u uint256.Int
	u.Mul(uint256.NewInt(mag), scaleU)
	if neg {
		u.Neg(&u)
	}
	return Value{u: u}
}

// FromBig returns the value with raw (already scaled by 10^18)
// representation b. Returns an error if b is out of the domain.
func FromBig(b *big.Int) (Value, error) {
	var abs big.Int
	abs.Abs(b)
	u, overflow := uint256.FromBig(&abs)
	if overflow {
		return zero, fmt.Errorf("from big: %w", ErrOverflow)
	}
	v, err := signedValue(u, b.Sign() < 0)
	if err != nil {
		return zero, fmt.Errorf("from big: %w", err)
	}
	return v, nil
}

// FromString parses a decimal string, like `-12.75`, into a value.
// Fractional digits beyond the 18th are truncated.
func FromString(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return zero, fmt.Errorf("empty input")
	}
	neg := false
	switch s[0] {
	case '-':
		neg, s = true, s[1:]
	case '+':
		s = s[1:]
	}
	var integ, frac strings.Builder
	sawDigit, delimPos := false, -1
	for i, r := range s {
		switch {
		case '0' <= r && r <= '9':
			sawDigit = true
			if delimPos >= 0 {
				frac.WriteRune(r)
			} else {
				integ.WriteRune(r)
			}
		case r == delim:
			if delimPos >= 0 {
				return zero, fmt.Errorf("parsing failed: %w", newPosError("unexpected delimiter", i))
			}
			delimPos = i
		default:
			return zero, fmt.Errorf("parsing failed: %w", newPosError(fmt.Sprintf("unexpected symbol %q", r), i))
		}
	}
	if !sawDigit {
		return zero, fmt.Errorf("parsing failed: no digits")
	}
	fracDigits := frac.String()
	if len(fracDigits) > digits {
		fracDigits = fracDigits[:digits]
	}
	raw, _ := new(big.Int).SetString(integ.String()+fracDigits+zeroPad[:digits-len(fracDigits)], 10)
	if neg {
		raw.Neg(raw)
	}
	return FromBig(raw)
}

// MustFromString is like FromString, but panics on a bad input.
func MustFromString(s string) Value {
	v, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FromFloat64 returns a value for given float64, going through the shortest
// decimal representation of f to keep the conversion deterministic.
// Returns an error for infinities and not-a-numbers.
func FromFloat64(f float64) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return zero, fmt.Errorf("bad float number")
	}
	return FromString(strconv.FormatFloat(f, 'f', -1, 64))
}

// MustFromFloat64 is like FromFloat64, but panics on a bad input.
func MustFromFloat64(f float64) Value {
	v, err := FromFloat64(f)
	if err != nil {
		panic(err)
	}
	return v
}

// FromDecimal converts d, truncating toward zero below 10^-18.
func FromDecimal(d decimal.Decimal) (Value, error) {
	coeff := d.Coefficient()
	if coeff.Sign() == 0 {
		return zero, nil
	}
	exp := int(d.Exponent()) + digits
	nd := len(new(big.Int).Abs(coeff).String())
	if exp <= -nd { // the whole coefficient is below one raw unit
		return zero, nil
	}
	if nd+exp >= 79 { // any 79-digit raw value is already past Max
		return zero, fmt.Errorf("from decimal: %w", ErrOverflow)
	}
	raw := new(big.Int).Set(coeff)
	if exp >= 0 {
		raw.Mul(raw, pow10Big(exp))
	} else {
		raw.Quo(raw, pow10Big(-exp))
	}
	return FromBig(raw)
}

func pow10Big(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// Decimal returns the exact decimal.Decimal form of v.
func (v Value) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(v.Big(), -digits)
}

// Big returns the raw (scaled by 10^18) representation of v.
func (v Value) Big() *big.Int {
	if v.u.Sign() < 0 {
		var a uint256.Int
		a.Abs(&v.u)
		return new(big.Int).Neg(a.ToBig())
	}
	return v.u.ToBig()
}

// Float64 returns the nearest float64 to v.
func (v Value) Float64() float64 {
	f := new(big.Float).SetInt(v.Big())
	f.Quo(f, big.NewFloat(scale))
	r, _ := f.Float64()
	return r
}

// Sign returns -1 if v < 0, 0 if v == 0, 1 if v > 0.
func (v Value) Sign() int {
	return v.u.Sign()
}

// IsZero returns true if v is zero.
func (v Value) IsZero() bool {
	return v.u.IsZero()
}

// Eq returns true, if both values represent the same number.
func (v Value) Eq(other Value) bool {
	return v.u.Eq(&other.u)
}

// Cmp compares two values.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func (v Value) Cmp(other Value) int {
	if v.u.Eq(&other.u) {
		return 0
	}
	if v.u.Slt(&other.u) {
		return -1
	}
	return 1
}

// GoString returns debug string representation.
func (v Value) GoString() string {
	return v.String() + fmt.Sprintf(" {raw %s}", v.Big())
}

// String returns a string representation of the value,
// with trailing fractional zeros trimmed.
func (v Value) String() string {
	if v.u.IsZero() {
		return "0"
	}
	var builder strings.Builder
	v.toStringsBuilder(&builder)
	return builder.String()
}

func (v Value) toStringsBuilder(builder *strings.Builder) {
	var a, q, r uint256.Int
	if v.u.Sign() < 0 {
		builder.WriteRune('-')
	}
	a.Abs(&v.u)
	q.Div(&a, scaleU)
	r.Mod(&a, scaleU)
	builder.WriteString(q.ToBig().String())
	if r.IsZero() {
		return
	}
	frac := strconv.FormatUint(r.Uint64(), 10)
	frac = strings.TrimRight(zeroPad[:digits-len(frac)]+frac, "0")
	builder.WriteRune(delim)
	builder.WriteString(frac)
}

// MarshalJSON marshals the value as a quoted decimal string.
func (v Value) MarshalJSON() ([]byte, error) {
	var builder strings.Builder
	builder.WriteRune('"')
	if !v.u.IsZero() {
		v.toStringsBuilder(&builder)
	} else {
		builder.WriteRune('0')
	}
	builder.WriteRune('"')
	return []byte(builder.String()), nil
}

// UnmarshalJSON unmarshals a quoted decimal string, or a bare number,
// into a value.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	value, err := FromString(s)
	if err != nil {
		return err
	}
	*v = value
	return nil
}
