package fixed256

import (
	"fmt"

	"github.com/avdva/fixed256/internal/mathutil"
	"github.com/holiman/uint256"
)

var (
	// exp2MaxInput bounds Exp2 arguments to [0, 128): the accumulator folds
	// the integer part of the exponent in with a left shift, and 2^128 in
	// the internal 128.128 format is the first power that cannot be held.
	exp2MaxInput = fpU(128, 0)

	// expMaxInput is 128/log2(e) truncated to 18 digits: the largest
	// argument whose base-2 image stays under the Exp2 ceiling.
	expMaxInput = fpU(88, 722839111672999628)

	// log2E is log2(e) truncated to 18 digits.
	log2E = Value{u: *uint256.NewInt(1442695040888963407)}

	twoPow128 = new(uint256.Int).Lsh(oneU, 128)
)

// exp2Coef[k-1] holds 2^(2^-k) in unsigned 128.128 fixed-point form, for
// the 59 exponent fraction bits the bit walk visits (bit 127 down to 69).
// Precomputed data, kept as a table so the walk stays a plain loop.
var exp2Coef = [59]uint256.Int{
	{0xb2fb1366ea957d3e, 0x6a09e667f3bcc908, 0x1, 0x0},
	{0x8d5a46305c85edec, 0x306fe0a31b7152de, 0x1, 0x0},
	{0xf7c8c50eb14a7920, 0x172b83c7d517adcd, 0x1, 0x0},
	{0x8b92b71842a98364, 0x0b5586cf9890f629, 0x1, 0x0},
	{0x7c548eb68ca417fe, 0x059b0d31585743ae, 0x1, 0x0},
	{0xf7caca4f7a29bde9, 0x02c9a3e778060ee6, 0x1, 0x0},
	{0x4a66ae336dcdfa40, 0x0163da9fb33356d8, 0x1, 0x0},
	{0x29ab13ec11dc9544, 0x00b1afa5abcbed61, 0x1, 0x0},
	{0xff19d294cf2f679c, 0x0058c86da1c09ea1, 0x1, 0x0},
	{0x6d21bfc89a23a010, 0x002c605e2e8cec50, 0x1, 0x0},
	{0x28bca9c55c31e5e0, 0x00162f3904051fa1, 0x1, 0x0},
	{0x38e31671ca939726, 0x000b175effdc76ba, 0x1, 0x0},
	{0x6cacd4b180917c3e, 0x00058ba01fb9f96d, 0x1, 0x0},
	{0xd0985c348c68e7b3, 0x0002c5cc37da9491, 0x1, 0x0},
	{0x54457d5995292026, 0x000162e525ee0547, 0x1, 0x0},
	{0x0618bf4a4ade83fc, 0x0000b17255775c04, 0x1, 0x0},
	{0x2eed81e9b7d4cfac, 0x000058b91b5bc9ae, 0x1, 0x0},
	{0xa4d7c8acc017b7c9, 0x00002c5c89d5ec6c, 0x1, 0x0},
	{0x060e02d839a9d16d, 0x0000162e43f4f831, 0x1, 0x0},
	{0xd9f890ea06911763, 0x00000b1721bcfc99, 0x1, 0x0},
	{0x97f9ca14dbcc1628, 0x0000058b90cf1e6d, 0x1, 0x0},
	{0x016468f6bac5ca2c, 0x000002c5c863b73f, 0x1, 0x0},
	{0x8f6119e3c02282a5, 0x00000162e430e5a1, 0x1, 0x0},
	{0x4b86e6d96efd1bff, 0x000000b172183551, 0x1, 0x0},
	{0xc6be5df846c5b2f0, 0x00000058b90c0b48, 0x1, 0x0},
	{0x6b9e94213c72737a, 0x0000002c5c8601cc, 0x1, 0x0},
	{0x37df38aa2b219f06, 0x000000162e42fff0, 0x1, 0x0},
	{0x9c739aa5819f44f9, 0x0000000b17217fba, 0x1, 0x0},
	{0xee5acd3c1cedc823, 0x000000058b90bfcd, 0x1, 0x0},
	{0x1f35a6a30da1be50, 0x00000002c5c85fe3, 0x1, 0x0},
	{0x999ce3541b9fffcf, 0x0000000162e42ff0, 0x1, 0x0},
	{0x0f4ef5aadda45554, 0x00000000b17217f8, 0x1, 0x0},
	{0xf8479bd5a81b51ad, 0x0000000058b90bfb, 0x1, 0x0},
	{0xf84bd62ae30a74cc, 0x000000002c5c85fd, 0x1, 0x0},
	{0xfb2fed257559bdaa, 0x00000000162e42fe, 0x1, 0x0},
	{0x7d5a7716bba4a9af, 0x000000000b17217f, 0x1, 0x0},
	{0xbe9ddbac5e109ccf, 0x00000000058b90bf, 0x1, 0x0},
	{0xdf4b15de6f17eb0d, 0x0000000002c5c85f, 0x1, 0x0},
	{0xefa494f1478fde05, 0x000000000162e42f, 0x1, 0x0},
	{0xf7d20cf927c8e94c, 0x0000000000b17217, 0x1, 0x0},
	{0xfbe8f71cb4e4b33e, 0x000000000058b90b, 0x1, 0x0},
	{0xfdf477b662b26945, 0x00000000002c5c85, 0x1, 0x0},
	{0xfefa3ae53369388c, 0x0000000000162e42, 0x1, 0x0},
	{0x7f7d1d351a389d40, 0x00000000000b1721, 0x1, 0x0},
	{0xbfbe8e8b2d3d4ede, 0x0000000000058b90, 0x1, 0x0},
	{0x5fdf4741bea6e77f, 0x000000000002c5c8, 0x1, 0x0},
	{0x2fefa39fe95583c3, 0x00000000000162e4, 0x1, 0x0},
	{0x17f7d1cfb72b45e2, 0x000000000000b172, 0x1, 0x0},
	{0x0bfbe8e7cc35c3f1, 0x00000000000058b9, 0x1, 0x0},
	{0x85fdf473e242ea38, 0x0000000000002c5c, 0x1, 0x0},
	{0x42fefa39f02b772c, 0x000000000000162e, 0x1, 0x0},
	{0x217f7d1cf7d83c1a, 0x0000000000000b17, 0x1, 0x0},
	{0x90bfbe8e7bdcbe2e, 0x000000000000058b, 0x1, 0x0},
	{0xc85fdf473dea871f, 0x00000000000002c5, 0x1, 0x0},
	{0xe42fefa39ef44d91, 0x0000000000000162, 0x1, 0x0},
	{0x7217f7d1cf79e949, 0x00000000000000b1, 0x1, 0x0},
	{0xb90bfbe8e7bce544, 0x0000000000000058, 0x1, 0x0},
	{0x5c85fdf473de6eca, 0x000000000000002c, 0x1, 0x0},
	{0x2e42fefa39ef366f, 0x0000000000000016, 0x1, 0x0},
}

// Exp2 returns 2 raised to the power of v.
//
// The argument must lie in [0, 128): negative and out-of-range exponents
// are rejected with ErrDomain.
// The exponent is converted to unsigned 128.128 form, an accumulator seeded
// at 0.5 walks its 59 most significant fraction bits multiplying in the
// precomputed 2^(2^-k) constants, the integer part folds in as a left
// shift, and the result is rescaled back to 18 decimal digits.
func (v Value) Exp2() (Value, error) {
	if v.u.Sign() < 0 {
		return zero, fmt.Errorf("exp2: negative exponent: %w", ErrDomain)
	}
	if !v.u.Lt(exp2MaxInput) {
		return zero, fmt.Errorf("exp2: exponent too large: %w", ErrDomain)
	}
	var x128 uint256.Int
	x128.Lsh(&v.u, 128)
	x128.Div(&x128, scaleU)

	acc := new(uint256.Int).Lsh(oneU, 127)
	var bit, t uint256.Int
	bit.Lsh(oneU, 127)
	for i := range exp2Coef {
		if !t.And(&x128, &bit).IsZero() {
			// acc < 2^128 and the applied fraction stays below one, so
			// the product never reaches 2^256 and MulDiv cannot fail.
			var err error
			acc, err = mathutil.MulDiv(acc, &exp2Coef[i], twoPow128)
			if err != nil {
				return zero, fmt.Errorf("exp2: %w", ErrOverflow)
			}
		}
		bit.Rsh(&bit, 1)
	}
	intPart := new(uint256.Int).Rsh(&x128, 128).Uint64()
	acc.Lsh(acc, uint(intPart)+1)

	r, err := mathutil.MulDiv(acc, scaleU, twoPow128)
	if err != nil || r.Gt(maxU) {
		return zero, fmt.Errorf("exp2: %w", ErrOverflow)
	}
	return Value{u: *r}, nil
}

// Exp returns e raised to the power of v, as Exp2(v * log2 e).
// The argument must lie in [0, 88.722839111672999628), the range whose
// base-2 image stays under the Exp2 ceiling; everything outside is
// ErrDomain. Exp2 failure modes propagate.
func (v Value) Exp() (Value, error) {
	if v.u.Sign() < 0 {
		return zero, fmt.Errorf("exp: negative exponent: %w", ErrDomain)
	}
	if !v.u.Lt(expMaxInput) {
		return zero, fmt.Errorf("exp: exponent too large: %w", ErrDomain)
	}
	d, err := v.Mul(log2E)
	if err != nil {
		return zero, fmt.Errorf("exp: %w", err)
	}
	return d.Exp2()
}
