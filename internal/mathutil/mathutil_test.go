package mathutil

import (
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func u64(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func shifted(bits uint) *uint256.Int {
	return new(uint256.Int).Lsh(u64(1), bits)
}

func TestMulDiv(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x, y, den *uint256.Int
		r         *uint256.Int
		err       error
	}{
		{u64(10), u64(10), u64(3), u64(33), nil},
		{u64(0), u64(10), u64(3), u64(0), nil},
		{u64(7), u64(5), u64(35), u64(1), nil},
		// the product exceeds 256 bits, the quotient does not
		{shifted(200), shifted(100), shifted(100), shifted(200), nil},
		{shifted(255), u64(2), u64(2), shifted(255), nil},
		{shifted(200), shifted(200), u64(1), nil, ErrOverflow},
		{shifted(255), u64(2), u64(1), nil, ErrOverflow},
		{u64(1), u64(1), u64(0), nil, ErrDivisionByZero},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			r, err := MulDiv(test.x, test.y, test.den)
			if test.err != nil {
				a.ErrorIs(err, test.err)
			} else {
				a.NoError(err)
				a.Equal(test.r, r)
			}
		})
	}
}

func TestSqrt(t *testing.T) {
	a := assert.New(t)
	scaleSq := new(uint256.Int).Mul(u64(1e18), u64(1e18))
	maxU256 := new(uint256.Int).Sub(shifted(256), u64(1)) // Sub wraps, 0-1 is all ones
	tests := []struct {
		x, r *uint256.Int
	}{
		{u64(0), u64(0)},
		{u64(1), u64(1)},
		{u64(2), u64(1)},
		{u64(3), u64(1)},
		{u64(4), u64(2)},
		{u64(99), u64(9)},
		{u64(100), u64(10)},
		{scaleSq, u64(1e18)},
		{new(uint256.Int).Sub(shifted(128), u64(1)), new(uint256.Int).Sub(shifted(64), u64(1))},
		{maxU256, new(uint256.Int).Sub(shifted(128), u64(1))},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			r := Sqrt(test.x)
			a.Equal(test.r, r)
			// floor check: r^2 <= x < (r+1)^2
			var sq uint256.Int
			if _, overflow := sq.MulOverflow(r, r); !overflow {
				a.False(test.x.Lt(&sq))
			}
		})
	}
}

func TestMsb(t *testing.T) {
	a := assert.New(t)
	a.Equal(0, Msb(u64(1)))
	a.Equal(1, Msb(u64(2)))
	a.Equal(1, Msb(u64(3)))
	a.Equal(10, Msb(u64(1024)))
	a.Equal(255, Msb(shifted(255)))
}
