// Copyright 2023 Aleksandr Demakin. All rights reserved.

package fixed256

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExp2(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v, r Value
		err  error
	}{
		{zero, fv("1"), nil},
		{fv("0.5"), raw("1414213562373095048"), nil},
		{fv("1"), fv("2"), nil},
		{fv("3.5"), raw("11313708498984760390"), nil},
		{fv("10"), fv("1024"), nil},
		{fv("127"), fv("170141183460469231731687303715884105728"), nil},
		{fv("128"), zero, ErrDomain},
		{Max(), zero, ErrDomain},
		{fv("-1"), zero, ErrDomain},
		{raw("-1"), zero, ErrDomain},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			r, err := test.v.Exp2()
			if test.err != nil {
				a.ErrorIs(err, test.err)
			} else {
				a.NoError(err)
				a.Equal(test.r, r)
			}
		})
	}
}

// Whole-number exponents take the pure shift path and come out exact.
func TestExp2Integers(t *testing.T) {
	a := assert.New(t)
	for n := int64(0); n < 128; n++ {
		r, err := FromInt64(n).Exp2()
		a.NoError(err)
		want := new(big.Int).Lsh(big.NewInt(1), uint(n))
		want.Mul(want, big.NewInt(scale))
		a.Equal(want.String(), r.Big().String(), "n=%d", n)
	}
}

func TestExp(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v, r Value
		err  error
	}{
		{zero, fv("1"), nil},
		{fv("0.5"), raw("1648721270700128147"), nil},
		{fv("1"), raw("2718281828459045232"), nil},
		{fv("2"), raw("7389056098930650223"), nil},
		{raw("88722839111672999627"), fv("340282366920938463054212730785283230533"), nil},
		{fv("88.722839111672999628"), zero, ErrDomain},
		{fv("100"), zero, ErrDomain},
		{fv("-1"), zero, ErrDomain},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			r, err := test.v.Exp()
			if test.err != nil {
				a.ErrorIs(err, test.err)
			} else {
				a.NoError(err)
				a.Equal(test.r, r)
			}
		})
	}
}

func BenchmarkExp2(b *testing.B) {
	v := fv("10.25")
	for i := 0; i < b.N; i++ {
		benchValueSink, _ = v.Exp2()
	}
}

func BenchmarkExp(b *testing.B) {
	v := fv("10.25")
	for i := 0; i < b.N; i++ {
		benchValueSink, _ = v.Exp()
	}
}
