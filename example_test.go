// Copyright 2023 Aleksandr Demakin. All rights reserved.

package fixed256_test

import (
	"fmt"

	"github.com/avdva/fixed256"
)

func ExampleFromString() {
	v, err := fixed256.FromString("-123.456")
	fmt.Println(v, err)
	v = fixed256.MustFromString("0.000000000000000001")
	fmt.Println(v)
	// Output:
	// -123.456 <nil>
	// 0.000000000000000001
}

func ExampleValue_Mul() {
	price := fixed256.MustFromString("1.5")
	qty := fixed256.MustFromString("1.5")
	total, _ := price.Mul(qty)
	fmt.Println(total)
	// Output:
	// 2.25
}

func ExampleValue_Pow() {
	// 1000 at 5% compounded over 10 periods.
	principal := fixed256.MustFromString("1000")
	growth, _ := fixed256.MustFromString("1.05").Pow(10)
	total, _ := principal.Mul(growth)
	fmt.Println(total)
	// Output:
	// 1628.894626777441406
}

func ExampleValue_Sqrt() {
	r, _ := fixed256.MustFromString("2").Sqrt()
	fmt.Println(r)
	// Output:
	// 1.414213562373095048
}

func ExampleValue_Div() {
	r, _ := fixed256.MustFromString("1").Div(fixed256.MustFromString("3"))
	fmt.Println(r)
	_, err := fixed256.MustFromString("1").Div(fixed256.Value{})
	fmt.Println(err)
	// Output:
	// 0.333333333333333333
	// div: division by zero
}
