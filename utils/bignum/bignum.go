// Package bignum provides arbitrary precision arithmetic helpers on top of
// math/big.
package bignum

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// NewFloat creates a new big.Float element with prec bits of precision.
// Valid types for x are: int, int64, uint, uint64, float64, *big.Int and
// *big.Float.
func NewFloat(x interface{}, prec uint) (y *big.Float) {

	y = new(big.Float)
	y.SetPrec(prec)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case float64:
		y.SetFloat64(x)
	case *big.Int:
		y.SetInt(x)
	case *big.Float:
		y.Set(x)
	default:
		panic(fmt.Errorf("invalid x.(type): valid types are int, int64, uint, uint64, float64, *big.Int or *big.Float but is %T", x))
	}

	return
}

// Log returns ln(x) with the precision of x.
func Log(x *big.Float) (y *big.Float) {
	return bigfloat.Log(x)
}

// Log2 returns log2(x) with the precision of x. x must be strictly
// positive.
func Log2(x *big.Float) (y *big.Float) {
	ln2 := bigfloat.Log(NewFloat(2, x.Prec()))
	return new(big.Float).SetPrec(x.Prec()).Quo(bigfloat.Log(x), ln2)
}
