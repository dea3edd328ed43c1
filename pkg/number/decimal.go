package number

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Precision decimals of every fixed-point amount
const Precision int32 = 18

var errNegative = errors.New("number: negative value")

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

func Floor(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Floor().Shift(-precision)
}

// FromFixed 1e18 fixed-point integer to human readable decimal
func FromFixed(v *uint256.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v.ToBig(), -Precision)
}

// FromInt raw integer without rescaling, used for database columns
func FromInt(v *uint256.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v.ToBig(), 0)
}

// ToFixed human readable decimal to 1e18 fixed-point integer, digits beyond 18 decimals are dropped
func ToFixed(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, errNegative
	}

	v, overflow := uint256.FromBig(Floor(d, Precision).Shift(Precision).BigInt())
	if overflow {
		return nil, errors.New("number: overflow")
	}

	return v, nil
}

// ParseFixed parse "1.5" as 1.5e18
func ParseFixed(s string) (*uint256.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}

	return ToFixed(d)
}
