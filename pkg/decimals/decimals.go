package decimals

import (
	"math"
	"math/big"
	"reflect"

	"github.com/gaze-network/presale-ledger/pkg/logger"
	"github.com/gaze-network/presale-ledger/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

const (
	DefaultDivPrecision = 36
)

func init() {
	decimal.DivisionPrecision = DefaultDivPrecision
}

// ToDecimal convert any type to decimal.Decimal (safety floating point)
func ToDecimal[T constraints.Integer](ivalue any, decimals T) decimal.Decimal {
	value := new(big.Int)
	switch v := ivalue.(type) {
	case string:
		value.SetString(v, 10)
	case *big.Int:
		value = v
	case int64:
		value = big.NewInt(v)
	case int, int8, int16, int32:
		rValue := reflect.ValueOf(v)
		value.SetInt64(rValue.Int())
	case uint64:
		value = big.NewInt(0).SetUint64(v)
	case uint, uint8, uint16, uint32:
		rValue := reflect.ValueOf(v)
		value.SetUint64(rValue.Uint())
	case []byte:
		value.SetBytes(v)
	case uint128.Uint128:
		value = v.Big()
	case uint256.Int:
		value = v.ToBig()
	case *uint256.Int:
		value = v.ToBig()
	}

	switch {
	case int64(decimals) > math.MaxInt32:
		logger.Panic("ToDecimal: decimals is too big, should be equal less than 2^31-1", slogx.Any("decimals", decimals))
	case int64(decimals) < math.MinInt32+1:
		logger.Panic("ToDecimal: decimals is too small, should be greater than -2^31", slogx.Any("decimals", decimals))
	}

	return decimal.NewFromBigInt(value, -int32(decimals))
}
