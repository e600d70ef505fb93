package pricefeed

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
)

type Config struct {
	// NativeDecimals is the precision of the native currency's smallest unit (18 for wei).
	NativeDecimals uint8
	// QuoteDecimals is the precision of the quote token.
	QuoteDecimals uint8
	// MaxPriceAge rejects answers older than this. Zero disables the check.
	MaxPriceAge time.Duration
}

// Converter turns quote-currency amounts into native-currency amounts using the oracle.
type Converter struct {
	oracle         Oracle
	config         Config
	oracleDecimals uint8
	// amounts are multiplied by scaleUp and the price by scaleDown before dividing
	scaleUp   *uint256.Int
	scaleDown *uint256.Int
	now       func() time.Time
}

// NewConverter reads the oracle precision once and derives the scaling exponent
// nativeDecimals + oracleDecimals - quoteDecimals from it.
func NewConverter(ctx context.Context, oracle Oracle, config Config, now func() time.Time) (*Converter, error) {
	if oracle == nil {
		return nil, errors.Wrap(errs.InvalidArgument, "oracle is required")
	}
	if now == nil {
		now = time.Now
	}
	oracleDecimals, err := oracle.Decimals(ctx)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "can't get oracle decimals"), errs.OracleError)
	}

	exponent := int(config.NativeDecimals) + int(oracleDecimals) - int(config.QuoteDecimals)
	scaleUp, scaleDown := uint256.NewInt(1), uint256.NewInt(1)
	ten := uint256.NewInt(10)
	if exponent >= 0 {
		scaleUp.Exp(ten, uint256.NewInt(uint64(exponent)))
	} else {
		scaleDown.Exp(ten, uint256.NewInt(uint64(-exponent)))
	}

	return &Converter{
		oracle:         oracle,
		config:         config,
		oracleDecimals: oracleDecimals,
		scaleUp:        scaleUp,
		scaleDown:      scaleDown,
		now:            now,
	}, nil
}

func (c *Converter) OracleDecimals() uint8 {
	return c.oracleDecimals
}

func (c *Converter) Config() Config {
	return c.config
}

// LatestPrice returns the oracle answer after validating it is positive and fresh.
func (c *Converter) LatestPrice(ctx context.Context) (PriceData, error) {
	data, err := c.oracle.LatestPrice(ctx)
	if err != nil {
		return PriceData{}, errors.Mark(errors.Wrap(err, "can't get oracle price"), errs.OracleError)
	}
	if data.Price == nil || data.Price.Sign() <= 0 {
		return PriceData{}, errors.Wrapf(errs.OracleError, "non-positive price %v", data.Price)
	}
	if c.config.MaxPriceAge > 0 && c.now().Sub(data.UpdatedAt) > c.config.MaxPriceAge {
		return PriceData{}, errors.Wrapf(errs.OracleError, "stale price, updated at %s", data.UpdatedAt.UTC().Format(time.RFC3339))
	}
	return data, nil
}

// ToNative returns quoteAmount * 10^(nativeDecimals+oracleDecimals-quoteDecimals) / price.
func (c *Converter) ToNative(ctx context.Context, quoteAmount uint128.Uint128) (*uint256.Int, error) {
	data, err := c.LatestPrice(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	price, overflow := uint256.FromBig(data.Price)
	if overflow {
		return nil, errors.Wrap(errs.OracleError, "price overflows uint256")
	}

	// a uint128 always fits
	amount, _ := uint256.FromBig(quoteAmount.Big())
	numerator, overflow := new(uint256.Int).MulOverflow(amount, c.scaleUp)
	if overflow {
		return nil, errors.Wrap(errs.OverflowUint256, "scaled quote amount")
	}
	denominator, overflow := new(uint256.Int).MulOverflow(price, c.scaleDown)
	if overflow {
		return nil, errors.Wrap(errs.OverflowUint256, "scaled price")
	}
	return new(uint256.Int).Div(numerator, denominator), nil
}
