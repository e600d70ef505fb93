package presale

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/internal/tokenledger"
	presaleconfig "github.com/gaze-network/presale-ledger/modules/presale/config"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/pricefeed"
	"github.com/gaze-network/presale-ledger/modules/presale/usecase"
	"github.com/holiman/uint256"
)

type addresses struct {
	sale   common.Address
	owner  common.Address
	payout common.Address
}

func parseAddress(field, value string, required bool) (common.Address, error) {
	if value == "" && !required {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, errors.Wrapf(errs.InvalidArgument, "%s %q is not a valid address", field, value)
	}
	return common.HexToAddress(value), nil
}

func parseAddresses(conf presaleconfig.Config) (addresses, error) {
	var result addresses
	var err error
	if result.sale, err = parseAddress("sale_address", conf.SaleAddress, true); err != nil {
		return addresses{}, errors.WithStack(err)
	}
	if result.owner, err = parseAddress("owner", conf.Owner, true); err != nil {
		return addresses{}, errors.WithStack(err)
	}
	if result.payout, err = parseAddress("payout", conf.Payout, false); err != nil {
		return addresses{}, errors.WithStack(err)
	}
	return result, nil
}

func parseBalance(value string) (*uint256.Int, error) {
	if value == "" {
		return new(uint256.Int), nil
	}
	amount, err := uint256.FromDecimal(value)
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid amount %q", value)
	}
	return amount, nil
}

// newLedgers creates the in-process asset, quote token and native ledgers and
// credits the configured bootstrap balances.
func newLedgers(conf presaleconfig.Config) (usecase.Ledgers, error) {
	ledgers := usecase.Ledgers{
		Asset:          tokenledger.NewToken(conf.Asset.Name, conf.Asset.Symbol, conf.Asset.Decimals),
		Quote:          tokenledger.NewToken(conf.Quote.Name, conf.Quote.Symbol, conf.Quote.Decimals),
		Bank:           tokenledger.NewBank(),
		NativeSymbol:   conf.Native.Symbol,
		NativeDecimals: conf.Native.Decimals,
	}

	treasury, err := parseBalance(conf.Bootstrap.Treasury)
	if err != nil {
		return usecase.Ledgers{}, errors.Wrap(err, "treasury")
	}
	if !treasury.IsZero() {
		saleAddress, err := parseAddress("sale_address", conf.SaleAddress, true)
		if err != nil {
			return usecase.Ledgers{}, errors.WithStack(err)
		}
		if err := ledgers.Asset.Mint(saleAddress, treasury); err != nil {
			return usecase.Ledgers{}, errors.Wrap(err, "can't mint treasury")
		}
	}

	for i, account := range conf.Bootstrap.Accounts {
		address, err := parseAddress("account", account.Address, true)
		if err != nil {
			return usecase.Ledgers{}, errors.Wrapf(err, "account %d", i)
		}
		native, err := parseBalance(account.Native)
		if err != nil {
			return usecase.Ledgers{}, errors.Wrapf(err, "native balance of %s", address)
		}
		quote, err := parseBalance(account.Quote)
		if err != nil {
			return usecase.Ledgers{}, errors.Wrapf(err, "quote balance of %s", address)
		}
		if !native.IsZero() {
			if err := ledgers.Bank.Deposit(address, native); err != nil {
				return usecase.Ledgers{}, errors.Wrapf(err, "can't deposit to %s", address)
			}
		}
		if !quote.IsZero() {
			if err := ledgers.Quote.Mint(address, quote); err != nil {
				return usecase.Ledgers{}, errors.Wrapf(err, "can't mint quote to %s", address)
			}
		}
	}
	return ledgers, nil
}

func newOracle(conf presaleconfig.OracleConfig) (pricefeed.Oracle, error) {
	switch strings.ToLower(conf.Source) {
	case "", "static":
		return pricefeed.NewStaticOracle(conf.Price, conf.Decimals, time.Now()), nil
	case "http":
		oracle, err := pricefeed.NewHTTPOracle(pricefeed.HTTPOracleConfig{
			URL:      conf.URL,
			Pair:     conf.Pair,
			Decimals: conf.Decimals,
		})
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return oracle, nil
	}
	return nil, errors.Wrapf(errs.Unsupported, "oracle source %q", conf.Source)
}

func newConverter(ctx context.Context, conf presaleconfig.Config) (*pricefeed.Converter, error) {
	oracle, err := newOracle(conf.Oracle)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	converter, err := pricefeed.NewConverter(ctx, oracle, pricefeed.Config{
		NativeDecimals: conf.Native.Decimals,
		QuoteDecimals:  conf.Quote.Decimals,
		MaxPriceAge:    conf.Oracle.MaxPriceAge,
	}, time.Now)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return converter, nil
}
