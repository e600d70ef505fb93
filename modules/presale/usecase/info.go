package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/stage"
	"github.com/gaze-network/presale-ledger/pkg/logger"
	"github.com/gaze-network/presale-ledger/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
)

type TokenInfo struct {
	Symbol   string
	Decimals uint8
}

type Info struct {
	Address common.Address
	Owner   common.Address
	Payout  common.Address

	Phase    entity.Phase
	Paused   bool
	Schedule entity.Schedule

	Tiers        []entity.Tier
	OverallCap   uint64
	State        entity.SaleState
	CurrentPrice uint64
	// TotalCost is the quote cost of every unit sold so far.
	TotalCost uint128.Uint128

	TreasuryRequirement *uint256.Int
	TreasuryBalance     *uint256.Int

	Asset  TokenInfo
	Quote  TokenInfo
	Native TokenInfo
}

func (u *Usecase) GetInfo(ctx context.Context) (Info, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	totalCost, err := u.sale.TotalCostSoFar()
	if err != nil {
		return Info{}, errors.Wrap(err, "failed to get total cost")
	}
	requirement, err := u.sale.TreasuryRequirement()
	if err != nil {
		return Info{}, errors.Wrap(err, "failed to get treasury requirement")
	}
	balance, err := u.ledgers.Asset.BalanceOf(ctx, u.sale.Address())
	if err != nil {
		return Info{}, errors.Wrap(err, "failed to get treasury balance")
	}

	return Info{
		Address:             u.sale.Address(),
		Owner:               u.sale.Owner(),
		Payout:              u.sale.Payout(),
		Phase:               u.sale.Phase(),
		Paused:              u.sale.Paused(),
		Schedule:            u.sale.Schedule(),
		Tiers:               u.sale.Tiers(),
		OverallCap:          u.sale.OverallCap(),
		State:               u.sale.State(),
		CurrentPrice:        u.sale.CurrentPrice(),
		TotalCost:           totalCost,
		TreasuryRequirement: requirement,
		TreasuryBalance:     balance,
		Asset:               TokenInfo{Symbol: u.ledgers.Asset.Symbol(), Decimals: u.sale.AssetDecimals()},
		Quote:               TokenInfo{Symbol: u.ledgers.Quote.Symbol(), Decimals: u.sale.QuoteDecimals()},
		Native:              TokenInfo{Symbol: u.ledgers.NativeSymbol, Decimals: u.ledgers.NativeDecimals},
	}, nil
}

type PriceQuote struct {
	Quantity  uint64
	QuoteCost uint128.Uint128
	// NativeCost is nil when the oracle can't price the purchase.
	NativeCost *uint256.Int
	Fills      []stage.Fill
}

// GetPrice projects the cost of buying quantity units at the current sale state.
func (u *Usecase) GetPrice(ctx context.Context, quantity uint64) (PriceQuote, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	quote, err := u.sale.Project(quantity)
	if err != nil {
		return PriceQuote{}, errors.Wrap(err, "failed to price quantity")
	}
	nativeCost, err := u.sale.NativePrice(ctx, quantity)
	if err != nil {
		if !errors.Is(err, errs.OracleError) {
			return PriceQuote{}, errors.Wrap(err, "failed to convert price to native")
		}
		logger.WarnContext(ctx, "Native price unavailable", slogx.Error(err))
		nativeCost = nil
	}
	return PriceQuote{
		Quantity:   quantity,
		QuoteCost:  quote.Cost,
		NativeCost: nativeCost,
		Fills:      quote.Fills,
	}, nil
}

type BuyerInfo struct {
	Record         entity.PurchaseRecord
	NativeBalance  *uint256.Int
	QuoteBalance   *uint256.Int
	QuoteAllowance *uint256.Int
	AssetBalance   *uint256.Int
}

func (u *Usecase) GetBuyer(ctx context.Context, buyer common.Address) (BuyerInfo, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	nativeBalance, err := u.ledgers.Bank.BalanceOf(ctx, buyer)
	if err != nil {
		return BuyerInfo{}, errors.Wrap(err, "failed to get native balance")
	}
	quoteBalance, err := u.ledgers.Quote.BalanceOf(ctx, buyer)
	if err != nil {
		return BuyerInfo{}, errors.Wrap(err, "failed to get quote balance")
	}
	allowance, err := u.ledgers.Quote.Allowance(ctx, buyer, u.sale.Address())
	if err != nil {
		return BuyerInfo{}, errors.Wrap(err, "failed to get quote allowance")
	}
	assetBalance, err := u.ledgers.Asset.BalanceOf(ctx, buyer)
	if err != nil {
		return BuyerInfo{}, errors.Wrap(err, "failed to get asset balance")
	}
	return BuyerInfo{
		Record:         u.sale.Record(buyer),
		NativeBalance:  nativeBalance,
		QuoteBalance:   quoteBalance,
		QuoteAllowance: allowance,
		AssetBalance:   assetBalance,
	}, nil
}

// GetRecords returns the in-memory ledger in order of first purchase.
func (u *Usecase) GetRecords(_ context.Context) []entity.PurchaseRecord {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.sale.Records()
}
