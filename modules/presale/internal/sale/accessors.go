package sale

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/stage"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
)

// CurrentPrice returns the unit price of the tier at the current ledger position.
func (s *Sale) CurrentPrice() uint64 {
	tier, _ := s.pricer.Table().TierAt(s.state.CurrentTierIndex)
	return tier.UnitPrice
}

func (s *Sale) OverallCap() uint64 {
	return s.pricer.Table().OverallCap()
}

func (s *Sale) Tiers() []entity.Tier {
	return s.pricer.Table().Tiers()
}

// QuotePrice projects the quote cost of buying quantity units at the current
// ledger position. Zero units cost nothing.
func (s *Sale) QuotePrice(quantity uint64) (uint128.Uint128, error) {
	quote, err := s.project(quantity)
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	return quote.Cost, nil
}

// NativePrice is QuotePrice converted at the current oracle price.
func (s *Sale) NativePrice(ctx context.Context, quantity uint64) (*uint256.Int, error) {
	cost, err := s.QuotePrice(quantity)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	native, err := s.converter.ToNative(ctx, cost)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return native, nil
}

// Project returns the full breakdown of a hypothetical purchase without recording it.
func (s *Sale) Project(quantity uint64) (stage.Quote, error) {
	return s.project(quantity)
}

func (s *Sale) project(quantity uint64) (stage.Quote, error) {
	if quantity == 0 {
		return stage.Quote{
			Cost:         uint128.Zero,
			NewTotalSold: s.state.TotalSold,
			NewTierIndex: s.state.CurrentTierIndex,
		}, nil
	}
	quote, err := s.pricer.Price(quantity, s.state.TotalSold)
	if err != nil {
		return stage.Quote{}, errors.WithStack(err)
	}
	return quote, nil
}

// TotalCostSoFar recomputes the quote cost of every unit sold from the tier table.
func (s *Sale) TotalCostSoFar() (uint128.Uint128, error) {
	cost, err := s.pricer.TotalCostSoFar(s.state.TotalSold)
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	return cost, nil
}

func (s *Sale) State() entity.SaleState {
	return s.state
}

func (s *Sale) Schedule() entity.Schedule {
	return s.schedule
}

func (s *Sale) Paused() bool {
	return s.paused
}

func (s *Sale) Owner() common.Address {
	return s.owner
}

func (s *Sale) Payout() common.Address {
	return s.payout
}

// Address is the account holding the treasury.
func (s *Sale) Address() common.Address {
	return s.self
}

func (s *Sale) AssetDecimals() uint8 {
	return s.asset.Decimals()
}

func (s *Sale) QuoteDecimals() uint8 {
	return s.quoteToken.Decimals()
}
