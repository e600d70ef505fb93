package stage

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/uint128"
)

// Fill is the part of a purchase charged at a single tier's rate.
type Fill struct {
	TierIndex int
	Quantity  uint64
	UnitPrice uint64
	Cost      uint128.Uint128
}

// Quote is the outcome of pricing a purchase against the ledger position.
type Quote struct {
	Cost         uint128.Uint128
	NewTotalSold uint64
	NewTierIndex int
	Fills        []Fill
}

// Pricer computes blended tier costs over a Table.
type Pricer struct {
	table *Table
}

func NewPricer(table *Table) *Pricer {
	return &Pricer{table: table}
}

func (p *Pricer) Table() *Table {
	return p.table
}

// Price returns the quote-currency cost of buying quantity units when totalSoldBefore
// units have already been sold. Units are charged at the rate of the tier they fall in.
func (p *Pricer) Price(quantity, totalSoldBefore uint64) (Quote, error) {
	if quantity == 0 {
		return Quote{}, errors.WithStack(errs.BuyAtLeastOneToken)
	}
	overallCap := p.table.OverallCap()
	if totalSoldBefore > overallCap || quantity > overallCap-totalSoldBefore {
		return Quote{}, errors.Wrapf(errs.PresaleLimitExceeded, "sold %d, requested %d, cap %d", totalSoldBefore, quantity, overallCap)
	}
	quote, err := p.walk(totalSoldBefore, quantity)
	if err != nil {
		return Quote{}, errors.WithStack(err)
	}
	return quote, nil
}

// TotalCostSoFar recomputes the cost of all units sold to date by walking the tiers
// from the first one.
func (p *Pricer) TotalCostSoFar(totalSold uint64) (uint128.Uint128, error) {
	if totalSold == 0 {
		return uint128.Zero, nil
	}
	if totalSold > p.table.OverallCap() {
		return uint128.Zero, errors.Wrapf(errs.PresaleLimitExceeded, "sold %d over cap %d", totalSold, p.table.OverallCap())
	}
	quote, err := p.walk(0, totalSold)
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	return quote.Cost, nil
}

// walk assumes from+quantity is within the overall cap.
func (p *Pricer) walk(from, quantity uint64) (Quote, error) {
	var (
		cost      = uint128.Zero
		sold      = from
		remaining = quantity
		fills     []Fill
	)
	for index := p.table.IndexOf(from); remaining > 0; index++ {
		tier := p.table.tiers[index]
		available := tier.CumulativeCapacity - sold
		if available == 0 {
			continue
		}
		take := min(remaining, available)

		partial, overflow := uint128.From64(take).MulOverflow(uint128.From64(tier.UnitPrice))
		if overflow {
			return Quote{}, errors.Wrapf(errs.OverflowUint128, "tier %d cost", index)
		}
		cost, overflow = cost.AddOverflow(partial)
		if overflow {
			return Quote{}, errors.Wrap(errs.OverflowUint128, "total cost")
		}

		fills = append(fills, Fill{
			TierIndex: index,
			Quantity:  take,
			UnitPrice: tier.UnitPrice,
			Cost:      partial,
		})
		sold += take
		remaining -= take
	}
	return Quote{
		Cost:         cost,
		NewTotalSold: sold,
		NewTierIndex: p.table.IndexOf(sold),
		Fills:        fills,
	}, nil
}
