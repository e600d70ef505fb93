package stage

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
)

// Table is an immutable, ordered list of price tiers with strictly increasing
// cumulative capacities.
type Table struct {
	tiers []entity.Tier
}

func NewTable(capacities []uint64, prices []uint64) (*Table, error) {
	if len(capacities) == 0 {
		return nil, errors.Wrap(errs.InvalidTiers, "at least one tier is required")
	}
	if len(capacities) != len(prices) {
		return nil, errors.Wrapf(errs.InvalidTiers, "got %d capacities and %d prices", len(capacities), len(prices))
	}
	tiers := make([]entity.Tier, len(capacities))
	var prev uint64
	for i := range capacities {
		if capacities[i] <= prev {
			return nil, errors.Wrapf(errs.InvalidTiers, "capacity of tier %d (%d) must be greater than %d", i, capacities[i], prev)
		}
		if prices[i] == 0 {
			return nil, errors.Wrapf(errs.InvalidTiers, "price of tier %d is zero", i)
		}
		tiers[i] = entity.Tier{
			CumulativeCapacity: capacities[i],
			UnitPrice:          prices[i],
		}
		prev = capacities[i]
	}
	return &Table{tiers: tiers}, nil
}

func (t *Table) TierCount() int {
	return len(t.tiers)
}

func (t *Table) TierAt(index int) (entity.Tier, error) {
	if index < 0 || index >= len(t.tiers) {
		return entity.Tier{}, errors.Wrapf(errs.NotFound, "tier %d", index)
	}
	return t.tiers[index], nil
}

// OverallCap is the sale-wide capacity, the last tier's cumulative capacity.
func (t *Table) OverallCap() uint64 {
	return t.tiers[len(t.tiers)-1].CumulativeCapacity
}

// Tiers returns a copy of the tiers.
func (t *Table) Tiers() []entity.Tier {
	return append([]entity.Tier(nil), t.tiers...)
}

// IndexOf returns the smallest tier index whose cumulative capacity is at least totalSold.
// The last index is returned when totalSold reaches (or exceeds) the cap.
func (t *Table) IndexOf(totalSold uint64) int {
	for i, tier := range t.tiers {
		if tier.CumulativeCapacity >= totalSold {
			return i
		}
	}
	return len(t.tiers) - 1
}
