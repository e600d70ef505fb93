package sale

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/holiman/uint256"
)

// TreasuryRequirement is the asset amount the sale must hold to pay every claim
// still outstanding. Units already claimed have left the treasury and are not counted.
func (s *Sale) TreasuryRequirement() (*uint256.Int, error) {
	required, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(s.unclaimedTotal()), s.assetUnit)
	if overflow {
		return nil, errors.Wrap(errs.OverflowUint256, "treasury requirement")
	}
	return required, nil
}

// ConfigureClaim opens the claim window at claimTime once the treasury covers
// every unit sold and not yet claimed. It may be called again to reschedule.
func (s *Sale) ConfigureClaim(ctx context.Context, caller common.Address, claimTime time.Time) error {
	if err := s.onlyOwner(caller); err != nil {
		return errors.WithStack(err)
	}
	if !claimTime.After(s.schedule.SaleEnd) {
		return errors.Wrapf(errs.InvalidTimeframe, "claim start %s must be after sale end %s", claimTime, s.schedule.SaleEnd)
	}
	required, err := s.TreasuryRequirement()
	if err != nil {
		return errors.WithStack(err)
	}
	balance, err := s.asset.BalanceOf(ctx, s.self)
	if err != nil {
		return errors.Wrap(err, "can't get treasury balance")
	}
	if balance.Lt(required) {
		return errors.Wrapf(errs.InsufficientTreasury, "treasury %s, required %s", balance.Dec(), required.Dec())
	}
	s.schedule.ClaimStart = claimTime
	s.emit(ctx, entity.ClaimStartTimeUpdated{ClaimStart: claimTime})
	return nil
}

// Claim transfers the buyer's purchased units, scaled to asset decimals, out of
// the treasury. A buyer claims at most once.
func (s *Sale) Claim(ctx context.Context, buyer common.Address) (uint64, error) {
	if err := s.requireClaimOpen(); err != nil {
		return 0, errors.WithStack(err)
	}
	record, ok := s.records[buyer]
	if !ok || record.Quantity == 0 {
		return 0, errors.Wrapf(errs.NothingToClaim, "buyer %s", buyer)
	}
	if record.Claimed {
		return 0, errors.Wrapf(errs.AlreadyClaimed, "buyer %s", buyer)
	}
	amount, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(record.Quantity), s.assetUnit)
	if overflow {
		return 0, errors.Wrap(errs.OverflowUint256, "claim amount")
	}

	// the flag must be set before the transfer can call back into the sale
	record.Claimed = true
	if err := s.asset.Transfer(ctx, s.self, buyer, amount); err != nil {
		record.Claimed = false
		return 0, errors.Wrap(err, "can't transfer claimed tokens")
	}
	s.emit(ctx, entity.TokensClaimed{Buyer: buyer, Quantity: record.Quantity})
	return record.Quantity, nil
}

func (s *Sale) unclaimedTotal() uint64 {
	var total uint64
	for _, record := range s.records {
		if !record.Claimed {
			total += record.Quantity
		}
	}
	return total
}
