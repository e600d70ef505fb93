package sale

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
)

func (s *Sale) onlyOwner(caller common.Address) error {
	if caller != s.owner {
		return errors.Wrapf(errs.NotOwner, "caller %s", caller)
	}
	return nil
}

func (s *Sale) Pause(ctx context.Context, caller common.Address) error {
	if err := s.onlyOwner(caller); err != nil {
		return errors.WithStack(err)
	}
	if s.paused {
		return errors.WithStack(errs.Paused)
	}
	s.paused = true
	s.emit(ctx, entity.Paused{By: caller})
	return nil
}

func (s *Sale) Unpause(ctx context.Context, caller common.Address) error {
	if err := s.onlyOwner(caller); err != nil {
		return errors.WithStack(err)
	}
	if !s.paused {
		return errors.WithStack(errs.NotPaused)
	}
	s.paused = false
	s.emit(ctx, entity.Unpaused{By: caller})
	return nil
}

func (s *Sale) TransferOwnership(ctx context.Context, caller, newOwner common.Address) error {
	if err := s.onlyOwner(caller); err != nil {
		return errors.WithStack(err)
	}
	if newOwner == (common.Address{}) {
		return zeroAddress("new owner")
	}
	previous := s.owner
	s.owner = newOwner
	s.emit(ctx, entity.OwnershipTransferred{PreviousOwner: previous, NewOwner: newOwner})
	return nil
}

// SetPayout changes the account receiving payments.
func (s *Sale) SetPayout(caller, payout common.Address) error {
	if err := s.onlyOwner(caller); err != nil {
		return errors.WithStack(err)
	}
	if payout == (common.Address{}) {
		return zeroAddress("payout")
	}
	s.payout = payout
	return nil
}
