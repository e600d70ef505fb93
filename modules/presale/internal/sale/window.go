package sale

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
)

// PhaseAt returns the phase of the schedule at the given instant.
func PhaseAt(schedule entity.Schedule, now time.Time) entity.Phase {
	switch {
	case schedule.ClaimConfigured() && !now.Before(schedule.ClaimStart):
		return entity.PhaseClaimOpen
	case now.Before(schedule.SaleStart):
		return entity.PhaseNotStarted
	case now.Before(schedule.SaleEnd):
		return entity.PhaseOpen
	default:
		return entity.PhaseEnded
	}
}

func (s *Sale) Phase() entity.Phase {
	return PhaseAt(s.schedule, s.clock.Now())
}

func (s *Sale) requirePurchaseOpen() error {
	if s.paused {
		return errors.WithStack(errs.Paused)
	}
	if phase := s.Phase(); phase != entity.PhaseOpen {
		return errors.Wrapf(errs.InvalidTimeframe, "purchases are not allowed while the sale is %s", phase)
	}
	return nil
}

func (s *Sale) requireClaimOpen() error {
	if phase := s.Phase(); phase != entity.PhaseClaimOpen {
		return errors.Wrapf(errs.InvalidTimeframe, "claims are not allowed while the sale is %s", phase)
	}
	return nil
}

// ConfigureSaleTimeframe replaces both sale bounds. It may be called while the sale
// is open, but not once a claim start is set: the treasury was checked against the
// units sold within the current window.
func (s *Sale) ConfigureSaleTimeframe(ctx context.Context, caller common.Address, start, end time.Time) error {
	if err := s.onlyOwner(caller); err != nil {
		return errors.WithStack(err)
	}
	if !start.Before(end) {
		return errors.Wrapf(errs.InvalidTimeframe, "sale start %s must be before sale end %s", start, end)
	}
	if s.schedule.ClaimConfigured() {
		return errors.Wrapf(errs.InvalidTimeframe, "sale timeframe is fixed once claim start %s is set", s.schedule.ClaimStart)
	}
	s.schedule.SaleStart = start
	s.schedule.SaleEnd = end
	s.emit(ctx, entity.SaleTimeUpdated{Start: start, End: end})
	return nil
}
