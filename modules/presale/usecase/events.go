package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
)

func (u *Usecase) GetEventsByBuyer(ctx context.Context, buyer string) ([]entity.JournalEntry, error) {
	if u.presaleDg == nil {
		return nil, errors.Wrap(errs.Unsupported, "event journal is disabled")
	}
	events, err := u.presaleDg.GetEventsByBuyer(ctx, strings.ToLower(buyer))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get events by buyer")
	}
	return events, nil
}
