package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// Operator calls act as the sale owner. Callers authenticate the operator first.

func (u *Usecase) ConfigureSaleTimeframe(ctx context.Context, start, end time.Time) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer u.publish(ctx)

	if err := u.sale.ConfigureSaleTimeframe(ctx, u.sale.Owner(), start, end); err != nil {
		return u.reject("configure_timeframe", errors.WithStack(err))
	}
	return nil
}

func (u *Usecase) ConfigureClaim(ctx context.Context, claimTime time.Time) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer u.publish(ctx)

	if err := u.sale.ConfigureClaim(ctx, u.sale.Owner(), claimTime); err != nil {
		return u.reject("configure_claim", errors.WithStack(err))
	}
	return nil
}

func (u *Usecase) Pause(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer u.publish(ctx)

	if err := u.sale.Pause(ctx, u.sale.Owner()); err != nil {
		return u.reject("pause", errors.WithStack(err))
	}
	return nil
}

func (u *Usecase) Unpause(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer u.publish(ctx)

	if err := u.sale.Unpause(ctx, u.sale.Owner()); err != nil {
		return u.reject("unpause", errors.WithStack(err))
	}
	return nil
}
