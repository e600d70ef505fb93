package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/sale"
	"github.com/holiman/uint256"
)

func (u *Usecase) Purchase(ctx context.Context, req sale.PurchaseRequest) (sale.Receipt, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer u.publish(ctx)

	receipt, err := u.sale.Purchase(ctx, req)
	if err != nil {
		return sale.Receipt{}, u.reject("purchase", errors.WithStack(err))
	}
	return receipt, nil
}

// Approve sets the sale's allowance over the buyer's quote tokens.
func (u *Usecase) Approve(ctx context.Context, buyer common.Address, amount *uint256.Int) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.ledgers.Quote.Approve(ctx, buyer, u.sale.Address(), amount); err != nil {
		return u.reject("approve", errors.Wrap(err, "failed to approve quote allowance"))
	}
	return nil
}

func (u *Usecase) Claim(ctx context.Context, buyer common.Address) (uint64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	defer u.publish(ctx)

	quantity, err := u.sale.Claim(ctx, buyer)
	if err != nil {
		return 0, u.reject("claim", errors.WithStack(err))
	}
	return quantity, nil
}
