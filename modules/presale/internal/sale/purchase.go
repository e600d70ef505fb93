package sale

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/stage"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
)

type PurchaseRequest struct {
	Buyer    common.Address
	Currency entity.Currency
	Quantity uint64
	// Value is the native amount the buyer authorizes for a native purchase.
	// Only the required amount is taken. Ignored for quote purchases.
	Value *uint256.Int
}

type Receipt struct {
	Buyer     common.Address
	Currency  entity.Currency
	Quantity  uint64
	QuoteCost uint128.Uint128
	// AmountPaid is denominated in the smallest unit of Currency.
	AmountPaid *uint256.Int
	State      entity.SaleState
	Fills      []stage.Fill
}

func (s *Sale) BuyWithNative(ctx context.Context, buyer common.Address, quantity uint64, value *uint256.Int) (Receipt, error) {
	return s.Purchase(ctx, PurchaseRequest{
		Buyer:    buyer,
		Currency: entity.CurrencyNative,
		Quantity: quantity,
		Value:    value,
	})
}

func (s *Sale) BuyWithQuote(ctx context.Context, buyer common.Address, quantity uint64) (Receipt, error) {
	return s.Purchase(ctx, PurchaseRequest{
		Buyer:    buyer,
		Currency: entity.CurrencyQuote,
		Quantity: quantity,
	})
}

// Purchase prices the request against the current ledger position, records it and
// settles the payment. The ledger is updated before settlement and rolled back when
// settlement fails.
func (s *Sale) Purchase(ctx context.Context, req PurchaseRequest) (Receipt, error) {
	if s.settling {
		return Receipt{}, errors.Wrap(errs.ReentrantCall, "purchase during settlement")
	}
	if !req.Currency.IsValid() {
		return Receipt{}, errors.Wrapf(errs.Unsupported, "currency %d", req.Currency)
	}
	if req.Buyer == (common.Address{}) {
		return Receipt{}, zeroAddress("buyer")
	}
	if err := s.requirePurchaseOpen(); err != nil {
		return Receipt{}, errors.WithStack(err)
	}
	quote, err := s.pricer.Price(req.Quantity, s.state.TotalSold)
	if err != nil {
		return Receipt{}, errors.WithStack(err)
	}

	var pay func(ctx context.Context) error
	var amountPaid *uint256.Int
	switch req.Currency {
	case entity.CurrencyNative:
		required, err := s.converter.ToNative(ctx, quote.Cost)
		if err != nil {
			return Receipt{}, errors.WithStack(err)
		}
		if req.Value == nil || req.Value.Lt(required) {
			return Receipt{}, errors.Wrapf(errs.NotEnoughNative, "required %s, attached %s", required.Dec(), valueString(req.Value))
		}
		if err := s.checkNativeFunds(ctx, req.Buyer, required); err != nil {
			return Receipt{}, errors.WithStack(err)
		}
		amountPaid = required
		pay = func(ctx context.Context) error {
			return s.nativeBank.Transfer(ctx, req.Buyer, s.payout, required)
		}
	case entity.CurrencyQuote:
		cost, _ := uint256.FromBig(quote.Cost.Big())
		if err := s.checkQuoteFunds(ctx, req.Buyer, cost); err != nil {
			return Receipt{}, errors.WithStack(err)
		}
		amountPaid = cost
		pay = func(ctx context.Context) error {
			return s.quoteToken.TransferFrom(ctx, s.self, req.Buyer, s.payout, cost)
		}
	}

	checkpoint := s.recordPurchase(req.Buyer, req.Quantity, quote)
	if err := s.settle(ctx, checkpoint, pay); err != nil {
		return Receipt{}, errors.Wrapf(err, "can't settle %s payment", req.Currency)
	}

	s.emit(ctx, entity.TokensBought{
		Buyer:      req.Buyer,
		Currency:   req.Currency,
		Quantity:   req.Quantity,
		QuoteCost:  quote.Cost,
		AmountPaid: new(uint256.Int).Set(amountPaid),
	})
	return Receipt{
		Buyer:      req.Buyer,
		Currency:   req.Currency,
		Quantity:   req.Quantity,
		QuoteCost:  quote.Cost,
		AmountPaid: amountPaid,
		State:      s.state,
		Fills:      quote.Fills,
	}, nil
}

// settle runs the payment with the reentrancy guard held. The guard is released
// and the recorded purchase reverted when the payment fails or panics.
func (s *Sale) settle(ctx context.Context, checkpoint ledgerCheckpoint, pay func(ctx context.Context) error) error {
	paid := false
	s.settling = true
	defer func() {
		s.settling = false
		if !paid {
			s.revertPurchase(checkpoint)
		}
	}()
	if err := pay(ctx); err != nil {
		return errors.WithStack(err)
	}
	paid = true
	return nil
}

func (s *Sale) checkNativeFunds(ctx context.Context, buyer common.Address, required *uint256.Int) error {
	balance, err := s.nativeBank.BalanceOf(ctx, buyer)
	if err != nil {
		return errors.Wrap(err, "can't get native balance")
	}
	if balance.Lt(required) {
		return errors.Wrapf(errs.InsufficientFunds, "native balance %s, required %s", balance.Dec(), required.Dec())
	}
	return nil
}

func (s *Sale) checkQuoteFunds(ctx context.Context, buyer common.Address, cost *uint256.Int) error {
	allowance, err := s.quoteToken.Allowance(ctx, buyer, s.self)
	if err != nil {
		return errors.Wrap(err, "can't get quote allowance")
	}
	if allowance.Lt(cost) {
		return errors.Wrapf(errs.NotEnoughAllowance, "allowance %s, cost %s", allowance.Dec(), cost.Dec())
	}
	balance, err := s.quoteToken.BalanceOf(ctx, buyer)
	if err != nil {
		return errors.Wrap(err, "can't get quote balance")
	}
	if balance.Lt(cost) {
		return errors.Wrapf(errs.InsufficientFunds, "balance %s, cost %s", balance.Dec(), cost.Dec())
	}
	return nil
}

func valueString(value *uint256.Int) string {
	if value == nil {
		return "0"
	}
	return value.Dec()
}
