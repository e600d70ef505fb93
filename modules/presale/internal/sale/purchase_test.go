package sale

import (
	"context"
	"math/big"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/internal/tokenledger"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyWithNative(t *testing.T) {
	ctx := context.Background()

	t.Run("before_sale_start", func(t *testing.T) {
		f := newFixture(t)
		required, err := f.sale.NativePrice(ctx, 1000)
		require.NoError(t, err)

		_, err = f.sale.BuyWithNative(ctx, buyer, 1000, required)
		assert.ErrorIs(t, err, errs.InvalidTimeframe)

		f.openSale()
		_, err = f.sale.BuyWithNative(ctx, buyer, 1000, required)
		assert.NoError(t, err)
	})

	t.Run("exact_payment", func(t *testing.T) {
		f := newFixture(t)
		f.openSale()

		// 1000 * 12000 * 10^(18+8-6) / 2000e8
		expected := new(big.Int).Mul(big.NewInt(1000*12000), new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil))
		expected.Div(expected, big.NewInt(ethUSDPrice))
		required, err := f.sale.NativePrice(ctx, 1000)
		require.NoError(t, err)
		require.Equal(t, expected.String(), required.Dec())

		buyerBefore := f.nativeBalance(t, buyer)
		receipt, err := f.sale.BuyWithNative(ctx, buyer, 1000, required)
		require.NoError(t, err)

		assert.Equal(t, uint64(1000), f.sale.PurchasedOf(buyer))
		assert.Equal(t, required, f.nativeBalance(t, owner))
		assert.Equal(t, new(uint256.Int).Sub(buyerBefore, required), f.nativeBalance(t, buyer))
		assert.Equal(t, entity.SaleState{TotalSold: 1000, CurrentTierIndex: 0}, receipt.State)
		assert.Equal(t, entity.TokensBought{
			Buyer:      buyer,
			Currency:   entity.CurrencyNative,
			Quantity:   1000,
			QuoteCost:  uint128.From64(1000 * 12000),
			AmountPaid: required,
		}, f.lastEvent())
	})

	t.Run("one_unit_short", func(t *testing.T) {
		f := newFixture(t)
		f.openSale()
		required, err := f.sale.NativePrice(ctx, 1000)
		require.NoError(t, err)

		short := new(uint256.Int).SubUint64(required, 1)
		_, err = f.sale.BuyWithNative(ctx, buyer, 1000, short)
		assert.ErrorIs(t, err, errs.NotEnoughNative)
		assert.Zero(t, f.sale.PurchasedOf(buyer))
		assert.Equal(t, entity.SaleState{}, f.sale.State())
		assert.True(t, f.nativeBalance(t, owner).IsZero())

		_, err = f.sale.BuyWithNative(ctx, buyer, 1000, nil)
		assert.ErrorIs(t, err, errs.NotEnoughNative)
	})

	t.Run("overpayment_takes_only_required", func(t *testing.T) {
		f := newFixture(t)
		f.openSale()
		required, err := f.sale.NativePrice(ctx, 1000)
		require.NoError(t, err)

		buyerBefore := f.nativeBalance(t, buyer)
		attached := new(uint256.Int).Mul(required, uint256.NewInt(3))
		receipt, err := f.sale.BuyWithNative(ctx, buyer, 1000, attached)
		require.NoError(t, err)
		assert.Equal(t, required, receipt.AmountPaid)
		assert.Equal(t, required, f.nativeBalance(t, owner))
		assert.Equal(t, new(uint256.Int).Sub(buyerBefore, required), f.nativeBalance(t, buyer))
	})

	t.Run("oracle_failure", func(t *testing.T) {
		f := newFixture(t)
		f.openSale()
		f.oracle.SetPrice(0, saleStart)

		_, err := f.sale.BuyWithNative(ctx, buyer, 1000, uint256.NewInt(1))
		assert.ErrorIs(t, err, errs.OracleError)
		assert.Equal(t, entity.SaleState{}, f.sale.State())
	})

	t.Run("insufficient_funds", func(t *testing.T) {
		f := newFixture(t)
		f.openSale()
		poor := common.HexToAddress("0x0000000000000000000000000000000000000bad")
		required, err := f.sale.NativePrice(ctx, 1000)
		require.NoError(t, err)
		require.NoError(t, f.bank.Deposit(poor, new(uint256.Int).SubUint64(required, 1)))

		_, err = f.sale.BuyWithNative(ctx, poor, 1000, required)
		assert.ErrorIs(t, err, errs.InsufficientFunds)
		assert.Zero(t, f.sale.PurchasedOf(poor))
		assert.Empty(t, f.sale.Records())
		assert.Equal(t, entity.SaleState{}, f.sale.State())
		assert.True(t, f.nativeBalance(t, owner).IsZero())
	})

	t.Run("settlement_failure_rolls_back", func(t *testing.T) {
		f := newFixture(t)
		f.openSale()
		f.sale.nativeBank = failingBank{Bank: f.bank}
		required, err := f.sale.NativePrice(ctx, 1000)
		require.NoError(t, err)

		_, err = f.sale.BuyWithNative(ctx, buyer, 1000, required)
		assert.ErrorIs(t, err, errTransferRejected)
		assert.Zero(t, f.sale.PurchasedOf(buyer))
		assert.Empty(t, f.sale.Records())
		assert.Equal(t, entity.SaleState{}, f.sale.State())
	})
}

var errTransferRejected = errors.New("transfer rejected")

type failingBank struct {
	*tokenledger.Bank
}

func (failingBank) Transfer(context.Context, common.Address, common.Address, *uint256.Int) error {
	return errTransferRejected
}

type panickingBank struct {
	*tokenledger.Bank
}

func (panickingBank) Transfer(context.Context, common.Address, common.Address, *uint256.Int) error {
	panic("bank unavailable")
}

func TestPurchasePanicReleasesGuard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openSale()
	f.approve(t, buyer, 1_000_000_000_000)
	required, err := f.sale.NativePrice(ctx, 1000)
	require.NoError(t, err)

	f.sale.nativeBank = panickingBank{Bank: f.bank}
	assert.Panics(t, func() {
		_, _ = f.sale.BuyWithNative(ctx, buyer, 1000, required)
	})
	assert.False(t, f.sale.settling)
	assert.Empty(t, f.sale.Records())
	assert.Equal(t, entity.SaleState{}, f.sale.State())

	f.sale.nativeBank = f.bank
	_, err = f.sale.BuyWithQuote(ctx, buyer, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), f.sale.PurchasedOf(buyer))
}

func TestBuyWithQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("before_sale_start", func(t *testing.T) {
		f := newFixture(t)
		f.approve(t, buyer, 1000*12000)
		_, err := f.sale.BuyWithQuote(ctx, buyer, 1000)
		assert.ErrorIs(t, err, errs.InvalidTimeframe)
	})

	t.Run("not_enough_allowance", func(t *testing.T) {
		f := newFixture(t)
		f.openSale()
		f.approve(t, buyer, 1000*12000-1)
		_, err := f.sale.BuyWithQuote(ctx, buyer, 1000)
		assert.ErrorIs(t, err, errs.NotEnoughAllowance)
	})

	t.Run("insufficient_funds", func(t *testing.T) {
		f := newFixture(t)
		f.openSale()
		poor := common.HexToAddress("0x0000000000000000000000000000000000000bad")
		require.NoError(t, f.quote.Mint(poor, uint256.NewInt(1000*12000-1)))
		f.approve(t, poor, 1000*12000)
		_, err := f.sale.BuyWithQuote(ctx, poor, 1000)
		assert.ErrorIs(t, err, errs.InsufficientFunds)
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.openSale()
		cost, err := f.sale.QuotePrice(1000)
		require.NoError(t, err)
		f.approve(t, buyer, cost.Big().Uint64())
		buyerBefore, _ := f.quote.BalanceOf(ctx, buyer)

		receipt, err := f.sale.BuyWithQuote(ctx, buyer, 1000)
		require.NoError(t, err)
		assert.Equal(t, cost, receipt.QuoteCost)

		payoutBalance, _ := f.quote.BalanceOf(ctx, owner)
		buyerAfter, _ := f.quote.BalanceOf(ctx, buyer)
		assert.Equal(t, uint256.NewInt(1000*12000), payoutBalance)
		assert.Equal(t, new(uint256.Int).SubUint64(buyerBefore, 1000*12000), buyerAfter)
		assert.Equal(t, uint64(1000), f.sale.PurchasedOf(buyer))
		assert.Equal(t, entity.TokensBought{
			Buyer:      buyer,
			Currency:   entity.CurrencyQuote,
			Quantity:   1000,
			QuoteCost:  cost,
			AmountPaid: uint256.NewInt(1000 * 12000),
		}, f.lastEvent())
	})
}

func TestPurchaseRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openSale()
	f.approve(t, buyer, 1_000_000_000_000)

	_, err := f.sale.BuyWithQuote(ctx, buyer, 0)
	assert.ErrorIs(t, err, errs.BuyAtLeastOneToken)

	_, err = f.sale.BuyWithQuote(ctx, buyer, f.sale.OverallCap()+1)
	assert.ErrorIs(t, err, errs.PresaleLimitExceeded)

	_, err = f.sale.Purchase(ctx, PurchaseRequest{Buyer: buyer, Currency: entity.CurrencyUnknown, Quantity: 1})
	assert.ErrorIs(t, err, errs.Unsupported)

	_, err = f.sale.BuyWithQuote(ctx, common.Address{}, 1)
	assert.ErrorIs(t, err, errs.ZeroAddress)

	require.NoError(t, f.sale.Pause(ctx, owner))
	_, err = f.sale.BuyWithQuote(ctx, buyer, 1)
	assert.ErrorIs(t, err, errs.Paused)
	require.NoError(t, f.sale.Unpause(ctx, owner))
	_, err = f.sale.BuyWithQuote(ctx, buyer, 1)
	assert.NoError(t, err)

	f.clock.Set(saleEnd)
	_, err = f.sale.BuyWithQuote(ctx, buyer, 1)
	assert.ErrorIs(t, err, errs.InvalidTimeframe)

	assert.Equal(t, entity.SaleState{TotalSold: 1}, f.sale.State())
}

func TestPurchaseAcrossTiers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openSale()

	whale := common.HexToAddress("0x0000000000000000000000000000000000077a1e")
	require.NoError(t, f.quote.Mint(whale, uint256.MustFromDecimal("100000000000000")))
	require.NoError(t, f.quote.Approve(ctx, whale, saleAddress, uint256.MustFromDecimal("100000000000000")))

	receipt, err := f.sale.BuyWithQuote(ctx, whale, 39999000)
	require.NoError(t, err)
	assert.Equal(t, 0, receipt.State.CurrentTierIndex)

	// 1000 units at 12000 then 1000 units at 14000
	receipt, err = f.sale.BuyWithQuote(ctx, whale, 2000)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(1000*12000+1000*14000), receipt.QuoteCost)
	assert.Equal(t, entity.SaleState{TotalSold: 40001000, CurrentTierIndex: 1}, f.sale.State())
	assert.Equal(t, uint64(14000), f.sale.CurrentPrice())
	assert.Len(t, receipt.Fills, 2)
}

func TestQuotePriceRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openSale()
	f.approve(t, buyer, 1_000_000_000_000)

	for _, quantity := range []uint64{1, 999, 12345, 5} {
		projected, err := f.sale.QuotePrice(quantity)
		require.NoError(t, err)
		before := f.sale.State()

		receipt, err := f.sale.BuyWithQuote(ctx, buyer, quantity)
		require.NoError(t, err)
		assert.Equal(t, projected, receipt.QuoteCost)
		assert.Equal(t, before.TotalSold+quantity, f.sale.State().TotalSold)
	}

	zero, err := f.sale.QuotePrice(0)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestLedgerBalancesConserved(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openSale()
	f.approve(t, buyer, 1_000_000_000_000)
	f.approve(t, otherBuyer, 1_000_000_000_000)

	paidTotal := uint128.Zero
	purchases := []struct {
		buyer    common.Address
		native   bool
		quantity uint64
	}{
		{buyer, false, 100},
		{otherBuyer, true, 2500},
		{buyer, true, 7},
		{otherBuyer, false, 31000},
		{buyer, false, 1},
	}
	for _, p := range purchases {
		var receipt Receipt
		var err error
		if p.native {
			required, nerr := f.sale.NativePrice(ctx, p.quantity)
			require.NoError(t, nerr)
			receipt, err = f.sale.BuyWithNative(ctx, p.buyer, p.quantity, required)
		} else {
			receipt, err = f.sale.BuyWithQuote(ctx, p.buyer, p.quantity)
		}
		require.NoError(t, err)
		paidTotal = paidTotal.Add(receipt.QuoteCost)

		var sum uint64
		for _, record := range f.sale.Records() {
			sum += record.Quantity
		}
		assert.Equal(t, f.sale.State().TotalSold, sum)
		assert.LessOrEqual(t, sum, f.sale.OverallCap())
	}

	costSoFar, err := f.sale.TotalCostSoFar()
	require.NoError(t, err)
	assert.Equal(t, paidTotal, costSoFar)

	records := f.sale.Records()
	require.Len(t, records, 2)
	assert.Equal(t, buyer, records[0].Buyer)
	assert.Equal(t, uint64(108), records[0].Quantity)
	assert.Equal(t, uint64(33500), f.sale.PurchasedOf(otherBuyer))
}

// reentrantQuoteToken buys again from inside the payment transfer.
type reentrantQuoteToken struct {
	*tokenledger.Token
	sale      *Sale
	reentered error
}

func (q *reentrantQuoteToken) TransferFrom(ctx context.Context, spender, from, to common.Address, amount *uint256.Int) error {
	if q.sale != nil {
		_, q.reentered = q.sale.BuyWithQuote(ctx, from, 1)
	}
	return q.Token.TransferFrom(ctx, spender, from, to, amount)
}

func TestPurchaseReentrancy(t *testing.T) {
	ctx := context.Background()
	var quote *reentrantQuoteToken
	f := newFixture(t, func(f *fixture, p *Params) {
		quote = &reentrantQuoteToken{Token: f.quote}
		p.QuoteToken = quote
	})
	quote.sale = f.sale
	f.openSale()
	f.approve(t, buyer, 1_000_000_000_000)

	_, err := f.sale.BuyWithQuote(ctx, buyer, 10)
	require.NoError(t, err)
	assert.ErrorIs(t, quote.reentered, errs.ReentrantCall)
	assert.Equal(t, uint64(10), f.sale.State().TotalSold)
}

type failingQuoteToken struct {
	*tokenledger.Token
}

func (failingQuoteToken) TransferFrom(context.Context, common.Address, common.Address, common.Address, *uint256.Int) error {
	return errTransferRejected
}

func TestPurchaseRollbackKeepsExistingRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openSale()
	f.approve(t, buyer, 1_000_000_000_000)
	_, err := f.sale.BuyWithQuote(ctx, buyer, 10)
	require.NoError(t, err)

	f.sale.quoteToken = failingQuoteToken{Token: f.quote}
	_, err = f.sale.BuyWithQuote(ctx, buyer, 10)
	require.Error(t, err)
	assert.Equal(t, uint64(10), f.sale.PurchasedOf(buyer))
	assert.Equal(t, entity.SaleState{TotalSold: 10}, f.sale.State())
	assert.Len(t, f.sale.Records(), 1)
}
