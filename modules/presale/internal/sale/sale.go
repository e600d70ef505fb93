package sale

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/pricefeed"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/stage"
	"github.com/holiman/uint256"
)

// Asset is the token being sold. The sale holds the treasury balance under its own address.
type Asset interface {
	BalanceOf(ctx context.Context, account common.Address) (*uint256.Int, error)
	Transfer(ctx context.Context, from, to common.Address, amount *uint256.Int) error
	Decimals() uint8
}

// QuoteToken is the fixed-decimals payment token. Spender is the account that was
// granted the allowance.
type QuoteToken interface {
	BalanceOf(ctx context.Context, account common.Address) (*uint256.Int, error)
	Allowance(ctx context.Context, owner, spender common.Address) (*uint256.Int, error)
	TransferFrom(ctx context.Context, spender, from, to common.Address, amount *uint256.Int) error
	Decimals() uint8
}

// NativeBank moves native currency between accounts.
type NativeBank interface {
	BalanceOf(ctx context.Context, account common.Address) (*uint256.Int, error)
	Transfer(ctx context.Context, from, to common.Address, amount *uint256.Int) error
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// EventSink receives events after the state transition that produced them is final.
type EventSink interface {
	Emit(ctx context.Context, event entity.Event)
}

// EventSinkFunc adapts a function to an EventSink.
type EventSinkFunc func(ctx context.Context, event entity.Event)

func (f EventSinkFunc) Emit(ctx context.Context, event entity.Event) { f(ctx, event) }

type nopSink struct{}

func (nopSink) Emit(context.Context, entity.Event) {}

type Params struct {
	// Self is the address of the sale. It holds the treasury and receives quote allowances.
	Self common.Address
	// Owner is the operator allowed to configure and pause the sale.
	Owner common.Address
	// Payout receives every payment. Defaults to Owner.
	Payout common.Address

	Asset      Asset
	QuoteToken QuoteToken
	NativeBank NativeBank
	Converter  *pricefeed.Converter

	SaleStart  time.Time
	SaleEnd    time.Time
	Capacities []uint64
	Prices     []uint64

	// Clock defaults to SystemClock.
	Clock Clock
	Sink  EventSink
}

// Sale is the tiered sale state machine. It is not safe for concurrent use: callers
// serialize access, and collaborators called during settlement may call back into it.
type Sale struct {
	self   common.Address
	owner  common.Address
	payout common.Address

	asset      Asset
	assetUnit  *uint256.Int
	quoteToken QuoteToken
	nativeBank NativeBank
	converter  *pricefeed.Converter
	pricer     *stage.Pricer

	schedule entity.Schedule
	state    entity.SaleState
	records  map[common.Address]*entity.PurchaseRecord
	// buyers in order of their first purchase
	buyers []common.Address

	paused   bool
	settling bool

	clock Clock
	sink  EventSink
}

func New(params Params) (*Sale, error) {
	switch {
	case params.Asset == nil:
		return nil, zeroAddress("asset")
	case params.Converter == nil:
		return nil, zeroAddress("oracle")
	case params.QuoteToken == nil:
		return nil, zeroAddress("quote token")
	case params.NativeBank == nil:
		return nil, zeroAddress("native bank")
	case params.Self == (common.Address{}):
		return nil, zeroAddress("sale")
	case params.Owner == (common.Address{}):
		return nil, zeroAddress("owner")
	}

	table, err := stage.NewTable(params.Capacities, params.Prices)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !params.SaleStart.Before(params.SaleEnd) {
		return nil, errors.Wrapf(errs.InvalidTimeframe, "sale start %s must be before sale end %s", params.SaleStart, params.SaleEnd)
	}
	if quoteDecimals := params.QuoteToken.Decimals(); quoteDecimals != params.Converter.Config().QuoteDecimals {
		return nil, errors.Wrapf(errs.InvalidArgument, "quote token has %d decimals, converter expects %d", quoteDecimals, params.Converter.Config().QuoteDecimals)
	}

	payout := params.Payout
	if payout == (common.Address{}) {
		payout = params.Owner
	}
	clock := params.Clock
	if clock == nil {
		clock = SystemClock
	}
	var sink EventSink = nopSink{}
	if params.Sink != nil {
		sink = params.Sink
	}

	s := &Sale{
		self:       params.Self,
		owner:      params.Owner,
		payout:     payout,
		asset:      params.Asset,
		assetUnit:  new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(params.Asset.Decimals()))),
		quoteToken: params.QuoteToken,
		nativeBank: params.NativeBank,
		converter:  params.Converter,
		pricer:     stage.NewPricer(table),
		schedule: entity.Schedule{
			SaleStart: params.SaleStart,
			SaleEnd:   params.SaleEnd,
		},
		records: make(map[common.Address]*entity.PurchaseRecord),
		clock:   clock,
		sink:    sink,
	}
	s.emit(context.Background(), entity.SaleTimeUpdated{Start: params.SaleStart, End: params.SaleEnd})
	return s, nil
}

func (s *Sale) emit(ctx context.Context, event entity.Event) {
	s.sink.Emit(ctx, event)
}

func zeroAddress(what string) error {
	return errors.Mark(errors.Wrapf(errs.ZeroAddress, "%s address is zero", what), errs.InvalidArgument)
}
