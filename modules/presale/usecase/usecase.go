package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/internal/tokenledger"
	"github.com/gaze-network/presale-ledger/modules/presale/datagateway"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/metrics"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/sale"
	"github.com/gaze-network/presale-ledger/pkg/logger"
	"github.com/gaze-network/presale-ledger/pkg/logger/slogx"
)

// Ledgers are the in-process collaborators the sale settles against.
type Ledgers struct {
	Asset *tokenledger.Token
	Quote *tokenledger.Token
	Bank  *tokenledger.Bank

	NativeSymbol   string
	NativeDecimals uint8
}

// Usecase serializes every call into the sale and publishes the events each
// successful call produced to the log, the metrics and the journal.
type Usecase struct {
	mu      sync.Mutex
	sale    *sale.Sale
	ledgers Ledgers
	// presaleDg is nil when the journal is disabled.
	presaleDg datagateway.PresaleDataGateway
	metrics   *metrics.PresaleMetrics
	clock     sale.Clock

	pending []entity.Event
}

// New builds the sale from params, settling against ledgers. The asset, quote
// token, native bank and sink of params are replaced by the ledgers and the usecase.
func New(ctx context.Context, params sale.Params, ledgers Ledgers, presaleDg datagateway.PresaleDataGateway, presaleMetrics *metrics.PresaleMetrics) (*Usecase, error) {
	if ledgers.Asset == nil || ledgers.Quote == nil || ledgers.Bank == nil {
		return nil, errors.Wrap(errs.InvalidArgument, "asset, quote and native ledgers are required")
	}
	if params.Clock == nil {
		params.Clock = sale.SystemClock
	}

	u := &Usecase{
		ledgers:   ledgers,
		presaleDg: presaleDg,
		metrics:   presaleMetrics,
		clock:     params.Clock,
	}
	params.Asset = ledgers.Asset
	params.QuoteToken = ledgers.Quote
	params.NativeBank = ledgers.Bank
	params.Sink = sale.EventSinkFunc(u.collect)

	u.mu.Lock()
	defer u.mu.Unlock()

	s, err := sale.New(params)
	if err != nil {
		return nil, errors.Wrap(err, "can't create sale")
	}
	u.sale = s
	if err := u.restore(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	u.publish(ctx)
	return u, nil
}

// restore reloads the purchase records of earlier runs from the journal, so the
// ledger resumes where it stopped instead of starting over.
func (u *Usecase) restore(ctx context.Context) error {
	if u.presaleDg == nil {
		return nil
	}
	records, err := u.presaleDg.GetPurchaseRecords(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load purchase records")
	}
	if err := u.sale.Restore(records); err != nil {
		return errors.Wrap(err, "can't restore purchase records")
	}
	if len(records) > 0 {
		state := u.sale.State()
		logger.InfoContext(ctx, "Restored presale ledger from the journal",
			slogx.Int("records", len(records)),
			slogx.Uint64("total_sold", state.TotalSold),
			slogx.Int("tier_index", state.CurrentTierIndex),
		)
	}
	return nil
}

// Address is the address of the sale.
func (u *Usecase) Address() common.Address {
	return u.sale.Address()
}

// Now reads the clock the sale runs on.
func (u *Usecase) Now() time.Time {
	return u.clock.Now()
}

func (u *Usecase) collect(_ context.Context, event entity.Event) {
	u.pending = append(u.pending, event)
}

// publish drains the events collected during the current call. Journal failures
// are logged and counted, the sale state is the source of truth.
func (u *Usecase) publish(ctx context.Context) {
	events := u.pending
	u.pending = nil
	if len(events) == 0 {
		return
	}

	for _, event := range events {
		logger.InfoContext(ctx, "Presale event",
			slogx.String("event", string(event.Kind())),
			slogx.Stringer("account", event.Account()),
		)
		switch e := event.(type) {
		case entity.TokensBought:
			u.metrics.ObservePurchase(e.Currency.String(), e.Quantity)
		case entity.TokensClaimed:
			u.metrics.ObserveClaim(e.Quantity)
		}
	}
	state := u.sale.State()
	u.metrics.SetState(state.TotalSold, state.CurrentTierIndex)

	if u.presaleDg == nil {
		return
	}
	if err := u.journal(ctx, events); err != nil {
		u.metrics.IncJournalFailure()
		logger.ErrorContext(ctx, "Failed to write presale events to the journal", err,
			slogx.Int("events", len(events)),
		)
	}
}

func (u *Usecase) journal(ctx context.Context, events []entity.Event) (err error) {
	dgTx, err := u.presaleDg.BeginPresaleTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if rollbackErr := dgTx.Rollback(ctx); rollbackErr != nil {
			logger.WarnContext(ctx, "Failed to rollback journal transaction", slogx.Error(rollbackErr))
		}
	}()

	now := u.clock.Now()
	buyers := make(map[common.Address]struct{})
	for _, event := range events {
		entry, err := newJournalEntry(event, now)
		if err != nil {
			return errors.WithStack(err)
		}
		if _, err := dgTx.CreateEvent(ctx, entry); err != nil {
			return errors.Wrapf(err, "failed to journal %s", event.Kind())
		}
		switch event.(type) {
		case entity.TokensBought, entity.TokensClaimed:
			buyers[event.Account()] = struct{}{}
		}
	}
	for buyer := range buyers {
		if err := dgTx.UpsertPurchaseRecord(ctx, u.sale.Record(buyer)); err != nil {
			return errors.Wrapf(err, "failed to save purchase record of %s", buyer)
		}
	}

	if err := dgTx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// reject counts a failed call by its error kind and passes the error through.
func (u *Usecase) reject(operation string, err error) error {
	kind, _ := errs.KindOf(err)
	u.metrics.ObserveRejection(operation, string(kind))
	return err
}
