package postgres

import (
	"context"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/internal/postgres"
	"github.com/gaze-network/presale-ledger/modules/presale/datagateway"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gaze-network/presale-ledger/modules/presale/repository/postgres/gen"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ datagateway.PresaleDataGatewayWithTx = (*Repository)(nil)

type Repository struct {
	db      postgres.DB
	queries *gen.Queries
	tx      pgx.Tx
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db:      db,
		queries: gen.New(db),
	}
}

func (repo *Repository) CreateEvent(ctx context.Context, arg entity.JournalEntry) (int64, error) {
	payload := arg.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	id, err := repo.queries.CreateEvent(ctx, gen.CreateEventParams{
		Kind:      string(arg.Kind),
		Account:   strings.ToLower(arg.Account),
		Payload:   payload,
		CreatedAt: pgtype.Timestamp{Time: arg.CreatedAt.UTC(), Valid: true},
	})
	if err != nil {
		return 0, errors.Wrap(err, "cannot create event")
	}
	return id, nil
}

// UpsertPurchaseRecord saves the buyer's record. The stored quantity only grows
// and a claimed record stays claimed.
func (repo *Repository) UpsertPurchaseRecord(ctx context.Context, arg entity.PurchaseRecord) error {
	if arg.Quantity > math.MaxInt64 {
		return errors.Wrapf(errs.OverflowUint64, "quantity %d does not fit a bigint", arg.Quantity)
	}
	err := repo.queries.UpsertPurchase(ctx, gen.UpsertPurchaseParams{
		Buyer:    strings.ToLower(arg.Buyer.Hex()),
		Quantity: int64(arg.Quantity),
		Claimed:  arg.Claimed,
	})
	if err != nil {
		return errors.Wrap(err, "cannot upsert purchase record")
	}
	return nil
}

func (repo *Repository) GetEventsByBuyer(ctx context.Context, buyer string) ([]entity.JournalEntry, error) {
	events, err := repo.queries.GetEventsByAccount(ctx, strings.ToLower(buyer))
	if err != nil {
		return nil, errors.Wrap(err, "cannot get events by buyer")
	}
	return mapJournalEntries(events), nil
}

func (repo *Repository) GetPurchaseRecords(ctx context.Context) ([]entity.PurchaseRecord, error) {
	records, err := repo.queries.GetPurchases(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get purchase records")
	}
	return mapPurchaseRecords(records), nil
}
