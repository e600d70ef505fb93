package datagateway

import (
	"context"

	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
)

type PresaleDataGateway interface {
	BeginPresaleTx(ctx context.Context) (PresaleDataGatewayWithTx, error)
	CreateEvent(ctx context.Context, arg entity.JournalEntry) (int64, error)
	UpsertPurchaseRecord(ctx context.Context, arg entity.PurchaseRecord) error
	GetEventsByBuyer(ctx context.Context, buyer string) ([]entity.JournalEntry, error)
	GetPurchaseRecords(ctx context.Context) ([]entity.PurchaseRecord, error)
}

type PresaleDataGatewayWithTx interface {
	PresaleDataGateway
	Tx
}
