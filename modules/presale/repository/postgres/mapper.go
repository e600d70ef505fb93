package postgres

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gaze-network/presale-ledger/modules/presale/repository/postgres/gen"
	"github.com/samber/lo"
)

func mapJournalEntries(events []gen.PresaleEvent) []entity.JournalEntry {
	return lo.Map(events, func(item gen.PresaleEvent, _ int) entity.JournalEntry {
		return entity.JournalEntry{
			ID:        item.ID,
			Kind:      entity.EventKind(item.Kind),
			Account:   item.Account,
			Payload:   item.Payload,
			CreatedAt: item.CreatedAt.Time,
		}
	})
}

func mapPurchaseRecords(records []gen.GetPurchasesRow) []entity.PurchaseRecord {
	return lo.Map(records, func(item gen.GetPurchasesRow, _ int) entity.PurchaseRecord {
		return entity.PurchaseRecord{
			Buyer:    common.HexToAddress(item.Buyer),
			Quantity: uint64(item.Quantity),
			Claimed:  item.Claimed,
		}
	})
}
