package sale

import (
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/stage"
)

// ledgerCheckpoint is the ledger position before a purchase was recorded.
type ledgerCheckpoint struct {
	state     entity.SaleState
	buyer     common.Address
	quantity  uint64
	newRecord bool
}

// recordPurchase advances the sale state to the position computed by the pricer and
// credits the buyer.
func (s *Sale) recordPurchase(buyer common.Address, quantity uint64, quote stage.Quote) ledgerCheckpoint {
	checkpoint := ledgerCheckpoint{
		state:    s.state,
		buyer:    buyer,
		quantity: quantity,
	}
	record, ok := s.records[buyer]
	if !ok {
		record = &entity.PurchaseRecord{Buyer: buyer}
		s.records[buyer] = record
		s.buyers = append(s.buyers, buyer)
		checkpoint.newRecord = true
	}
	record.Quantity += quantity
	s.state = entity.SaleState{
		TotalSold:        quote.NewTotalSold,
		CurrentTierIndex: quote.NewTierIndex,
	}
	return checkpoint
}

// revertPurchase undoes the most recent recordPurchase.
func (s *Sale) revertPurchase(checkpoint ledgerCheckpoint) {
	s.state = checkpoint.state
	if checkpoint.newRecord {
		delete(s.records, checkpoint.buyer)
		s.buyers = s.buyers[:len(s.buyers)-1]
		return
	}
	s.records[checkpoint.buyer].Quantity -= checkpoint.quantity
}

// PurchasedOf returns the number of whole units bought by the buyer.
func (s *Sale) PurchasedOf(buyer common.Address) uint64 {
	if record, ok := s.records[buyer]; ok {
		return record.Quantity
	}
	return 0
}

func (s *Sale) HasClaimed(buyer common.Address) bool {
	if record, ok := s.records[buyer]; ok {
		return record.Claimed
	}
	return false
}

// Record returns the buyer's purchase record. The zero record is returned for unknown buyers.
func (s *Sale) Record(buyer common.Address) entity.PurchaseRecord {
	if record, ok := s.records[buyer]; ok {
		return *record
	}
	return entity.PurchaseRecord{Buyer: buyer}
}

// Records returns a snapshot of every purchase record in order of first purchase.
func (s *Sale) Records() []entity.PurchaseRecord {
	records := make([]entity.PurchaseRecord, 0, len(s.buyers))
	for _, buyer := range s.buyers {
		records = append(records, *s.records[buyer])
	}
	return records
}

// Restore loads purchase records saved by an earlier run into a sale that has not
// recorded anything yet. TotalSold and the tier index are derived from the records.
// Records with no quantity are skipped.
func (s *Sale) Restore(records []entity.PurchaseRecord) error {
	if s.state.TotalSold > 0 || len(s.records) > 0 {
		return errors.Wrap(errs.InvalidArgument, "sale already holds purchase records")
	}
	table := s.pricer.Table()
	restored := make(map[common.Address]*entity.PurchaseRecord, len(records))
	buyers := make([]common.Address, 0, len(records))
	var total uint64
	for _, record := range records {
		if record.Buyer == (common.Address{}) {
			return zeroAddress("buyer")
		}
		if _, ok := restored[record.Buyer]; ok {
			return errors.Wrapf(errs.InvalidArgument, "duplicate purchase record for %s", record.Buyer)
		}
		if record.Quantity == 0 {
			continue
		}
		sum, carry := bits.Add64(total, record.Quantity, 0)
		if carry != 0 || sum > table.OverallCap() {
			return errors.Wrapf(errs.PresaleLimitExceeded, "purchase records exceed overall cap %d", table.OverallCap())
		}
		total = sum
		restored[record.Buyer] = &entity.PurchaseRecord{
			Buyer:    record.Buyer,
			Quantity: record.Quantity,
			Claimed:  record.Claimed,
		}
		buyers = append(buyers, record.Buyer)
	}

	s.records = restored
	s.buyers = buyers
	s.state = entity.SaleState{
		TotalSold:        total,
		CurrentTierIndex: table.IndexOf(total),
	}
	return nil
}
