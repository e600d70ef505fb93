package usecase

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
)

type saleTimePayload struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

type claimStartPayload struct {
	ClaimStart int64 `json:"claimStart"`
}

type tokensBoughtPayload struct {
	Buyer      string `json:"buyer"`
	Currency   string `json:"currency"`
	Quantity   uint64 `json:"quantity"`
	QuoteCost  string `json:"quoteCost"`
	AmountPaid string `json:"amountPaid"`
}

type tokensClaimedPayload struct {
	Buyer    string `json:"buyer"`
	Quantity uint64 `json:"quantity"`
}

type operatorPayload struct {
	By string `json:"by"`
}

type ownershipPayload struct {
	PreviousOwner string `json:"previousOwner"`
	NewOwner      string `json:"newOwner"`
}

func hexAddress(address common.Address) string {
	return strings.ToLower(address.Hex())
}

func eventPayload(event entity.Event) (any, error) {
	switch e := event.(type) {
	case entity.SaleTimeUpdated:
		return saleTimePayload{Start: e.Start.Unix(), End: e.End.Unix()}, nil
	case entity.ClaimStartTimeUpdated:
		return claimStartPayload{ClaimStart: e.ClaimStart.Unix()}, nil
	case entity.TokensBought:
		amountPaid := "0"
		if e.AmountPaid != nil {
			amountPaid = e.AmountPaid.Dec()
		}
		return tokensBoughtPayload{
			Buyer:      hexAddress(e.Buyer),
			Currency:   e.Currency.String(),
			Quantity:   e.Quantity,
			QuoteCost:  e.QuoteCost.String(),
			AmountPaid: amountPaid,
		}, nil
	case entity.TokensClaimed:
		return tokensClaimedPayload{Buyer: hexAddress(e.Buyer), Quantity: e.Quantity}, nil
	case entity.Paused:
		return operatorPayload{By: hexAddress(e.By)}, nil
	case entity.Unpaused:
		return operatorPayload{By: hexAddress(e.By)}, nil
	case entity.OwnershipTransferred:
		return ownershipPayload{
			PreviousOwner: hexAddress(e.PreviousOwner),
			NewOwner:      hexAddress(e.NewOwner),
		}, nil
	}
	return nil, errors.Wrapf(errs.Unsupported, "event %T", event)
}

// newJournalEntry converts an event into its persisted form. Schedule events are
// journaled under the zero account.
func newJournalEntry(event entity.Event, at time.Time) (entity.JournalEntry, error) {
	payload, err := eventPayload(event)
	if err != nil {
		return entity.JournalEntry{}, errors.WithStack(err)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return entity.JournalEntry{}, errors.Wrapf(err, "can't encode %s payload", event.Kind())
	}
	return entity.JournalEntry{
		Kind:      event.Kind(),
		Account:   hexAddress(event.Account()),
		Payload:   data,
		CreatedAt: at,
	}, nil
}
