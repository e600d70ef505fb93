package entity

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
)

// Tier is a price bracket. CumulativeCapacity is the total number of units sold
// across this tier and every tier before it; UnitPrice is in quote-currency units.
type Tier struct {
	CumulativeCapacity uint64
	UnitPrice          uint64
}

type Schedule struct {
	SaleStart time.Time
	SaleEnd   time.Time
	// ClaimStart is the zero time until the operator configures the claim window.
	ClaimStart time.Time
}

func (s Schedule) ClaimConfigured() bool {
	return !s.ClaimStart.IsZero()
}

type SaleState struct {
	TotalSold        uint64
	CurrentTierIndex int
}

type PurchaseRecord struct {
	Buyer    common.Address
	Quantity uint64
	Claimed  bool
}

// Currency tags the payment instrument of a purchase.
type Currency uint8

const (
	CurrencyUnknown Currency = iota
	CurrencyNative
	CurrencyQuote
)

var currencyNames = map[Currency]string{
	CurrencyNative: "native",
	CurrencyQuote:  "quote",
}

func (c Currency) String() string {
	if name, ok := currencyNames[c]; ok {
		return name
	}
	return "unknown"
}

func (c Currency) IsValid() bool {
	_, ok := currencyNames[c]
	return ok
}

func ParseCurrency(s string) (Currency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native", "eth":
		return CurrencyNative, nil
	case "quote", "usdt":
		return CurrencyQuote, nil
	}
	return CurrencyUnknown, errors.Wrapf(errs.InvalidArgument, "unknown currency %q", s)
}

// Phase is the state of the sale window at a given instant.
type Phase uint8

const (
	PhaseNotStarted Phase = iota
	PhaseOpen
	PhaseEnded
	PhaseClaimOpen
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseOpen:
		return "open"
	case PhaseEnded:
		return "ended"
	case PhaseClaimOpen:
		return "claim_open"
	}
	return "unknown"
}
