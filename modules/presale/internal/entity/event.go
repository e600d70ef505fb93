package entity

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
)

type EventKind string

const (
	EventSaleTimeUpdated       EventKind = "SaleTimeUpdated"
	EventClaimStartTimeUpdated EventKind = "ClaimStartTimeUpdated"
	EventTokensBought          EventKind = "TokensBought"
	EventTokensClaimed         EventKind = "TokensClaimed"
	EventPaused                EventKind = "Paused"
	EventUnpaused              EventKind = "Unpaused"
	EventOwnershipTransferred  EventKind = "OwnershipTransferred"
)

// Event is a notification emitted by the sale after a successful state transition.
type Event interface {
	Kind() EventKind
	// Account is the address the event is about (buyer, operator), zero for schedule events.
	Account() common.Address
}

type SaleTimeUpdated struct {
	Start time.Time
	End   time.Time
}

func (SaleTimeUpdated) Kind() EventKind         { return EventSaleTimeUpdated }
func (SaleTimeUpdated) Account() common.Address { return common.Address{} }

type ClaimStartTimeUpdated struct {
	ClaimStart time.Time
}

func (ClaimStartTimeUpdated) Kind() EventKind         { return EventClaimStartTimeUpdated }
func (ClaimStartTimeUpdated) Account() common.Address { return common.Address{} }

type TokensBought struct {
	Buyer     common.Address
	Currency  Currency
	Quantity  uint64
	QuoteCost uint128.Uint128
	// AmountPaid is denominated in the smallest unit of Currency.
	AmountPaid *uint256.Int
}

func (TokensBought) Kind() EventKind           { return EventTokensBought }
func (e TokensBought) Account() common.Address { return e.Buyer }

type TokensClaimed struct {
	Buyer    common.Address
	Quantity uint64
}

func (TokensClaimed) Kind() EventKind           { return EventTokensClaimed }
func (e TokensClaimed) Account() common.Address { return e.Buyer }

type Paused struct {
	By common.Address
}

func (Paused) Kind() EventKind           { return EventPaused }
func (e Paused) Account() common.Address { return e.By }

type Unpaused struct {
	By common.Address
}

func (Unpaused) Kind() EventKind           { return EventUnpaused }
func (e Unpaused) Account() common.Address { return e.By }

type OwnershipTransferred struct {
	PreviousOwner common.Address
	NewOwner      common.Address
}

func (OwnershipTransferred) Kind() EventKind           { return EventOwnershipTransferred }
func (e OwnershipTransferred) Account() common.Address { return e.NewOwner }

// JournalEntry is the persisted form of an Event.
type JournalEntry struct {
	ID        int64
	Kind      EventKind
	Account   string
	Payload   []byte
	CreatedAt time.Time
}
