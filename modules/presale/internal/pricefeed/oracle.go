package pricefeed

import (
	"context"
	"math/big"
	"sync"
	"time"
)

// PriceData is the latest answer of a price feed: the value of one unit of native
// currency in quote terms, scaled by the feed's decimals.
type PriceData struct {
	Price     *big.Int
	UpdatedAt time.Time
	Round     uint64
}

// Oracle is a price feed of the native currency.
type Oracle interface {
	LatestPrice(ctx context.Context) (PriceData, error)
	Decimals(ctx context.Context) (uint8, error)
}

var _ Oracle = (*StaticOracle)(nil)

// StaticOracle serves a price set by its owner. It is used by tests and local deployments.
type StaticOracle struct {
	mu       sync.RWMutex
	data     PriceData
	decimals uint8
}

func NewStaticOracle(price int64, decimals uint8, updatedAt time.Time) *StaticOracle {
	return &StaticOracle{
		data: PriceData{
			Price:     big.NewInt(price),
			UpdatedAt: updatedAt,
			Round:     1,
		},
		decimals: decimals,
	}
}

func (o *StaticOracle) LatestPrice(context.Context) (PriceData, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return PriceData{
		Price:     new(big.Int).Set(o.data.Price),
		UpdatedAt: o.data.UpdatedAt,
		Round:     o.data.Round,
	}, nil
}

func (o *StaticOracle) Decimals(context.Context) (uint8, error) {
	return o.decimals, nil
}

// SetPrice publishes a new answer in a new round.
func (o *StaticOracle) SetPrice(price int64, updatedAt time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.data = PriceData{
		Price:     big.NewInt(price),
		UpdatedAt: updatedAt,
		Round:     o.data.Round + 1,
	}
}
