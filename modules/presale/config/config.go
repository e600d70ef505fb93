package config

import (
	"time"

	"github.com/gaze-network/presale-ledger/internal/postgres"
)

type Config struct {
	// Database is the journal backend: "postgres", or empty to keep the journal off.
	Database string          `mapstructure:"database"`
	Postgres postgres.Config `mapstructure:"postgres"`

	// SaleAddress is the account holding the treasury and receiving quote allowances.
	SaleAddress string `mapstructure:"sale_address"`
	Owner       string `mapstructure:"owner"`
	// Payout receives payments. Defaults to Owner.
	Payout string `mapstructure:"payout"`
	// OperatorAPIKey authenticates the admin routes as the owner.
	OperatorAPIKey string `mapstructure:"operator_api_key"`

	// SaleStart and SaleEnd are unix seconds.
	SaleStart int64        `mapstructure:"sale_start"`
	SaleEnd   int64        `mapstructure:"sale_end"`
	Tiers     []TierConfig `mapstructure:"tiers"`

	Asset  TokenConfig  `mapstructure:"asset"`
	Quote  TokenConfig  `mapstructure:"quote"`
	Native NativeConfig `mapstructure:"native"`
	Oracle OracleConfig `mapstructure:"oracle"`

	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
}

type TierConfig struct {
	CumulativeCapacity uint64 `mapstructure:"cumulative_capacity"`
	UnitPrice          uint64 `mapstructure:"unit_price"`
}

type TokenConfig struct {
	Name     string `mapstructure:"name"`
	Symbol   string `mapstructure:"symbol"`
	Decimals uint8  `mapstructure:"decimals"`
}

type NativeConfig struct {
	Symbol   string `mapstructure:"symbol"`
	Decimals uint8  `mapstructure:"decimals"`
}

type OracleConfig struct {
	// Source is "static" or "http".
	Source string `mapstructure:"source"`
	// Price and Decimals configure the static source.
	Price       int64         `mapstructure:"price"`
	Decimals    uint8         `mapstructure:"decimals"`
	URL         string        `mapstructure:"url"`
	Pair        string        `mapstructure:"pair"`
	MaxPriceAge time.Duration `mapstructure:"max_price_age"`
}

// BootstrapConfig seeds the in-process ledgers. Amounts are decimal strings in smallest units.
type BootstrapConfig struct {
	Treasury string           `mapstructure:"treasury"`
	Accounts []AccountBalance `mapstructure:"accounts"`
}

type AccountBalance struct {
	Address string `mapstructure:"address"`
	Native  string `mapstructure:"native"`
	Quote   string `mapstructure:"quote"`
}

func (c Config) Capacities() []uint64 {
	capacities := make([]uint64, len(c.Tiers))
	for i, tier := range c.Tiers {
		capacities[i] = tier.CumulativeCapacity
	}
	return capacities
}

func (c Config) Prices() []uint64 {
	prices := make([]uint64, len(c.Tiers))
	for i, tier := range c.Tiers {
		prices[i] = tier.UnitPrice
	}
	return prices
}
