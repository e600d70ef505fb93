package pricefeed

import (
	"context"
	"math/big"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/pkg/httpclient"
	"github.com/gaze-network/presale-ledger/pkg/logger"
	"github.com/gaze-network/presale-ledger/pkg/logger/slogx"
	"github.com/valyala/fasthttp"
)

var _ Oracle = (*HTTPOracle)(nil)

type HTTPOracleConfig struct {
	URL  string `mapstructure:"url"`
	Pair string `mapstructure:"pair"`
	// Decimals overrides the precision reported by the service when non-zero.
	Decimals uint8 `mapstructure:"decimals"`
}

// HTTPOracle reads the latest answer of a price service exposing
// GET /v1/prices/latest?pair=ETH-USD.
type HTTPOracle struct {
	client *httpclient.Client
	config HTTPOracleConfig
}

type latestPriceResponse struct {
	Pair      string `json:"pair"`
	Price     string `json:"price"`
	Decimals  uint8  `json:"decimals"`
	UpdatedAt int64  `json:"updatedAt"`
	Round     uint64 `json:"round"`
}

func NewHTTPOracle(config HTTPOracleConfig) (*HTTPOracle, error) {
	client, err := httpclient.New(config.URL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create price service client")
	}
	return &HTTPOracle{
		client: client,
		config: config,
	}, nil
}

func (o *HTTPOracle) latest(ctx context.Context) (latestPriceResponse, error) {
	resp, err := o.client.Get(ctx, "/v1/prices/latest", httpclient.RequestOptions{
		Query: url.Values{"pair": {o.config.Pair}},
	})
	if err != nil {
		return latestPriceResponse{}, errors.Wrap(err, "can't request latest price")
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return latestPriceResponse{}, errors.Errorf("price service responded %d: %s", resp.StatusCode(), resp.Body())
	}
	var result latestPriceResponse
	if err := resp.UnmarshalBody(&result); err != nil {
		return latestPriceResponse{}, errors.WithStack(err)
	}
	return result, nil
}

func (o *HTTPOracle) LatestPrice(ctx context.Context) (PriceData, error) {
	result, err := o.latest(ctx)
	if err != nil {
		return PriceData{}, errors.WithStack(err)
	}
	price, ok := new(big.Int).SetString(result.Price, 10)
	if !ok {
		return PriceData{}, errors.Errorf("invalid price %q", result.Price)
	}
	logger.DebugContext(ctx, "Fetched latest oracle price",
		slogx.String("pair", result.Pair),
		slogx.String("price", result.Price),
		slogx.Uint64("round", result.Round),
	)
	return PriceData{
		Price:     price,
		UpdatedAt: time.Unix(result.UpdatedAt, 0).UTC(),
		Round:     result.Round,
	}, nil
}

func (o *HTTPOracle) Decimals(ctx context.Context) (uint8, error) {
	if o.config.Decimals != 0 {
		return o.config.Decimals, nil
	}
	result, err := o.latest(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return result.Decimals, nil
}
