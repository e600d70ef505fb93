package httphandler

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gaze-network/presale-ledger/internal/tokenledger"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/pricefeed"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/sale"
	"github.com/gaze-network/presale-ledger/modules/presale/usecase"
	"github.com/gaze-network/presale-ledger/pkg/errorhandler"
	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOperatorKey = "s3cr3t"

var (
	saleAddress = common.HexToAddress("0x5a1e000000000000000000000000000000000001")
	owner       = common.HexToAddress("0x0000000000000000000000000000000000000001")
	buyerKey    = crypto.ToECDSAUnsafe(common.FromHex("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"))
	buyer       = crypto.PubkeyToAddress(buyerKey.PublicKey)
	strangerKey = crypto.ToECDSAUnsafe(common.FromHex("8a1f9a8f95be41cd7ccb6168179afb4504aefe388d1e14474d32c45c72ce7b7a"))

	saleStart = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	saleEnd   = saleStart.Add(14 * 24 * time.Hour)
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestApp(t *testing.T) (*fiber.App, *testClock) {
	t.Helper()
	ctx := context.Background()
	clock := &testClock{now: saleStart.Add(time.Hour)}

	ledgers := usecase.Ledgers{
		Asset:          tokenledger.NewToken("Sale Token", "SALE", 18),
		Quote:          tokenledger.NewToken("Tether USD", "USDT", 6),
		Bank:           tokenledger.NewBank(),
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
	}
	require.NoError(t, ledgers.Bank.Deposit(buyer, uint256.MustFromDecimal("1000000000000000000")))
	require.NoError(t, ledgers.Quote.Mint(buyer, uint256.NewInt(50_000_000)))

	oracle := pricefeed.NewStaticOracle(200000000000, 8, saleStart)
	converter, err := pricefeed.NewConverter(ctx, oracle, pricefeed.Config{NativeDecimals: 18, QuoteDecimals: 6}, clock.Now)
	require.NoError(t, err)

	uc, err := usecase.New(ctx, sale.Params{
		Self:       saleAddress,
		Owner:      owner,
		Converter:  converter,
		SaleStart:  saleStart,
		SaleEnd:    saleEnd,
		Capacities: []uint64{1000, 3000},
		Prices:     []uint64{12000, 14000},
		Clock:      clock,
	}, ledgers, nil, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.NewHTTPErrorHandler()})
	require.NoError(t, New(uc, testOperatorKey).Mount(app))
	return app, clock
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

// signBody signs the request as key and returns the JSON body. fields are the
// action specific values in the order the handler signs them.
func signBody(t *testing.T, key *ecdsa.PrivateKey, clock *testClock, action string, body map[string]any, fields ...string) string {
	t.Helper()
	deadline := clock.now.Add(5 * time.Minute).Unix()
	if d, ok := body["deadline"].(int64); ok {
		deadline = d
	}
	message := signedRequest{
		action:   action,
		buyer:    common.HexToAddress(body["buyer"].(string)),
		fields:   fields,
		deadline: deadline,
	}.message(saleAddress)
	sig, err := crypto.Sign(textHash(message), key)
	require.NoError(t, err)

	body["deadline"] = deadline
	body["signature"] = hexutil.Encode(sig)
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return string(data)
}

func purchaseBody(t *testing.T, clock *testClock, currency string, quantity uint64, value string) string {
	t.Helper()
	body := map[string]any{"buyer": buyer.Hex(), "currency": currency, "quantity": quantity}
	signedValue := "0"
	if value != "" {
		body["value"] = value
		signedValue = value
	}
	return signBody(t, buyerKey, clock, "purchase", body, currency, jsonInt(int64(quantity)), signedValue)
}

func approveBody(t *testing.T, clock *testClock, amount string) string {
	t.Helper()
	return signBody(t, buyerKey, clock, "approve", map[string]any{"buyer": buyer.Hex(), "amount": amount}, amount)
}

func claimBody(t *testing.T, clock *testClock) string {
	t.Helper()
	return signBody(t, buyerKey, clock, "claim", map[string]any{"buyer": buyer.Hex()})
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func TestGetInfo(t *testing.T) {
	app, _ := newTestApp(t)

	status, data := do(t, app, http.MethodGet, "/presale/v1/info", "")
	require.Equal(t, http.StatusOK, status, string(data))

	resp := decode[getInfoResponse](t, data)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "open", resp.Result.Phase)
	assert.Equal(t, uint64(3000), resp.Result.OverallCap)
	assert.Equal(t, uint64(12000), resp.Result.CurrentPrice)
	assert.Len(t, resp.Result.Tiers, 2)
	assert.Nil(t, resp.Result.Schedule.ClaimStart)
	assert.Equal(t, "USDT", resp.Result.Quote.Symbol)
	assert.Equal(t, "0", resp.Result.TreasuryRequirement.Raw)
}

func TestGetPrice(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("across_tiers", func(t *testing.T) {
		status, data := do(t, app, http.MethodGet, "/presale/v1/price?quantity=1200", "")
		require.Equal(t, http.StatusOK, status, string(data))
		resp := decode[getPriceResponse](t, data)
		assert.Equal(t, "14800000", resp.Result.QuoteCost)
		require.NotNil(t, resp.Result.NativeCost)
		assert.Equal(t, "7400000000000000", *resp.Result.NativeCost)
		require.Len(t, resp.Result.Fills, 2)
		assert.Equal(t, uint64(200), resp.Result.Fills[1].Quantity)
	})

	t.Run("over_cap", func(t *testing.T) {
		status, data := do(t, app, http.MethodGet, "/presale/v1/price?quantity=3001", "")
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "PRESALE_LIMIT_EXCEEDED", decode[errorBody](t, data).Code)
	})
}

func TestPurchase(t *testing.T) {
	app, clock := newTestApp(t)

	t.Run("invalid_buyer", func(t *testing.T) {
		status, _ := do(t, app, http.MethodPost, "/presale/v1/purchase", `{"buyer":"0x123","currency":"native","quantity":1,"value":"1"}`)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unknown_currency", func(t *testing.T) {
		status, data := do(t, app, http.MethodPost, "/presale/v1/purchase", `{"buyer":"`+buyer.Hex()+`","currency":"btc","quantity":1}`)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_ARGUMENT", decode[errorBody](t, data).Code)
	})

	t.Run("not_enough_native", func(t *testing.T) {
		status, data := do(t, app, http.MethodPost, "/presale/v1/purchase", purchaseBody(t, clock, "native", 10, "1"))
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "NOT_ENOUGH_NATIVE", decode[errorBody](t, data).Code)
	})

	t.Run("native_balance_too_low", func(t *testing.T) {
		stranger := crypto.PubkeyToAddress(strangerKey.PublicKey)
		body := signBody(t, strangerKey, clock, "purchase",
			map[string]any{"buyer": stranger.Hex(), "currency": "native", "quantity": 10, "value": "1000000000000000000"},
			"native", "10", "1000000000000000000")
		status, data := do(t, app, http.MethodPost, "/presale/v1/purchase", body)
		require.Equal(t, http.StatusBadRequest, status, string(data))
		assert.Equal(t, "INSUFFICIENT_FUNDS", decode[errorBody](t, data).Code)
	})

	t.Run("quote_needs_allowance", func(t *testing.T) {
		status, data := do(t, app, http.MethodPost, "/presale/v1/purchase", purchaseBody(t, clock, "quote", 10, ""))
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "NOT_ENOUGH_ALLOWANCE", decode[errorBody](t, data).Code)
	})

	t.Run("quote_after_approve", func(t *testing.T) {
		status, data := do(t, app, http.MethodPost, "/presale/v1/approve", approveBody(t, clock, "120000"))
		require.Equal(t, http.StatusOK, status, string(data))

		clock.now = clock.now.Add(time.Second)
		status, data = do(t, app, http.MethodPost, "/presale/v1/purchase", purchaseBody(t, clock, "quote", 10, ""))
		require.Equal(t, http.StatusOK, status, string(data))
		resp := decode[purchaseResponse](t, data)
		assert.Equal(t, "120000", resp.Result.QuoteCost)
		assert.Equal(t, "120000", resp.Result.AmountPaid)
		assert.Equal(t, uint64(10), resp.Result.TotalSold)
	})

	t.Run("native", func(t *testing.T) {
		status, data := do(t, app, http.MethodPost, "/presale/v1/purchase", purchaseBody(t, clock, "native", 10, "1000000000000000000"))
		require.Equal(t, http.StatusOK, status, string(data))
		resp := decode[purchaseResponse](t, data)
		assert.Equal(t, "60000000000000", resp.Result.AmountPaid)
		assert.Equal(t, uint64(20), resp.Result.TotalSold)
	})

	t.Run("buyer", func(t *testing.T) {
		status, data := do(t, app, http.MethodGet, "/presale/v1/buyers/"+buyer.Hex(), "")
		require.Equal(t, http.StatusOK, status, string(data))
		resp := decode[getBuyerResponse](t, data)
		assert.Equal(t, uint64(20), resp.Result.Purchased)
		assert.False(t, resp.Result.Claimed)
		assert.Equal(t, "49880000", resp.Result.QuoteBalance.Raw)
		assert.Equal(t, "49.88", resp.Result.QuoteBalance.Display)
		assert.Equal(t, "999940000000000000", resp.Result.NativeBalance.Raw)
	})
}

func TestBuyerSignatures(t *testing.T) {
	app, clock := newTestApp(t)

	totalSold := func(t *testing.T) uint64 {
		t.Helper()
		status, data := do(t, app, http.MethodGet, "/presale/v1/info", "")
		require.Equal(t, http.StatusOK, status)
		return decode[getInfoResponse](t, data).Result.TotalSold
	}
	allowance := func(t *testing.T) string {
		t.Helper()
		status, data := do(t, app, http.MethodGet, "/presale/v1/buyers/"+buyer.Hex(), "")
		require.Equal(t, http.StatusOK, status)
		return decode[getBuyerResponse](t, data).Result.QuoteAllowance.Raw
	}

	testCases := []struct {
		name string
		path string
		body func() string
		code string
	}{
		{
			name: "purchase_signed_by_someone_else",
			path: "/presale/v1/purchase",
			body: func() string {
				return signBody(t, strangerKey, clock, "purchase",
					map[string]any{"buyer": buyer.Hex(), "currency": "native", "quantity": 10, "value": "1000000000000000000"},
					"native", "10", "1000000000000000000")
			},
			code: codeInvalidSignature,
		},
		{
			name: "approve_signed_by_someone_else",
			path: "/presale/v1/approve",
			body: func() string {
				return signBody(t, strangerKey, clock, "approve", map[string]any{"buyer": buyer.Hex(), "amount": "120000"}, "120000")
			},
			code: codeInvalidSignature,
		},
		{
			name: "claim_signed_by_someone_else",
			path: "/presale/v1/claim",
			body: func() string {
				return signBody(t, strangerKey, clock, "claim", map[string]any{"buyer": buyer.Hex()})
			},
			code: codeInvalidSignature,
		},
		{
			name: "unsigned",
			path: "/presale/v1/purchase",
			body: func() string {
				return `{"buyer":"` + buyer.Hex() + `","currency":"native","quantity":10,"value":"1000000000000000000","deadline":` + jsonInt(clock.now.Add(time.Minute).Unix()) + `}`
			},
			code: codeInvalidSignature,
		},
		{
			name: "quantity_changed_after_signing",
			path: "/presale/v1/purchase",
			body: func() string {
				return signBody(t, buyerKey, clock, "purchase",
					map[string]any{"buyer": buyer.Hex(), "currency": "native", "quantity": 20, "value": "1000000000000000000"},
					"native", "10", "1000000000000000000")
			},
			code: codeInvalidSignature,
		},
		{
			name: "signed_for_another_action",
			path: "/presale/v1/approve",
			body: func() string {
				return signBody(t, buyerKey, clock, "claim", map[string]any{"buyer": buyer.Hex(), "amount": "120000"})
			},
			code: codeInvalidSignature,
		},
		{
			name: "expired",
			path: "/presale/v1/purchase",
			body: func() string {
				return signBody(t, buyerKey, clock, "purchase",
					map[string]any{"buyer": buyer.Hex(), "currency": "native", "quantity": 10, "value": "1000000000000000000", "deadline": clock.now.Add(-time.Second).Unix()},
					"native", "10", "1000000000000000000")
			},
			code: codeSignatureExpired,
		},
		{
			name: "deadline_too_far",
			path: "/presale/v1/purchase",
			body: func() string {
				return signBody(t, buyerKey, clock, "purchase",
					map[string]any{"buyer": buyer.Hex(), "currency": "native", "quantity": 10, "value": "1000000000000000000", "deadline": clock.now.Add(time.Hour).Unix()},
					"native", "10", "1000000000000000000")
			},
			code: codeInvalidSignature,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, data := do(t, app, http.MethodPost, tc.path, tc.body())
			require.Equal(t, http.StatusBadRequest, status, string(data))
			assert.Equal(t, tc.code, decode[errorBody](t, data).Code)
			assert.Zero(t, totalSold(t))
			assert.Equal(t, "0", allowance(t))
		})
	}

	t.Run("replay", func(t *testing.T) {
		body := purchaseBody(t, clock, "native", 10, "1000000000000000000")
		status, data := do(t, app, http.MethodPost, "/presale/v1/purchase", body)
		require.Equal(t, http.StatusOK, status, string(data))

		status, data = do(t, app, http.MethodPost, "/presale/v1/purchase", body)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, codeInvalidSignature, decode[errorBody](t, data).Code)
		assert.Equal(t, uint64(10), totalSold(t))
	})

	t.Run("wallet_recovery_id", func(t *testing.T) {
		clock.now = clock.now.Add(time.Second)
		body := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(purchaseBody(t, clock, "native", 5, "1000000000000000000")), &body))
		sig, err := hexutil.Decode(body["signature"].(string))
		require.NoError(t, err)
		sig[crypto.RecoveryIDOffset] += 27
		body["signature"] = hexutil.Encode(sig)
		data, err := json.Marshal(body)
		require.NoError(t, err)

		status, resp := do(t, app, http.MethodPost, "/presale/v1/purchase", string(data))
		require.Equal(t, http.StatusOK, status, string(resp))
		assert.Equal(t, uint64(15), totalSold(t))
	})
}

func TestClaim(t *testing.T) {
	app, clock := newTestApp(t)

	status, data := do(t, app, http.MethodPost, "/presale/v1/claim", claimBody(t, clock))
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_TIMEFRAME", decode[errorBody](t, data).Code)

	claimStart := saleEnd.Add(time.Hour).Unix()
	status, _ = do(t, app, http.MethodPost, "/presale/v1/admin/claim", `{"claimStart":`+jsonInt(claimStart)+`}`,
		fiber.HeaderAuthorization, "Bearer "+testOperatorKey)
	require.Equal(t, http.StatusOK, status)

	clock.now = time.Unix(claimStart, 0)
	status, data = do(t, app, http.MethodPost, "/presale/v1/claim", claimBody(t, clock))
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "NOTHING_TO_CLAIM", decode[errorBody](t, data).Code)
}

func TestAdminRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("missing_key", func(t *testing.T) {
		status, _ := do(t, app, http.MethodPost, "/presale/v1/admin/pause", "")
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("wrong_key", func(t *testing.T) {
		status, _ := do(t, app, http.MethodPost, "/presale/v1/admin/pause", "", fiber.HeaderAuthorization, "Bearer nope")
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("pause", func(t *testing.T) {
		status, data := do(t, app, http.MethodPost, "/presale/v1/admin/pause", "", fiber.HeaderAuthorization, "Bearer "+testOperatorKey)
		require.Equal(t, http.StatusOK, status, string(data))

		status, data = do(t, app, http.MethodPost, "/presale/v1/admin/pause", "", fiber.HeaderAuthorization, "Bearer "+testOperatorKey)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "PAUSED", decode[errorBody](t, data).Code)

		status, data = do(t, app, http.MethodGet, "/presale/v1/info", "")
		require.Equal(t, http.StatusOK, status)
		assert.True(t, decode[getInfoResponse](t, data).Result.Paused)
	})

	t.Run("invalid_timeframe", func(t *testing.T) {
		body := `{"start":` + jsonInt(saleEnd.Unix()) + `,"end":` + jsonInt(saleStart.Unix()) + `}`
		status, data := do(t, app, http.MethodPost, "/presale/v1/admin/timeframe", body, fiber.HeaderAuthorization, "Bearer "+testOperatorKey)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_TIMEFRAME", decode[errorBody](t, data).Code)
	})
}

func TestGetEventsWithoutJournal(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := do(t, app, http.MethodGet, "/presale/v1/events", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, data := do(t, app, http.MethodGet, "/presale/v1/events?buyer="+buyer.Hex(), "")
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "UNSUPPORTED", decode[errorBody](t, data).Code)
}

func jsonInt(v int64) string {
	data, _ := json.Marshal(v)
	return string(data)
}
