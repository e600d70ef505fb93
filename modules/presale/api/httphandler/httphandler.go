package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/usecase"
	"github.com/gaze-network/presale-ledger/pkg/decimals"
	"github.com/holiman/uint256"
)

type HttpHandler struct {
	usecase        *usecase.Usecase
	operatorAPIKey string
	signatures     *signatureGuard
}

func New(usecase *usecase.Usecase, operatorAPIKey string) *HttpHandler {
	return &HttpHandler{
		usecase:        usecase,
		operatorAPIKey: operatorAPIKey,
		signatures:     newSignatureGuard(usecase.Now),
	}
}

type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Result *T      `json:"result,omitempty"`
}

// amount renders a raw integer amount with its human-readable form.
type amount struct {
	Raw     string `json:"raw"`
	Display string `json:"display"`
}

func newAmount(value *uint256.Int, decimalPlaces uint8) *amount {
	if value == nil {
		return nil
	}
	return &amount{
		Raw:     value.Dec(),
		Display: decimals.ToDecimal(value, decimalPlaces).String(),
	}
}

func parseAddress(field, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, errs.NewPublicError("'" + field + "' is not a valid address")
	}
	return common.HexToAddress(value), nil
}

func parseAmount(field, value string) (*uint256.Int, error) {
	if value == "" {
		return nil, errs.NewPublicError("'" + field + "' is required")
	}
	result, err := uint256.FromDecimal(value)
	if err != nil {
		return nil, errs.WithPublicMessage(errors.WithStack(err), "'"+field+"' is not a valid amount")
	}
	return result, nil
}
