package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/stage"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getPriceRequest struct {
	Quantity uint64 `query:"quantity"`
}

type fill struct {
	TierIndex int    `json:"tierIndex"`
	Quantity  uint64 `json:"quantity"`
	UnitPrice uint64 `json:"unitPrice"`
	Cost      string `json:"cost"`
}

type getPriceResult struct {
	Quantity  uint64 `json:"quantity"`
	QuoteCost string `json:"quoteCost"`
	// NativeCost is null while the oracle price is unavailable.
	NativeCost *string `json:"nativeCost"`
	Fills      []fill  `json:"fills"`
}

type getPriceResponse = HttpResponse[getPriceResult]

func (h *HttpHandler) GetPrice(ctx *fiber.Ctx) (err error) {
	var req getPriceRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid query")
	}

	quote, err := h.usecase.GetPrice(ctx.UserContext(), req.Quantity)
	if err != nil {
		return errors.WithStack(toPublicError(err))
	}

	result := getPriceResult{
		Quantity:  quote.Quantity,
		QuoteCost: quote.QuoteCost.String(),
		Fills: lo.Map(quote.Fills, func(f stage.Fill, _ int) fill {
			return fill{TierIndex: f.TierIndex, Quantity: f.Quantity, UnitPrice: f.UnitPrice, Cost: f.Cost.String()}
		}),
	}
	if quote.NativeCost != nil {
		result.NativeCost = lo.ToPtr(quote.NativeCost.Dec())
	}
	return errors.WithStack(ctx.JSON(getPriceResponse{Result: &result}))
}
