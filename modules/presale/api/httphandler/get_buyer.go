package httphandler

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type getBuyerRequest struct {
	Address string `params:"address"`
}

type getBuyerResult struct {
	Address        string  `json:"address"`
	Purchased      uint64  `json:"purchased"`
	Claimed        bool    `json:"claimed"`
	NativeBalance  *amount `json:"nativeBalance"`
	QuoteBalance   *amount `json:"quoteBalance"`
	QuoteAllowance *amount `json:"quoteAllowance"`
	AssetBalance   *amount `json:"assetBalance"`
}

type getBuyerResponse = HttpResponse[getBuyerResult]

func (h *HttpHandler) GetBuyer(ctx *fiber.Ctx) (err error) {
	var req getBuyerRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	buyer, err := parseAddress("address", req.Address)
	if err != nil {
		return errors.WithStack(err)
	}

	info, err := h.usecase.GetInfo(ctx.UserContext())
	if err != nil {
		return errors.Wrap(err, "error during GetInfo")
	}
	buyerInfo, err := h.usecase.GetBuyer(ctx.UserContext(), buyer)
	if err != nil {
		return errors.Wrap(err, "error during GetBuyer")
	}

	return errors.WithStack(ctx.JSON(getBuyerResponse{
		Result: &getBuyerResult{
			Address:        strings.ToLower(buyer.Hex()),
			Purchased:      buyerInfo.Record.Quantity,
			Claimed:        buyerInfo.Record.Claimed,
			NativeBalance:  newAmount(buyerInfo.NativeBalance, info.Native.Decimals),
			QuoteBalance:   newAmount(buyerInfo.QuoteBalance, info.Quote.Decimals),
			QuoteAllowance: newAmount(buyerInfo.QuoteAllowance, info.Quote.Decimals),
			AssetBalance:   newAmount(buyerInfo.AssetBalance, info.Asset.Decimals),
		},
	}))
}
