package httphandler

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/sale"
	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"
)

// signature fields shared by buyer requests
type authorization struct {
	// Deadline is the unix second after which the signature is rejected.
	Deadline int64 `json:"deadline"`
	// Signature is the buyer's 0x-prefixed personal_sign signature.
	Signature string `json:"signature"`
}

type purchaseRequest struct {
	authorization
	Buyer    string `json:"buyer"`
	Currency string `json:"currency"`
	Quantity uint64 `json:"quantity"`
	// Value is the most the buyer pays in native currency, in its smallest unit.
	Value string `json:"value"`
}

type purchaseResult struct {
	Buyer            string `json:"buyer"`
	Currency         string `json:"currency"`
	Quantity         uint64 `json:"quantity"`
	QuoteCost        string `json:"quoteCost"`
	AmountPaid       string `json:"amountPaid"`
	TotalSold        uint64 `json:"totalSold"`
	CurrentTierIndex int    `json:"currentTierIndex"`
}

type purchaseResponse = HttpResponse[purchaseResult]

func (h *HttpHandler) Purchase(ctx *fiber.Ctx) (err error) {
	var req purchaseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid body")
	}
	buyer, err := parseAddress("buyer", req.Buyer)
	if err != nil {
		return errors.WithStack(err)
	}
	currency, err := entity.ParseCurrency(req.Currency)
	if err != nil {
		return errors.WithStack(toPublicError(err))
	}
	var value *uint256.Int
	signedValue := "0"
	if currency == entity.CurrencyNative {
		value, err = parseAmount("value", req.Value)
		if err != nil {
			return errors.WithStack(err)
		}
		signedValue = value.Dec()
	}
	if err := h.signatures.verify(h.usecase.Address(), signedRequest{
		action:    "purchase",
		buyer:     buyer,
		fields:    []string{currency.String(), strconv.FormatUint(req.Quantity, 10), signedValue},
		deadline:  req.Deadline,
		signature: req.Signature,
	}); err != nil {
		return errors.WithStack(err)
	}

	receipt, err := h.usecase.Purchase(ctx.UserContext(), sale.PurchaseRequest{
		Buyer:    buyer,
		Currency: currency,
		Quantity: req.Quantity,
		Value:    value,
	})
	if err != nil {
		return errors.WithStack(toPublicError(err))
	}

	return errors.WithStack(ctx.JSON(purchaseResponse{
		Result: &purchaseResult{
			Buyer:            strings.ToLower(receipt.Buyer.Hex()),
			Currency:         receipt.Currency.String(),
			Quantity:         receipt.Quantity,
			QuoteCost:        receipt.QuoteCost.String(),
			AmountPaid:       receipt.AmountPaid.Dec(),
			TotalSold:        receipt.State.TotalSold,
			CurrentTierIndex: receipt.State.CurrentTierIndex,
		},
	}))
}

type approveRequest struct {
	authorization
	Buyer  string `json:"buyer"`
	Amount string `json:"amount"`
}

type approveResult struct {
	Buyer     string `json:"buyer"`
	Allowance string `json:"allowance"`
}

type approveResponse = HttpResponse[approveResult]

// Approve sets the sale's allowance over the buyer's quote tokens.
func (h *HttpHandler) Approve(ctx *fiber.Ctx) (err error) {
	var req approveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid body")
	}
	buyer, err := parseAddress("buyer", req.Buyer)
	if err != nil {
		return errors.WithStack(err)
	}
	allowance, err := parseAmount("amount", req.Amount)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := h.signatures.verify(h.usecase.Address(), signedRequest{
		action:    "approve",
		buyer:     buyer,
		fields:    []string{allowance.Dec()},
		deadline:  req.Deadline,
		signature: req.Signature,
	}); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.Approve(ctx.UserContext(), buyer, allowance); err != nil {
		return errors.WithStack(toPublicError(err))
	}
	return errors.WithStack(ctx.JSON(approveResponse{
		Result: &approveResult{Buyer: strings.ToLower(buyer.Hex()), Allowance: allowance.Dec()},
	}))
}

type claimRequest struct {
	authorization
	Buyer string `json:"buyer"`
}

type claimResult struct {
	Buyer    string `json:"buyer"`
	Quantity uint64 `json:"quantity"`
}

type claimResponse = HttpResponse[claimResult]

func (h *HttpHandler) Claim(ctx *fiber.Ctx) (err error) {
	var req claimRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid body")
	}
	buyer, err := parseAddress("buyer", req.Buyer)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := h.signatures.verify(h.usecase.Address(), signedRequest{
		action:    "claim",
		buyer:     buyer,
		deadline:  req.Deadline,
		signature: req.Signature,
	}); err != nil {
		return errors.WithStack(err)
	}

	quantity, err := h.usecase.Claim(ctx.UserContext(), buyer)
	if err != nil {
		return errors.WithStack(toPublicError(err))
	}
	return errors.WithStack(ctx.JSON(claimResponse{
		Result: &claimResult{Buyer: strings.ToLower(buyer.Hex()), Quantity: quantity},
	}))
}
