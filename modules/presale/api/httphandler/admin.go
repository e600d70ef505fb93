package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gofiber/fiber/v2"
)

type configureTimeframeRequest struct {
	// unix seconds
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

type configureClaimRequest struct {
	ClaimStart int64 `json:"claimStart"`
}

type okResult struct {
	Ok bool `json:"ok"`
}

type okResponse = HttpResponse[okResult]

func respondOk(ctx *fiber.Ctx) error {
	return errors.WithStack(ctx.JSON(okResponse{Result: &okResult{Ok: true}}))
}

func (h *HttpHandler) ConfigureTimeframe(ctx *fiber.Ctx) (err error) {
	var req configureTimeframeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid body")
	}
	if err := h.usecase.ConfigureSaleTimeframe(ctx.UserContext(), time.Unix(req.Start, 0).UTC(), time.Unix(req.End, 0).UTC()); err != nil {
		return errors.WithStack(toPublicError(err))
	}
	return respondOk(ctx)
}

func (h *HttpHandler) ConfigureClaim(ctx *fiber.Ctx) (err error) {
	var req configureClaimRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid body")
	}
	if err := h.usecase.ConfigureClaim(ctx.UserContext(), time.Unix(req.ClaimStart, 0).UTC()); err != nil {
		return errors.WithStack(toPublicError(err))
	}
	return respondOk(ctx)
}

func (h *HttpHandler) Pause(ctx *fiber.Ctx) (err error) {
	if err := h.usecase.Pause(ctx.UserContext()); err != nil {
		return errors.WithStack(toPublicError(err))
	}
	return respondOk(ctx)
}

func (h *HttpHandler) Unpause(ctx *fiber.Ctx) (err error) {
	if err := h.usecase.Unpause(ctx.UserContext()); err != nil {
		return errors.WithStack(toPublicError(err))
	}
	return respondOk(ctx)
}
