package httphandler

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getEventsRequest struct {
	Buyer string `query:"buyer"`
}

type event struct {
	Id        int64           `json:"id"`
	Kind      string          `json:"kind"`
	Account   string          `json:"account"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

type getEventsResult struct {
	List []event `json:"list"`
}

type getEventsResponse = HttpResponse[getEventsResult]

func (h *HttpHandler) GetEvents(ctx *fiber.Ctx) (err error) {
	var req getEventsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if req.Buyer == "" {
		return errs.NewPublicError("'buyer' is required")
	}
	buyer, err := parseAddress("buyer", req.Buyer)
	if err != nil {
		return errors.WithStack(err)
	}

	entries, err := h.usecase.GetEventsByBuyer(ctx.UserContext(), buyer.Hex())
	if err != nil {
		return errors.WithStack(toPublicError(err))
	}

	list := lo.Map(entries, func(e entity.JournalEntry, _ int) event {
		return event{
			Id:        e.ID,
			Kind:      string(e.Kind),
			Account:   e.Account,
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt,
		}
	})
	return errors.WithStack(ctx.JSON(getEventsResponse{
		Result: &getEventsResult{List: list},
	}))
}
