package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/presale/v1")

	r.Get("/info", h.GetInfo)
	r.Get("/price", h.GetPrice)
	r.Get("/buyers/:address", h.GetBuyer)
	r.Get("/events", h.GetEvents)
	r.Post("/purchase", h.Purchase)
	r.Post("/approve", h.Approve)
	r.Post("/claim", h.Claim)

	admin := r.Group("/admin", h.requireOperator)
	admin.Post("/timeframe", h.ConfigureTimeframe)
	admin.Post("/claim", h.ConfigureClaim)
	admin.Post("/pause", h.Pause)
	admin.Post("/unpause", h.Unpause)

	return nil
}
