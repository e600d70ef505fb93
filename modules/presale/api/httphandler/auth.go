package httphandler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const bearerPrefix = "Bearer "

// requireOperator admits requests carrying the configured operator key. Admin
// routes are closed when no key is configured.
func (h *HttpHandler) requireOperator(ctx *fiber.Ctx) error {
	if h.operatorAPIKey == "" {
		return fiber.NewError(http.StatusForbidden, "operator API is disabled")
	}
	header := ctx.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return fiber.NewError(http.StatusUnauthorized, "missing operator key")
	}
	key := strings.TrimPrefix(header, bearerPrefix)
	if subtle.ConstantTimeCompare([]byte(key), []byte(h.operatorAPIKey)) != 1 {
		return fiber.NewError(http.StatusUnauthorized, "invalid operator key")
	}
	return ctx.Next()
}
