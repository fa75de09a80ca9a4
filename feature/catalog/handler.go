package catalog

import (
	"context"
	"errors"

	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for catalog sync.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Post("/sync", h.HandleSync)
	group.Post("/pull", h.HandlePull)
	group.Post("/push", h.HandlePush)
	group.Post("/stock", h.HandleStock)
	group.Post("/stock/all", h.HandleStockAll)
}

// HandleSync runs a full product sync.
// @Summary Sync Products
// @Description Pulls every remote product into the ERP, then pushes ERP items changed since the last sync.
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} reconcile.RunResult "Run Report"
// @Failure 409 {object} map[string]interface{} "Sync Disabled"
// @Failure 502 {object} map[string]interface{} "Remote Platform Error"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /catalog/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	return h.respond(c, "Product sync", h.service.SyncProducts)
}

// HandlePull runs the pull pass alone.
// @Summary Pull Products
// @Description Creates or updates ERP items from every remote product.
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} reconcile.RunResult "Run Report"
// @Failure 409 {object} map[string]interface{} "Sync Disabled"
// @Failure 502 {object} map[string]interface{} "Remote Platform Error"
// @Router /catalog/pull [post]
func (h *Handler) HandlePull(c *fiber.Ctx) error {
	return h.respond(c, "Product pull", h.service.PullProducts)
}

// HandlePush runs the push pass alone.
// @Summary Push Products
// @Description Creates or replaces remote products for ERP items changed since the last sync.
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} reconcile.RunResult "Run Report"
// @Failure 409 {object} map[string]interface{} "Sync Disabled"
// @Failure 502 {object} map[string]interface{} "Remote Platform Error"
// @Router /catalog/push [post]
func (h *Handler) HandlePush(c *fiber.Ctx) error {
	return h.respond(c, "Product push", h.service.PushProducts)
}

// HandleStock pushes the quantity of one item.
// @Summary Push Item Stock
// @Description Records an optional quantity for an item and pushes it to the remote platform.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body StockRequest true "Stock movement"
// @Success 200 {object} reconcile.RunResult "Run Report"
// @Failure 400 {object} map[string]interface{} "Invalid Request"
// @Failure 404 {object} map[string]interface{} "Item Not Found"
// @Failure 409 {object} map[string]interface{} "Sync Disabled"
// @Router /catalog/stock [post]
func (h *Handler) HandleStock(c *fiber.Ctx) error {
	var req StockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := models.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return h.respond(c, "Stock push", func(ctx context.Context) (*reconcile.RunResult, error) {
		return h.service.PushStock(ctx, req)
	})
}

// HandleStockAll pushes the quantity of every quantity-synced item.
// @Summary Push All Stock
// @Description Pushes the configured warehouse quantity of every item that opts into quantity sync.
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} reconcile.RunResult "Run Report"
// @Failure 409 {object} map[string]interface{} "Sync Disabled"
// @Failure 502 {object} map[string]interface{} "Remote Platform Error"
// @Router /catalog/stock/all [post]
func (h *Handler) HandleStockAll(c *fiber.Ctx) error {
	return h.respond(c, "Stock push", h.service.PushAllStock)
}

func (h *Handler) respond(c *fiber.Ctx, op string, fn func(context.Context) (*reconcile.RunResult, error)) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx := c.UserContext()

	res, err := fn(ctx)
	if err == nil {
		l.Info(op+" completed", zap.String("run_id", res.RunID), zap.String("status", string(res.Status)))
		return c.JSON(res)
	}

	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(op+" failed", zap.Error(err))
	} else {
		l.Warn(op+" rejected", zap.Error(err))
	}
	body := fiber.Map{"error": err.Error()}
	if res != nil {
		body["run"] = res
	}
	return c.Status(status).JSON(body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrSyncDisabled):
		return fiber.StatusConflict
	case errors.Is(err, reconcile.ErrNotFound):
		return fiber.StatusNotFound
	case reconcile.IsValidation(err):
		return fiber.StatusBadRequest
	case reconcile.IsTransport(err):
		return fiber.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
