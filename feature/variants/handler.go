package variants

import (
	"errors"

	"catalog-manager/core/logger"
	"catalog-manager/core/reconcile"
	"catalog-manager/feature/variants/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for variant reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the variants routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	products := app.Group("/products/:id")
	products.Get("/variants", h.HandleGetVariants)
	products.Get("/options", h.HandleGetOptions)
	products.Post("/drift", h.HandleDrift)
	products.Post("/drift/preview", h.HandlePreview)
	products.Get("/drift/reports", h.HandleListReports)
	products.Get("/drift/reports/:name", h.HandleGetReport)

	drift := app.Group("/drift/:session")
	drift.Get("/", h.HandleGetSession)
	drift.Delete("/create/:variantId", h.HandleRemoveFromCreate)
	drift.Patch("/create/:variantId", h.HandleUpdatePending)
	drift.Delete("/delete/:variantId", h.HandleRemoveFromDelete)
	drift.Post("/commit", h.HandleCommit)
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrReportNotFound),
		errors.Is(err, reconcile.ErrVariantNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrCommitInFlight),
		errors.Is(err, ErrVariantNotPending):
		return fiber.StatusConflict
	case errors.Is(err, store.ErrInvalidID):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Debug(msg, zap.Error(err), zap.Int("status", status))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// HandleGetVariants returns the existing variants of a product.
// @Summary List Variants
// @Description Existing variants with prices and option values.
// @Tags variants
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} reconcile.Variant "Variants"
// @Failure 404 {object} map[string]string "Product Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /products/{id}/variants [get]
func (h *Handler) HandleGetVariants(c *fiber.Ctx) error {
	variants, err := h.service.Variants(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to load variants", err)
	}
	return c.JSON(variants)
}

// HandleGetOptions returns the stored options of a product.
// @Summary List Options
// @Tags variants
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} reconcile.Option "Options"
// @Failure 404 {object} map[string]string "Product Not Found"
// @Router /products/{id}/options [get]
func (h *Handler) HandleGetOptions(c *fiber.Ctx) error {
	options, err := h.service.Options(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to load options", err)
	}
	return c.JSON(options)
}

// HandleDrift computes variant drift and opens or recomputes an editing session.
// @Summary Compute Drift
// @Description Compares every option combination with the existing variants. Omitting options uses the stored ones; passing a sessionId recomputes that session.
// @Tags drift
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body DriftRequest false "Current option state"
// @Success 200 {object} SessionView "Session"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Product or Session Not Found"
// @Failure 409 {object} map[string]string "Commit In Progress"
// @Router /products/{id}/drift [post]
func (h *Handler) HandleDrift(c *fiber.Ctx) error {
	var req DriftRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body: " + err.Error(),
			})
		}
	}

	view, err := h.service.Drift(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, "Drift computation failed", err)
	}
	return c.JSON(view)
}

// HandlePreview computes variant drift without opening a session.
// @Summary Preview Drift
// @Description Read-only drift for the given option state, or the stored options when the body is empty.
// @Tags drift
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body DriftRequest false "Current option state (sessionId is ignored)"
// @Success 200 {object} reconcile.DriftResult "Drift"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Product Not Found"
// @Router /products/{id}/drift/preview [post]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	var req DriftRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body: " + err.Error(),
			})
		}
	}

	result, err := h.service.Preview(c.UserContext(), c.Params("id"), req.Options)
	if err != nil {
		return h.fail(c, "Drift preview failed", err)
	}
	return c.JSON(result)
}

// HandleGetSession returns the current state of an editing session.
// @Summary Get Session
// @Tags drift
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} SessionView "Session"
// @Failure 404 {object} map[string]string "Session Not Found"
// @Router /drift/{session} [get]
func (h *Handler) HandleGetSession(c *fiber.Ctx) error {
	view, err := h.service.Session(c.Params("session"))
	if err != nil {
		return h.fail(c, "Session lookup failed", err)
	}
	return c.JSON(view)
}

// HandleRemoveFromCreate drops a pending variant from the session.
// @Summary Decline Pending Variant
// @Tags drift
// @Produce json
// @Param session path string true "Session ID"
// @Param variantId path string true "Pending Variant ID"
// @Success 200 {object} SessionView "Session"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Commit In Progress"
// @Router /drift/{session}/create/{variantId} [delete]
func (h *Handler) HandleRemoveFromCreate(c *fiber.Ctx) error {
	view, err := h.service.RemoveFromCreate(c.Params("session"), c.Params("variantId"))
	if err != nil {
		return h.fail(c, "Remove from create failed", err)
	}
	return c.JSON(view)
}

// HandleRemoveFromDelete keeps an existing variant marked for deletion.
// @Summary Keep Variant
// @Tags drift
// @Produce json
// @Param session path string true "Session ID"
// @Param variantId path string true "Variant ID"
// @Success 200 {object} SessionView "Session"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Commit In Progress"
// @Router /drift/{session}/delete/{variantId} [delete]
func (h *Handler) HandleRemoveFromDelete(c *fiber.Ctx) error {
	view, err := h.service.RemoveFromDelete(c.Params("session"), c.Params("variantId"))
	if err != nil {
		return h.fail(c, "Remove from delete failed", err)
	}
	return c.JSON(view)
}

// HandleUpdatePending overrides fields of a pending variant before commit.
// @Summary Edit Pending Variant
// @Tags drift
// @Accept json
// @Produce json
// @Param session path string true "Session ID"
// @Param variantId path string true "Pending Variant ID"
// @Param patch body reconcile.PendingPatch true "Fields to override"
// @Success 200 {object} SessionView "Session"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Not Pending or Commit In Progress"
// @Router /drift/{session}/create/{variantId} [patch]
func (h *Handler) HandleUpdatePending(c *fiber.Ctx) error {
	var patch reconcile.PendingPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	view, err := h.service.UpdatePending(c.Params("session"), c.Params("variantId"), patch)
	if err != nil {
		return h.fail(c, "Pending update failed", err)
	}
	return c.JSON(view)
}

// HandleCommit applies the session to the catalog.
// @Summary Commit Session
// @Description Creates pending variants then deletes marked ones. Returns 207 when some items failed; the session then keeps only the failed items for retry.
// @Tags drift
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} CommitOutcome "All items applied"
// @Success 207 {object} CommitOutcome "Some items failed"
// @Failure 404 {object} map[string]string "Session Not Found"
// @Failure 409 {object} map[string]string "Commit In Progress"
// @Router /drift/{session}/commit [post]
func (h *Handler) HandleCommit(c *fiber.Ctx) error {
	outcome, err := h.service.Commit(c.UserContext(), c.Params("session"))
	if outcome == nil {
		return h.fail(c, "Commit failed", err)
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Commit partially failed", zap.Error(err))
		return c.Status(fiber.StatusMultiStatus).JSON(outcome)
	}
	return c.JSON(outcome)
}

// HandleListReports lists archived commit reports.
// @Summary List Commit Reports
// @Tags drift
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} ReportInfo "Reports, newest first"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /products/{id}/drift/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	reports, err := h.service.Reports(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to list reports", err)
	}
	return c.JSON(reports)
}

// HandleGetReport returns one archived commit report.
// @Summary Get Commit Report
// @Tags drift
// @Produce json
// @Param id path string true "Product ID"
// @Param name path string true "Report name (e.g. '20260101T120000.000Z.json')"
// @Success 200 {object} reconcile.CommitResult "Report"
// @Failure 404 {object} map[string]string "Report Not Found"
// @Router /products/{id}/drift/reports/{name} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	report, err := h.service.Report(c.UserContext(), c.Params("id"), c.Params("name"))
	if err != nil {
		return h.fail(c, "Failed to fetch report", err)
	}
	return c.JSON(report)
}
