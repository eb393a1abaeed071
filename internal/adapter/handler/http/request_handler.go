package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/export"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/usecase"
)

// RequestHandler handles budget request endpoints
type RequestHandler struct {
	requests *usecase.RequestUsecase
	exports  *usecase.ExportUsecase
	logger   *zap.Logger
}

// NewRequestHandler creates a new request handler instance
func NewRequestHandler(requests *usecase.RequestUsecase, exports *usecase.ExportUsecase, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		requests: requests,
		exports:  exports,
		logger:   logger,
	}
}

// Create handles POST /api/v1/requests
func (h *RequestHandler) Create(c echo.Context) error {
	var in dto.CreateBudgetRequestInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, h.logger, invalidBody(err))
	}

	req, err := h.requests.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBudgetRequestResponse(req))
}

// List handles GET /api/v1/requests
func (h *RequestHandler) List(c echo.Context) error {
	var in dto.RequestFiltersInput
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &in); err != nil {
		return respondError(c, h.logger, invalidBody(err))
	}

	page, err := h.requests.List(c.Request().Context(), in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.NewRequestListResponse(page))
}

// Get handles GET /api/v1/requests/:id
func (h *RequestHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	detail, err := h.requests.GetDetail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.NewRequestDetailResponse(detail))
}

// Update handles PATCH /api/v1/requests/:id
func (h *RequestHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var in dto.UpdateBudgetRequestInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, h.logger, invalidBody(err))
	}

	req, err := h.requests.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.NewBudgetRequestResponse(req))
}

// Delete handles DELETE /api/v1/requests/:id
func (h *RequestHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if err := h.requests.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}

// Submit handles POST /api/v1/requests/:id/submit
func (h *RequestHandler) Submit(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	req, err := h.requests.Submit(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.NewBudgetRequestResponse(req))
}

// Recalculate handles POST /api/v1/requests/:id/recalculate
func (h *RequestHandler) Recalculate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	req, err := h.requests.RecalculateTotal(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.NewBudgetRequestResponse(req))
}

// Export handles GET /api/v1/requests/:id/export
func (h *RequestHandler) Export(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var buf bytes.Buffer
	if err := h.exports.Export(c.Request().Context(), id, &buf); err != nil {
		return respondError(c, h.logger, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="budget-request-%d.xlsx"`, id))
	return c.Blob(http.StatusOK, export.ContentType, buf.Bytes())
}
