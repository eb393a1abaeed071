package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/usecase"
)

// ItemHandler handles budget line item endpoints
type ItemHandler struct {
	items  *usecase.ItemUsecase
	logger *zap.Logger
}

// NewItemHandler creates a new item handler instance
func NewItemHandler(items *usecase.ItemUsecase, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		items:  items,
		logger: logger,
	}
}

// ListByRequest handles GET /api/v1/requests/:id/items
func (h *ItemHandler) ListByRequest(c echo.Context) error {
	requestID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	items, err := h.items.ListByRequest(c.Request().Context(), requestID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.NewBudgetItemResponses(items))
}

// Create handles POST /api/v1/requests/:id/items
func (h *ItemHandler) Create(c echo.Context) error {
	requestID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var in dto.CreateBudgetItemInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, h.logger, invalidBody(err))
	}

	item, err := h.items.Create(c.Request().Context(), requestID, in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBudgetItemResponse(item))
}

// Get handles GET /api/v1/items/:id
func (h *ItemHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	item, err := h.items.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.NewBudgetItemResponse(item))
}

// Update handles PATCH /api/v1/items/:id
func (h *ItemHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var in dto.UpdateBudgetItemInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, h.logger, invalidBody(err))
	}

	item, err := h.items.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.NewBudgetItemResponse(item))
}

// Delete handles DELETE /api/v1/items/:id
func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	ok, err := h.items.Delete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.DeleteResponse{Success: ok})
}
