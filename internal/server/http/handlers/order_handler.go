package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
	paging Pagination
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, paging Pagination) *OrderHandler {
	return &OrderHandler{facade: facade, paging: paging}
}

// Create handles POST /api/v1/orders/.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentSubject(c), toNewOrder(req))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			respondError(c, domainErrors.FieldError("tariff", "object does not exist"))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order, 0))
}

// List handles GET /api/v1/orders/.
func (h *OrderHandler) List(c *gin.Context) {
	query, err := h.listQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.facade.Orders(c.Request.Context(), CurrentSubject(c), query)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, result, toOrderResponse)
}

func (h *OrderHandler) listQuery(c *gin.Context) (model.OrderListQuery, error) {
	var (
		query model.OrderListQuery
		err   error
	)
	if query.Page, err = h.paging.parsePage(c); err != nil {
		return query, err
	}
	if raw := c.Query("status"); raw != "" {
		status := model.OrderStatus(raw)
		query.Status = &status
	}
	dates := []struct {
		key    string
		target **time.Time
	}{
		{"created_at_after", &query.CreatedFrom},
		{"created_at_before", &query.CreatedTo},
		{"deadline_after", &query.DeadlineFrom},
		{"deadline_before", &query.DeadlineTo},
	}
	for _, d := range dates {
		if *d.target, err = queryDate(c, d.key); err != nil {
			return query, err
		}
	}
	query.Search = c.Query("search")
	query.Ordering = c.Query("ordering")
	return query, nil
}

// Get handles GET /api/v1/orders/:id/.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), CurrentSubject(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order, 0))
}

// Update handles PUT and PATCH /api/v1/orders/:id/update/.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.OrderPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	order, err := h.facade.UpdateOrder(c.Request.Context(), CurrentSubject(c), id, toOrderPatch(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order, 0))
}

// Delete handles DELETE /api/v1/orders/:id/delete/.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteOrder(c.Request.Context(), CurrentSubject(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdminGet handles GET /api/v1/admin/orders/:id/.
func (h *OrderHandler) AdminGet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.facade.AdminOrder(c.Request.Context(), CurrentSubject(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAdminOrderResponse(*order))
}

// Restore handles POST /api/v1/admin/orders/:id/restore/.
func (h *OrderHandler) Restore(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.facade.RestoreOrder(c.Request.Context(), CurrentSubject(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAdminOrderResponse(*order))
}

func queryDate(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return nil, domainErrors.FieldError(key, "enter a valid date")
	}
	return &t, nil
}

