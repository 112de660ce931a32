package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/server/http/dto"
)

// TariffHandler serves the tariff catalog.
type TariffHandler struct {
	facade TariffFacade
	paging Pagination
}

// NewTariffHandler constructs TariffHandler.
func NewTariffHandler(facade TariffFacade, paging Pagination) *TariffHandler {
	return &TariffHandler{facade: facade, paging: paging}
}

// List handles GET /api/v1/tariffs/.
func (h *TariffHandler) List(c *gin.Context) {
	query, err := h.listQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.facade.Tariffs(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, result, toTariffResponse)
}

func (h *TariffHandler) listQuery(c *gin.Context) (model.TariffListQuery, error) {
	var (
		query model.TariffListQuery
		err   error
	)
	if query.Page, err = h.paging.parsePage(c); err != nil {
		return query, err
	}
	if query.IsActive, err = queryBool(c, "is_active"); err != nil {
		return query, err
	}
	if query.MinPrice, err = queryDecimal(c, "min_price"); err != nil {
		return query, err
	}
	if query.MaxPrice, err = queryDecimal(c, "max_price"); err != nil {
		return query, err
	}
	query.Search = c.Query("search")
	query.Ordering = c.Query("ordering")
	return query, nil
}

// Get handles GET /api/v1/tariffs/:id/.
func (h *TariffHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	tariff, err := h.facade.Tariff(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTariffResponse(*tariff, 0))
}

// Create handles POST /api/v1/tariffs/.
func (h *TariffHandler) Create(c *gin.Context) {
	var req dto.TariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	tariff, err := h.facade.CreateTariff(c.Request.Context(), CurrentSubject(c), toNewTariff(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTariffResponse(*tariff, 0))
}

// Update handles PATCH /api/v1/tariffs/:id/.
func (h *TariffHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.TariffPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	tariff, err := h.facade.UpdateTariff(c.Request.Context(), CurrentSubject(c), id, model.TariffPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Features:    req.Features,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTariffResponse(*tariff, 0))
}

// Delete handles DELETE /api/v1/tariffs/:id/.
func (h *TariffHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteTariff(c.Request.Context(), CurrentSubject(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
