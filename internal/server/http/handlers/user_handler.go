package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/server/http/dto"
)

// UserHandler serves the caller profile.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Me handles GET /api/v1/users/me/.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.facade.Me(c.Request.Context(), CurrentSubject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Update handles PUT and PATCH /api/v1/users/me/update/.
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := h.facade.UpdateProfile(c.Request.Context(), CurrentSubject(c), model.ProfilePatch{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /api/v1/users/me/delete/.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteAccount(c.Request.Context(), CurrentSubject(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Restore handles POST /api/v1/admin/users/:id/restore/.
func (h *UserHandler) Restore(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.facade.RestoreUser(c.Request.Context(), CurrentSubject(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
