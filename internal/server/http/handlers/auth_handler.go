package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/server/http/dto"
)

// AuthHandler processes registration and token issuance.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/v1/users/register/.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, tokens, err := h.facade.Register(c.Request.Context(), toRegistration(req))
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, dto.ErrorResponse{
				Detail: domainErrors.ErrAlreadyExists.Error(),
				Errors: map[string]string{"username": "a user with that username already exists"},
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		User:              toUserResponse(user),
		TokenPairResponse: dto.TokenPairResponse{Access: tokens.Access, Refresh: tokens.Refresh},
	})
}

// Token handles POST /api/v1/users/token/.
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(c, requiredFields(map[string]string{"username": req.Username, "password": req.Password}))
		return
	}

	tokens, err := h.facade.ObtainTokens(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenPairResponse{Access: tokens.Access, Refresh: tokens.Refresh})
}

// Refresh handles POST /api/v1/users/token/refresh/.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Refresh == "" {
		respondError(c, requiredFields(map[string]string{"refresh": ""}))
		return
	}

	access, err := h.facade.RefreshAccess(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccessResponse{Access: access})
}

func requiredFields(values map[string]string) error {
	fields := make(map[string]string)
	for name, v := range values {
		if v == "" {
			fields[name] = "this field is required"
		}
	}
	return &domainErrors.ValidationError{Message: domainErrors.ErrValidation.Error(), Fields: fields}
}
