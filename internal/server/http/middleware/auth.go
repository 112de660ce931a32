package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/server/http/dto"
)

// SubjectContextKey is a gin context key for the authenticated subject.
const SubjectContextKey = "subject"

// SubjectResolver turns an access token into the calling subject.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, token string) (model.Subject, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(resolver SubjectResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthenticated(c)
			return
		}

		subject, err := resolver.ResolveSubject(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainErrors.ErrUnauthenticated) {
				abortUnauthenticated(c)
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "internal server error"})
			return
		}

		c.Set(SubjectContextKey, subject)
		c.Next()
	}
}

// StaffRequired rejects authenticated callers without the staff flag.
func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Subject(c).IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Detail: domainErrors.ErrForbidden.Error()})
			return
		}
		c.Next()
	}
}

// Subject returns the caller stored by AuthRequired or an anonymous subject.
func Subject(c *gin.Context) model.Subject {
	val, ok := c.Get(SubjectContextKey)
	if !ok {
		return model.Subject{}
	}
	subject, _ := val.(model.Subject)
	return subject
}

func abortUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: domainErrors.ErrUnauthenticated.Error()})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
