package handlers

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/server/http/dto"
	"github.com/polkiloo/designstudio/internal/server/http/middleware"
)

const (
	pageParam     = "page"
	pageSizeParam = "page_size"
)

// Pagination holds page size limits for list endpoints.
type Pagination struct {
	DefaultSize int
	MaxSize     int
}

// CurrentSubject extracts the authenticated caller from context.
func CurrentSubject(c *gin.Context) model.Subject {
	return middleware.Subject(c)
}

// respondError maps domain errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var verr *domainErrors.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: verr.Message, Errors: verr.Fields})
	case errors.Is(err, domainErrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: domainErrors.ErrUnauthenticated.Error()})
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: "no active account found with the given credentials"})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Detail: domainErrors.ErrForbidden.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: "not found"})
	case errors.Is(err, domainErrors.ErrTariffInUse):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Detail: domainErrors.ErrTariffInUse.Error()})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Detail: domainErrors.ErrAlreadyExists.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "internal server error"})
	}
}

func respondBadRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: detail})
}

// pathID parses the :id path parameter. Malformed ids read as missing objects.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: "not found"})
		return 0, false
	}
	return id, true
}

// parsePage reads page and page_size query parameters.
func (p Pagination) parsePage(c *gin.Context) (model.Page, error) {
	page := model.Page{Number: 1, Size: p.DefaultSize}
	if raw := c.Query(pageParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, domainErrors.FieldError(pageParam, "invalid page")
		}
		page.Number = n
	}
	if raw := c.Query(pageSizeParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, domainErrors.FieldError(pageSizeParam, "a valid positive integer is required")
		}
		page.Size = min(n, p.MaxSize)
	}
	if page.Size <= 0 {
		page.Size = 1
	}
	// Keep the row offset representable; such pages are past the end anyway.
	page.Number = min(page.Number, math.MaxInt/page.Size)
	return page, nil
}

// respondPage writes the paged envelope. Pages past the end read as not found.
func respondPage[T, R any](c *gin.Context, result *model.PageResult[T], convert func(T, int) R) {
	if result.Page.Number > 1 && len(result.Items) == 0 {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: "invalid page"})
		return
	}

	resp := dto.PageResponse[R]{Count: result.Total, Results: make([]R, 0, len(result.Items))}
	for i, item := range result.Items {
		resp.Results = append(resp.Results, convert(item, i))
	}
	if result.HasNext() {
		resp.Next = pageLink(c, result.Page.Number+1)
	}
	if result.HasPrevious() {
		resp.Previous = pageLink(c, result.Page.Number-1)
	}
	c.JSON(http.StatusOK, resp)
}

func pageLink(c *gin.Context, number int) *string {
	u := url.URL{Path: c.Request.URL.Path}
	query := c.Request.URL.Query()
	if number <= 1 {
		query.Del(pageParam)
	} else {
		query.Set(pageParam, strconv.Itoa(number))
	}
	u.RawQuery = query.Encode()

	scheme := "http"
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	link := scheme + "://" + c.Request.Host + u.String()
	return &link
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domainErrors.FieldError(key, "must be a valid boolean")
	}
	return &v, nil
}

func queryDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domainErrors.FieldError(key, "enter a number")
	}
	return &d, nil
}
