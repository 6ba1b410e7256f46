package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"warehouse-service/internal/stock"
	"warehouse-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// writeDomainError maps the stock package's typed failures onto HTTP
// statuses. Components never swallow errors; this is the single place
// they become responses.
func writeDomainError(c echo.Context, log *zap.Logger, err error) error {
	var (
		validation   *stock.ValidationError
		notFound     *stock.NotFoundError
		invalidState *stock.InvalidStateError
		insufficient *stock.InsufficientStockError
		conflict     *stock.ConflictError
	)

	switch {
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validation.Error()})
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound.Error()})
	case errors.As(err, &invalidState):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": invalidState.Error()})
	case errors.As(err, &insufficient):
		prometheus.RecordStockRejection("insufficient_stock")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":     insufficient.Error(),
			"productId": insufficient.ProductID,
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": conflict.Error()})
	default:
		log.Error("Unexpected error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// Pagination is the list-endpoint envelope shared by every resource
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func paginationParams(c echo.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

func newPagination(page, limit int, total int64) Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseDateRange reads the optional startDate/endDate query filters.
// Both must be present for the range to apply, matching the report
// endpoints' contract.
func parseDateRange(c echo.Context) (start, end *time.Time) {
	s, e := c.QueryParam("startDate"), c.QueryParam("endDate")
	if s == "" || e == "" {
		return nil, nil
	}
	st, err := parseDate(s)
	if err != nil {
		return nil, nil
	}
	et, err := parseDate(e)
	if err != nil {
		return nil, nil
	}
	return &st, &et
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
