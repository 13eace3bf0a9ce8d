package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princeprakhar/gold-marketplace/internal/api/middleware"
	"github.com/princeprakhar/gold-marketplace/internal/services"
	"github.com/princeprakhar/gold-marketplace/internal/utils"
	"github.com/princeprakhar/gold-marketplace/pkg/logger"
	"github.com/shopspring/decimal"
)

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		logger.Error(message, ": ", err)
	}
	utils.SendError(c, status, message, err)
}

func callerFrom(c *gin.Context) services.Caller {
	return services.Caller{
		UserID: c.GetUint(middleware.ContextUserID),
		Role:   c.GetString(middleware.ContextUserRole),
	}
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s", services.ErrValidation, name)
	}
	return uint(id), nil
}

// parseCatalogFilter turns query parameters into a catalog filter. Present but
// malformed values are rejected rather than ignored.
func parseCatalogFilter(c *gin.Context) (services.CatalogFilter, error) {
	filter := services.CatalogFilter{
		Category: c.Query("category"),
		Search:   c.Query("q"),
		ViewerID: c.GetUint(middleware.ContextUserID),
	}

	decimals := []struct {
		name string
		dest *decimal.NullDecimal
	}{
		{"min_price", &filter.MinPrice},
		{"max_price", &filter.MaxPrice},
		{"min_weight", &filter.MinWeight},
		{"max_weight", &filter.MaxWeight},
		{"max_profit_percent", &filter.MaxProfitPercent},
		{"max_making_fee", &filter.MaxMakingFee},
	}
	for _, d := range decimals {
		raw := strings.TrimSpace(c.Query(d.name))
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: %s must be a number", services.ErrValidation, d.name)
		}
		*d.dest = decimal.NewNullDecimal(value)
	}

	page, limit, err := parsePaging(c)
	if err != nil {
		return filter, err
	}
	filter.Page, filter.Limit = page, limit

	if raw := strings.TrimSpace(c.Query("seller_id")); raw != "" {
		sellerID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filter, fmt.Errorf("%w: seller_id must be a positive integer", services.ErrValidation)
		}
		filter.SellerID = uint(sellerID)
	}

	return filter, nil
}

// parsePaging reads the page and limit query parameters. Absent values come
// back as zero so the service applies its defaults.
func parsePaging(c *gin.Context) (page, limit int, err error) {
	ints := []struct {
		name string
		dest *int
	}{
		{"page", &page},
		{"limit", &limit},
	}
	for _, i := range ints {
		raw := strings.TrimSpace(c.Query(i.name))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return 0, 0, fmt.Errorf("%w: %s must be a positive integer", services.ErrValidation, i.name)
		}
		*i.dest = value
	}
	return page, limit, nil
}
