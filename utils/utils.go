package utils

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination defaults
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// GenerateRateLimitKey creates a unique key for rate limiting
func GenerateRateLimitKey(ip, path string) string {
	return fmt.Sprintf("rl:%s:%s", ip, path)
}

// ErrorResponse creates a standardized error response
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := fiber.Map{
		"success": false,
		"error":   message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	return c.Status(status).JSON(response)
}

// SuccessResponse creates a standardized success response
func SuccessResponse(data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"data":    data,
	}
}

// PaginatedResponse structure for paginated results
type PaginatedResponse struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// Pagination reads page and limit from the query string
func Pagination(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultPageLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	return page, limit
}

// Paginate slices items for the requested page
func Paginate[T any](items []T, page, limit int) PaginatedResponse {
	start := len(items)
	if page < 1 {
		page = 1
	}
	if limit > 0 && page-1 < (len(items)+limit-1)/limit {
		start = (page - 1) * limit
	}
	end := len(items)
	if limit > 0 && limit < end-start {
		end = start + limit
	}
	return PaginatedResponse{
		Data:  items[start:end],
		Total: int64(len(items)),
		Page:  page,
		Limit: limit,
	}
}
