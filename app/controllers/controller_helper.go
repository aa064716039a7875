package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam reads a numeric path parameter. Returns 0 when missing or invalid.
func parseIDParam(c *fiber.Ctx, name string) uint {
	raw := c.Params(name)
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// parsePagination reads offset/limit query params with sane bounds.
func parsePagination(c *fiber.Ctx) (int, int) {
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return offset, limit
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
