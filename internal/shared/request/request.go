// Package request parses path and query parameters shared by handlers.
package request

import (
	"strconv"
	"strings"

	"go-workforce/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.InvalidRequest(name + " must be a positive integer")
	}
	return uint(id), nil
}

// OptionalString returns nil when the query parameter is absent or blank.
func OptionalString(c *gin.Context, name string) *string {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

func OptionalUint(c *gin.Context, name string) (*uint, error) {
	raw := OptionalString(c, name)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.ParseUint(*raw, 10, 64)
	if err != nil {
		return nil, apperror.InvalidRequest(name + " must be a positive integer")
	}
	id := uint(v)
	return &id, nil
}

func OptionalBool(c *gin.Context, name string) (*bool, error) {
	raw := OptionalString(c, name)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, apperror.InvalidRequest(name + " must be true or false")
	}
	return &v, nil
}
