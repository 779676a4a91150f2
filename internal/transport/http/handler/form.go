package handler

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Multipart fields arrive as strings; these helpers turn the present
// ones into typed pointers so partial updates can tell "absent" from
// "zero".

func formString(c *gin.Context, key string) *string {
	value, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func formFloat(c *gin.Context, key string) (*float64, bool) {
	value, ok := c.GetPostForm(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil, true
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

func formInt(c *gin.Context, key string) (*int, bool) {
	value, ok := c.GetPostForm(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil, true
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

func formBool(c *gin.Context, key string) (*bool, bool) {
	value, ok := c.GetPostForm(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil, true
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

// formStringSlice accepts a JSON array ("[\"pool\",\"garage\"]") or a
// comma-separated list, matching how listing forms send amenities.
func formStringSlice(c *gin.Context, key string) ([]string, bool) {
	value, ok := c.GetPostForm(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil, true
	}
	value = strings.TrimSpace(value)

	if strings.HasPrefix(value, "[") {
		var items []string
		if err := json.Unmarshal([]byte(value), &items); err != nil {
			return nil, false
		}
		return items, true
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items, true
}
