package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestPageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		query   string
		page    int
		perPage int
	}{
		{name: "defaults", query: "", page: 1, perPage: 6},
		{name: "explicit", query: "?page=3&limit=10", page: 3, perPage: 10},
		{name: "clamped to max", query: "?limit=500", page: 1, perPage: 50},
		{name: "zero page", query: "?page=0", page: 1, perPage: 6},
		{name: "negative values", query: "?page=-2&limit=-5", page: 1, perPage: 6},
		{name: "garbage values", query: "?page=abc&limit=xyz", page: 1, perPage: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/"+tt.query, nil)

			page, perPage := pageParams(c, 6, 50)

			require.Equal(t, tt.page, page)
			require.Equal(t, tt.perPage, perPage)
		})
	}
}
