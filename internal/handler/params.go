package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParams reads ?page and ?limit, clamping absent or out-of-range values
// to sane defaults. Page is 1-based.
func pageParams(c *gin.Context, defaultSize, maxSize int) (page, perPage int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err = strconv.Atoi(c.Query("limit"))
	if err != nil || perPage < 1 {
		perPage = defaultSize
	}
	if perPage > maxSize {
		perPage = maxSize
	}
	return page, perPage
}
