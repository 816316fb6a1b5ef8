package controllers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParams reads the page/limit convention shared by every list endpoint.
func pageParams(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	}
	offset = (page - 1) * limit
	return page, limit, offset
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
