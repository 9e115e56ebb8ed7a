package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pressratelabs/pressrate/pkg/db/pagination"
)

// DataResponse is the generic single-object envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// ListResponse is the generic paginated envelope.
type ListResponse struct {
	Data     any                  `json:"data"`
	PageInfo *pagination.PageInfo `json:"page_info,omitempty"`
}

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func respondList(c *gin.Context, data any, pageInfo *pagination.PageInfo) {
	if pageInfo == nil {
		c.JSON(http.StatusOK, gin.H{"data": data})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "page_info": pageInfo})
}
