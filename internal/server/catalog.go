package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListProviders(c *gin.Context) {
	resp, err := s.catalogSvc.ListProviders(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListPlans(c *gin.Context) {
	var query struct {
		ProviderID string `form:"provider_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.catalogSvc.ListPlans(c.Request.Context(), strings.TrimSpace(query.ProviderID))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
