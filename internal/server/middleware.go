package server

import (
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/estimator/internal/employer"
)

// EmployerContext binds the acting employer to the request context. Every
// request acts for the configured default employer.
func (s *Server) EmployerContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := employer.WithID(c.Request.Context(), s.cfg.DefaultEmployerID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
