package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	estimatedomain "github.com/smallbiznis/estimator/internal/estimate/domain"
	pricingdomain "github.com/smallbiznis/estimator/internal/pricing/domain"
)

type updateEstimateRequest struct {
	PlanID     string          `json:"plan_id"`
	Selections json.RawMessage `json:"selections"`
}

func (s *Server) GetEstimate(c *gin.Context) {
	resp, err := s.estimateSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateEstimate(c *gin.Context) {
	var req updateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	planID := strings.TrimSpace(req.PlanID)
	if planID == "" {
		AbortWithError(c, estimatedomain.ErrInvalidPlanID)
		return
	}

	selections, err := decodeSelections(req.Selections)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.estimateSvc.Update(c.Request.Context(), estimatedomain.UpdateRequest{
		PlanID:     planID,
		Selections: selections,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) FinaliseEstimate(c *gin.Context) {
	resp, err := s.estimateSvc.Finalise(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// decodeSelections requires a JSON object.
func decodeSelections(raw json.RawMessage) (pricingdomain.Selections, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return pricingdomain.Selections{}, estimatedomain.ErrInvalidSelections
	}

	var selections pricingdomain.Selections
	if err := json.Unmarshal(trimmed, &selections); err != nil {
		return pricingdomain.Selections{}, estimatedomain.ErrInvalidSelections
	}
	return selections, nil
}
