package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	estimatedomain "github.com/smallbiznis/estimator/internal/estimate/domain"
	"github.com/smallbiznis/estimator/internal/lock"
	pricingdomain "github.com/smallbiznis/estimator/internal/pricing/domain"
)

const (
	codeValidation         = "validation_error"
	codeNotFound           = "not_found"
	codeServiceUnavailable = "service_unavailable"
	codeInternal           = "internal_error"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Code:    codeInternal,
			Message: "internal server error",
		}
	}

	var (
		blocked  *estimatedomain.BlockedError
		notFound *pricingdomain.PlanNotFoundError
	)
	switch {
	case errors.As(err, &blocked):
		return http.StatusBadRequest, errorPayload{
			Code:    codeValidation,
			Message: blocked.Error(),
		}
	case errors.Is(err, pricingdomain.ErrCurrencyMismatch):
		return http.StatusBadRequest, errorPayload{
			Code:    codeValidation,
			Message: err.Error(),
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Code:    codeValidation,
			Message: validationErrorMessage(err),
		}
	case errors.As(err, &notFound):
		return http.StatusNotFound, errorPayload{
			Code:    codeNotFound,
			Message: notFound.Error(),
		}
	case errors.Is(err, estimatedomain.ErrEstimateNotFound):
		return http.StatusNotFound, errorPayload{
			Code:    codeNotFound,
			Message: "No estimate found",
		}
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Code:    codeNotFound,
			Message: "not found",
		}
	case errors.Is(err, lock.ErrLockTimeout):
		return http.StatusServiceUnavailable, errorPayload{
			Code:    codeServiceUnavailable,
			Message: "estimate is being updated, retry shortly",
		}
	case errors.Is(err, catalogdomain.ErrNoPlans):
		return http.StatusInternalServerError, errorPayload{
			Code:    codeInternal,
			Message: "No plans available",
		}
	case errors.Is(err, estimatedomain.ErrPlanMissing):
		return http.StatusInternalServerError, errorPayload{
			Code:    codeInternal,
			Message: "Plan not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Code:    codeInternal,
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, catalogdomain.ErrInvalidProvider),
		errors.Is(err, estimatedomain.ErrInvalidPlanID),
		errors.Is(err, estimatedomain.ErrInvalidSelections):
		return true
	default:
		return false
	}
}

func validationErrorMessage(err error) string {
	switch {
	case errors.Is(err, catalogdomain.ErrInvalidProvider):
		return "provider_id is required"
	case errors.Is(err, estimatedomain.ErrInvalidPlanID):
		return "plan_id is required"
	case errors.Is(err, estimatedomain.ErrInvalidSelections):
		return "selections must be an object"
	default:
		return "invalid request"
	}
}

// classifyErrorForLog reports the error type and a stable code for request logs.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	return payload.Code, errorCode(err)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, estimatedomain.ErrEstimateBlocked):
		return estimatedomain.ErrEstimateBlocked.Error()
	case errors.Is(err, pricingdomain.ErrPlanNotFound):
		return pricingdomain.ErrPlanNotFound.Error()
	case errors.Is(err, pricingdomain.ErrCurrencyMismatch):
		return pricingdomain.ErrCurrencyMismatch.Error()
	case errors.Is(err, estimatedomain.ErrEstimateNotFound):
		return estimatedomain.ErrEstimateNotFound.Error()
	case isValidationError(err), errors.Is(err, ErrNotFound),
		errors.Is(err, lock.ErrLockTimeout),
		errors.Is(err, catalogdomain.ErrNoPlans),
		errors.Is(err, estimatedomain.ErrPlanMissing):
		return rootError(err).Error()
	default:
		return "unexpected"
	}
}

func rootError(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
