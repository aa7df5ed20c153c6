package restapi

import (
	"errors"
	"net/http"

	"simulation_preview/internal/app/service"
	"simulation_preview/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// Error codes returned in APIError.Code.
const (
	CodeInvalidRequest = "invalid_request"
	CodeUnknownNetwork = "unknown_network"
	CodeTooManyChanges = "too_many_changes"
	CodeBodyTooLarge   = "body_too_large"
	CodeInternal       = "internal_error"
)

// APIError is the JSON body of every error response.
type APIError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps service and domain errors onto HTTP statuses.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUnknownNetwork):
		return http.StatusNotFound, CodeUnknownNetwork
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge, CodeBodyTooLarge
	case errors.Is(err, service.ErrTooManyChanges):
		return http.StatusBadRequest, CodeTooManyChanges
	case errors.Is(err, entity.ErrInvalidAsset),
		errors.Is(err, entity.ErrInvalidStandard),
		errors.Is(err, entity.ErrInvalidQuantity),
		errors.Is(err, entity.ErrInvalidFiatAmount),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest, CodeInvalidRequest
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

var (
	errBadRequest   = errors.New("bad request")
	errBodyTooLarge = errors.New("request body too large")
)

func abortWithError(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, APIError{Error: msg, Code: code})
}
