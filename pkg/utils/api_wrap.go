package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error      string      `json:"error"`
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		Error:      http.StatusText(code),
		Message:    message,
		StatusCode: code,
	})
}

func RespondErrorWithDetails(c *gin.Context, code int, message string, details interface{}) {
	c.JSON(code, ErrorResponse{
		Error:      http.StatusText(code),
		Message:    message,
		StatusCode: code,
		Details:    details,
	})
}

// HandleServiceError translates service-layer errors into the error envelope.
// Operational errors (*APIError) keep their status code and details; anything
// else becomes a generic 500 so internals never leak to clients.
func HandleServiceError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		RespondErrorWithDetails(c, apiErr.StatusCode, apiErr.Message, apiErr.Details)
		return
	}
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}
