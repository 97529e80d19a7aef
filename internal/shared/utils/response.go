package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coursekit/internal/shared/errors"
)

// APIResponse is the envelope every JSON endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ListResponse wraps paginated collections.
type ListResponse struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{Success: true, Data: data, Message: message})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Type: "error", Message: message},
	})
}

// ErrorResponseWithError maps an AppError onto its HTTP status; anything else
// becomes an opaque 500.
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		c.JSON(appErr.Code, APIResponse{
			Success: false,
			Error: &ErrorInfo{
				Type:    string(appErr.Type),
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
		return
	}

	ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}
