package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bidtab/internal/domain"
	"bidtab/internal/parser"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapExtractionError translates pipeline errors to HTTP status codes and
// error codes. Anything unrecognized is treated as an upstream model failure,
// since the gateway is the only dependency that can fail unpredictably.
func MapExtractionError(err error) (status int, code, msg string) {
	var limitErr *parser.RefinementLimitError
	var truncErr *parser.TruncationError
	var formatErr *parser.FormatError

	switch {
	case errors.Is(err, domain.ErrLLMNotConfigured):
		return http.StatusInternalServerError, "LLM_NOT_CONFIGURED", err.Error()
	case errors.Is(err, domain.ErrNoFiles):
		return http.StatusBadRequest, "NO_FILES", err.Error()
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", err.Error()
	case errors.Is(err, domain.ErrRenderFailed):
		return http.StatusInternalServerError, "RENDER_FAILED", err.Error()
	case errors.As(err, &limitErr):
		return http.StatusBadRequest, "REFINEMENT_LIMIT", limitErr.Error()
	case errors.As(err, &truncErr):
		return http.StatusBadGateway, "OUTPUT_TRUNCATED", truncErr.Error()
	case errors.As(err, &formatErr):
		return http.StatusBadGateway, "BAD_MODEL_OUTPUT", formatErr.Error()
	default:
		return http.StatusBadGateway, "UPSTREAM_ERROR", "upstream model call failed: " + err.Error()
	}
}

// HandleError maps a pipeline error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapExtractionError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%v] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
