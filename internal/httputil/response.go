// Package httputil holds the JSON error envelope shared by handlers and
// middleware.
package httputil

import "github.com/gin-gonic/gin"

// ErrorResponse is the envelope every failed request serializes to.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// RespondError writes the error envelope and aborts the handler chain.
// The request ID is attached when the request ID middleware ran.
func RespondError(c *gin.Context, status int, code, message string) {
	resp := ErrorResponse{Code: code, Message: message}

	if rid, ok := c.Get("request_id"); ok {
		if s, ok := rid.(string); ok {
			resp.RequestID = s
		}
	}

	c.AbortWithStatusJSON(status, resp)
}
