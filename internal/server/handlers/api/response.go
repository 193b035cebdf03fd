// Package api defines the JSON envelope shared by every handler:
// {"success": true, ...data} or {"success": false, "error": "..."}.
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: code=%s, message=%s", e.Code, e.Message)
}

// OK writes a success envelope. Extra key/value pairs are merged next to
// "success" so handlers keep the flat response shape of the API.
func OK(ctx *gin.Context, status int, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	ctx.PureJSON(status, body)
}

// AbortWithError records err on the context and writes a failure envelope.
func AbortWithError(ctx *gin.Context, status int, code string, err error) {
	ctx.Abort()
	ctx.Error(&APIError{Code: code, Message: err.Error()})
	ctx.PureJSON(status, gin.H{
		"success": false,
		"code":    code,
		"error":   err.Error(),
	})
}
