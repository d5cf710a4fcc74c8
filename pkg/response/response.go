package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the JSON body shared by every endpoint.
// Alert is the business outcome flag; it is omitted on endpoints that never carried one.
type Envelope[T any] struct {
	Message string `json:"message"`
	Alert   *bool  `json:"alert,omitempty"`
	Data    *T     `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func flag(b bool) *bool { return &b }

// Success writes {message, alert:true, data}.
func Success[T any](ctx *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, Envelope[T]{Message: message, Alert: flag(true), Data: &data})
}

// Alert writes {message, alert}.
func Alert(ctx *gin.Context, status int, message string, ok bool) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, Envelope[any]{Message: message, Alert: flag(ok)})
}

// Message writes {message}.
func Message(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, Envelope[any]{Message: message})
}

// Error writes {message, alert:false, error} and aborts the chain.
func Error(ctx *gin.Context, status int, message string, err any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, Envelope[any]{Message: message, Alert: flag(false), Error: err})
}
