package api

import (
	"github.com/gin-gonic/gin"
)

type Error struct {
	Code    int
	Message string
}

// HandlerFunc is an endpoint that returns a success status and body, or an
// *Error which is rendered as {"error": message} with its code.
type HandlerFunc func(ctx *gin.Context) (int, any, *Error)

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status, result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(status, result)
	}
}
