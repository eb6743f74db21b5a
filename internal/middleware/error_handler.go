package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/domain/dto"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/logger"
)

// ErrorHandler converts errors attached to the gin context via c.Error()
// into the standardized JSON error body. Handlers that already wrote a
// response are left alone; only the last attached error is reported.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("request error")

	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.JSON(status, dto.NewErrorResponse("request failed", err))
}

// AbortWithError records the error on the context and writes the
// standardized body with the given status, stopping the handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
