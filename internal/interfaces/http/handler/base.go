package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// BaseHandler provides shared response helpers
type BaseHandler struct{}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// DomainError maps a service error to its HTTP status using the domain error
// code. Errors without a code are internal failures; the message is not
// echoed to the client for those.
func (h *BaseHandler) DomainError(c *gin.Context, err error) {
	code := shared.CodeOf(err)
	status := dto.GetHTTPStatus(code)
	if code == "" {
		c.JSON(status, dto.NewErrorResponse(dto.ErrCodeInternal, "internal error"))
		return
	}
	c.JSON(status, dto.NewErrorResponse(code, err.Error()))
}
