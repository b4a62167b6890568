// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/usecase/limit"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
)

// LimitController handles monthly spending limit endpoints.
type LimitController struct {
	setUseCase    *limit.SetLimitUseCase
	changeUseCase *limit.ChangeLimitUseCase
	deleteUseCase *limit.DeleteLimitUseCase
}

// NewLimitController creates a new limit controller instance.
func NewLimitController(
	setUseCase *limit.SetLimitUseCase,
	changeUseCase *limit.ChangeLimitUseCase,
	deleteUseCase *limit.DeleteLimitUseCase,
) *LimitController {
	return &LimitController{
		setUseCase:    setUseCase,
		changeUseCase: changeUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Set handles POST /limits requests.
func (c *LimitController) Set(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthorized(ctx)
		return
	}

	var req dto.SetLimitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidLimitAmount),
		})
		return
	}

	output, err := c.setUseCase.Execute(ctx.Request.Context(), limit.SetLimitInput{
		UserID:      userID,
		LimitAmount: req.Amount,
	})
	if err != nil {
		c.handleLimitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLimitResponse(output.Limit))
}

// Change handles PATCH /limits/:id requests.
func (c *LimitController) Change(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthorized(ctx)
		return
	}

	limitID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid limit ID format",
		})
		return
	}

	var req dto.ChangeLimitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidLimitAmount),
		})
		return
	}

	output, err := c.changeUseCase.Execute(ctx.Request.Context(), limit.ChangeLimitInput{
		UserID:      userID,
		LimitID:     limitID,
		LimitAmount: req.Amount,
	})
	if err != nil {
		c.handleLimitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLimitResponse(output.Limit))
}

// Delete handles DELETE /limits/:id requests.
func (c *LimitController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthorized(ctx)
		return
	}

	limitID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid limit ID format",
		})
		return
	}

	_, err = c.deleteUseCase.Execute(ctx.Request.Context(), limit.DeleteLimitInput{
		UserID:  userID,
		LimitID: limitID,
	})
	if err != nil {
		c.handleLimitError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *LimitController) unauthorized(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// handleLimitError handles limit errors and returns appropriate HTTP responses.
func (c *LimitController) handleLimitError(ctx *gin.Context, err error) {
	var limErr *domainerror.LimitError
	if errors.As(err, &limErr) {
		statusCode := c.getStatusCodeForLimitError(limErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: limErr.Message,
			Code:  string(limErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForLimitError maps limit error codes to HTTP status codes.
func (c *LimitController) getStatusCodeForLimitError(code domainerror.LimitErrorCode) int {
	switch code {
	case domainerror.ErrCodeLimitNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedLimit:
		return http.StatusForbidden
	case domainerror.ErrCodeLimitAlreadySet,
		domainerror.ErrCodeInvalidLimitAmount:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
