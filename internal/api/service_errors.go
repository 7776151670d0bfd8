package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartcowork/cowork-gin/internal/service"
	"gorm.io/gorm"
)

// handleServiceError maps service layer failures onto the error envelope.
// It reports whether an error was written.
func handleServiceError(ctx *gin.Context, err error, operation string) bool {
	if err == nil {
		return false
	}

	var validationErr service.ValidationError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		Error(ctx, http.StatusNotFound, "record not found", err.Error())
	case errors.As(err, &validationErr):
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, service.ErrForbidden):
		Error(ctx, http.StatusForbidden, "operation not allowed", err.Error())
	case errors.Is(err, service.ErrAlreadySubmitted):
		Error(ctx, http.StatusConflict, "already submitted", err.Error())
	case errors.Is(err, service.ErrNotPending):
		Error(ctx, http.StatusConflict, "already processed", err.Error())
	default:
		Error(ctx, http.StatusInternalServerError, "failed to "+operation, err.Error())
	}
	return true
}
