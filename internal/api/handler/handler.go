// Package handler binds the domain services to gin routes. Handlers stay
// thin: bind input, call the service, map the error taxonomy to a status.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"complainthub/backend/internal/account"
	"complainthub/backend/internal/apperr"
	"complainthub/backend/internal/auth"
	"complainthub/backend/internal/complaint"
	"complainthub/backend/internal/report"
	"complainthub/backend/internal/storage"
)

const identityKey = "identity"

type Handler struct {
	Auth       *auth.Service
	Accounts   *account.Service
	Complaints *complaint.Service
	Reports    *report.Service
	Storage    storage.Storage
	Logger     *zap.Logger
}

func NewHandler(authSvc *auth.Service, accounts *account.Service, complaints *complaint.Service, reports *report.Service, st storage.Storage, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Auth:       authSvc,
		Accounts:   accounts,
		Complaints: complaints,
		Reports:    reports,
		Storage:    st,
		Logger:     logger,
	}
}

// identityFrom pulls the identity stored by RequireIdentity.
func identityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*auth.Identity)
	return ident
}

// respondError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is a 500 with the detail kept in the log, not the body.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
