package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"complainthub/backend/internal/account"
	"complainthub/backend/internal/storage"
)

// GetOwnConsumerProfile returns the caller's consumer profile.
func (h *Handler) GetOwnConsumerProfile(c *gin.Context) {
	profile, err := h.Accounts.GetOwnConsumerProfile(identityFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetOwnCompanyProfile returns the caller's company profile.
func (h *Handler) GetOwnCompanyProfile(c *gin.Context) {
	profile, err := h.Accounts.GetOwnCompanyProfile(identityFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type updateCompanyRequest struct {
	TradeName   *string `json:"trade_name"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
}

// UpdateOwnCompanyProfile edits the caller's company profile.
func (h *Handler) UpdateOwnCompanyProfile(c *gin.Context) {
	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.Accounts.UpdateCompanyProfile(identityFrom(c), account.UpdateCompanyInput{
		TradeName:   req.TradeName,
		Description: req.Description,
		Phone:       req.Phone,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListCompanies is the administrator directory with optional email and
// tax-id substring filters.
func (h *Handler) ListCompanies(c *gin.Context) {
	filter := storage.CompanyFilter{
		EmailContains: c.Query("email"),
		TaxIDContains: c.Query("tax_id"),
	}
	companies, err := h.Accounts.ListCompanies(identityFrom(c), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}
