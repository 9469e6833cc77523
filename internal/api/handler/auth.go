package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"complainthub/backend/internal/account"
)

type registerConsumerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

// RegisterConsumer creates a consumer account and returns a token for it.
func (h *Handler) RegisterConsumer(c *gin.Context) {
	var req registerConsumerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acc, profile, err := h.Accounts.RegisterConsumer(account.RegisterConsumerInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.Auth.IssueToken(acc.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"account":  acc,
		"consumer": profile,
		"token":    token,
	})
}

type registerCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Phone       string `json:"phone"`
	TaxID       string `json:"tax_id" binding:"required"`
	LegalName   string `json:"legal_name" binding:"required"`
	TradeName   string `json:"trade_name"`
	Description string `json:"description"`
}

// RegisterCompany creates a company account, its profile and the zeroed
// statistics row, and returns a token.
func (h *Handler) RegisterCompany(c *gin.Context) {
	var req registerCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acc, profile, err := h.Accounts.RegisterCompany(account.RegisterCompanyInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		TaxID:       req.TaxID,
		LegalName:   req.LegalName,
		TradeName:   req.TradeName,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.Auth.IssueToken(acc.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"account": acc,
		"company": profile,
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies the credentials and issues a token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acc, err := h.Accounts.Authenticate(req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.Auth.IssueToken(acc.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": acc, "token": token})
}

// Logout revokes the presented token.
func (h *Handler) Logout(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.Auth.RevokeToken(tokenString); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
