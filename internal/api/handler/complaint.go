package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"complainthub/backend/internal/complaint"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/storage"
)

// CreateComplaint files a complaint. The request is multipart so attachment
// bodies can ride along with the form fields.
func (h *Handler) CreateComplaint(c *gin.Context) {
	companyID, err := strconv.ParseUint(c.PostForm("company_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id must be an integer"})
		return
	}
	title := c.PostForm("title")
	description := c.PostForm("description")

	var files []complaint.FileUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["files"] {
			src, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable attachment"})
				return
			}
			data, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable attachment"})
				return
			}
			files = append(files, complaint.FileUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	created, err := h.Complaints.Create(identityFrom(c), uint(companyID), title, description, files)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListComplaints returns the complaints visible to the caller. The search
// query parameters only take effect for administrators.
func (h *Handler) ListComplaints(c *gin.Context) {
	filter := storage.ComplaintFilter{
		Status:        models.ComplaintStatus(c.Query("status")),
		EmailContains: c.Query("email"),
		TaxIDContains: c.Query("tax_id"),
	}
	if raw := c.Query("company_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CompanyID = uint(id)
		}
	}

	complaints, err := h.Complaints.List(identityFrom(c), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// GetComplaint returns one complaint with responses and attachments.
func (h *Handler) GetComplaint(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	found, err := h.Complaints.Get(identityFrom(c), uint(id))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// CloseComplaint moves a complaint to CLOSED.
func (h *Handler) CloseComplaint(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	closed, err := h.Complaints.Close(identityFrom(c), uint(id))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, closed)
}

type createResponseRequest struct {
	Description      string `json:"description" binding:"required"`
	ResolutionStatus string `json:"resolution_status"`
}

// CreateResponse records a company reply, applying the status transition and
// statistics recompute the write implies.
func (h *Handler) CreateResponse(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	var req createResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.Complaints.Respond(identityFrom(c), uint(id),
		req.Description, models.ResolutionStatus(req.ResolutionStatus))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// GetCompanyStatistics serves the derived statistics row for a company.
func (h *Handler) GetCompanyStatistics(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	stats, err := h.Storage.GetStatistics(uint(id))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
