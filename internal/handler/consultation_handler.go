package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ecoindus/site-backend-go/internal/models"
	"github.com/ecoindus/site-backend-go/internal/service"
	"github.com/ecoindus/site-backend-go/pkg/response"
)

// ConsultationHandler handles HTTP requests for consultation requests
type ConsultationHandler struct {
	service *service.ConsultationService
}

// NewConsultationHandler creates a new consultation handler
func NewConsultationHandler(service *service.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{service: service}
}

// Create handles POST /api/consultation
func (h *ConsultationHandler) Create(c *gin.Context) {
	var in models.ConsultationCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid consultation request: "+err.Error(), err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.BadRequest(c, err.Error(), err)
			return
		}
		response.InternalError(c, "Failed to store consultation request", err)
		return
	}

	response.Raw(c, created)
}

// List handles GET /api/consultations
func (h *ConsultationHandler) List(c *gin.Context) {
	var filter models.ConsultationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	consultations, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, "Failed to get consultation requests", err)
		return
	}

	filter.Normalize()
	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	response.Success(c, models.ConsultationsResponse{
		Data:       consultations,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	})
}

// GetByID handles GET /api/consultations/:id
func (h *ConsultationHandler) GetByID(c *gin.Context) {
	consultation, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get consultation request", err)
		return
	}

	if consultation == nil {
		response.NotFound(c, "Consultation request not found")
		return
	}

	response.Success(c, consultation)
}
