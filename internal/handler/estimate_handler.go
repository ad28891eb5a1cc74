package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoindus/site-backend-go/internal/estimate"
	"github.com/ecoindus/site-backend-go/internal/models"
	"github.com/ecoindus/site-backend-go/internal/service"
	"github.com/ecoindus/site-backend-go/pkg/response"
)

// EstimateHandler handles HTTP requests for carbon estimates
type EstimateHandler struct {
	service *service.EstimateService
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(service *service.EstimateService) *EstimateHandler {
	return &EstimateHandler{service: service}
}

// estimateQuery uses pointers so an explicit zero is told apart from a missing value
type estimateQuery struct {
	WasteAmount *float64 `form:"waste_amount" binding:"required"`
	EnergyUsage *float64 `form:"energy_usage"`
}

// Calculate handles POST /api/calculate-carbon
func (h *EstimateHandler) Calculate(c *gin.Context) {
	var q estimateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "waste_amount is required and must be a number", err)
		return
	}

	input := models.CalculationInput{WasteAmount: *q.WasteAmount}
	if q.EnergyUsage != nil {
		input.EnergyUsage = *q.EnergyUsage
	}

	result, err := h.service.Calculate(input)
	if err != nil {
		if errors.Is(err, estimate.ErrNegativeInput) || errors.Is(err, estimate.ErrNonFiniteInput) ||
			errors.Is(err, estimate.ErrInputTooLarge) {
			response.BadRequest(c, err.Error(), err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to calculate estimate", err)
		return
	}

	response.Raw(c, result)
}
