package service

import (
	"github.com/sirupsen/logrus"

	"github.com/ecoindus/site-backend-go/internal/estimate"
	"github.com/ecoindus/site-backend-go/internal/models"
	"github.com/ecoindus/site-backend-go/internal/monitoring"
)

// EstimateService computes carbon capture estimates
type EstimateService struct{}

// NewEstimateService creates a new estimate service
func NewEstimateService() *EstimateService {
	return &EstimateService{}
}

// Calculate returns the canonical estimate for input
func (s *EstimateService) Calculate(input models.CalculationInput) (models.CalculationResult, error) {
	result, err := estimate.Calculate(input)
	monitoring.RecordEstimate(result.CarbonSaved, err)
	if err != nil {
		return models.CalculationResult{}, err
	}

	logrus.WithFields(logrus.Fields{
		"wasteAmount": input.WasteAmount,
		"energyUsage": input.EnergyUsage,
		"carbonSaved": result.CarbonSaved,
	}).Debug("estimate computed")
	return result, nil
}
