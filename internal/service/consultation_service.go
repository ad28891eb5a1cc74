package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ecoindus/site-backend-go/internal/models"
	"github.com/ecoindus/site-backend-go/internal/monitoring"
	"github.com/ecoindus/site-backend-go/internal/repository"
)

// ErrValidation marks input rejected by the service layer
var ErrValidation = errors.New("validation failed")

// ConsultationService handles business logic for consultation requests
type ConsultationService struct {
	repo *repository.ConsultationRepository
	now  func() time.Time
}

// NewConsultationService creates a new consultation service
func NewConsultationService(repo *repository.ConsultationRepository) *ConsultationService {
	return &ConsultationService{repo: repo, now: time.Now}
}

// Create stores a new consultation request with a fresh id and pending status.
// There is no deduplication: the same payload submitted twice yields two records.
func (s *ConsultationService) Create(ctx context.Context, in models.ConsultationCreate) (*models.ConsultationRequest, error) {
	c := &models.ConsultationRequest{
		ID:            uuid.NewString(),
		CompanyName:   strings.TrimSpace(in.CompanyName),
		ContactName:   strings.TrimSpace(in.ContactName),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		Industry:      in.Industry,
		ProjectType:   in.ProjectType,
		Message:       strings.TrimSpace(in.Message),
		PreferredDate: strings.TrimSpace(in.PreferredDate),
		Status:        models.StatusPending,
		CreatedAt:     s.now().UTC(),
	}

	if err := validateRequired(c); err != nil {
		monitoring.RecordConsultation(string(in.ProjectType), err)
		return nil, err
	}

	err := s.repo.Create(ctx, c)
	monitoring.RecordConsultation(string(c.ProjectType), err)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"id":          c.ID,
		"projectType": c.ProjectType,
		"industry":    c.Industry,
	}).Info("consultation request stored")
	return c, nil
}

// List retrieves consultation requests with filtering and pagination
func (s *ConsultationService) List(ctx context.Context, filter models.ConsultationFilter) ([]models.ConsultationRequest, int64, error) {
	return s.repo.List(ctx, filter)
}

// GetByID retrieves a single consultation request
func (s *ConsultationService) GetByID(ctx context.Context, id string) (*models.ConsultationRequest, error) {
	return s.repo.GetByID(ctx, id)
}

func validateRequired(c *models.ConsultationRequest) error {
	fields := []struct {
		name  string
		value string
	}{
		{"company_name", c.CompanyName},
		{"contact_name", c.ContactName},
		{"email", c.Email},
		{"phone", c.Phone},
		{"project_type", string(c.ProjectType)},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}
	return nil
}
