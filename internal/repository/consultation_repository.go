package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ecoindus/site-backend-go/internal/models"
)

// ConsultationRepository handles database operations for consultation requests
type ConsultationRepository struct {
	db *sql.DB
}

// NewConsultationRepository creates a new consultation repository
func NewConsultationRepository(db *sql.DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

// Fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const consultationColumns = `id, company_name, contact_name, email, phone,
		industry, project_type, message, preferred_date,
		status, created_at`

// Create inserts a consultation request
func (r *ConsultationRepository) Create(ctx context.Context, c *models.ConsultationRequest) error {
	query := `INSERT INTO consultation_requests (` + consultationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.CompanyName, c.ContactName, c.Email, c.Phone,
		string(c.Industry), string(c.ProjectType), c.Message, c.PreferredDate,
		c.Status, c.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert consultation request: %w", err)
	}
	return nil
}

// List retrieves consultation requests with filtering and pagination, newest first
func (r *ConsultationRepository) List(ctx context.Context, filter models.ConsultationFilter) ([]models.ConsultationRequest, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Industry != "" {
		conditions = append(conditions, "industry = ?")
		args = append(args, filter.Industry)
	}
	if filter.ProjectType != "" {
		conditions = append(conditions, "project_type = ?")
		args = append(args, filter.ProjectType)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM consultation_requests"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count consultation requests: %w", err)
	}

	filter.Normalize()
	offset := (filter.Page - 1) * filter.PageSize

	query := "SELECT " + consultationColumns + " FROM consultation_requests" + where +
		" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query consultation requests: %w", err)
	}
	defer rows.Close()

	consultations := []models.ConsultationRequest{}
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, 0, err
		}
		consultations = append(consultations, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate consultation requests: %w", err)
	}

	return consultations, total, nil
}

// GetByID retrieves a single consultation request. It returns nil, nil when
// no row matches.
func (r *ConsultationRepository) GetByID(ctx context.Context, id string) (*models.ConsultationRequest, error) {
	query := "SELECT " + consultationColumns + " FROM consultation_requests WHERE id = ?"

	c, err := scanConsultation(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConsultation(row rowScanner) (*models.ConsultationRequest, error) {
	var c models.ConsultationRequest
	var industry, projectType, createdAt string

	err := row.Scan(
		&c.ID, &c.CompanyName, &c.ContactName, &c.Email, &c.Phone,
		&industry, &projectType, &c.Message, &c.PreferredDate,
		&c.Status, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan consultation request: %w", err)
	}

	c.Industry = models.Industry(industry)
	c.ProjectType = models.ProjectType(projectType)
	c.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
	}
	return &c, nil
}
