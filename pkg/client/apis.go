package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ecoindus/site-backend-go/internal/models"
)

// envelope mirrors pkg/response.Response for the admin endpoints
type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Estimate requests the carbon estimate for input. It makes exactly one
// attempt; every failure mode is reported as ErrRequestFailed.
func (c *Client) Estimate(ctx context.Context, input models.CalculationInput) (*models.CalculationResult, error) {
	q := url.Values{}
	q.Set("waste_amount", strconv.FormatFloat(input.WasteAmount, 'f', -1, 64))
	if input.EnergyUsage != 0 {
		q.Set("energy_usage", strconv.FormatFloat(input.EnergyUsage, 'f', -1, 64))
	}

	var result models.CalculationResult
	if err := c.do(ctx, http.MethodPost, "/api/calculate-carbon", q, nil, "", &result); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to calculate estimate")
	}
	return &result, nil
}

// SubmitConsultation posts a lead. Transport errors and 5xx responses are
// retried with exponential backoff up to RetryOptions.MaxAttempts; 4xx
// responses fail immediately. No idempotency key is sent.
func (c *Client) SubmitConsultation(ctx context.Context, req models.ConsultationCreate) (*models.ConsultationRequest, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retry.InitialDelay
	b.MaxInterval = c.retry.MaxDelay
	b.Multiplier = c.retry.Multiplier
	b.RandomizationFactor = 0.1

	attempt := 0
	created, err := backoff.Retry(ctx, func() (*models.ConsultationRequest, error) {
		attempt++
		var out models.ConsultationRequest
		err := c.do(ctx, http.MethodPost, "/api/consultation", nil, req, "", &out)
		if err != nil {
			var se *statusError
			if errors.As(err, &se) && !se.retryable() {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return &out, nil
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.retry.MaxAttempts),
		backoff.WithNotify(func(err error, delay time.Duration) {
			logrus.WithFields(logrus.Fields{
				"attempt": attempt,
				"delay":   delay,
			}).WithError(err).Warn("consultation submission failed, retrying")
		}),
	)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to submit consultation after %d attempt(s)", attempt)
	}
	return created, nil
}

// IssueToken exchanges the admin key for a bearer token
func (c *Client) IssueToken(ctx context.Context, adminKey string) (*models.TokenResponse, error) {
	var env envelope[models.TokenResponse]
	if err := c.do(ctx, http.MethodPost, "/api/auth/token", nil, models.TokenRequest{AdminKey: adminKey}, "", &env); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to issue token")
	}
	return &env.Data, nil
}

// ListConsultations fetches one page of stored consultation requests
func (c *Client) ListConsultations(ctx context.Context, token string, filter models.ConsultationFilter) (*models.ConsultationsResponse, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Industry != "" {
		q.Set("industry", filter.Industry)
	}
	if filter.ProjectType != "" {
		q.Set("project_type", filter.ProjectType)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(filter.PageSize))
	}

	var env envelope[models.ConsultationsResponse]
	if err := c.do(ctx, http.MethodGet, "/api/consultations", q, nil, token, &env); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list consultations")
	}
	return &env.Data, nil
}

// GetConsultation fetches a single consultation request
func (c *Client) GetConsultation(ctx context.Context, token, id string) (*models.ConsultationRequest, error) {
	var env envelope[models.ConsultationRequest]
	if err := c.do(ctx, http.MethodGet, "/api/consultations/"+url.PathEscape(id), nil, nil, token, &env); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get consultation %s", id)
	}
	return &env.Data, nil
}
