package presenter

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoindus/site-backend-go/internal/models"
)

type fakeSender struct {
	mu      sync.Mutex
	calls   []models.ConsultationCreate
	err     error
	block   chan struct{}
	started chan struct{}
}

func (s *fakeSender) SubmitConsultation(ctx context.Context, req models.ConsultationCreate) (*models.ConsultationRequest, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	block, started, err := s.block, s.started, s.err
	s.mu.Unlock()

	if started != nil {
		close(started)
	}
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return &models.ConsultationRequest{ID: "new", CompanyName: req.CompanyName, Status: models.StatusPending}, nil
}

func (s *fakeSender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func filledFields() ContactFields {
	return ContactFields{
		CompanyName:   "Acme",
		ContactName:   "Maria",
		Email:         "maria@acme.example",
		Phone:         "123",
		Industry:      "food",
		ProjectType:   "carbon_capture",
		Message:       "hello",
		PreferredDate: "2026-11-02",
	}
}

func TestContactFormSubmitSuccessClearsFields(t *testing.T) {
	sender := &fakeSender{}
	notifier := &recordingNotifier{}
	form := NewContactForm(sender, notifier)
	form.SetFields(filledFields())

	created, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)

	assert.True(t, form.Fields().IsEmpty())
	assert.False(t, form.Busy())
	assert.Equal(t, []string{SubmitSuccessMessage}, notifier.successes)
	assert.Empty(t, notifier.errors)

	require.Equal(t, 1, sender.callCount())
	sent := sender.calls[0]
	assert.Equal(t, models.IndustryFood, sent.Industry)
	assert.Equal(t, models.ProjectCarbonCapture, sent.ProjectType)
	assert.Equal(t, "2026-11-02", sent.PreferredDate)
}

func TestContactFormSubmitFailureKeepsFields(t *testing.T) {
	sender := &fakeSender{err: errors.New("network down")}
	notifier := &recordingNotifier{}
	form := NewContactForm(sender, notifier)
	form.SetFields(filledFields())

	_, err := form.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, filledFields(), form.Fields())
	assert.False(t, form.Busy())
	assert.Equal(t, []string{SubmitErrorMessage}, notifier.errors)

	// resubmission sends the same payload again
	sender.mu.Lock()
	sender.err = nil
	sender.mu.Unlock()
	_, err = form.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, sender.callCount())
	assert.Equal(t, sender.calls[0], sender.calls[1])
}

func TestContactFormMissingRequiredFieldSendsNothing(t *testing.T) {
	tests := []struct {
		name  string
		clear func(*ContactFields)
		field string
	}{
		{"company", func(f *ContactFields) { f.CompanyName = "" }, "company_name"},
		{"contact", func(f *ContactFields) { f.ContactName = " " }, "contact_name"},
		{"email", func(f *ContactFields) { f.Email = "" }, "email"},
		{"phone", func(f *ContactFields) { f.Phone = "" }, "phone"},
		{"project type", func(f *ContactFields) { f.ProjectType = "" }, "project_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			form := NewContactForm(sender, nil)
			form.SetFields(filledFields())
			form.Update(tt.clear)

			_, err := form.Submit(context.Background())
			require.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), tt.field)
			assert.Equal(t, 0, sender.callCount())
		})
	}
}

func TestContactFormOptionalFieldsMayBeEmpty(t *testing.T) {
	fields := filledFields()
	fields.Industry = ""
	fields.Message = ""
	fields.PreferredDate = ""
	assert.NoError(t, fields.Validate())
}

func TestContactFormKeepsEditsMadeWhileSending(t *testing.T) {
	sender := &fakeSender{block: make(chan struct{}), started: make(chan struct{})}
	form := NewContactForm(sender, nil)
	form.SetFields(filledFields())

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()

	<-sender.started
	form.Update(func(f *ContactFields) { f.Message = "one more thing" })
	close(sender.block)
	require.NoError(t, <-done)

	got := form.Fields()
	assert.Equal(t, "one more thing", got.Message)
	assert.Equal(t, "Acme", got.CompanyName)
}

func TestContactFormRejectsDoubleSubmit(t *testing.T) {
	sender := &fakeSender{block: make(chan struct{}), started: make(chan struct{})}
	form := NewContactForm(sender, nil)
	form.SetFields(filledFields())

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()

	<-sender.started
	assert.True(t, form.Busy())
	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(sender.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, sender.callCount())
}
