package presenter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ecoindus/site-backend-go/internal/models"
)

// Messages shown after a submission
const (
	SubmitSuccessMessage = "Request sent successfully! We will be in touch shortly."
	SubmitErrorMessage   = "Failed to send request. Please try again."
)

var (
	// ErrMissingField wraps the name of the first empty required field
	ErrMissingField = errors.New("required field is empty")

	// ErrSubmitInProgress is returned when a submission is already running
	ErrSubmitInProgress = errors.New("submission already in progress")
)

// ConsultationSender delivers a consultation request.
// *client.Client satisfies it.
type ConsultationSender interface {
	SubmitConsultation(ctx context.Context, req models.ConsultationCreate) (*models.ConsultationRequest, error)
}

// Notifier surfaces the outcome of a submission to the user
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ContactFields are the values of the contact form
type ContactFields struct {
	CompanyName   string
	ContactName   string
	Email         string
	Phone         string
	Industry      string
	ProjectType   string
	Message       string
	PreferredDate string
}

// IsEmpty reports whether every field is blank
func (f ContactFields) IsEmpty() bool {
	return f == ContactFields{}
}

// Validate checks that the required fields are non-empty. Formats are left
// to the server.
func (f ContactFields) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"company_name", f.CompanyName},
		{"contact_name", f.ContactName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"project_type", f.ProjectType},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, r.name)
		}
	}
	return nil
}

func (f ContactFields) payload() models.ConsultationCreate {
	return models.ConsultationCreate{
		CompanyName:   f.CompanyName,
		ContactName:   f.ContactName,
		Email:         f.Email,
		Phone:         f.Phone,
		Industry:      models.Industry(f.Industry),
		ProjectType:   models.ProjectType(f.ProjectType),
		Message:       f.Message,
		PreferredDate: f.PreferredDate,
	}
}

// ContactForm sends the lead-capture form once per Submit. Fields are
// cleared after a successful send, unless they were edited while it was in
// flight, and kept after a failed one.
type ContactForm struct {
	sender   ConsultationSender
	notifier Notifier
	log      logrus.FieldLogger

	mu     sync.Mutex
	fields ContactFields
	busy   bool
}

// NewContactForm creates an empty contact form
func NewContactForm(sender ConsultationSender, notifier Notifier) *ContactForm {
	return &ContactForm{
		sender:   sender,
		notifier: notifier,
		log:      logrus.StandardLogger(),
	}
}

// SetFields replaces the form values
func (f *ContactForm) SetFields(fields ContactFields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

// Update applies fn to the form values, e.g. to change one field
func (f *ContactForm) Update(fn func(*ContactFields)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.fields)
}

// Fields returns the current form values
func (f *ContactForm) Fields() ContactFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Busy reports whether a submission is in flight
func (f *ContactForm) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Submit validates and sends the form. An invalid form or a concurrent
// submission returns an error without touching the network.
func (f *ContactForm) Submit(ctx context.Context) (*models.ConsultationRequest, error) {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if err := f.fields.Validate(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.busy = true
	submitted := f.fields
	payload := submitted.payload()
	f.mu.Unlock()

	created, err := f.sender.SubmitConsultation(ctx, payload)

	f.mu.Lock()
	f.busy = false
	if err == nil && f.fields == submitted {
		f.fields = ContactFields{}
	}
	f.mu.Unlock()

	if err != nil {
		f.log.WithError(err).Error("error submitting form")
		if f.notifier != nil {
			f.notifier.Error(SubmitErrorMessage)
		}
		return nil, err
	}

	if f.notifier != nil {
		f.notifier.Success(SubmitSuccessMessage)
	}
	return created, nil
}
