// Package presenter holds the client-side logic behind the calculator modal
// and the contact form.
package presenter

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ecoindus/site-backend-go/internal/estimate"
	"github.com/ecoindus/site-backend-go/internal/models"
)

// Estimator returns the canonical estimate for an input.
// *client.Client satisfies it.
type Estimator interface {
	Estimate(ctx context.Context, input models.CalculationInput) (*models.CalculationResult, error)
}

// EstimateState is a snapshot of what the calculator shows
type EstimateState struct {
	Input       models.CalculationInput
	Open        bool
	Calculating bool
	Result      *models.CalculationResult
}

// EstimatePresenter issues one estimate request per input change while open
// and shows the response of the latest request only.
//
// Every request carries a sequence number. A completion whose number is not
// the latest issued, or that arrives after Close, is dropped.
type EstimatePresenter struct {
	estimator Estimator
	log       logrus.FieldLogger
	render    func(EstimateState)

	mu          sync.Mutex
	input       models.CalculationInput
	open        bool
	ctx         context.Context
	cancel      context.CancelFunc
	seq         uint64
	calculating bool
	result      *models.CalculationResult

	inflight sync.WaitGroup
}

// EstimateOption customizes an EstimatePresenter
type EstimateOption func(*EstimatePresenter)

// WithRenderer registers fn to be called after every applied result
func WithRenderer(fn func(EstimateState)) EstimateOption {
	return func(p *EstimatePresenter) { p.render = fn }
}

// WithLogger replaces the standard logrus logger
func WithLogger(l logrus.FieldLogger) EstimateOption {
	return func(p *EstimatePresenter) { p.log = l }
}

// NewEstimatePresenter creates a closed presenter with the default waste amount
func NewEstimatePresenter(estimator Estimator, opts ...EstimateOption) *EstimatePresenter {
	p := &EstimatePresenter{
		estimator: estimator,
		log:       logrus.StandardLogger(),
		input:     models.CalculationInput{WasteAmount: estimate.DefaultWasteAmount},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Open shows the calculator and recomputes once for the current input,
// whatever the previous result was. Opening an open presenter is a no-op.
func (p *EstimatePresenter) Open(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.open {
		return
	}
	p.open = true
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.issueLocked()
}

// Close hides the calculator. Outstanding requests are cancelled and their
// completions ignored.
func (p *EstimatePresenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		return
	}
	p.open = false
	p.calculating = false
	p.seq++
	p.cancel()
}

// SetWasteAmount records a new waste quantity and, while open, requests a
// fresh estimate. Requests are not debounced.
func (p *EstimatePresenter) SetWasteAmount(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.input.WasteAmount = v
	if p.open {
		p.issueLocked()
	}
}

// SetEnergyUsage records a new energy quantity and, while open, requests a
// fresh estimate.
func (p *EstimatePresenter) SetEnergyUsage(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.input.EnergyUsage = v
	if p.open {
		p.issueLocked()
	}
}

// State returns a snapshot of the presenter
func (p *EstimatePresenter) State() EstimateState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

// Calculating reports whether the latest request is still outstanding
func (p *EstimatePresenter) Calculating() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calculating
}

// Result returns a copy of the last applied result, or nil
func (p *EstimatePresenter) Result() *models.CalculationResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copyResult(p.result)
}

// Wait blocks until every issued request has completed
func (p *EstimatePresenter) Wait() {
	p.inflight.Wait()
}

func (p *EstimatePresenter) issueLocked() {
	p.seq++
	seq := p.seq
	input := p.input
	ctx := p.ctx
	p.calculating = true

	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		result, err := p.estimator.Estimate(ctx, input)
		p.complete(seq, input, result, err)
	}()
}

func (p *EstimatePresenter) complete(seq uint64, input models.CalculationInput, result *models.CalculationResult, err error) {
	p.mu.Lock()
	if !p.open || seq != p.seq {
		latest := p.seq
		p.mu.Unlock()
		p.log.WithFields(logrus.Fields{
			"seq":         seq,
			"latest":      latest,
			"wasteAmount": input.WasteAmount,
		}).Debug("discarding stale estimate")
		return
	}

	p.calculating = false
	if err != nil || result == nil {
		p.mu.Unlock()
		p.log.WithFields(logrus.Fields{
			"wasteAmount": input.WasteAmount,
			"energyUsage": input.EnergyUsage,
		}).WithError(err).Error("error calculating carbon")
		return
	}

	p.result = copyResult(result)
	state := p.stateLocked()
	render := p.render
	p.mu.Unlock()

	if render != nil {
		render(state)
	}
}

func (p *EstimatePresenter) stateLocked() EstimateState {
	return EstimateState{
		Input:       p.input,
		Open:        p.open,
		Calculating: p.calculating,
		Result:      copyResult(p.result),
	}
}

func copyResult(r *models.CalculationResult) *models.CalculationResult {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
