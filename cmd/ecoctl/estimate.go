package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ecoindus/site-backend-go/internal/estimate"
	"github.com/ecoindus/site-backend-go/internal/presenter"
	"github.com/ecoindus/site-backend-go/pkg/client"
)

func NewEstimateCommand() *cobra.Command {
	var (
		waste  float64
		energy float64
	)

	cmd := &cobra.Command{
		Use:     "estimate",
		Short:   "Estimate the carbon saved for a monthly waste quantity",
		GroupID: gBasic,
		Long: fmt.Sprintf(`Estimate the carbon saved for a monthly waste quantity.

The waste amount is in tonnes per month, between %.0f and %.0f in steps of %.0f.
Energy usage is in MWh per month and defaults to 0.`,
			estimate.MinWasteAmount, estimate.MaxWasteAmount, estimate.WasteStep),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !estimate.InRange(waste) {
				return fmt.Errorf("waste amount %v is outside %v..%v step %v",
					waste, estimate.MinWasteAmount, estimate.MaxWasteAmount, estimate.WasteStep)
			}
			if energy < 0 {
				return fmt.Errorf("energy usage must not be negative, got %v", energy)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			bold := func(format string, a ...interface{}) string { return color.New(color.Bold).Sprintf(format, a...) }

			p := presenter.NewEstimatePresenter(apiClient, presenter.WithRenderer(func(s presenter.EstimateState) {
				r := s.Result
				cmd.Printf("Waste:            %v t/month\n", r.WasteAmount)
				if r.EnergyUsage > 0 {
					cmd.Printf("Energy:           %v MWh/month\n", r.EnergyUsage)
				}
				cmd.Printf("Carbon saved:     %s\n", color.GreenString("%.2f t CO2/month", r.CarbonSaved))
				cmd.Printf("Trees equivalent: %s\n", bold("%d", r.TreesEquivalent))
				cmd.Printf("Revenue:          %s\n", bold("R$ %.0f", r.RevenuePotential))
			}))
			p.SetWasteAmount(waste)
			p.SetEnergyUsage(energy)
			p.Open(ctx)
			p.Wait()
			defer p.Close()

			if p.Result() == nil {
				return fmt.Errorf("%w: no estimate received", client.ErrRequestFailed)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&waste, "waste", "w", estimate.DefaultWasteAmount, "waste amount in tonnes per month")
	cmd.Flags().Float64VarP(&energy, "energy", "e", 0, "energy usage in MWh per month")

	return cmd
}
