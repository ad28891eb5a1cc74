package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ecoindus/site-backend-go/internal/presenter"
)

// printNotifier writes submission outcomes to the command output
type printNotifier struct {
	out io.Writer
	err io.Writer
}

func (n printNotifier) Success(msg string) {
	fmt.Fprintln(n.out, color.New(color.Bold, color.FgGreen).Sprint("✔ ")+msg)
}

func (n printNotifier) Error(msg string) {
	fmt.Fprintln(n.err, color.New(color.Bold, color.FgRed).Sprint("✘ ")+msg)
}

func NewConsultCommand() *cobra.Command {
	var fields presenter.ContactFields

	cmd := &cobra.Command{
		Use:     "consult",
		Short:   "Request a consultation",
		GroupID: gBasic,
		Long: `Request a consultation.

Company, contact, email, phone and project type are required. Project type is
one of energy_efficiency, plastic_recycling, carbon_capture, production_line,
waste_transformation. Industry is one of manufacturing, construction, energy,
chemical, food, other.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			form := presenter.NewContactForm(apiClient, printNotifier{
				out: cmd.OutOrStdout(),
				err: cmd.ErrOrStderr(),
			})
			form.SetFields(fields)

			created, err := form.Submit(ctx)
			if err != nil {
				return err
			}
			cmd.Printf("Reference: %s\n", created.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&fields.CompanyName, "company", "", "company name")
	f.StringVar(&fields.ContactName, "contact", "", "contact name")
	f.StringVar(&fields.Email, "email", "", "corporate email")
	f.StringVar(&fields.Phone, "phone", "", "phone number")
	f.StringVar(&fields.Industry, "industry", "", "industry")
	f.StringVar(&fields.ProjectType, "project-type", "", "project type")
	f.StringVar(&fields.Message, "message", "", "free-form message")
	f.StringVar(&fields.PreferredDate, "date", "", "preferred date (YYYY-MM-DD)")

	return cmd
}
