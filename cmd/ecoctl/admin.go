package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecoindus/site-backend-go/internal/models"
)

func NewTokenCommand() *cobra.Command {
	var adminKey string

	cmd := &cobra.Command{
		Use:     "token",
		Short:   "Exchange the admin key for an access token",
		GroupID: gAdmin,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if adminKey == "" {
				adminKey = cfg.AdminKey
			}
			if adminKey == "" {
				return fmt.Errorf("admin key is required (--admin-key or ADMIN_KEY)")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			tok, err := apiClient.IssueToken(ctx, adminKey)
			if err != nil {
				return err
			}
			cmd.Println(tok.Token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", tok.ExpiresAt.Local().Format(time.RFC1123))
			return nil
		},
	}

	cmd.Flags().StringVar(&adminKey, "admin-key", "", "admin key configured on the server")

	return cmd
}

func NewConsultationsCommand() *cobra.Command {
	var (
		token  string
		id     string
		asJSON bool
		filter models.ConsultationFilter
	)

	cmd := &cobra.Command{
		Use:     "consultations",
		Short:   "List stored consultation requests",
		GroupID: gAdmin,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				token = os.Getenv("ECOCTL_TOKEN")
			}
			if token == "" {
				return fmt.Errorf("token is required (--token or ECOCTL_TOKEN)")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if id != "" {
				req, err := apiClient.GetConsultation(ctx, token, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, req)
			}

			list, err := apiClient.ListConsultations(ctx, token, filter)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd, list)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tID\tCOMPANY\tCONTACT\tEMAIL\tPROJECT\tSTATUS")
			for _, r := range list.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04"),
					r.ID, r.CompanyName, r.ContactName, r.Email, r.ProjectType, r.Status)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			cmd.Printf("\npage %d/%d, %d total\n", list.Page, list.TotalPages, list.Total)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&token, "token", "", "access token from 'ecoctl token'")
	f.StringVar(&id, "id", "", "show a single request")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	f.StringVar(&filter.Status, "status", "", "filter by status")
	f.StringVar(&filter.Industry, "industry", "", "filter by industry")
	f.StringVar(&filter.ProjectType, "project-type", "", "filter by project type")
	f.IntVar(&filter.Page, "page", 1, "page number")
	f.IntVar(&filter.PageSize, "page-size", 50, "page size")

	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
