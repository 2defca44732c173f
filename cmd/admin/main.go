// Package main provides applicant management utilities for the recruitment cell.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/config"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/database"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/featureflags"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/repository"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/service"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// openService is swapped out by tests.
var openService = func() (*service.ApplicantService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return newApplicantService(db), nil
}

func newApplicantService(db *gorm.DB) *service.ApplicantService {
	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	summary := service.NewSummaryService(profiles, repository.NewSummaryRepository(db), featureflags.NewRegistry(""), 0)
	return service.NewApplicantService(users, profiles, summary)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Manage applicant accounts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newListCmd(), newExportCmd(), newSetPasswordCmd())
	return root
}

func newListCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applicants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			applicants, err := svc.List(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			return writeApplicants(cmd.OutOrStdout(), applicants)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows to print")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}

func writeApplicants(w io.Writer, applicants []service.Applicant) error {
	if len(applicants) == 0 {
		_, err := fmt.Fprintln(w, "No applicants found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tCATEGORY")
	for _, a := range applicants {
		fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\n", a.UserID, a.Email, a.FirstName, a.LastName, a.Category)
	}
	return tw.Flush()
}

func newExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <email>",
		Short: "Print an applicant's full application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "yaml" && format != "json" {
				return fmt.Errorf("unsupported format %q (want yaml or json)", format)
			}
			svc, err := openService()
			if err != nil {
				return err
			}
			summary, err := svc.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(summary)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

func newSetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-password <email> <password>",
		Short: "Overwrite an applicant's password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			if err := svc.SetPassword(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %s\n", args[0])
			return nil
		},
	}
}
