// Command migrate applies, inspects and rolls back the portal schema.
package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/config"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/database"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type env struct {
	cfg *config.Config
	db  *gorm.DB
}

func open() (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	middleware.InitLogger(cfg.Env)
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &env{cfg: cfg, db: db}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the recruitment database schema",
		SilenceUsage: true,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending SQL migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				e, err := open()
				if err != nil {
					return err
				}
				if err := database.RunMigrations(cmd.Context(), e.db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "sql migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "auto",
			Short: "Run GORM AutoMigrate for every persistent model",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				e, err := open()
				if err != nil {
					return err
				}
				e.cfg.DBSchemaMode = database.SchemaModeAuto
				if err := database.ApplySchema(cmd.Context(), e.db, e.cfg); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "models auto-migrated")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the schema plan and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				e, err := open()
				if err != nil {
					return err
				}
				status, err := database.GetSchemaStatus(cmd.Context(), e.db, e.cfg)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "mode=%s env=%s sql=%t auto=%t applied=%v\n",
					status.Mode, status.Environment, status.WillRunSQL, status.WillRunAutoMigrate, status.AppliedVersions)
				for _, m := range status.PendingMigrations {
					fmt.Fprintf(out, "pending %s\n", m.String())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "models",
			Short: "List persistent models and their tables",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				e, err := open()
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TABLE\tMODEL")
				for _, m := range database.PersistentModels() {
					stmt := &gorm.Statement{DB: e.db}
					if err := stmt.Parse(m); err != nil {
						return fmt.Errorf("parse %T: %w", m, err)
					}
					fmt.Fprintf(tw, "%s\t%s\n", stmt.Schema.Table, stmt.Schema.Name)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "down <version>",
			Short: "Roll back one applied migration",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				e, err := open()
				if err != nil {
					return err
				}
				if err := database.RollbackMigration(cmd.Context(), e.db, version); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back %06d\n", version)
				return nil
			},
		},
	)
	return root
}
