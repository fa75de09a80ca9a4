package cmd

import (
	"fmt"

	"catalog-sync/core/storage"
	"catalog-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the catalog database and storage",
	Long:  `Checks that the catalog tables match the expected schema and that the attachment buckets exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd, true, true)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the catalog database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, true, false)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the attachment buckets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCmd, storageCmd)

	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing buckets")
}

func runIntegrityChecks(cmd *cobra.Command, runSchema, runStorage bool) error {
	ctx := cmd.Context()

	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	// Connect to Database (Optional)
	var db *gorm.DB
	if runSchema {
		if conn, err := connectDatabase(cfg, logg); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
		}
	}

	// Create Storage Client (Optional)
	var client storage.Client
	if runStorage {
		if c, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional storage client failed", zap.Error(err))
		} else {
			client = c
		}
	}

	svc := integrity.NewService(client, cfg.Storage, logg, db)

	if runSchema {
		logg.Info("Checking catalog schema integrity...", zap.String("driver", cfg.Database.Driver))
		report, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Catalog schema matches expected definition.")
		} else {
			logg.Warn("Catalog schema mismatches found")
			for table, tblReport := range report.Tables {
				if tblReport.Status == "ok" {
					continue
				}
				if tblReport.Status == "missing" {
					logg.Warn("Missing Table", zap.String("table", table))
				}
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
				if len(tblReport.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if runStorage {
		logg.Info("Checking attachment buckets...")
		missing, err := svc.CheckStorage(ctx)
		if err != nil {
			return fmt.Errorf("storage check failed: %w", err)
		}

		if len(missing) == 0 {
			logg.Info("Attachment buckets are present.")
		} else {
			logg.Warn("Missing buckets detected", zap.Strings("missing", missing))

			if fixFlag {
				logg.Info("Creating missing buckets...")
				if err := svc.FixStorage(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix storage: %w", err)
				}
				logg.Info("Buckets created successfully.")
			} else {
				logg.Info("Run integrity storage with --fix to create missing buckets.")
			}
		}
	}
	return nil
}
