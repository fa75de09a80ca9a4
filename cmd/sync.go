package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd groups the catalog sync commands.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the item catalog with the online store",
	Long: `Runs catalog sync passes against the configured platform.

Examples:
  # Pull remote products, then push local changes
  catalog-sync sync products

  # Only import remote products into the ERP catalog
  catalog-sync sync pull

  # Push the quantity of one item, or of every quantity-synced item
  catalog-sync sync stock --item TEE-M
  catalog-sync sync stock --all`,
}

var syncProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "Pull remote products, then push local changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, "products", func(ctx context.Context, svc *catalog.Service) (*reconcile.RunResult, error) {
			return svc.SyncProducts(ctx)
		})
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Import remote products into local items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, "pull", func(ctx context.Context, svc *catalog.Service) (*reconcile.RunResult, error) {
			return svc.PullProducts(ctx)
		})
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push local items changed since the last sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, "push", func(ctx context.Context, svc *catalog.Service) (*reconcile.RunResult, error) {
			return svc.PushProducts(ctx)
		})
	},
}

var syncStockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Push stock quantities to the platform",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		item, _ := cmd.Flags().GetString("item")
		warehouse, _ := cmd.Flags().GetString("warehouse")

		if all == (item != "") {
			return fmt.Errorf("exactly one of --item or --all is required")
		}
		if all {
			return runSync(cmd, "stock", func(ctx context.Context, svc *catalog.Service) (*reconcile.RunResult, error) {
				return svc.PushAllStock(ctx)
			})
		}
		return runSync(cmd, "stock", func(ctx context.Context, svc *catalog.Service) (*reconcile.RunResult, error) {
			return svc.PushStock(ctx, catalog.StockRequest{ItemCode: item, Warehouse: warehouse})
		})
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncProductsCmd, syncPullCmd, syncPushCmd, syncStockCmd)

	syncCmd.PersistentFlags().Bool("json", false, "Save the full run report as JSON")

	syncStockCmd.Flags().String("item", "", "Item code to push")
	syncStockCmd.Flags().String("warehouse", "", "Warehouse of the stock movement (defaults to the sync warehouse)")
	syncStockCmd.Flags().Bool("all", false, "Push every quantity-synced item")
}

func runSync(cmd *cobra.Command, name string, fn func(context.Context, *catalog.Service) (*reconcile.RunResult, error)) error {
	startTime := time.Now()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	svc, err := openCatalog(cfg, logg)
	if err != nil {
		return err
	}

	logg.Info("Running catalog sync", zap.String("pass", name))
	res, err := fn(cmd.Context(), svc)
	if res != nil {
		printRunReport(res, time.Since(startTime))
		if jsonOutput {
			if saveErr := saveRunReport(res, logg); saveErr != nil {
				logg.Error("Failed to save run report", zap.Error(saveErr))
			}
		}
	}
	if err != nil {
		return fmt.Errorf("%s sync failed: %w", name, err)
	}
	return nil
}

func saveRunReport(res *reconcile.RunResult, logg *zap.Logger) error {
	filename := fmt.Sprintf("sync_%s_%d.json", res.Kind, time.Now().Unix())
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save JSON file: %w", err)
	}
	logg.Info("Run report saved", zap.String("file", filename), zap.Int("actions", len(res.Actions)))
	return nil
}

// printRunReport prints pass summaries and a sample of actions.
func printRunReport(res *reconcile.RunResult, elapsed time.Duration) {
	fmt.Printf("\n=== Catalog Sync Report (%s) ===\n", res.Kind)
	fmt.Printf("Run ID: %s\n", res.RunID)
	fmt.Printf("Status: %s\n", res.Status)

	for _, pass := range res.Passes {
		fmt.Printf("\n[%s] processed=%d skipped=%d\n", pass.Name, pass.Processed, pass.Skipped)
		for t, n := range pass.Actions {
			fmt.Printf("  %s: %d\n", t, n)
		}
	}

	if len(res.Actions) > 0 {
		fmt.Println("\nSample actions:")
		for i, a := range res.Actions {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(res.Actions)-5)
				break
			}
			if a.RemoteID != 0 {
				fmt.Printf("  - %s %s (remote %d)\n", a.Type, a.Key, a.RemoteID)
			} else {
				fmt.Printf("  - %s %s\n", a.Type, a.Key)
			}
		}
	}

	if len(res.Failures) > 0 {
		fmt.Println("\nSkipped records:")
		for i, f := range res.Failures {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(res.Failures)-5)
				break
			}
			fmt.Printf("  - [%s] %s: %s\n", f.Stage, f.Key, f.Reason)
		}
	}

	if res.Error != "" {
		fmt.Printf("\nError: %s\n", res.Error)
	}
	fmt.Printf("\nExecution Time: %s\n", elapsed.String())
}
