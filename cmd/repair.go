package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"conputodo.GO/config"
	catalogService "conputodo.GO/service/catalog"
)

var (
	repairResume bool
	repairBatch  int
)

var repairCmd = &cobra.Command{
	Use:   "inventory:repair",
	Short: "Scan the catalog and fix malformed product rows",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}

		res, err := catalogService.RepairInventory(db, catalogService.RepairOptions{
			BatchSize: repairBatch,
			Resume:    repairResume,
		})
		if err != nil {
			fmt.Printf("Repair failed: %v\n", err)
			os.Exit(1)
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}
		fmt.Printf(`
=== Repair Report ===
Scanned:   %d
Fixed:     %d
Batches:   %d
Total:     %s
=====================
`, res.Scanned, res.Fixed, res.Batches, res.TotalTime.Round(time.Millisecond))
	},
}

func init() {
	repairCmd.Flags().BoolVar(&repairResume, "resume", false, "Continue from the last checkpoint instead of starting over")
	repairCmd.Flags().IntVar(&repairBatch, "batch-size", 0, "Rows per batch (0 uses the default)")
	rootCmd.AddCommand(repairCmd)
}
