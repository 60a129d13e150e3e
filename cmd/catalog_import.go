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
	importFile  string
	importMode  string
	importBatch int
)

var importCmd = &cobra.Command{
	Use:   "catalog:import",
	Short: "Import products from a CSV file into the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		mode, err := catalogService.ParseImportMode(importMode)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}

		res, err := catalogService.ImportCatalog(db, f, catalogService.ImportOptions{
			BatchSize: importBatch,
			Mode:      mode,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			os.Exit(1)
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}

		fmt.Printf(`
=== Import Report ===
CSV rows:       %d
Created:        %d
Updated:        %d
Skipped:        %d
Mode:           %s
Total time:     %s
  - Processing: %s
  - DB upsert:  %s
=====================
`, res.TotalRows, res.Created, res.Updated, res.Skipped,
			importModeLabel(mode),
			res.TotalTime.Round(time.Millisecond),
			res.ProcessTime.Round(time.Millisecond),
			res.DBTime.Round(time.Millisecond))
	},
}

var templateCmd = &cobra.Command{
	Use:   "catalog:template",
	Short: "Write the CSV import template to a file",
	Run: func(cmd *cobra.Command, args []string) {
		path := catalogService.TemplateFilename
		if len(args) > 0 {
			path = args[0]
		}
		if err := os.WriteFile(path, []byte(catalogService.BuildTemplate()), 0644); err != nil {
			fmt.Printf("Failed to write template: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Template written to", path)
	},
}

func importModeLabel(m catalogService.ImportMode) string {
	if m == catalogService.ModeOverwrite {
		return "overwrite"
	}
	return "patch"
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.Flags().StringVar(&importMode, "mode", "patch", "Import mode for existing products: patch or overwrite")
	importCmd.Flags().IntVar(&importBatch, "batch-size", catalogService.DefaultBatchSize, "Batch size for DB operations")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(templateCmd)
}
