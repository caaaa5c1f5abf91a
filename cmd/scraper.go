package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/finantrack/cartola/ingest"
	"github.com/spf13/cobra"
)

var (
	scraperPath   string
	scraperDBURL  string
	scraperUserID int64
	scraperCardID int64
)

var scraperCmd = &cobra.Command{
	Use:   "scraper-import",
	Short: "Import scraper movements onto an existing card",
	Long: `Reads a JSON file produced by the bank scraper, either an array of
movements or an object with a "movements" array, and stores them on the card.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		movements, err := readScraperFile(scraperPath)
		if err != nil {
			return err
		}

		db, svc, err := openService(ctx, scraperDBURL)
		if err != nil {
			return err
		}
		defer db.Close()

		count, err := svc.IngestScraperMovements(ctx, scraperUserID, scraperCardID, movements)
		if err != nil {
			return err
		}
		fmt.Printf("Complete: %d movements stored on card %d\n", count, scraperCardID)
		return nil
	},
}

func readScraperFile(path string) ([]ingest.ScraperMovement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var list []ingest.ScraperMovement
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Movements []ingest.ScraperMovement `json:"movements"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return wrapped.Movements, nil
}

func init() {
	rootCmd.AddCommand(scraperCmd)

	scraperCmd.Flags().StringVarP(&scraperPath, "file", "f", "", "Scraper JSON output (required)")
	scraperCmd.Flags().StringVar(&scraperDBURL, "db-url", "", "PostgreSQL connection URL (or set DATABASE_URL env)")
	scraperCmd.Flags().Int64Var(&scraperUserID, "user", 0, "Owner user id (required)")
	scraperCmd.Flags().Int64Var(&scraperCardID, "card", 0, "Destination card id (required)")

	_ = scraperCmd.MarkFlagRequired("file")
	_ = scraperCmd.MarkFlagRequired("user")
	_ = scraperCmd.MarkFlagRequired("card")
}
