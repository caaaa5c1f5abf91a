package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/finantrack/cartola/config"
	"github.com/finantrack/cartola/extractor"
	"github.com/spf13/cobra"
)

var (
	extractPath   string
	extractPretty bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extracts a cartola to JSON",
	Long: `Extracts a single cartola PDF and prints the parsed document as JSON.
Nothing is written to the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, extractPath)
	},
}

func runExtract(cmd *cobra.Command, path string) error {
	ctx := commandContext(cmd)
	appLog.Debug().Str("file", path).Msg("scanning")

	now := time.Now().In(config.IngestSettings().Location())
	doc, err := extractor.ProcessPath(ctx, path, now)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if extractPretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractPath, "file", "f", "", "Cartola PDF to extract (required)")
	extractCmd.Flags().BoolVar(&extractPretty, "pretty", false, "Indent the JSON output")
	_ = extractCmd.MarkFlagRequired("file")
}
