package cmd

import (
	"github.com/finantrack/cartola/api"
	"github.com/finantrack/cartola/config"
	"github.com/spf13/cobra"
)

var (
	servePort  string
	serveDBURL string
	serveNoDB  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Starts the HTTP API server. With a database it accepts statement uploads
and scraper movements; with --no-db only extraction is served.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		settings := config.ServerSettings()

		cfg := api.DefaultConfig()
		cfg.AllowedOrigins = settings.AllowedOrigins
		cfg.Location = config.IngestSettings().Location()
		port := settings.Port
		if servePort != "" {
			port = servePort
		}
		if port != "" {
			cfg.Port = ":" + port
		}

		var ingester api.Ingester
		if !serveNoDB {
			db, svc, err := openService(ctx, serveDBURL)
			if err != nil {
				return err
			}
			defer db.Close()
			ingester = svc
		}

		return api.New(cfg, ingester, appLog).Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to run the API server on (default server.port)")
	serveCmd.Flags().StringVar(&serveDBURL, "db-url", "", "PostgreSQL connection URL (or set DATABASE_URL env)")
	serveCmd.Flags().BoolVar(&serveNoDB, "no-db", false, "Serve extraction only, without a database")
}
