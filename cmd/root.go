package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/finantrack/cartola/config"
	"github.com/finantrack/cartola/logger"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	appLog  = zerolog.Nop()
	rootCmd = &cobra.Command{
		Use:   "finantrack [filename]",
		Short: "Ingest BancoEstado cartolas into FinanTrack",
		Long:  `finantrack parses BancoEstado cartola PDFs into cards and categorized movements`,
		Args:  cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(cfgFile); err != nil {
				return err
			}
			initLogging()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runExtract(cmd, args[0])
			}
			return cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.finantrack.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (json or console)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func initLogging() {
	level := viper.GetString("log.level")
	if verbose {
		level = "debug"
	}
	appLog = logger.New(level, viper.GetString("log.format"))
	zlog.Logger = appLog
}

// commandContext carries the configured logger into the pipeline
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithContext(ctx, appLog)
}
