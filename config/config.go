// Package config loads runtime settings and statement patterns through viper.
// When no config file is found the embedded default.yaml is used.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

//go:embed default.yaml
var defaultYAML []byte

const configName = ".finantrack"

var (
	defaultsOnce sync.Once
	defaults     *viper.Viper
)

// Ingest holds the settings used by the ingestion pipeline.
type Ingest struct {
	Timezone            string
	Currency            string
	BankName            string
	CardSource          string
	FallbackCategory    string
	FallbackAccountType string
	LimitKey            string
	PermissionKey       string
}

// Server holds the HTTP API settings.
type Server struct {
	Port           string
	AllowedOrigins []string
}

// Init reads cfgFile, or searches the working directory and home directory
// for .finantrack.yaml, falling back to the embedded defaults.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("FINANTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// defaults first so a partial user file still gets every pattern
	if err := loadDefaults(); err != nil {
		return err
	}

	if err := viper.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// UseDefaults resets viper and loads only the embedded configuration.
func UseDefaults() error {
	viper.Reset()
	return loadDefaults()
}

func loadDefaults() error {
	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(bytes.NewReader(defaultYAML)); err != nil {
		return fmt.Errorf("failed to load embedded configuration: %w", err)
	}
	return nil
}

// Defaults returns a viper instance holding only the embedded configuration.
// It is shared and must not be modified.
func Defaults() *viper.Viper {
	defaultsOnce.Do(func() {
		defaults = viper.New()
		defaults.SetConfigType("yaml")
		if err := defaults.ReadConfig(bytes.NewReader(defaultYAML)); err != nil {
			panic(fmt.Sprintf("embedded configuration is invalid: %v", err))
		}
	})
	return defaults
}

// Location resolves Timezone, falling back to the local zone.
func (i Ingest) Location() *time.Location {
	if i.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(i.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// IngestSettings returns the current ingestion settings.
func IngestSettings() Ingest {
	return Ingest{
		Timezone:            viper.GetString("ingest.timezone"),
		Currency:            viper.GetString("ingest.currency"),
		BankName:            viper.GetString("ingest.bank_name"),
		CardSource:          viper.GetString("ingest.card_source"),
		FallbackCategory:    viper.GetString("ingest.fallback_category"),
		FallbackAccountType: viper.GetString("ingest.fallback_account_type"),
		LimitKey:            viper.GetString("ingest.limit_key"),
		PermissionKey:       viper.GetString("ingest.permission_key"),
	}
}

// ServerSettings returns the current API settings.
func ServerSettings() Server {
	return Server{
		Port:           viper.GetString("server.port"),
		AllowedOrigins: viper.GetStringSlice("server.allowed_origins"),
	}
}

// DatabaseURL returns database.url, or DATABASE_URL when unset.
func DatabaseURL() string {
	if url := viper.GetString("database.url"); url != "" {
		return url
	}
	return os.Getenv("DATABASE_URL")
}
