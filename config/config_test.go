package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseDefaults(t *testing.T) {
	require.NoError(t, UseDefaults())

	ingest := IngestSettings()
	assert.Equal(t, "CLP", ingest.Currency)
	assert.Equal(t, "Otros", ingest.FallbackCategory)
	assert.Equal(t, "cartola_movements", ingest.LimitKey)
	assert.Equal(t, "America/Santiago", ingest.Timezone)

	headers := viper.GetStringSlice("statement.CARTOLA.segment_headers")
	assert.Equal(t, []string{"Detalle de movimientos:", "Detalle de Movimientos", "Movimientos", "Fecha N°"}, headers)
	assert.Len(t, viper.GetStringSlice("statement.CARTOLA.patterns.title"), 5)
}

func TestInit_MergesUserFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ingest:\n  currency: USD\n"), 0o600))

	require.NoError(t, Init(path))

	assert.Equal(t, "USD", IngestSettings().Currency)
	assert.Equal(t, "BancoEstado", IngestSettings().BankName)
	t.Cleanup(func() { _ = UseDefaults() })
}

func TestDatabaseURL_FallsBackToEnv(t *testing.T) {
	require.NoError(t, UseDefaults())
	t.Setenv("DATABASE_URL", "postgres://localhost/finantrack")

	assert.Equal(t, "postgres://localhost/finantrack", DatabaseURL())
}

func TestDefaults_IgnoresGlobalState(t *testing.T) {
	viper.Reset()
	t.Cleanup(func() { _ = UseDefaults() })

	assert.False(t, viper.IsSet("statement.CARTOLA.patterns.line_item"))
	assert.NotEmpty(t, Defaults().GetString("statement.CARTOLA.patterns.line_item"))
	assert.Equal(t, "America/Santiago", Defaults().GetString("ingest.timezone"))
}

func TestIngestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, Ingest{Timezone: "UTC"}.Location())
	assert.Equal(t, time.Local, Ingest{}.Location())
	assert.Equal(t, time.Local, Ingest{Timezone: "Nowhere/Bogus"}.Location())
}
