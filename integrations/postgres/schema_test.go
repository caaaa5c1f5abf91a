package postgres

import (
	"regexp"
	"testing"

	"github.com/finantrack/cartola/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seeded plan keys must be ones the pipeline actually reads
func TestSeedDDL_PlanKeys(t *testing.T) {
	require.NoError(t, config.UseDefaults())
	settings := config.IngestSettings()

	limitRows := regexp.MustCompile(`\(\d+, '([a-z_]+)', -?\d+\)`).FindAllStringSubmatch(seedDDL, -1)
	require.NotEmpty(t, limitRows)
	for _, row := range limitRows {
		assert.Equal(t, settings.LimitKey, row[1])
	}

	permissionRows := regexp.MustCompile(`\(\d+, '([a-z_]+)'\)`).FindAllStringSubmatch(seedDDL, -1)
	require.NotEmpty(t, permissionRows)
	for _, row := range permissionRows {
		assert.Equal(t, settings.PermissionKey, row[1])
	}
}
