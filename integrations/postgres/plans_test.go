package postgres

import (
	"testing"

	"github.com/finantrack/cartola/ingest"
	"github.com/stretchr/testify/assert"
)

var (
	_ ingest.Store  = (*DB)(nil)
	_ ingest.Limits = (*DB)(nil)
)

func TestRemaining(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		usage int
		want  int
	}{
		{"unlimited", -1, 500, -1},
		{"fresh month", 50, 0, 50},
		{"partially used", 50, 42, 8},
		{"exhausted", 50, 50, 0},
		{"over", 50, 70, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, remaining(tt.limit, tt.usage))
		})
	}
}
