package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func unlimitedPlan(limits *MockLimits) {
	limits.EXPECT().HasPermission(gomock.Any(), testPlanID, "cartola_upload").Return(true, nil).AnyTimes()
	limits.EXPECT().GetLimitsForPlan(gomock.Any(), testPlanID).Return(map[string]int{"cartola_movements": -1}, nil).AnyTimes()
}

func TestImportDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	limits := NewMockLimits(ctrl)
	unlimitedPlan(limits)

	store := newMemStore()
	svc := newTestService(t, store, limits)

	dir := t.TempDir()
	good := statementText("150.000", defaultRows()...)
	writeFile(t, dir, "a_febrero.pdf", good)
	writeFile(t, dir, "b_copia.PDF", good)
	writeFile(t, dir, "c_roto.pdf", "not a statement")
	writeFile(t, dir, "notes.txt", good)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	result, err := svc.ImportDirectory(context.Background(), dir, ImportOptions{UserID: testUserID, PlanID: testPlanID})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, result.Movements)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "c_roto.pdf")
	assert.Len(t, store.movements, 2)
}

func TestImport_SingleFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	limits := NewMockLimits(ctrl)
	unlimitedPlan(limits)

	svc := newTestService(t, newMemStore(), limits)
	path := writeFile(t, t.TempDir(), "cartola.pdf", statementText("150.000", defaultRows()...))

	result, err := svc.Import(context.Background(), path, ImportOptions{UserID: testUserID, PlanID: testPlanID})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Empty(t, result.Errors)
}

func TestImport_MissingPath(t *testing.T) {
	svc := newTestService(t, newMemStore(), NewMockLimits(gomock.NewController(t)))

	_, err := svc.Import(context.Background(), filepath.Join(t.TempDir(), "missing"), ImportOptions{})
	assert.Error(t, err)
}
