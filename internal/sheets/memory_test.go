package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// Missing sheet reads as (nil, nil), matching the Postgres store.
	sheet, err := store.Read(ctx, "MISSING")
	assert.NoError(t, err)
	assert.Nil(t, sheet)

	require.NoError(t, store.CreateSheet(ctx, "CLIENTES", []string{"ID", "RAZAO_SOCIAL"}))
	assert.Error(t, store.CreateSheet(ctx, "CLIENTES", []string{"ID"}))

	require.NoError(t, store.AppendRow(ctx, "CLIENTES", []interface{}{"CLI-1", "Empresa A"}))
	require.NoError(t, store.AppendRow(ctx, "CLIENTES", []interface{}{"CLI-2", "Empresa B"}))

	sheet, err = store.Read(ctx, "CLIENTES")
	require.NoError(t, err)
	require.NotNil(t, sheet)
	assert.Equal(t, []string{"ID", "RAZAO_SOCIAL"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Empresa A", sheet.Cell(0, 1))

	require.NoError(t, store.UpdateCell(ctx, "CLIENTES", 1, 1, "Empresa B Ltda"))
	require.NoError(t, store.DeleteRow(ctx, "CLIENTES", 0))

	sheet, err = store.Read(ctx, "CLIENTES")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "Empresa B Ltda", sheet.Cell(0, 1))

	// Snapshot isolation: mutating a returned sheet must not touch the store.
	sheet.Rows[0][1] = "mutated"
	again, err := store.Read(ctx, "CLIENTES")
	require.NoError(t, err)
	assert.Equal(t, "Empresa B Ltda", again.Cell(0, 1))
}

func TestMemoryStoreRowErrors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	assert.Error(t, store.AppendRow(ctx, "NOPE", []interface{}{"x"}))
	require.NoError(t, store.CreateSheet(ctx, "EMPTY", []string{"A"}))
	assert.Error(t, store.UpdateCell(ctx, "EMPTY", 0, 0, "x"))
	assert.Error(t, store.DeleteRow(ctx, "EMPTY", 0))
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "2024", CellText(float64(2024)))
	assert.Equal(t, "2024.5", CellText(2024.5))
	assert.Equal(t, "Janeiro", CellText("Janeiro"))
	assert.Equal(t, "", CellText(nil))
	assert.Equal(t, "janeiro", NormalizeText("  Janeiro "))
}
