package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/dealscan"
	"github.com/fwojciec/dealscan/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testHistoryItem(product string) *dealscan.HistoryItem {
	return &dealscan.HistoryItem{
		Product:     product,
		ListingHash: "abc123",
		Result: &dealscan.AnalysisResult{
			Verdict:      dealscan.VerdictStrongDeal,
			FinalVerdict: dealscan.ActionBuy,
			MaxToPay:     "$400",
		},
	}
}

func TestHistoryService_CreateItem(t *testing.T) {
	t.Parallel()

	t.Run("creates item with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		item := testHistoryItem("Herman Miller Aeron Chair Size B")

		err := svc.CreateItem(ctx, item)
		require.NoError(t, err)

		assert.NotEmpty(t, item.ID, "ID should be generated")
		assert.False(t, item.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("returns error for invalid item", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		item := &dealscan.HistoryItem{} // missing required fields

		err := svc.CreateItem(ctx, item)
		require.Error(t, err)
		assert.Equal(t, dealscan.EINVALID, dealscan.ErrorCode(err))
	})

	t.Run("prunes history beyond the cap", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		for i := 0; i < dealscan.MaxHistoryItems+5; i++ {
			err := svc.CreateItem(ctx, testHistoryItem(fmt.Sprintf("Product %d", i)))
			require.NoError(t, err)
		}

		var count int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, dealscan.MaxHistoryItems, count)
	})
}

func TestHistoryService_FindItems(t *testing.T) {
	t.Parallel()

	t.Run("returns empty history", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)

		items, err := svc.FindItems(context.Background())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("round-trips the analysis result", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		created := testHistoryItem("DeWalt DCD791 Drill")
		require.NoError(t, svc.CreateItem(ctx, created))

		items, err := svc.FindItems(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)

		found := items[0]
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "DeWalt DCD791 Drill", found.Product)
		assert.Equal(t, "abc123", found.ListingHash)
		require.NotNil(t, found.Result)
		assert.Equal(t, dealscan.VerdictStrongDeal, found.Result.Verdict)
		assert.Equal(t, dealscan.ActionBuy, found.Result.FinalVerdict)
		assert.Equal(t, "$400", found.Result.MaxToPay)
		assert.False(t, found.CreatedAt.IsZero())
	})

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		first := testHistoryItem("First")
		require.NoError(t, svc.CreateItem(ctx, first))

		second := testHistoryItem("Second")
		require.NoError(t, svc.CreateItem(ctx, second))

		// Force distinct timestamps so the ordering is observable.
		_, err := db.ExecContext(ctx,
			"UPDATE history SET created_at = ? WHERE id = ?",
			"2026-01-01T00:00:00Z", first.ID)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx,
			"UPDATE history SET created_at = ? WHERE id = ?",
			"2026-01-02T00:00:00Z", second.ID)
		require.NoError(t, err)

		items, err := svc.FindItems(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Second", items[0].Product)
		assert.Equal(t, "First", items[1].Product)
	})
}

func TestHistoryService_DeleteItems(t *testing.T) {
	t.Parallel()

	t.Run("clears all history", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateItem(ctx, testHistoryItem("Product A")))
		require.NoError(t, svc.CreateItem(ctx, testHistoryItem("Product B")))

		require.NoError(t, svc.DeleteItems(ctx))

		items, err := svc.FindItems(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("succeeds on empty history", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)

		require.NoError(t, svc.DeleteItems(context.Background()))
	})
}
