package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"banking-client/internal/errs"
	"banking-client/internal/models/history"
	"banking-client/internal/models/money"
)

func TestStore(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "user")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, s.Set(ctx, "user", "{}"))
	v, err := s.Get(ctx, "user")
	require.NoError(t, err)
	require.Equal(t, "{}", v)

	require.NoError(t, s.Delete(ctx, "user", "missing"))
	_, err = s.Get(ctx, "user")
	require.ErrorIs(t, err, errs.ErrNotFound)

	older := history.NewEntry(history.KindBill, "billing@bank.local", money.Money(100), "XAF", "a")
	newer := history.NewEntry(history.KindTransfer, "bob@bank.io", money.Money(200), "XAF", "b")
	newer.CreatedAt = older.CreatedAt.Add(time.Second)

	require.NoError(t, s.AddEntry(ctx, *newer))
	require.NoError(t, s.AddEntry(ctx, *older))
	require.ErrorIs(t, s.AddEntry(ctx, *older), errs.ErrDuplicateEntry)
	require.ErrorIs(t, s.UpdateEntryStatus(ctx, "nope", history.StatusFailed, ""), errs.ErrNotFound)

	list, err := s.ListEntries(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{older.ID, newer.ID}, []string{list[0].ID, list[1].ID})

	bills, err := s.ListEntries(ctx, history.KindBill)
	require.NoError(t, err)
	require.Len(t, bills, 1)
}
