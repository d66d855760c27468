package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treloarai/callscreen/internal/screening/domain"
)

func TestContactStore_SeedsAndOrdering(t *testing.T) {
	store := NewContactStore()
	ctx := context.Background()

	contacts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 3)

	contact := domain.NewContact("+15551230000", "New Person", "Friend")
	require.NoError(t, store.Create(ctx, contact))
	assert.Equal(t, int64(4), contact.ID, "ids continue monotonically after the seeds")

	contacts, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 4)
	assert.Equal(t, "+15551230000", contacts[0].PhoneNumber, "newest contact listed first")
}

func TestContactStore_DeleteIsNoOpWhenAbsent(t *testing.T) {
	store := NewContactStore()
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, 999))

	contacts, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, contacts, 3)

	require.NoError(t, store.Delete(ctx, 2))
	contacts, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
	for _, c := range contacts {
		assert.NotEqual(t, int64(2), c.ID)
	}
}

func TestContactStore_IDsAreNeverReused(t *testing.T) {
	store := NewContactStore()
	ctx := context.Background()

	first := domain.NewContact("+10000000001", "A", "Friend")
	require.NoError(t, store.Create(ctx, first))
	require.NoError(t, store.Delete(ctx, first.ID))

	second := domain.NewContact("+10000000002", "B", "Friend")
	require.NoError(t, store.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}

func TestBlockedStore_SeedsAndAttempts(t *testing.T) {
	store := NewBlockedStore()
	ctx := context.Background()

	blocked, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, blocked, 2)

	bn := domain.NewBlockedNumber("+1555000111", "Spam")
	require.NoError(t, store.Create(ctx, bn))
	assert.Equal(t, 1, bn.Attempts, "attempts starts at 1 and is never incremented")
	assert.Equal(t, int64(3), bn.ID)
}

func TestCallStore_ListHonorsLimit(t *testing.T) {
	store := NewCallStore()
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		call := domain.NewCallRecord("+1555999000", "Bulk Caller", "incoming", 10, "low", "handled", "processed")
		require.NoError(t, store.Create(ctx, call))
	}

	calls, err := store.List(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, calls, 50)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 63, "seeds plus bulk inserts")

	for i := 1; i < len(calls); i++ {
		assert.False(t, calls[i].Timestamp.After(calls[i-1].Timestamp), "descending by timestamp")
	}
}

func TestSettingsStore_MergeKeepsOtherKeys(t *testing.T) {
	store := NewSettingsStore()
	ctx := context.Background()

	require.NoError(t, store.Merge(ctx, domain.Settings{"ai_enabled": "false"}))

	settings, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "false", settings["ai_enabled"])
	assert.Equal(t, "intelligent", settings["screening_mode"])
	assert.Equal(t, "high", settings["notification_level"])
}

func TestSettingsStore_GetAllReturnsCopy(t *testing.T) {
	store := NewSettingsStore()
	ctx := context.Background()

	settings, err := store.GetAll(ctx)
	require.NoError(t, err)
	settings["ai_enabled"] = "mutated"

	fresh, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "true", fresh["ai_enabled"])
}

func TestSortByTimeDesc_TiesBreakOnID(t *testing.T) {
	now := time.Now().UTC()
	items := []*domain.Contact{
		{ID: 1, CreatedAt: now},
		{ID: 3, CreatedAt: now},
		{ID: 2, CreatedAt: now},
	}
	sortByTimeDesc(items, func(c *domain.Contact) time.Time { return c.CreatedAt }, func(c *domain.Contact) int64 { return c.ID })
	assert.Equal(t, int64(3), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, int64(1), items[2].ID)
}
