package CronJobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnmolGhill/Halo/Models"
)

func TestPruneExpiredRemovesOnlyStaleConversations(t *testing.T) {
	require.NoError(t, Models.ConnectTestDataBase())

	_, err := Models.EnsureConversation("u1", "conv_old", "old")
	require.NoError(t, err)
	_, err = Models.EnsureConversation("u1", "conv_new", "new")
	require.NoError(t, err)

	stale := time.Now().AddDate(0, 0, -100)
	require.NoError(t, Models.DB.Model(&Models.Conversation{}).
		Where("id = ?", "conv_old").Update("updated_at", stale).Error)

	retention := NewConversationRetention(90)
	require.NoError(t, retention.PruneExpired())

	remaining, err := Models.GetConversationsByUID("u1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "conv_new", remaining[0].ID)
}

func TestPruneExpiredNoopOnFreshData(t *testing.T) {
	require.NoError(t, Models.ConnectTestDataBase())

	_, err := Models.EnsureConversation("u1", "conv_new", "new")
	require.NoError(t, err)

	retention := NewConversationRetention(90)
	require.NoError(t, retention.PruneExpired())

	remaining, err := Models.GetConversationsByUID("u1")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
