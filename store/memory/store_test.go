package memory

import (
	"context"
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweeper-bot/sweeper/store"
)

const guildID discord.GuildID = 100

func TestRoles(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Roles(ctx, guildID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SetRoles(ctx, guildID, []discord.Role{
		{ID: 100, Name: "@everyone"},
		{ID: 1, Name: "Admin", Position: 2},
	}))
	require.NoError(t, s.SetRole(ctx, guildID, discord.Role{ID: 2, Name: "Mod", Position: 1}))

	rls, err := s.Roles(ctx, guildID)
	require.NoError(t, err)
	assert.Len(t, rls, 3)

	// updating an existing role must not duplicate it
	require.NoError(t, s.SetRole(ctx, guildID, discord.Role{ID: 2, Name: "Moderator", Position: 1}))
	rls, err = s.Roles(ctx, guildID)
	require.NoError(t, err)
	require.Len(t, rls, 3)
	assert.Equal(t, "Moderator", rls[2].Name)

	require.NoError(t, s.RemoveRole(ctx, guildID, 1))
	rls, err = s.Roles(ctx, guildID)
	require.NoError(t, err)
	assert.Len(t, rls, 2)
	for _, r := range rls {
		assert.NotEqual(t, discord.RoleID(1), r.ID)
	}

	require.NoError(t, s.RemoveRoles(ctx, guildID))
	_, err = s.Roles(ctx, guildID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestChannels(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.SetChannels(ctx, guildID, []discord.Channel{
		{ID: 10, Name: "general", Type: discord.GuildText},
		{ID: 11, Name: "Text", Type: discord.GuildCategory},
	}))

	chs, err := s.Channels(ctx, guildID)
	require.NoError(t, err)
	require.Len(t, chs, 2)
	assert.Equal(t, "general", chs[0].Name)
	assert.Equal(t, "Text", chs[1].Name)

	require.NoError(t, s.RemoveChannel(ctx, guildID, 10))
	require.NoError(t, s.RemoveChannel(ctx, guildID, 11))

	_, err = s.Channels(ctx, guildID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// removed channels don't come back with the next guild's channels
	require.NoError(t, s.SetChannel(ctx, 200, discord.Channel{ID: 20, Name: "other"}))
	chs, err = s.Channels(ctx, 200)
	require.NoError(t, err)
	assert.Len(t, chs, 1)
}

func TestGuilds(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.GuildSet(ctx, discord.Guild{ID: 1, Name: "one"}))
	require.NoError(t, s.GuildSet(ctx, discord.Guild{ID: 2, Name: "two"}))

	gs, err := s.Guilds(ctx)
	require.NoError(t, err)
	assert.Len(t, gs, 2)

	require.NoError(t, s.GuildRemove(ctx, 1))
	_, err = s.Guild(ctx, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	g, err := s.Guild(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "two", g.Name)
}

func TestRemove(t *testing.T) {
	assert.Equal(t, []int{2, 3}, remove([]int{1, 2, 3}, 1))
	assert.Equal(t, []int{1, 3}, remove([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1, 2}, remove([]int{1, 2, 3}, 3))
	assert.Equal(t, []int{1, 2, 3}, remove([]int{1, 2, 3}, 4))
}
