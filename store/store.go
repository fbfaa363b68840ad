// Package store defines the cache interfaces for the guilds Sweeper can operate on.
// The cabinet is filled from gateway events (see package cache) and read at the start of every operation,
// so an operation always works on what Discord last told us rather than on a stale copy.
package store

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
)

const ErrNotFound = errors.Sentinel("value not found in store")

type GuildStore interface {
	Guild(ctx context.Context, id discord.GuildID) (discord.Guild, error)
	Guilds(ctx context.Context) ([]discord.Guild, error)
	GuildSet(ctx context.Context, g discord.Guild) error
	GuildRemove(ctx context.Context, id discord.GuildID) error
}

type RoleStore interface {
	Roles(ctx context.Context, guildID discord.GuildID) ([]discord.Role, error)
	SetRole(ctx context.Context, guildID discord.GuildID, r discord.Role) error
	SetRoles(ctx context.Context, guildID discord.GuildID, rls []discord.Role) error
	RemoveRole(ctx context.Context, guildID discord.GuildID, roleID discord.RoleID) error
	RemoveRoles(ctx context.Context, guildID discord.GuildID) error
}

type ChannelStore interface {
	Channels(ctx context.Context, guildID discord.GuildID) ([]discord.Channel, error)
	SetChannel(ctx context.Context, guildID discord.GuildID, ch discord.Channel) error
	SetChannels(ctx context.Context, guildID discord.GuildID, chs []discord.Channel) error
	RemoveChannel(ctx context.Context, guildID discord.GuildID, channelID discord.ChannelID) error
	RemoveChannels(ctx context.Context, guildID discord.GuildID) error
}

// Cabinet groups the stores together.
type Cabinet struct {
	GuildStore
	RoleStore
	ChannelStore
}
