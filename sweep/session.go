// Package sweep runs bulk role and channel operations against a single guild.
//
// Every operation reads the guild from the cache, makes sure the bot's role sits above the roles it is about to touch,
// and then issues one request per target. Per-target failures never stop a batch; they end up in the returned Report.
package sweep

import (
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/state"
)

// Session is the subset of the Discord session that operations need.
// *state.State satisfies it; tests use a fake.
type Session interface {
	Me() (*discord.User, error)
	Member(guildID discord.GuildID, userID discord.UserID) (*discord.Member, error)

	DeleteRole(guildID discord.GuildID, roleID discord.RoleID, reason api.AuditLogReason) error
	CreateRole(guildID discord.GuildID, data api.CreateRoleData) (*discord.Role, error)
	ModifyRole(guildID discord.GuildID, roleID discord.RoleID, data api.ModifyRoleData) (*discord.Role, error)
	MoveRoles(guildID discord.GuildID, data api.MoveRolesData) ([]discord.Role, error)
	AddRole(guildID discord.GuildID, userID discord.UserID, roleID discord.RoleID, data api.AddRoleData) error

	DeleteChannel(channelID discord.ChannelID, reason api.AuditLogReason) error
	CreateChannel(guildID discord.GuildID, data api.CreateChannelData) (*discord.Channel, error)
}

var _ Session = (*state.State)(nil)
