package sweep

import (
	"context"
	"sort"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/sweeper-bot/sweeper/common"
	"github.com/sweeper-bot/sweeper/common/log"
	"github.com/sweeper-bot/sweeper/store"
)

// Snapshot reads the cached state of a guild.
// A cache miss is not an error: there is simply nothing to do.
type Snapshot struct {
	Cabinet store.Cabinet
}

// Guilds returns all cached guilds, sorted by name.
func (s *Snapshot) Guilds(ctx context.Context) []discord.Guild {
	gs, err := s.Cabinet.Guilds(ctx)
	if err != nil {
		log.Errorf("listing guilds: %v", err)
		return nil
	}

	sort.Slice(gs, func(i, j int) bool {
		a, b := strings.ToLower(gs[i].Name), strings.ToLower(gs[j].Name)
		if a == b {
			return gs[i].ID < gs[j].ID
		}
		return a < b
	})
	return gs
}

// AllRoles returns every cached role in the guild, including the base role and managed roles,
// most senior first.
func (s *Snapshot) AllRoles(ctx context.Context, guildID discord.GuildID) []discord.Role {
	rls, err := s.Cabinet.Roles(ctx, guildID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Errorf("getting roles for %v: %v", guildID, err)
		} else {
			log.Debugf("no roles cached for %v", guildID)
		}
		return nil
	}

	sortRoles(rls)
	return rls
}

// Roles returns the roles that operations may touch: everything except the base role and managed roles,
// most senior first.
func (s *Snapshot) Roles(ctx context.Context, guildID discord.GuildID) []discord.Role {
	return eligibleRoles(guildID, s.AllRoles(ctx, guildID))
}

// Channels returns the guild's channels split into standard channels and categories,
// each in the order the Discord client shows them.
func (s *Snapshot) Channels(ctx context.Context, guildID discord.GuildID) (channels, categories []discord.Channel) {
	chs, err := s.Cabinet.Channels(ctx, guildID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Errorf("getting channels for %v: %v", guildID, err)
		} else {
			log.Debugf("no channels cached for %v", guildID)
		}
		return nil, nil
	}

	for _, ch := range common.SortChannels(chs) {
		if ch.Type == discord.GuildCategory {
			categories = append(categories, ch)
		} else {
			channels = append(channels, ch)
		}
	}
	return channels, categories
}

func eligibleRoles(guildID discord.GuildID, rls []discord.Role) []discord.Role {
	out := make([]discord.Role, 0, len(rls))
	for _, r := range rls {
		if isBaseRole(guildID, r.ID) || r.Managed {
			continue
		}
		out = append(out, r)
	}
	return out
}

func isBaseRole(guildID discord.GuildID, roleID discord.RoleID) bool {
	return discord.Snowflake(roleID) == discord.Snowflake(guildID)
}

// sortRoles sorts roles most senior first.
// Discord breaks position ties by ID, with the older (lower) ID ranking higher.
func sortRoles(rls []discord.Role) {
	sort.SliceStable(rls, func(i, j int) bool {
		return outranks(rls[i], rls[j])
	})
}

// outranks returns true if a sits above b in the role list.
func outranks(a, b discord.Role) bool {
	if a.Position == b.Position {
		return a.ID < b.ID
	}
	return a.Position > b.Position
}
