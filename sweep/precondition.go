package sweep

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/sweeper-bot/sweeper/common/log"
)

// Precondition makes sure the bot's highest role sits above every role an operation may touch.
// Discord refuses to let the bot edit or delete roles above its own.
type Precondition struct {
	Session  Session
	Snapshot *Snapshot
	Reason   api.AuditLogReason
}

// Check moves the bot's highest role to the top of the role list if any eligible role outranks it.
// It returns true if a move request succeeded. Running it again without other role changes is a no-op.
func (p *Precondition) Check(ctx context.Context, guildID discord.GuildID) (moved bool, err error) {
	botRole, ok, err := p.botRole(ctx, guildID)
	if err != nil {
		return false, err
	}
	if !ok {
		log.Infof("Bot has no special role or only the base role in %v", guildID)
		return false, nil
	}

	eligible := p.Snapshot.Roles(ctx, guildID)
	if len(eligible) == 0 {
		return false, nil
	}
	top := eligible[0]

	if top.ID == botRole.ID || outranks(botRole, top) {
		log.Debugf("Bot role %q is already at the top in %v", botRole.Name, guildID)
		return false, nil
	}

	log.Infof("Moving bot role %q above %q in %v", botRole.Name, top.Name, guildID)

	rls, err := p.Session.MoveRoles(guildID, api.MoveRolesData{
		Roles: []api.MoveRoleData{{
			ID:       botRole.ID,
			Position: option.NewNullableInt(top.Position),
		}},
		AuditLogReason: p.Reason,
	})
	if err != nil {
		return false, errors.Wrapf(err, "moving bot role %q", botRole.Name)
	}

	// Discord returns the whole role list with new positions; keep the cache in step
	// so the next check sees the move even before the gateway update arrives.
	if len(rls) > 0 {
		if err := p.Snapshot.Cabinet.SetRoles(ctx, guildID, rls); err != nil {
			log.Errorf("caching moved roles for %v: %v", guildID, err)
		}
	}

	return true, nil
}

// botRole returns the bot's highest role in the guild.
// ok is false if the bot only holds the base role.
func (p *Precondition) botRole(ctx context.Context, guildID discord.GuildID) (r discord.Role, ok bool, err error) {
	me, err := p.Session.Me()
	if err != nil {
		return r, false, errors.Wrap(err, "getting bot user")
	}

	m, err := p.Session.Member(guildID, me.ID)
	if err != nil {
		return r, false, errors.Wrap(err, "getting bot member")
	}

	held := make(map[discord.RoleID]struct{}, len(m.RoleIDs))
	for _, id := range m.RoleIDs {
		held[id] = struct{}{}
	}

	// AllRoles is sorted most senior first, so the first held role is the highest.
	for _, role := range p.Snapshot.AllRoles(ctx, guildID) {
		if isBaseRole(guildID, role.ID) {
			continue
		}
		if _, has := held[role.ID]; has {
			return role, true, nil
		}
	}
	return r, false, nil
}
