package sweep

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/sweeper-bot/sweeper/common/log"
)

// GrantPermissions gives the bot a role with the Administrator permission at the top of the role list.
//
// The role named Options.BotRoleName is created if it doesn't exist, or has its permissions replaced if it does.
// It is then moved to the top and assigned to the bot. A failed step skips the steps that depend on it.
func (s *Sequencer) GrantPermissions(ctx context.Context, guildID discord.GuildID) Report {
	rep := Report{Operation: "Give permissions", GuildID: guildID}
	rep.Phases = append(rep.Phases, Phase{
		Name:    PhaseGrantPermissions,
		Results: s.grant(ctx, guildID),
	})
	return s.done(rep)
}

func (s *Sequencer) grant(ctx context.Context, guildID discord.GuildID) (results []Result) {
	add := func(action Action, id discord.RoleID, name string, err error) bool {
		res := newResult(KindRole, action, discord.Snowflake(id), name, err)
		results = append(results, res)
		return res.OK
	}

	me, err := s.session.Me()
	if err != nil {
		return append(results,
			newResult(KindPermission, ActionAssign, 0, s.opts.BotRoleName, errors.Wrap(err, "getting bot user")))
	}

	admin := discord.PermissionAdministrator
	reason := api.AuditLogReason(s.opts.Reason)

	role, exists := s.findRole(ctx, guildID, s.opts.BotRoleName)
	if !exists {
		r, err := s.session.CreateRole(guildID, api.CreateRoleData{
			Name:        s.opts.BotRoleName,
			Permissions: admin,
			Color:       s.opts.BotRoleColor,
			AddRoleData: api.AddRoleData{AuditLogReason: reason},
		})
		var id discord.RoleID
		if err == nil {
			role = *r
			id = role.ID
			s.cacheRole(ctx, guildID, role)
		}
		if !add(ActionCreate, id, s.opts.BotRoleName, err) {
			return results
		}
	} else {
		r, err := s.session.ModifyRole(guildID, role.ID, api.ModifyRoleData{
			Permissions: &admin,
			AddRoleData: api.AddRoleData{AuditLogReason: reason},
		})
		if !add(ActionModify, role.ID, role.Name, err) {
			return results
		}
		role = *r
		s.cacheRole(ctx, guildID, role)
	}

	if rls := s.snapshot.Roles(ctx, guildID); len(rls) > 0 && rls[0].ID != role.ID {
		moved, err := s.session.MoveRoles(guildID, api.MoveRolesData{
			Roles: []api.MoveRoleData{{
				ID:       role.ID,
				Position: option.NewNullableInt(rls[0].Position),
			}},
			AuditLogReason: reason,
		})
		if add(ActionMove, role.ID, role.Name, err) && len(moved) > 0 {
			if err := s.snapshot.Cabinet.SetRoles(ctx, guildID, moved); err != nil {
				log.Errorf("caching moved roles for %v: %v", guildID, err)
			}
		}
	}

	m, err := s.session.Member(guildID, me.ID)
	if err != nil {
		add(ActionAssign, role.ID, role.Name, errors.Wrap(err, "getting bot member"))
		return results
	}

	for _, id := range m.RoleIDs {
		if id == role.ID {
			return results
		}
	}

	err = s.session.AddRole(guildID, me.ID, role.ID, api.AddRoleData{AuditLogReason: reason})
	add(ActionAssign, role.ID, role.Name, err)
	return results
}

func (s *Sequencer) cacheRole(ctx context.Context, guildID discord.GuildID, r discord.Role) {
	if err := s.snapshot.Cabinet.SetRole(ctx, guildID, r); err != nil {
		log.Errorf("caching role %v in %v: %v", r.ID, guildID, err)
	}
}

func (s *Sequencer) findRole(ctx context.Context, guildID discord.GuildID, name string) (discord.Role, bool) {
	for _, r := range s.snapshot.Roles(ctx, guildID) {
		if r.Name == name {
			return r, true
		}
	}
	return discord.Role{}, false
}
