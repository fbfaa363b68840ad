package sweep

import (
	"context"
	"sort"
	"sync"
	"testing"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/require"
	"github.com/sweeper-bot/sweeper/store"
	"github.com/sweeper-bot/sweeper/store/memory"
)

const (
	testGuildID discord.GuildID = 1000
	botUserID   discord.UserID  = 42
)

var errMissingPermissions = errors.New("403 Forbidden: Missing Permissions")

// fakeSession records every request and applies role moves to its own role list.
type fakeSession struct {
	mu sync.Mutex

	roles    []discord.Role
	botRoles []discord.RoleID

	failDeleteRole    map[discord.RoleID]error
	failDeleteChannel map[discord.ChannelID]error
	// failCreate fails the nth CreateChannel call (1-based).
	failCreate map[int]error
	failMove   error
	// panicRole makes DeleteRole panic for that role.
	panicRole discord.RoleID
	failMember error

	deletedRoles    []discord.RoleID
	deletedChannels []discord.ChannelID
	createdChannels []api.CreateChannelData
	createdRoles    []api.CreateRoleData
	modifiedRoles   []discord.RoleID
	moves           []api.MoveRoleData
	moveReasons     []api.AuditLogReason
	assigned        []discord.RoleID

	nextID discord.Snowflake
}

var _ Session = (*fakeSession)(nil)

func (f *fakeSession) Me() (*discord.User, error) {
	return &discord.User{ID: botUserID, Username: "sweeper", Bot: true}, nil
}

func (f *fakeSession) Member(guildID discord.GuildID, userID discord.UserID) (*discord.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failMember != nil {
		return nil, f.failMember
	}
	return &discord.Member{
		User:    discord.User{ID: userID},
		RoleIDs: append([]discord.RoleID(nil), f.botRoles...),
	}, nil
}

func (f *fakeSession) DeleteRole(_ discord.GuildID, roleID discord.RoleID, _ api.AuditLogReason) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deletedRoles = append(f.deletedRoles, roleID)
	if roleID == f.panicRole {
		panic("unexpected response")
	}
	return f.failDeleteRole[roleID]
}

func (f *fakeSession) CreateRole(_ discord.GuildID, data api.CreateRoleData) (*discord.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createdRoles = append(f.createdRoles, data)
	f.nextID++
	r := discord.Role{ID: discord.RoleID(5000 + f.nextID), Name: data.Name, Permissions: data.Permissions, Position: 1}
	f.roles = append(f.roles, r)
	return &r, nil
}

func (f *fakeSession) ModifyRole(_ discord.GuildID, roleID discord.RoleID, data api.ModifyRoleData) (*discord.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.modifiedRoles = append(f.modifiedRoles, roleID)
	for i := range f.roles {
		if f.roles[i].ID == roleID {
			if data.Permissions != nil {
				f.roles[i].Permissions = *data.Permissions
			}
			r := f.roles[i]
			return &r, nil
		}
	}
	return nil, errors.New("404 Not Found: Unknown Role")
}

// MoveRoles moves a role up to the given position, shifting the roles it passes down by one.
func (f *fakeSession) MoveRoles(_ discord.GuildID, data api.MoveRolesData) ([]discord.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.moves = append(f.moves, data.Roles...)
	f.moveReasons = append(f.moveReasons, data.AuditLogReason)
	if f.failMove != nil {
		return nil, f.failMove
	}

	for _, d := range data.Roles {
		to := int(d.Position.Val)

		from := -1
		for _, r := range f.roles {
			if r.ID == d.ID {
				from = r.Position
			}
		}

		for i := range f.roles {
			switch {
			case f.roles[i].ID == d.ID:
				f.roles[i].Position = to
			case f.roles[i].Position <= to && f.roles[i].Position > from:
				f.roles[i].Position--
			}
		}
	}

	return append([]discord.Role(nil), f.roles...), nil
}

func (f *fakeSession) AddRole(_ discord.GuildID, _ discord.UserID, roleID discord.RoleID, _ api.AddRoleData) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.assigned = append(f.assigned, roleID)
	f.botRoles = append(f.botRoles, roleID)
	return nil
}

func (f *fakeSession) DeleteChannel(channelID discord.ChannelID, _ api.AuditLogReason) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deletedChannels = append(f.deletedChannels, channelID)
	return f.failDeleteChannel[channelID]
}

func (f *fakeSession) CreateChannel(guildID discord.GuildID, data api.CreateChannelData) (*discord.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createdChannels = append(f.createdChannels, data)
	if err := f.failCreate[len(f.createdChannels)]; err != nil {
		return nil, err
	}

	f.nextID++
	return &discord.Channel{
		ID:      discord.ChannelID(9000 + f.nextID),
		GuildID: guildID,
		Name:    data.Name,
		Type:    data.Type,
	}, nil
}

func sortedIDs[T ~uint64](ids []T) []T {
	out := append([]T(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// newCabinet returns a memory cabinet holding the guild, its roles and channels.
func newCabinet(t *testing.T, roles []discord.Role, channels []discord.Channel) store.Cabinet {
	t.Helper()

	ctx := context.Background()
	cab := memory.New().Cabinet()

	require.NoError(t, cab.GuildSet(ctx, discord.Guild{ID: testGuildID, Name: "Test guild"}))
	if len(roles) > 0 {
		require.NoError(t, cab.SetRoles(ctx, testGuildID, roles))
	}
	if len(channels) > 0 {
		require.NoError(t, cab.SetChannels(ctx, testGuildID, channels))
	}
	return cab
}

func baseRole() discord.Role {
	return discord.Role{ID: discord.RoleID(testGuildID), Name: "@everyone", Position: 0}
}
