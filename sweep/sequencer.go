package sweep

import (
	"context"
	"fmt"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/sweeper-bot/sweeper/common/log"
	"github.com/sweeper-bot/sweeper/store"
)

const (
	PhaseDeleteRoles      = "Delete roles"
	PhaseDeleteChannels   = "Delete channels"
	PhaseCreateChannels   = "Create channels"
	PhaseGrantPermissions = "Grant permissions"
)

// Options configures a Sequencer.
type Options struct {
	Policy      Policy
	MaxInFlight int
	Reason      string

	// Template is used for every created channel.
	Template Template

	// SkipRoleCheck disables the precondition that moves the bot's role to the top.
	SkipRoleCheck bool

	// BotRoleName is the role GrantPermissions creates or updates.
	BotRoleName string
	// BotRoleColor is the colour of a newly created bot role.
	BotRoleColor discord.Color
}

// Sequencer composes the snapshot, precondition and executor into the user-facing operations.
// Only one operation should run at a time; batches within an operation always run in order.
type Sequencer struct {
	snapshot     *Snapshot
	precondition *Precondition
	executor     *Executor
	session      Session
	opts         Options
}

// New creates a Sequencer that reads from cabinet and writes through s.
func New(s Session, cabinet store.Cabinet, opts Options) *Sequencer {
	if opts.Policy == "" {
		opts.Policy = Concurrent
	}
	if opts.BotRoleName == "" {
		opts.BotRoleName = "Bot"
	}
	if opts.BotRoleColor == 0 {
		opts.BotRoleColor = 0x00ff00
	}

	reason := api.AuditLogReason(opts.Reason)
	snap := &Snapshot{Cabinet: cabinet}

	return &Sequencer{
		snapshot: snap,
		precondition: &Precondition{
			Session:  s,
			Snapshot: snap,
			Reason:   reason,
		},
		executor: &Executor{
			Session:     s,
			Cabinet:     &snap.Cabinet,
			Policy:      opts.Policy,
			MaxInFlight: opts.MaxInFlight,
			Reason:      reason,
		},
		session: s,
		opts:    opts,
	}
}

// Guilds returns the guilds that can be operated on, sorted by name.
func (s *Sequencer) Guilds(ctx context.Context) []discord.Guild {
	return s.snapshot.Guilds(ctx)
}

// Policy returns the execution policy in use.
func (s *Sequencer) Policy() Policy {
	return s.opts.Policy
}

// WipeRoles deletes every role except the base role and managed roles.
func (s *Sequencer) WipeRoles(ctx context.Context, guildID discord.GuildID) Report {
	rep := Report{Operation: "Delete roles", GuildID: guildID}
	s.checkRoles(ctx, &rep)
	s.deleteRoles(ctx, &rep)
	return s.done(rep)
}

// WipeChannels deletes every channel and category in a single batch.
func (s *Sequencer) WipeChannels(ctx context.Context, guildID discord.GuildID) Report {
	rep := Report{Operation: "Delete channels", GuildID: guildID}
	s.checkRoles(ctx, &rep)
	s.deleteChannels(ctx, &rep)
	return s.done(rep)
}

// CreateChannels creates n channels from the configured template.
// A negative n returns a ValidationError without touching the guild.
func (s *Sequencer) CreateChannels(ctx context.Context, guildID discord.GuildID, n int) (Report, error) {
	rep := Report{Operation: "Create channels", GuildID: guildID}
	if err := validateCount(n); err != nil {
		return rep, err
	}

	s.checkRoles(ctx, &rep)
	if err := s.createChannels(ctx, &rep, n); err != nil {
		return rep, err
	}
	return s.done(rep), nil
}

// AllInOne deletes all roles, then all channels, then creates n channels if n > 0.
// Nothing is restored if creation fails after the deletions: the guild is left as it is.
func (s *Sequencer) AllInOne(ctx context.Context, guildID discord.GuildID, n int) (Report, error) {
	rep := Report{Operation: "All in One", GuildID: guildID}
	if err := validateCount(n); err != nil {
		return rep, err
	}

	s.checkRoles(ctx, &rep)

	log.Infof("[1/3] %s in %v", PhaseDeleteRoles, guildID)
	s.deleteRoles(ctx, &rep)

	log.Infof("[2/3] %s in %v", PhaseDeleteChannels, guildID)
	s.deleteChannels(ctx, &rep)

	if n > 0 {
		log.Infof("[3/3] %s in %v", PhaseCreateChannels, guildID)
		if err := s.createChannels(ctx, &rep, n); err != nil {
			return rep, err
		}
	}

	return s.done(rep), nil
}

func (s *Sequencer) checkRoles(ctx context.Context, rep *Report) {
	if s.opts.SkipRoleCheck {
		return
	}

	if _, err := s.precondition.Check(ctx, rep.GuildID); err != nil {
		log.Warnf("Checking bot role position in %v: %v", rep.GuildID, err)
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("Couldn't move the bot's role to the top: %v", err))
	}
}

func (s *Sequencer) deleteRoles(ctx context.Context, rep *Report) {
	roles := s.snapshot.Roles(ctx, rep.GuildID)
	rep.Phases = append(rep.Phases, Phase{
		Name:    PhaseDeleteRoles,
		Results: s.executor.DeleteRoles(ctx, rep.GuildID, roles),
	})
}

func (s *Sequencer) deleteChannels(ctx context.Context, rep *Report) {
	channels, categories := s.snapshot.Channels(ctx, rep.GuildID)

	targets := make([]discord.Channel, 0, len(channels)+len(categories))
	targets = append(targets, channels...)
	targets = append(targets, categories...)

	rep.Phases = append(rep.Phases, Phase{
		Name:    PhaseDeleteChannels,
		Results: s.executor.DeleteChannels(ctx, targets),
	})
}

func (s *Sequencer) createChannels(ctx context.Context, rep *Report, n int) error {
	results, err := s.executor.CreateChannels(ctx, rep.GuildID, n, s.opts.Template)
	if err != nil {
		return err
	}

	rep.Phases = append(rep.Phases, Phase{
		Name:    PhaseCreateChannels,
		Results: results,
	})
	return nil
}

func (s *Sequencer) done(rep Report) Report {
	log.Infof("%s in %v completed: %d/%d succeeded", rep.Operation, rep.GuildID, rep.Total()-rep.Failed(), rep.Total())
	return rep
}
