package bot

import (
	"context"
	"sync"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/session/shard"
	"github.com/diamondburned/arikawa/v3/state"
	arikawastore "github.com/diamondburned/arikawa/v3/state/store"
	"github.com/diamondburned/arikawa/v3/utils/ws"
	"github.com/sweeper-bot/sweeper/common"
	"github.com/sweeper-bot/sweeper/common/log"
	"github.com/sweeper-bot/sweeper/store"
	"github.com/sweeper-bot/sweeper/store/memory"
)

// Guild events carry everything the cabinet holds; members are fetched over REST when needed.
const Intents = gateway.IntentGuilds

type Bot struct {
	Manager *shard.Manager
	Config  Config

	Cabinet store.Cabinet

	readyOnce sync.Once
	ready     chan struct{}
}

// New creates a new Bot.
func New(c Config) (*Bot, error) {
	// set up debug logging
	ws.WSDebug = log.Debug
	ws.WSError = func(err error) {
		log.SugaredLogger.Error("ws error: ", err)
	}

	mgr, err := shard.NewManager("Bot "+c.Auth.Discord, state.NewShardFunc(func(m *shard.Manager, s *state.State) {
		s.AddIntents(Intents)

		// guilds, roles and channels live in our own cabinet; the rest isn't needed
		s.Cabinet.ChannelStore = arikawastore.Noop
		s.Cabinet.GuildStore = arikawastore.Noop
		s.Cabinet.MemberStore = arikawastore.Noop
		s.Cabinet.MessageStore = arikawastore.Noop
		s.Cabinet.PresenceStore = arikawastore.Noop
		s.Cabinet.RoleStore = arikawastore.Noop
	}))
	if err != nil {
		return nil, errors.Wrap(err, "creating shard manager")
	}

	bot := &Bot{
		Manager: mgr,
		Config:  c,
		Cabinet: memory.New().Cabinet(),
		ready:   make(chan struct{}),
	}

	bot.State().AddHandler(bot.readyEvent)
	bot.AddHandler(bot.interactionCreate)

	return bot, nil
}

func (bot *Bot) Open(ctx context.Context) error {
	log.Debug("opening gateway connection")

	return bot.Manager.Open(ctx)
}

func (bot *Bot) Close() error {
	return bot.Manager.Close()
}

// AddHandler adds handlers to all states.
func (bot *Bot) AddHandler(i ...any) {
	bot.Manager.ForEach(func(shard shard.Shard) {
		s := shard.(*state.State)
		for _, hn := range i {
			s.AddHandler(hn)
		}
	})
}

// State returns the first shard's state. Sweeper only ever runs a single shard.
func (bot *Bot) State() *state.State {
	return bot.Manager.Shard(0).(*state.State)
}

// Ready is closed once the first ready event has been received.
func (bot *Bot) Ready() <-chan struct{} {
	return bot.ready
}

func (bot *Bot) readyEvent(*gateway.ReadyEvent) {
	bot.readyOnce.Do(func() { close(bot.ready) })
}

// SyncCommands overwrites the bot's slash commands, in the configured guild if there is one.
func (bot *Bot) SyncCommands() error {
	s := bot.State()
	appID := bot.Config.Auth.ClientID
	guildID := bot.Config.Bot.CommandsGuildID

	if guildID.IsValid() {
		_, err := s.BulkOverwriteGuildCommands(appID, guildID, common.Commands)
		if err != nil {
			return errors.Wrapf(err, "overwriting commands in %v", guildID)
		}
		log.Infof("Synced slash commands in %v", guildID)
		return nil
	}

	_, err := s.BulkOverwriteCommands(appID, common.Commands)
	if err != nil {
		return errors.Wrap(err, "overwriting global commands")
	}
	log.Info("Synced slash commands globally")
	return nil
}
