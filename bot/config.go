package bot

import (
	"io/fs"
	"os"
	"strconv"
	"strings"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/sweeper-bot/sweeper/sweep"
)

type Config struct {
	Auth   AuthConfig   `toml:"auth"`
	Bot    BotConfig    `toml:"bot"`
	Sweep  SweepConfig  `toml:"sweep"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

type AuthConfig struct {
	Discord  string        `toml:"discord"`
	ClientID discord.AppID `toml:"client_id"`
	Sentry   string        `toml:"sentry"`
}

type BotConfig struct {
	// CommandsGuildID registers the slash command in this guild only, instead of globally.
	CommandsGuildID discord.GuildID `toml:"commands_guild_id"`
	NoSyncCommands  bool            `toml:"no_sync_commands"`

	// Headless runs without the terminal menu, for hosts that have no terminal attached.
	Headless bool `toml:"headless"`
}

type SweepConfig struct {
	Policy      string `toml:"policy"`
	MaxInFlight int    `toml:"max_in_flight"`

	ChannelName     string `toml:"channel_name"`
	ChannelCategory bool   `toml:"channel_category"`
	AuditReason     string `toml:"audit_reason"`

	// Confirm asks for "yes" before anything destructive is run from the menu.
	Confirm           bool   `toml:"confirm"`
	CheckRolePosition bool   `toml:"check_role_position"`
	BotRoleName       string `toml:"bot_role_name"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type LogConfig struct {
	Debug bool `toml:"debug"`
	// File receives the bot's logs while the menu is open.
	File string `toml:"file"`
	// ActionLog is the append-only record of menu actions. Empty disables it.
	ActionLog string `toml:"action_log"`
}

// DefaultConfig returns the configuration used for anything not set in the file or environment.
func DefaultConfig() Config {
	return Config{
		Sweep: SweepConfig{
			Policy:            string(sweep.Concurrent),
			ChannelName:       "general",
			AuditReason:       "Server cleanup",
			Confirm:           true,
			CheckRolePosition: true,
			BotRoleName:       "Bot",
		},
		Server: ServerConfig{Port: "3001"},
		Log: LogConfig{
			File:      "sweeper.log",
			ActionLog: "log.txt",
		},
	}
}

// ReadConfig reads the file at path on top of the defaults, then applies environment overrides.
// A missing file is not an error.
func ReadConfig(path string) (c Config, err error) {
	c = DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, errors.Wrap(err, "read config file")
	}

	if err == nil {
		err = toml.Unmarshal(b, &c)
		if err != nil {
			return c, errors.Wrap(err, "unmarshal config")
		}
	}

	err = c.applyEnv(os.Getenv)
	return c, err
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if s := getenv("DISCORD_TOKEN"); s != "" {
		c.Auth.Discord = s
	}

	if s := getenv("CLIENT_ID"); s != "" {
		sf, err := discord.ParseSnowflake(s)
		if err != nil {
			return errors.Wrap(err, "parsing CLIENT_ID")
		}
		c.Auth.ClientID = discord.AppID(sf)
	}

	if s := getenv("GUILD_ID"); s != "" {
		sf, err := discord.ParseSnowflake(s)
		if err != nil {
			return errors.Wrap(err, "parsing GUILD_ID")
		}
		c.Bot.CommandsGuildID = discord.GuildID(sf)
	}

	if s := getenv("PORT"); s != "" {
		c.Server.Port = s
	}

	if s := getenv("SENTRY_URL"); s != "" {
		c.Auth.Sentry = s
	}

	// RENDER is set by the hosting platform, so any value counts
	if getenv("RENDER") != "" {
		c.Bot.Headless = true
	}

	if s := getenv("DEBUG_LOGGING"); s != "" {
		debug, err := strconv.ParseBool(s)
		if err != nil {
			return errors.Wrap(err, "parsing DEBUG_LOGGING")
		}
		c.Log.Debug = debug
	}

	return nil
}

// Validate returns an error if the bot can't start with this configuration.
func (c Config) Validate() error {
	var missing []string
	if c.Auth.Discord == "" {
		missing = append(missing, "DISCORD_TOKEN")
	}
	if !c.Auth.ClientID.IsValid() {
		missing = append(missing, "CLIENT_ID")
	}

	if len(missing) > 0 {
		return errors.Errorf("missing %s", strings.Join(missing, " and "))
	}

	if _, err := sweep.ParsePolicy(c.Sweep.Policy); err != nil {
		return errors.Wrap(err, "sweep.policy")
	}
	return nil
}

// SweepOptions converts the [sweep] section into sequencer options.
func (c Config) SweepOptions() (sweep.Options, error) {
	policy, err := sweep.ParsePolicy(c.Sweep.Policy)
	if err != nil {
		return sweep.Options{}, err
	}

	return sweep.Options{
		Policy:      policy,
		MaxInFlight: c.Sweep.MaxInFlight,
		Reason:      c.Sweep.AuditReason,
		Template: sweep.Template{
			Name:     c.Sweep.ChannelName,
			Category: c.Sweep.ChannelCategory,
		},
		SkipRoleCheck: !c.Sweep.CheckRolePosition,
		BotRoleName:   c.Sweep.BotRoleName,
	}, nil
}
