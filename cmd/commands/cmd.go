package commands

import (
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/sweeper-bot/sweeper/common"
	"github.com/sweeper-bot/sweeper/common/log"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "commands",
	Usage:  "Synchronize slash commands",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "token",
			Usage:    "The bot's token",
			EnvVars:  []string{"DISCORD_TOKEN"},
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "app-id",
			Usage:    "The bot's application ID",
			EnvVars:  []string{"CLIENT_ID"},
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "global",
			Usage: "Synchronize slash commands globally (mutually exclusive with --guild)",
		},
		&cli.Uint64Flag{
			Name:    "guild",
			Usage:   "Synchronize slash commands to a specific guild",
			EnvVars: []string{"GUILD_ID"},
		},
	},
}

func run(c *cli.Context) error {
	global := c.Bool("global")
	guild := c.Uint64("guild")
	if global && guild != 0 {
		return cli.Exit("`global` and `guild` are mutually exclusive", 1)
	}

	appID := discord.AppID(c.Uint64("app-id"))
	client := api.NewClient("Bot " + c.String("token"))

	if global {
		_, err := client.BulkOverwriteCommands(appID, common.Commands)
		if err != nil {
			log.Errorf("Error overwriting commands: %v", err)
			return err
		}

		log.Info("Wrote global commands!")
		return nil
	}

	if guild != 0 {
		guildID := discord.GuildID(guild)

		_, err := client.BulkOverwriteGuildCommands(appID, guildID, common.Commands)
		if err != nil {
			log.Errorf("Error overwriting commands in %v: %v", guildID, err)
			return err
		}

		log.Infof("Wrote guild commands in %v!", guildID)
		return nil
	}

	return cli.Exit("Neither `global` nor `guild` were set", 1)
}
