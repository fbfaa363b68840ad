package cmd

import (
	"os"

	"github.com/sweeper-bot/sweeper/cmd/bot"
	"github.com/sweeper-bot/sweeper/cmd/commands"
	"github.com/sweeper-bot/sweeper/common"
	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:    "Sweeper",
	Usage:   "Discord server cleanup bot",
	Version: common.Version(),

	Commands: []*cli.Command{
		bot.Command,
		commands.Command,
	},
}

func Run() error {
	return app.Run(os.Args)
}
