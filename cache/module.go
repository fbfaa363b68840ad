// Package cache keeps the cabinet in step with the gateway.
// Handlers here only cache and log; they never send anything to Discord.
package cache

import (
	"github.com/sweeper-bot/sweeper/bot"
	"github.com/sweeper-bot/sweeper/store"
)

type Bot struct {
	Cabinet store.Cabinet
}

func Setup(root *bot.Bot) {
	bot := &Bot{Cabinet: root.Cabinet}

	root.AddHandler(
		bot.ready,
		bot.guildCreate,
		bot.guildUpdate,
		bot.guildDelete,
		bot.roleCreate,
		bot.roleUpdate,
		bot.roleDelete,
		bot.channelCreate,
		bot.channelUpdate,
		bot.channelDelete,
	)
}
