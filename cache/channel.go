package cache

import (
	"context"
	"time"

	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/sweeper-bot/sweeper/common"
	"github.com/sweeper-bot/sweeper/common/log"
)

func (bot *Bot) channelCreate(ev *gateway.ChannelCreateEvent) {
	if common.IsThread(ev.Channel) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := bot.Cabinet.SetChannel(ctx, ev.GuildID, ev.Channel)
	if err != nil {
		log.Errorf("setting channel %v in %v: %v", ev.ID, ev.GuildID, err)
	}
}

func (bot *Bot) channelUpdate(ev *gateway.ChannelUpdateEvent) {
	if common.IsThread(ev.Channel) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := bot.Cabinet.SetChannel(ctx, ev.GuildID, ev.Channel)
	if err != nil {
		log.Errorf("updating channel %v in %v: %v", ev.ID, ev.GuildID, err)
	}
}

func (bot *Bot) channelDelete(ev *gateway.ChannelDeleteEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := bot.Cabinet.RemoveChannel(ctx, ev.GuildID, ev.ID)
	if err != nil {
		log.Errorf("deleting channel %v in %v: %v", ev.ID, ev.GuildID, err)
	}
}
