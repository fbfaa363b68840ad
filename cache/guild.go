package cache

import (
	"context"
	"time"

	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/sweeper-bot/sweeper/common/log"
)

func (bot *Bot) ready(ev *gateway.ReadyEvent) {
	log.Infof("Logged in as %v (%v), in %d guild(s)", ev.User.Tag(), ev.User.ID, len(ev.Guilds))
}

func (bot *Bot) guildCreate(ev *gateway.GuildCreateEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if ev.Unavailable {
		log.Debugf("guild %v is unavailable", ev.ID)
		return
	}

	err := bot.Cabinet.GuildSet(ctx, ev.Guild)
	if err != nil {
		log.Errorf("setting guild %v: %v", ev.ID, err)
		return
	}

	err = bot.Cabinet.SetRoles(ctx, ev.ID, ev.Roles)
	if err != nil {
		log.Errorf("setting roles for %v: %v", ev.ID, err)
		return
	}

	err = bot.Cabinet.SetChannels(ctx, ev.ID, ev.Channels)
	if err != nil {
		log.Errorf("setting channels for %v: %v", ev.ID, err)
		return
	}

	log.Infof("- %v (%v): %d roles, %d channels", ev.Name, ev.ID, len(ev.Roles), len(ev.Channels))
}

func (bot *Bot) guildUpdate(ev *gateway.GuildUpdateEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := bot.Cabinet.GuildSet(ctx, ev.Guild)
	if err != nil {
		log.Errorf("updating guild %v: %v", ev.ID, err)
	}
}

func (bot *Bot) guildDelete(ev *gateway.GuildDeleteEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// an outage, not a removal
	if ev.Unavailable {
		log.Debugf("guild %v became unavailable", ev.ID)
		return
	}

	log.Infof("Removed from guild %v", ev.ID)

	if err := bot.Cabinet.RemoveRoles(ctx, ev.ID); err != nil {
		log.Errorf("removing roles for %v: %v", ev.ID, err)
	}
	if err := bot.Cabinet.RemoveChannels(ctx, ev.ID); err != nil {
		log.Errorf("removing channels for %v: %v", ev.ID, err)
	}
	if err := bot.Cabinet.GuildRemove(ctx, ev.ID); err != nil {
		log.Errorf("removing guild %v: %v", ev.ID, err)
	}
}
