package cache

import (
	"context"
	"time"

	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/sweeper-bot/sweeper/common/log"
)

func (bot *Bot) roleCreate(ev *gateway.GuildRoleCreateEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := bot.Cabinet.SetRole(ctx, ev.GuildID, ev.Role)
	if err != nil {
		log.Errorf("setting role %v in %v: %v", ev.Role.ID, ev.GuildID, err)
	}
}

func (bot *Bot) roleUpdate(ev *gateway.GuildRoleUpdateEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := bot.Cabinet.SetRole(ctx, ev.GuildID, ev.Role)
	if err != nil {
		log.Errorf("updating role %v in %v: %v", ev.Role.ID, ev.GuildID, err)
	}
}

func (bot *Bot) roleDelete(ev *gateway.GuildRoleDeleteEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := bot.Cabinet.RemoveRole(ctx, ev.GuildID, ev.RoleID)
	if err != nil {
		log.Errorf("deleting role %v in %v: %v", ev.RoleID, ev.GuildID, err)
	}
}
