package memory

import (
	"context"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/sweeper-bot/sweeper/store"
)

var _ store.GuildStore = (*Store)(nil)

func (s *Store) Guild(_ context.Context, id discord.GuildID) (discord.Guild, error) {
	s.guildsMu.RLock()
	defer s.guildsMu.RUnlock()

	g, ok := s.guilds[id]
	if !ok {
		return discord.Guild{}, store.ErrNotFound
	}
	return *g, nil
}

// Guilds returns every cached guild, in no particular order.
func (s *Store) Guilds(_ context.Context) ([]discord.Guild, error) {
	s.guildsMu.RLock()
	defer s.guildsMu.RUnlock()

	gs := make([]discord.Guild, 0, len(s.guilds))
	for _, g := range s.guilds {
		gs = append(gs, *g)
	}
	return gs, nil
}

func (s *Store) GuildSet(_ context.Context, g discord.Guild) error {
	s.guildsMu.Lock()
	defer s.guildsMu.Unlock()

	s.guilds[g.ID] = &g
	return nil
}

func (s *Store) GuildRemove(_ context.Context, id discord.GuildID) error {
	s.guildsMu.Lock()
	defer s.guildsMu.Unlock()

	delete(s.guilds, id)
	return nil
}
