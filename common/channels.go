package common

import (
	"sort"

	"github.com/diamondburned/arikawa/v3/discord"
)

// IsThread returns true if ch is any kind of thread.
func IsThread(ch discord.Channel) bool {
	return ch.Type == discord.GuildNewsThread || ch.Type == discord.GuildPrivateThread || ch.Type == discord.GuildPublicThread
}

// SortChannels sorts the given channels into the order shown in the Discord client.
// Threads are dropped. It returns a new slice, and does not modify the given slice in place.
func SortChannels(channels []discord.Channel) []discord.Channel {
	var (
		noCategory       = make([]discord.Channel, 0)
		categoryChannels = make([]discord.Channel, 0)
		categories       = make(map[discord.ChannelID][]discord.Channel)
	)
	for _, ch := range channels {
		if ch.Type == discord.GuildCategory {
			categoryChannels = append(categoryChannels, ch)
			continue
		}

		if IsThread(ch) {
			continue
		}

		if !ch.ParentID.IsValid() {
			noCategory = append(noCategory, ch)
		} else {
			categories[ch.ParentID] = append(categories[ch.ParentID], ch)
		}
	}

	byPosition := func(chs []discord.Channel) {
		sort.SliceStable(chs, func(i, j int) bool {
			if chs[i].Position == chs[j].Position {
				return chs[i].ID < chs[j].ID
			}
			return chs[i].Position < chs[j].Position
		})
	}

	byPosition(noCategory)
	byPosition(categoryChannels)
	for cat := range categories {
		byPosition(categories[cat])
	}

	sorted := make([]discord.Channel, 0, len(channels))
	sorted = append(sorted, noCategory...)

	seen := make(map[discord.ChannelID]struct{}, len(categoryChannels))
	for _, cat := range categoryChannels {
		seen[cat.ID] = struct{}{}
		sorted = append(sorted, cat)
		sorted = append(sorted, categories[cat.ID]...)
	}

	// channels whose category isn't cached go last, so they're never lost
	var orphans []discord.Channel
	for parent, chs := range categories {
		if _, ok := seen[parent]; !ok {
			orphans = append(orphans, chs...)
		}
	}
	byPosition(orphans)

	return append(sorted, orphans...)
}
