package bot

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/sweeper-bot/sweeper/common"
	"github.com/sweeper-bot/sweeper/common/log"
)

// Responder sends interaction responses. It is satisfied by *state.State.
type Responder interface {
	RespondInteraction(id discord.InteractionID, token string, resp api.InteractionResponse) error
}

func (bot *Bot) interactionCreate(ev *gateway.InteractionCreateEvent) {
	s := bot.State()

	err := bot.handleInteraction(s, &ev.InteractionEvent)
	if err != nil {
		log.Errorf("handling interaction %v: %v", ev.ID, err)

		if err := bot.ReportError(s, &ev.InteractionEvent, err); err != nil {
			log.Errorf("reporting error for interaction %v: %v", ev.ID, err)
		}
	}
}

func (bot *Bot) handleInteraction(r Responder, ev *discord.InteractionEvent) error {
	data, ok := ev.Data.(*discord.CommandInteraction)
	if !ok {
		return nil
	}

	switch data.Name {
	case common.HiCommand:
		return r.RespondInteraction(ev.ID, ev.Token, hiResponse(senderID(ev)))
	}

	log.Debugf("unknown command %q in interaction %v", data.Name, ev.ID)
	return nil
}

func hiResponse(userID discord.UserID) api.InteractionResponse {
	return api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &api.InteractionResponseData{
			Content: option.NewNullableString(fmt.Sprintf("hi %v", userID.Mention())),
			AllowedMentions: &api.AllowedMentions{
				Users: []discord.UserID{userID},
			},
		},
	}
}

// senderID returns the user that triggered the interaction, in a guild or in DMs.
func senderID(ev *discord.InteractionEvent) discord.UserID {
	if ev.Member != nil {
		return ev.Member.User.ID
	}
	if ev.User != nil {
		return ev.User.ID
	}
	return 0
}
