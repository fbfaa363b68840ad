package bot

import (
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/sweeper-bot/sweeper/common"
)

// ReportError sends err to Sentry if it's configured, and tells the user an error code either way.
func (bot *Bot) ReportError(r Responder, ev *discord.InteractionEvent, err error) error {
	var id string
	if bot.Config.Auth.Sentry != "" {
		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			if userID := senderID(ev); userID.IsValid() {
				scope.SetUser(sentry.User{ID: userID.String()})
			}
		})

		hub.AddBreadcrumb(&sentry.Breadcrumb{
			Data: map[string]any{
				"user":        senderID(ev),
				"interaction": ev.ID,
			},
			Level:     sentry.LevelError,
			Timestamp: time.Now().UTC(),
		}, nil)

		if eventID := hub.CaptureException(err); eventID != nil {
			id = string(*eventID)
		}
	}

	if id == "" {
		id = uuid.New().String()
	}

	return r.RespondInteraction(ev.ID, ev.Token, errorResponse(id))
}

func errorResponse(id string) api.InteractionResponse {
	return api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &api.InteractionResponseData{
			Content: option.NewNullableString(fmt.Sprintf("Error code: ``%v``", id)),
			Embeds: &[]discord.Embed{{
				Title:       "Internal error occurred",
				Description: "An internal error has occurred. If this issue persists, please contact the bot's owner with the error code above.",
				Color:       common.ColourRed,
				Timestamp:   discord.NowTimestamp(),
				Footer: &discord.EmbedFooter{
					Text: id,
				},
			}},
			Flags: discord.EphemeralMessage,
		},
	}
}
