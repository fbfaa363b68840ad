package sweep

import (
	"context"
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/sweeper-bot/sweeper/common/log"
	"github.com/sweeper-bot/sweeper/store"
	"golang.org/x/sync/errgroup"
)

// Policy decides how the requests in one batch are issued.
type Policy string

const (
	// Concurrent issues every request in a batch without waiting, then waits for all of them.
	// Fastest, but more likely to run into Discord's rate limits.
	Concurrent Policy = "concurrent"
	// Sequential waits for each request before issuing the next one.
	Sequential Policy = "sequential"
)

// ParsePolicy parses a policy name. An empty string is Concurrent.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Concurrent:
		return Concurrent, nil
	case Sequential:
		return Sequential, nil
	}
	return "", errors.Errorf("unknown policy %q (expected %q or %q)", s, Concurrent, Sequential)
}

// Template describes the channels created by CreateChannels.
type Template struct {
	Name     string
	Category bool
}

func (t Template) channelType() discord.ChannelType {
	if t.Category {
		return discord.GuildCategory
	}
	return discord.GuildText
}

func (t Template) kind() Kind {
	if t.Category {
		return KindCategory
	}
	return KindChannel
}

// Executor issues one request per target and collects a Result for each.
// One failure never stops the other requests in the batch, and nothing is rolled back.
type Executor struct {
	Session Session
	// Cabinet, if set, has successfully deleted entities removed right away
	// instead of waiting for the gateway event.
	Cabinet *store.Cabinet

	Policy Policy
	// MaxInFlight caps concurrent requests. Zero means no cap. Ignored by Sequential.
	MaxInFlight int
	Reason      api.AuditLogReason
}

type target struct {
	kind   Kind
	action Action
	// id is zero for entities that don't exist yet.
	id   discord.Snowflake
	name string
	// do issues the request and returns the affected entity's ID.
	do func() (discord.Snowflake, error)
}

// DeleteRoles deletes every given role. It returns exactly one Result per role, in order.
func (e *Executor) DeleteRoles(ctx context.Context, guildID discord.GuildID, roles []discord.Role) []Result {
	targets := make([]target, 0, len(roles))
	for _, r := range roles {
		r := r
		targets = append(targets, target{
			kind:   KindRole,
			action: ActionDelete,
			id:     discord.Snowflake(r.ID),
			name:   r.Name,
			do: func() (discord.Snowflake, error) {
				if isBaseRole(guildID, r.ID) {
					return discord.Snowflake(r.ID), errors.New("the base role cannot be deleted")
				}

				err := e.Session.DeleteRole(guildID, r.ID, e.Reason)
				if err == nil && e.Cabinet != nil {
					if err := e.Cabinet.RemoveRole(ctx, guildID, r.ID); err != nil {
						log.Errorf("removing role %v from cache: %v", r.ID, err)
					}
				}
				return discord.Snowflake(r.ID), err
			},
		})
	}

	return e.run(targets)
}

// DeleteChannels deletes every given channel or category. It returns exactly one Result per channel, in order.
func (e *Executor) DeleteChannels(ctx context.Context, channels []discord.Channel) []Result {
	targets := make([]target, 0, len(channels))
	for _, ch := range channels {
		ch := ch

		kind := KindChannel
		if ch.Type == discord.GuildCategory {
			kind = KindCategory
		}

		targets = append(targets, target{
			kind:   kind,
			action: ActionDelete,
			id:     discord.Snowflake(ch.ID),
			name:   ch.Name,
			do: func() (discord.Snowflake, error) {
				err := e.Session.DeleteChannel(ch.ID, e.Reason)
				if err == nil && e.Cabinet != nil {
					if err := e.Cabinet.RemoveChannel(ctx, ch.GuildID, ch.ID); err != nil {
						log.Errorf("removing channel %v from cache: %v", ch.ID, err)
					}
				}
				return discord.Snowflake(ch.ID), err
			},
		})
	}

	return e.run(targets)
}

// CreateChannels creates count channels from tmpl.
// A negative count is a ValidationError and nothing is created; zero is a no-op.
func (e *Executor) CreateChannels(ctx context.Context, guildID discord.GuildID, count int, tmpl Template) ([]Result, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}

	targets := make([]target, 0, count)
	for i := 1; i <= count; i++ {
		targets = append(targets, target{
			kind:   tmpl.kind(),
			action: ActionCreate,
			name:   fmt.Sprintf("%s (%d/%d)", tmpl.Name, i, count),
			do: func() (discord.Snowflake, error) {
				ch, err := e.Session.CreateChannel(guildID, api.CreateChannelData{
					Name:           tmpl.Name,
					Type:           tmpl.channelType(),
					AuditLogReason: e.Reason,
				})
				if err != nil {
					return 0, err
				}

				if e.Cabinet != nil {
					if err := e.Cabinet.SetChannel(ctx, guildID, *ch); err != nil {
						log.Errorf("caching channel %v: %v", ch.ID, err)
					}
				}
				return discord.Snowflake(ch.ID), nil
			},
		})
	}

	return e.run(targets), nil
}

func (e *Executor) run(targets []target) []Result {
	results := make([]Result, len(targets))
	if len(targets) == 0 {
		return results
	}

	if e.Policy == Sequential {
		for i, t := range targets {
			results[i] = e.exec(t)
		}
		return results
	}

	// failures are recorded per item, so the group never returns an error
	// and one failure doesn't cancel anything
	var g errgroup.Group
	if e.MaxInFlight > 0 {
		g.SetLimit(e.MaxInFlight)
	}

	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			results[i] = e.exec(t)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (e *Executor) exec(t target) (r Result) {
	defer func() {
		if v := recover(); v != nil {
			r = newResult(t.kind, t.action, t.id, t.name, errors.Errorf("panic: %v", v))
			log.Errorf("%v", r)
		}
	}()

	id, err := t.do()
	r = newResult(t.kind, t.action, id, t.name, err)

	if r.OK {
		log.Info(r.String())
	} else {
		log.Warn(r.String())
	}
	return r
}
