package sweep

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
)

// Kind is the type of entity a Result is about.
type Kind string

const (
	KindRole       Kind = "role"
	KindChannel    Kind = "channel"
	KindCategory   Kind = "category"
	KindPermission Kind = "permission"
)

// Action is what was attempted on the target.
type Action string

const (
	ActionDelete Action = "delete"
	ActionCreate Action = "create"
	ActionModify Action = "update"
	ActionMove   Action = "move"
	ActionAssign Action = "assign"
)

// Result is the outcome of a single request. It is not modified after it's returned.
type Result struct {
	Kind   Kind
	Action Action
	ID     discord.Snowflake
	Name   string

	OK  bool
	Err string
}

func (r Result) String() string {
	if r.OK {
		return fmt.Sprintf("%s %s: %s", pastTense(r.Action), r.Kind, r.Name)
	}
	return fmt.Sprintf("Failed to %s %s %s: %s", r.Action, r.Kind, r.Name, r.Err)
}

func pastTense(a Action) string {
	switch a {
	case ActionDelete:
		return "Deleted"
	case ActionCreate:
		return "Created"
	case ActionModify:
		return "Updated"
	case ActionMove:
		return "Moved"
	case ActionAssign:
		return "Assigned"
	}
	return string(a)
}

func newResult(kind Kind, action Action, id discord.Snowflake, name string, err error) Result {
	r := Result{
		Kind:   kind,
		Action: action,
		ID:     id,
		Name:   name,
		OK:     err == nil,
	}
	if err != nil {
		r.Err = err.Error()
	}
	return r
}

// Phase is one named batch within an operation.
type Phase struct {
	Name    string
	Results []Result
}

// Failed returns the number of failed results in the phase.
func (p Phase) Failed() (n int) {
	for _, r := range p.Results {
		if !r.OK {
			n++
		}
	}
	return n
}

// Report is everything an operation did, in order.
type Report struct {
	Operation string
	GuildID   discord.GuildID
	Phases    []Phase
	// Warnings are non-fatal problems, such as failing to move the bot's role.
	Warnings []string
}

// Total returns the number of results across all phases.
func (r Report) Total() (n int) {
	for _, p := range r.Phases {
		n += len(p.Results)
	}
	return n
}

// Failed returns the number of failed results across all phases.
func (r Report) Failed() (n int) {
	for _, p := range r.Phases {
		n += p.Failed()
	}
	return n
}
