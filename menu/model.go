// Package menu is the terminal interface used to pick a server and run operations on it.
//
// The menu only holds state and renders it; the operations themselves are done by a Runner.
package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/sweeper-bot/sweeper/sweep"
)

// Runner runs the operations chosen in the menu. It is satisfied by *sweep.Sequencer.
type Runner interface {
	Guilds(ctx context.Context) []discord.Guild
	GrantPermissions(ctx context.Context, guildID discord.GuildID) sweep.Report
	WipeChannels(ctx context.Context, guildID discord.GuildID) sweep.Report
	WipeRoles(ctx context.Context, guildID discord.GuildID) sweep.Report
	CreateChannels(ctx context.Context, guildID discord.GuildID, n int) (sweep.Report, error)
	AllInOne(ctx context.Context, guildID discord.GuildID, n int) (sweep.Report, error)
}

// Recorder receives a line for every action taken. It is satisfied by *actionlog.Log.
type Recorder interface {
	Record(tmpl string, args ...any)
}

type nopRecorder struct{}

func (nopRecorder) Record(string, ...any) {}

type screen int

const (
	screenServers screen = iota
	screenCommands
	screenCount
	screenConfirm
	screenRunning
	screenReport
)

type Options struct {
	// Confirm asks for "yes" before destructive commands.
	Confirm  bool
	Recorder Recorder
}

// doneMsg is sent when an operation finishes.
type doneMsg struct {
	report sweep.Report
	err    error
}

type Model struct {
	ctx      context.Context
	runner   Runner
	recorder Recorder
	confirm  bool

	screen  screen
	guilds  []discord.Guild
	guild   discord.Guild
	command Command
	count   int

	input   textinput.Model
	message string

	report sweep.Report
	err    error

	quitting bool
}

func New(ctx context.Context, runner Runner, opts Options) Model {
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 16
	ti.Focus()

	return Model{
		ctx:      ctx,
		runner:   runner,
		recorder: opts.Recorder,
		confirm:  opts.Confirm,
		screen:   screenServers,
		guilds:   runner.Guilds(ctx),
		input:    ti,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.screen = screenReport
		m.report = msg.report
		m.err = msg.err
		m.recordReport()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.recorder.Record("Exiting terminal")
			m.quitting = true
			return m, tea.Quit
		}

		switch m.screen {
		case screenRunning:
			// one operation at a time
			return m, nil
		case screenReport:
			if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
				m.screen = screenCommands
				m.report = sweep.Report{}
				m.err = nil
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyEsc:
			m.back()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) back() {
	m.message = ""
	m.input.Reset()

	switch m.screen {
	case screenCommands:
		m.screen = screenServers
		m.guilds = m.runner.Guilds(m.ctx)
	case screenCount, screenConfirm:
		m.screen = screenCommands
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.message = ""

	switch m.screen {
	case screenServers:
		if len(m.guilds) == 0 {
			m.guilds = m.runner.Guilds(m.ctx)
			return m, nil
		}

		n, err := sweep.ParseSelection(value, len(m.guilds))
		if err != nil {
			m.recorder.Record("Invalid server selection: %s", value)
			m.message = err.Error()
			return m, nil
		}

		m.guild = m.guilds[n-1]
		m.recorder.Record("Selected server: %s", m.guild.Name)
		m.screen = screenCommands
		return m, nil

	case screenCommands:
		n, err := sweep.ParseSelection(value, int(CommandExit))
		if err != nil {
			m.recorder.Record("Invalid command selection: %s", value)
			m.message = err.Error()
			return m, nil
		}

		m.command = Command(n)
		m.count = 0
		if m.command == CommandExit {
			m.recorder.Record("Exiting terminal")
			m.quitting = true
			return m, tea.Quit
		}

		if m.command.needsCount() {
			m.screen = screenCount
			return m, nil
		}
		return m.confirmOrRun()

	case screenCount:
		n, err := sweep.ParseCount(value)
		if err != nil {
			m.recorder.Record("Invalid channel count: %s", value)
			m.message = err.Error()
			return m, nil
		}

		m.count = n
		return m.confirmOrRun()

	case screenConfirm:
		if !strings.EqualFold(value, "yes") {
			m.recorder.Record("Cancelled: %v", m.command)
			m.message = "Cancelled."
			m.screen = screenCommands
			return m, nil
		}
		return m.run()
	}

	return m, nil
}

func (m Model) confirmOrRun() (tea.Model, tea.Cmd) {
	if m.confirm && m.command.destructive() {
		m.screen = screenConfirm
		return m, nil
	}
	return m.run()
}

func (m Model) run() (tea.Model, tea.Cmd) {
	m.screen = screenRunning
	m.recorder.Record("Executing: %v", m.command)

	ctx, runner := m.ctx, m.runner
	guildID, command, count := m.guild.ID, m.command, m.count

	return m, func() tea.Msg {
		var msg doneMsg

		switch command {
		case CommandGrant:
			msg.report = runner.GrantPermissions(ctx, guildID)
		case CommandDeleteChannels:
			msg.report = runner.WipeChannels(ctx, guildID)
		case CommandDeleteRoles:
			msg.report = runner.WipeRoles(ctx, guildID)
		case CommandCreateChannels:
			msg.report, msg.err = runner.CreateChannels(ctx, guildID, count)
		case CommandAllInOne:
			msg.report, msg.err = runner.AllInOne(ctx, guildID, count)
		default:
			msg.err = fmt.Errorf("unknown command %d", command)
		}
		return msg
	}
}

func (m Model) recordReport() {
	if m.err != nil {
		m.recorder.Record("%v failed: %v", m.command, m.err)
		return
	}

	for _, w := range m.report.Warnings {
		m.recorder.Record("Warning: %s", w)
	}
	for _, p := range m.report.Phases {
		for _, r := range p.Results {
			m.recorder.Record("%v", r)
		}
	}
	m.recorder.Record("%v completed: %d/%d succeeded", m.command, m.report.Total()-m.report.Failed(), m.report.Total())
}

// Quitting is true once the user has chosen to exit.
func (m Model) Quitting() bool {
	return m.quitting
}
