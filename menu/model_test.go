package menu

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweeper-bot/sweeper/sweep"
)

type fakeRunner struct {
	guilds []discord.Guild
	calls  []string
}

func (f *fakeRunner) Guilds(context.Context) []discord.Guild {
	return f.guilds
}

func (f *fakeRunner) report(op string, guildID discord.GuildID) sweep.Report {
	return sweep.Report{
		Operation: op,
		GuildID:   guildID,
		Phases: []sweep.Phase{{
			Name: op,
			Results: []sweep.Result{
				{Kind: sweep.KindRole, Action: sweep.ActionDelete, Name: "Mod", OK: true},
				{Kind: sweep.KindRole, Action: sweep.ActionDelete, Name: "Admin", Err: "403 Forbidden"},
			},
		}},
		Warnings: []string{"Couldn't move the bot's role to the top: 403 Forbidden"},
	}
}

func (f *fakeRunner) GrantPermissions(_ context.Context, g discord.GuildID) sweep.Report {
	f.calls = append(f.calls, fmt.Sprintf("grant %v", g))
	return f.report("Give permissions", g)
}

func (f *fakeRunner) WipeChannels(_ context.Context, g discord.GuildID) sweep.Report {
	f.calls = append(f.calls, fmt.Sprintf("channels %v", g))
	return f.report("Delete channels", g)
}

func (f *fakeRunner) WipeRoles(_ context.Context, g discord.GuildID) sweep.Report {
	f.calls = append(f.calls, fmt.Sprintf("roles %v", g))
	return f.report("Delete roles", g)
}

func (f *fakeRunner) CreateChannels(_ context.Context, g discord.GuildID, n int) (sweep.Report, error) {
	f.calls = append(f.calls, fmt.Sprintf("create %v %d", g, n))
	return f.report("Create channels", g), nil
}

func (f *fakeRunner) AllInOne(_ context.Context, g discord.GuildID, n int) (sweep.Report, error) {
	f.calls = append(f.calls, fmt.Sprintf("all %v %d", g, n))
	return f.report("All in One", g), nil
}

type recorder struct {
	lines []string
}

func (r *recorder) Record(tmpl string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(tmpl, args...))
}

func newModel(confirm bool) (Model, *fakeRunner, *recorder) {
	runner := &fakeRunner{guilds: []discord.Guild{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Beta"},
	}}
	rec := &recorder{}
	return New(context.Background(), runner, Options{Confirm: confirm, Recorder: rec}), runner, rec
}

// send types s and presses enter. If that starts an operation, it is run to completion.
func send(t *testing.T, m Model, s string) Model {
	t.Helper()

	var tm tea.Model = m
	for _, r := range s {
		tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	tm, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = tm.(Model)

	if m.screen == screenRunning {
		require.NotNil(t, cmd)
		tm, _ = m.Update(cmd())
		m = tm.(Model)
	}
	return m
}

func TestSelectServer(t *testing.T) {
	m, _, rec := newModel(false)
	assert.Equal(t, screenServers, m.screen)
	assert.Contains(t, m.View(), "1. Alpha")
	assert.Contains(t, m.View(), "2. Beta")

	m = send(t, m, "3")
	assert.Equal(t, screenServers, m.screen)
	assert.Equal(t, `Invalid selection: "3"`, m.message)
	assert.Contains(t, m.View(), `Invalid selection: "3"`)

	m = send(t, m, "two")
	assert.Equal(t, screenServers, m.screen)

	m = send(t, m, "2")
	assert.Equal(t, screenCommands, m.screen)
	assert.Equal(t, discord.GuildID(2), m.guild.ID)
	assert.Empty(t, m.message)
	assert.Contains(t, m.View(), "5. All in One")

	assert.Equal(t, []string{
		"Invalid server selection: 3",
		"Invalid server selection: two",
		"Selected server: Beta",
	}, rec.lines)
}

func TestNoServers(t *testing.T) {
	runner := &fakeRunner{}
	m := New(context.Background(), runner, Options{})
	assert.Contains(t, m.View(), "No servers found!")

	runner.guilds = []discord.Guild{{ID: 1, Name: "Alpha"}}
	m = send(t, m, "")
	assert.Equal(t, screenServers, m.screen)
	assert.Contains(t, m.View(), "1. Alpha")
}

func TestInvalidCommand(t *testing.T) {
	m, runner, _ := newModel(false)
	m = send(t, m, "1")

	for _, in := range []string{"0", "7", "x"} {
		m = send(t, m, in)
		assert.Equal(t, screenCommands, m.screen)
		assert.Contains(t, m.message, "Invalid selection")
	}
	assert.Empty(t, runner.calls)
}

func TestCreateChannelsCount(t *testing.T) {
	m, runner, _ := newModel(false)
	m = send(t, m, "1")
	m = send(t, m, "4")
	require.Equal(t, screenCount, m.screen)

	m = send(t, m, "abc")
	assert.Equal(t, screenCount, m.screen)
	assert.Equal(t, sweep.InvalidNumber, m.message)

	m = send(t, m, "-1")
	assert.Equal(t, screenCount, m.screen)
	assert.Equal(t, sweep.InvalidNumber, m.message)
	assert.Empty(t, runner.calls)

	m = send(t, m, "501")
	assert.Equal(t, screenCount, m.screen)
	assert.Contains(t, m.message, "Too many channels!")
	assert.Empty(t, runner.calls)

	m = send(t, m, "3")
	assert.Equal(t, screenReport, m.screen)
	assert.Equal(t, []string{"create 1 3"}, runner.calls)

	view := m.View()
	assert.Contains(t, view, "Deleted role: Mod")
	assert.Contains(t, view, "Failed to delete role Admin: 403 Forbidden")
	assert.Contains(t, view, "Couldn't move the bot's role")
	assert.Contains(t, view, "1/2 succeeded")

	// back to the command list for the same server
	m = send(t, m, "")
	assert.Equal(t, screenCommands, m.screen)
	assert.Equal(t, discord.GuildID(1), m.guild.ID)
}

func TestRunningIgnoresInput(t *testing.T) {
	m, runner, _ := newModel(false)
	m = send(t, m, "1")

	tm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	tm, cmd = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = tm.(Model)
	require.Equal(t, screenRunning, m.screen)
	require.NotNil(t, cmd)

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'5'}},
		{Type: tea.KeyEnter},
		{Type: tea.KeyEsc},
	} {
		var next tea.Cmd
		tm, next = tm.Update(key)
		assert.Nil(t, next)
		assert.Equal(t, screenRunning, tm.(Model).screen)
	}
	assert.Contains(t, tm.View(), "Running")

	tm, _ = tm.Update(cmd())
	assert.Equal(t, screenReport, tm.(Model).screen)
	assert.Equal(t, []string{"roles 1"}, runner.calls)
}

func TestConfirm(t *testing.T) {
	m, runner, rec := newModel(true)
	m = send(t, m, "1")

	m = send(t, m, "2")
	require.Equal(t, screenConfirm, m.screen)
	assert.Contains(t, m.View(), `Type "yes"`)

	m = send(t, m, "no")
	assert.Equal(t, screenCommands, m.screen)
	assert.Equal(t, "Cancelled.", m.message)
	assert.Empty(t, runner.calls)
	assert.Contains(t, rec.lines, "Cancelled: Delete channels")

	m = send(t, m, "2")
	m = send(t, m, "YES")
	assert.Equal(t, screenReport, m.screen)
	assert.Equal(t, []string{"channels 1"}, runner.calls)
	assert.Contains(t, rec.lines, "Executing: Delete channels")
	assert.Contains(t, rec.lines, "Deleted role: Mod")
}

func TestConfirmNotNeededForGrant(t *testing.T) {
	m, runner, _ := newModel(true)
	m = send(t, m, "1")
	m = send(t, m, "1")

	assert.Equal(t, screenReport, m.screen)
	assert.Equal(t, []string{"grant 1"}, runner.calls)
}

func TestAllInOne(t *testing.T) {
	m, runner, _ := newModel(true)
	m = send(t, m, "2")
	m = send(t, m, "5")
	m = send(t, m, "0")
	require.Equal(t, screenConfirm, m.screen)
	assert.Contains(t, m.View(), "All in One (0 channels)")

	m = send(t, m, "yes")
	assert.Equal(t, screenReport, m.screen)
	assert.Equal(t, []string{"all 2 0"}, runner.calls)
}

func TestEscGoesBack(t *testing.T) {
	m, _, _ := newModel(false)
	m = send(t, m, "1")
	m = send(t, m, "4")
	require.Equal(t, screenCount, m.screen)

	tm, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenCommands, tm.(Model).screen)

	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenServers, tm.(Model).screen)
}

func TestExit(t *testing.T) {
	m, runner, rec := newModel(false)
	m = send(t, m, "1")

	tm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'6'}})
	tm, cmd = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = tm.(Model)
	assert.True(t, m.Quitting())
	assert.Equal(t, "Goodbye!\n", m.View())
	assert.Empty(t, runner.calls)
	assert.Contains(t, rec.lines, "Exiting terminal")
}

func TestCtrlC(t *testing.T) {
	m, _, _ := newModel(false)

	tm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, tm.(Model).Quitting())
}
