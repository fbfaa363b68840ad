package menu

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("=== SWEEPER TERMINAL ==="))
	b.WriteString("\n")

	switch m.screen {
	case screenServers:
		m.viewServers(&b)
	case screenCommands:
		m.viewCommands(&b)
	case screenCount:
		fmt.Fprintf(&b, "%s\n\n", headerStyle.Render(m.command.String()+" in "+m.guild.Name))
		b.WriteString("How many channels?\n")
		b.WriteString(m.input.View())
	case screenConfirm:
		m.viewConfirm(&b)
	case screenRunning:
		fmt.Fprintf(&b, "Running %s in %s...\n", headerStyle.Render(m.command.String()), m.guild.Name)
		b.WriteString(mutedStyle.Render("Progress is written to the log file."))
		b.WriteString("\n")
		return b.String()
	case screenReport:
		m.viewReport(&b)
		return b.String()
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.message))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewServers(b *strings.Builder) {
	if len(m.guilds) == 0 {
		b.WriteString("No servers found!\n")
		b.WriteString(mutedStyle.Render("Invite the bot to a server, then press enter to refresh."))
		b.WriteString("\n")
		return
	}

	b.WriteString(headerStyle.Render("Available Servers:"))
	b.WriteString("\n")
	for i, g := range m.guilds {
		fmt.Fprintf(b, "%d. %s\n", i+1, g.Name)
	}
	b.WriteString("\nSelect server:\n")
	b.WriteString(m.input.View())
}

func (m Model) viewCommands(b *strings.Builder) {
	fmt.Fprintf(b, "Server: %s\n\n", headerStyle.Render(m.guild.Name))
	b.WriteString(headerStyle.Render("Available Commands:"))
	b.WriteString("\n")
	for c := CommandGrant; c <= CommandExit; c++ {
		fmt.Fprintf(b, "%d. %s\n", c, c)
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("esc: back to server list"))
	b.WriteString("\nSelect command:\n")
	b.WriteString(m.input.View())
}

func (m Model) viewConfirm(b *strings.Builder) {
	what := m.command.String()
	if m.command.needsCount() {
		what = fmt.Sprintf("%s (%d channels)", what, m.count)
	}

	fmt.Fprintf(b, "%s\n\n", warningStyle.Render(fmt.Sprintf("%s will permanently change %s.", what, m.guild.Name)))
	b.WriteString("Nothing can be restored afterwards. Type \"yes\" to continue:\n")
	b.WriteString(m.input.View())
}

func (m Model) viewReport(b *strings.Builder) {
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("Press enter to continue."))
		b.WriteString("\n")
		return
	}

	fmt.Fprintf(b, "%s\n", headerStyle.Render(fmt.Sprintf("%s in %s", m.command, m.guild.Name)))

	for _, w := range m.report.Warnings {
		b.WriteString(warningStyle.Render("! " + w))
		b.WriteString("\n")
	}

	for _, p := range m.report.Phases {
		fmt.Fprintf(b, "\n%s\n", headerStyle.Render(p.Name))
		if len(p.Results) == 0 {
			b.WriteString(mutedStyle.Render("  nothing to do"))
			b.WriteString("\n")
			continue
		}

		for _, r := range p.Results {
			if r.OK {
				b.WriteString(okStyle.Render("  " + r.String()))
			} else {
				b.WriteString(errorStyle.Render("  " + r.String()))
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(b, "\n%d/%d succeeded\n\n", m.report.Total()-m.report.Failed(), m.report.Total())
	b.WriteString(mutedStyle.Render("Press enter to continue."))
	b.WriteString("\n")
}
