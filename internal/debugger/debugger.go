// Package debugger is an interactive single-step/breakpoint front end for
// the engine, replacing the teacher's raw bufio REPL (run.go,
// execProgramDebugMode) with a small bubbletea program. It only drives the
// embedding API of the vm package (Step, PC, SP, Int) — it never reaches
// into vm internals.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dice-systems/botvm/internal/hostio"
	"github.com/dice-systems/botvm/vm"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	faultStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("204"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	breakStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Model is the bubbletea model for a single debugging session.
type Model struct {
	vm   *vm.VM
	host *hostio.Host

	breakpoints map[vm.Word]struct{}
	log         []string
	quitting    bool
}

// New builds a debugger session over m, using host to service cooperative
// interrupts between steps exactly as the non-interactive run loop does.
func New(m *vm.VM, host *hostio.Host) Model {
	return Model{
		vm:          m,
		host:        host,
		breakpoints: map[vm.Word]struct{}{},
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "n":
		m.step()

	case "r":
		for m.vm.Running() {
			pc := m.vm.PC()
			if _, hit := m.breakpoints[pc]; hit {
				m.note(fmt.Sprintf("breakpoint hit at PC=%08X", pc))
				break
			}
			m.step()
			if !m.vm.Running() {
				break
			}
		}

	case "b":
		pc := m.vm.PC()
		if _, set := m.breakpoints[pc]; set {
			delete(m.breakpoints, pc)
			m.note(fmt.Sprintf("breakpoint cleared at PC=%08X", pc))
		} else {
			m.breakpoints[pc] = struct{}{}
			m.note(fmt.Sprintf("breakpoint set at PC=%08X", pc))
		}
	}

	return m, nil
}

// step executes one instruction and, if it suspended the engine on a
// cooperative interrupt, immediately services it and resumes — a single
// debugger "n" therefore corresponds to one guest-visible instruction, not
// one host round trip.
func (m *Model) step() {
	m.vm.Step()
	if m.vm.Int().IsCooperative() {
		m.host.Service(m.vm)
	}
}

func (m *Model) note(s string) {
	m.log = append(m.log, s)
	if len(m.log) > 8 {
		m.log = m.log[len(m.log)-8:]
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("bot debugger") + "\n")
	fmt.Fprintf(&b, "PC=%08X  SP=%08X  INT=%s\n", m.vm.PC(), m.vm.SP(), m.vm.Int())

	if len(m.breakpoints) > 0 {
		addrs := make([]string, 0, len(m.breakpoints))
		for addr := range m.breakpoints {
			addrs = append(addrs, fmt.Sprintf("%08X", addr))
		}
		b.WriteString(breakStyle.Render("breakpoints: "+strings.Join(addrs, ", ")) + "\n")
	}

	if !m.vm.Running() && m.vm.Int().IsFault() {
		b.WriteString(faultStyle.Render(fmt.Sprintf("halted: %s", m.vm.Int())) + "\n")
	}

	for _, line := range m.log {
		b.WriteString(dimStyle.Render(line) + "\n")
	}

	b.WriteString(dimStyle.Render("\nn: step   r: run to breakpoint   b: toggle breakpoint   q: quit\n"))
	return b.String()
}

// Run starts the interactive bubbletea program and blocks until the user
// quits.
func Run(m *vm.VM, host *hostio.Host) error {
	_, err := tea.NewProgram(New(m, host)).Run()
	return err
}
