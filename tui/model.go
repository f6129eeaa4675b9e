// Package tui runs the demo circuit in a terminal UI, rebuilding and
// re-executing it on a fixed interval.
package tui

import (
	"cmp"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"microcirq/qasm"
	"microcirq/quantum"
	"microcirq/render"
)

const (
	DefaultQubits   = 4
	DefaultInterval = 600 * time.Millisecond

	probBarWidth = 20
	tallyRows    = 5
)

// Config controls a demo session.
type Config struct {
	NumQubits int
	Interval  time.Duration
	// Source feeds every run's measurements. Runs share it so a seeded
	// session replays the same sequence of outcomes.
	Source quantum.RandomSource
	Logger *slog.Logger
	Styled bool
}

type tickMsg time.Time

// Model is the bubbletea model of the demo loop.
type Model struct {
	cfg  Config
	keys keyMap
	help help.Model
	qasm textarea.Model

	program *quantum.Program
	err     error
	runs    int
	tally   map[string]int
	paused  bool

	width  int
	height int
}

// New returns a model that has already run the demo once.
func New(cfg Config) Model {
	if cfg.NumQubits == 0 {
		cfg.NumQubits = DefaultQubits
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Source == nil {
		cfg.Source = quantum.NewSeededSource(uint64(time.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.Blur()

	m := Model{
		cfg:   cfg,
		keys:  defaultKeyMap(),
		help:  help.New(),
		qasm:  ta,
		tally: make(map[string]int),
	}
	m.run()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// run builds a fresh program, applies the demo circuit and records the
// outcome.
func (m *Model) run() {
	p, err := quantum.NewProgram(m.cfg.NumQubits,
		quantum.WithClassicalBits(m.cfg.NumQubits),
		quantum.WithRandomSource(m.cfg.Source),
		quantum.WithLogger(m.cfg.Logger),
	)
	if err == nil {
		err = quantum.BuildDemo(p)
	}
	if err != nil {
		m.err = err
		m.cfg.Logger.Error("demo run failed", "err", err)
		return
	}

	m.program = p
	m.err = nil
	m.runs++
	outcome := p.Register().String()
	m.tally[outcome]++
	m.qasm.SetValue(qasm.Export(p.Operations(), p.NumQubits(), p.NumClassicalBits()))
	m.cfg.Logger.Debug("demo run", "run", m.runs, "register", outcome)
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.qasm.SetWidth(max(m.width/3-4, 10))
		m.qasm.SetHeight(max(m.height-m.cfg.NumQubits-16, 4))

	case tickMsg:
		if !m.paused {
			m.run()
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Step):
			m.run()
		case key.Matches(msg, m.keys.Reset):
			m.runs = 0
			m.tally = make(map[string]int)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	circuitWidth := m.width - qasmWidth - 4

	results := m.renderResultsPanel(m.width - 2)
	helpLine := " " + m.help.View(m.keys)
	topHeight := max(m.height-lipgloss.Height(results)-lipgloss.Height(helpLine)-2, 6)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderCircuitPanel(circuitWidth, topHeight),
		m.renderQASMPanel(qasmWidth, topHeight),
	)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, results, helpLine)

	if m.paused {
		frame = overlayAt(frame, badgeStyle.Render("PAUSED"), 2, 1)
	}
	return frame
}

func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Circuit"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  run %d", m.runs)))
	sb.WriteString("\n\n")
	if m.program != nil {
		sb.WriteString(clip(m.program.Draw(render.Diagram{Styled: m.cfg.Styled}), width-4))
	}
	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("OpenQASM"))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasm.View())
	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

func (m Model) renderResultsPanel(width int) string {
	var sb strings.Builder
	if m.err != nil {
		sb.WriteString(errorStyle.Render("error: " + m.err.Error()))
		sb.WriteString("\n")
	}
	if m.program != nil {
		sb.WriteString(render.FormatRegister(m.program.Register(), m.cfg.Styled))
		sb.WriteString("\n\n")
		sb.WriteString(render.FormatProbabilities(m.program.State().QubitProbabilities(), probBarWidth, m.cfg.Styled))
	}
	sb.WriteString("\n")
	sb.WriteString(m.renderTally())
	return resultsStyle.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

// renderTally lists the most frequent registers seen since the last reset.
func (m Model) renderTally() string {
	outcomes := slices.SortedFunc(maps.Keys(m.tally), func(a, b string) int {
		if c := cmp.Compare(m.tally[b], m.tally[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if len(outcomes) > tallyRows {
		outcomes = outcomes[:tallyRows]
	}

	parts := make([]string, len(outcomes))
	for i, o := range outcomes {
		parts[i] = fmt.Sprintf("%s×%d", o, m.tally[o])
	}
	return dimStyle.Render(fmt.Sprintf("outcomes over %d runs: ", m.runs)) + strings.Join(parts, "  ")
}

// clip cuts every line of s to w visible cells.
func clip(s string, w int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, w, "…")
	}
	return strings.Join(lines, "\n")
}

// overlayAt composites overlay on top of bg with its top-left corner at
// visible column x, row y.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	for i, ov := range strings.Split(overlay, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		line := bgLines[row]
		prefix := ansi.Truncate(line, x, "")
		if pad := x - ansi.StringWidth(prefix); pad > 0 {
			prefix += strings.Repeat(" ", pad)
		}
		suffix := ansi.TruncateLeft(line, x+ansi.StringWidth(ov), "")
		bgLines[row] = prefix + ov + suffix
	}
	return strings.Join(bgLines, "\n")
}
