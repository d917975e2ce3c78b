package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ckad-trainer/internal/app"
)

const defaultWidth = 80

// Model renders a trainer using Bubble Tea. The update loop is the trainer's
// only owner: input and ticks are applied one message at a time.
type Model struct {
	trainer      *app.Trainer
	keys         keyMap
	help         help.Model
	progress     progress.Model
	tickInterval time.Duration
	width        int
	title        string
	noColor      bool
}

// Options configures the terminal UI.
type Options struct {
	Title        string
	NoColor      bool
	TickInterval time.Duration
}

// NewModel constructs a terminal UI model for a trainer.
func NewModel(trainer *app.Trainer, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = 100 * time.Millisecond
	}
	title := opts.Title
	if title == "" {
		title = "CKAD Practitioner"
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	if opts.NoColor {
		bar = progress.New(progress.WithSolidFill("7"), progress.WithoutPercentage())
	}
	m := Model{
		trainer:      trainer,
		keys:         defaultKeyMap(),
		help:         help.New(),
		progress:     bar,
		tickInterval: tickInterval,
		title:        title,
		noColor:      opts.NoColor,
	}
	return m.resize(defaultWidth)
}

// Init starts the redraw ticker.
func (m Model) Init() tea.Cmd {
	return tick(m.tickInterval)
}

// Update applies key presses and clock ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(typed.Width), nil
	case tea.KeyMsg:
		switch {
		case key.Matches(typed, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(typed, m.keys.Hint):
			m.trainer.RequestHint()
		case key.Matches(typed, m.keys.Next):
			m.trainer.Next()
		}
		return m, nil
	case tickMsg:
		// Expiry is derived from the clock on every View; the tick only forces a redraw.
		return m, tick(m.tickInterval)
	}
	return m, nil
}

// View renders the current trainer snapshot.
func (m Model) View() string {
	snap := m.trainer.Snapshot()
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(snap, m.title, m.progress, m.width, m.noColor),
		renderQuestion(snap, m.width),
		renderContent(snap, m.width, m.noColor),
		renderControls(snap, m.help.View(m.keys), m.width, m.noColor),
	)
}

func (m Model) resize(width int) Model {
	if width <= 0 {
		width = defaultWidth
	}
	m.width = width
	m.help.Width = width
	m.progress.Width = max(width-4, 10)
	return m
}

// tickMsg carries a clock tick for redraws.
type tickMsg time.Time

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Run drives the trainer in the alternate screen until the learner quits or ctx ends.
func Run(ctx context.Context, trainer *app.Trainer, in io.Reader, out io.Writer, opts Options) error {
	program := tea.NewProgram(
		NewModel(trainer, opts),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}
