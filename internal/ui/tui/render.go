package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"ckad-trainer/internal/domain"
)

const lowTimeThreshold = 10 * time.Second

// renderHeader renders the title box with the countdown and a time bar.
func renderHeader(snap domain.Snapshot, title string, bar progress.Model, width int, noColor bool) string {
	line := "Time remaining: " + formatRemaining(snap.Remaining)
	if snap.Expired {
		line = "TIME EXPIRED"
	}
	color := lipgloss.Color("2")
	if !snap.Expired && snap.Remaining < lowTimeThreshold {
		color = lipgloss.Color("1")
	}
	line = stylize(line, noColor, color, true)

	fraction := 0.0
	if limit := snap.Question.TimeLimit; limit > 0 {
		fraction = float64(snap.Remaining) / float64(limit)
	}
	body := lipgloss.JoinVertical(lipgloss.Center, line, bar.ViewAs(fraction))
	return panel(title, body, width, lipgloss.Center)
}

// renderQuestion renders "Question i of n: prompt".
func renderQuestion(snap domain.Snapshot, width int) string {
	text := fmt.Sprintf("Question %d of %d: %s", snap.Index+1, snap.Total, snap.Question.Prompt)
	return panel("Question", text, width, lipgloss.Left)
}

// renderContent shows hints while time remains and the answer afterwards.
func renderContent(snap domain.Snapshot, width int, noColor bool) string {
	var lines []string
	if !snap.Expired {
		lines = append(lines, stylize(formatHint(snap), noColor, lipgloss.Color("3"), false))
	} else {
		lines = append(lines, stylize("Answer:", noColor, lipgloss.Color("2"), true))
		lines = append(lines, strings.Split(snap.Question.Answer, "\n")...)
	}
	return panel("Content", strings.Join(lines, "\n"), width, lipgloss.Left)
}

// renderControls renders the action line for the current state.
func renderControls(snap domain.Snapshot, helpView string, width int, noColor bool) string {
	var line string
	switch {
	case snap.Finished:
		line = "Quiz complete! Press 'q' to quit"
	case snap.Expired:
		line = "Press 'n' for next question, 'q' to quit"
	default:
		line = "h: hints | q: quit | (answer revealed after time expires)"
	}
	body := lipgloss.JoinVertical(lipgloss.Center, stylize(line, noColor, lipgloss.Color("6"), false), helpView)
	return panel("", body, width, lipgloss.Center)
}

func formatHint(snap domain.Snapshot) string {
	if !snap.HintsVisible {
		return "Press 'h' for hints"
	}
	text := snap.Hint()
	if text == "" {
		text = "No more hints"
	}
	return fmt.Sprintf("Hint %d (press 'h' for more): %s", snap.HintIndex+1, text)
}

// formatRemaining renders a duration as m:ss, rounding down.
func formatRemaining(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// panel draws body inside a rounded border, with an optional bold title line.
func panel(title, body string, width int, align lipgloss.Position) string {
	if title != "" {
		body = lipgloss.NewStyle().Bold(true).Render(title) + "\n" + body
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(max(width-2, 20)).
		Align(align).
		Render(body)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color, bold bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold).Render(text)
}
