// Package output provides styled terminal output helpers (success,
// error, warning, record formatting) using lipgloss. Styling is
// stripped when stdout is not a terminal.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/feelfree/ff/internal/models"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helplineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	personalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))

	moodStyles = map[string]lipgloss.Style{
		"happy":   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		"calm":    lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		"sad":     lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		"angry":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		"anxious": lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	}
)

// render applies a style when stdout is a TTY and strips ANSI codes
// otherwise, so piped output stays clean.
func render(style lipgloss.Style, s string) string {
	out := style.Render(s)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ansi.Strip(out)
	}
	return out
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(render(successStyle, fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(render(errorStyle, "ERROR: "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(render(warningStyle, "Warning: "+fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// GoalLine formats one goal for list output: checkbox, title,
// frequency tag, short id.
func GoalLine(g models.Goal, done bool) string {
	box := render(pendingStyle, "[ ]")
	if done {
		box = render(doneStyle, "[x]")
	}
	return fmt.Sprintf("%s %s %s %s",
		box,
		render(titleStyle, g.Title),
		render(subtleStyle, "("+string(g.Frequency)+")"),
		render(subtleStyle, shortID(g.ID)))
}

// JournalLine formats one journal entry for list output
func JournalLine(e models.JournalEntry) string {
	return fmt.Sprintf("%s %s %s",
		render(subtleStyle, e.UpdatedAt.Local().Format("2006-01-02")),
		render(titleStyle, e.Title),
		render(subtleStyle, shortID(e.ID)))
}

// MoodLine formats one mood entry for list output
func MoodLine(m models.MoodEntry) string {
	style, ok := moodStyles[strings.ToLower(m.Mood)]
	if !ok {
		style = titleStyle
	}
	line := fmt.Sprintf("%s %s", render(subtleStyle, m.Date), render(style, m.Mood))
	if m.Note != "" {
		line += " " + render(subtleStyle, "("+m.Note+")")
	}
	return line
}

// ContactLine formats one SOS contact for list output
func ContactLine(c models.SosContact) string {
	tag := render(personalStyle, "[personal]")
	if c.Type == models.ContactHelpline {
		tag = render(helplineStyle, "[helpline]")
	}
	return fmt.Sprintf("%s %s %s", tag, render(titleStyle, c.Name), c.Phone)
}

// SessionLine formats one chat session for list output
func SessionLine(s models.Session) string {
	state := render(warningStyle, "active")
	if s.EndedAt != nil {
		state = render(subtleStyle, "ended "+s.EndedAt.Local().Format(time.DateTime))
	}
	return fmt.Sprintf("%s  started %s  %s",
		render(titleStyle, s.ID),
		s.StartedAt.Local().Format(time.DateTime),
		state)
}

// shortID abbreviates a uuid for display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
