package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/debemdeboas/mdblog/internal/editor"
	"github.com/debemdeboas/mdblog/internal/listview"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	idStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tagStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	publishedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	draftStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)

	noticeStyles = map[editor.Level]lipgloss.Style{
		editor.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		editor.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		editor.LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		editor.LevelDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

func printList(w io.Writer, view listview.View) {
	if view.Empty {
		fmt.Fprintln(w, mutedStyle.Render("No posts found."))
		return
	}
	for _, row := range view.Rows {
		status := draftStyle.Render(row.Status)
		if row.Published {
			status = publishedStyle.Render(row.Status)
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			idStyle.Render(row.ID.String()),
			titleStyle.Render(row.Title),
			status,
			mutedStyle.Render(row.Date),
		)
		if len(row.Tags) > 0 {
			fmt.Fprintf(w, "    %s\n", tagStyle.Render("#"+strings.Join(row.Tags, " #")))
		}
		if row.Excerpt != "" {
			fmt.Fprintf(w, "    %s\n", mutedStyle.Render(row.Excerpt))
		}
	}
}

func noticePrinter(w io.Writer) editor.Notifier {
	return editor.NotifierFunc(func(n editor.Notice) {
		fmt.Fprintln(w, noticeStyles[n.Level].Render(n.Message))
	})
}

// promptConfirmer asks on out and reads a y/N answer from in.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(_ context.Context, prompt string) bool {
	fmt.Fprint(p.out, promptStyle.Render(prompt+" [y/N] "))
	answer, _ := bufio.NewReader(p.in).ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
