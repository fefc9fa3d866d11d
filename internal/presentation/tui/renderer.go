// Package tui renders session state for the interactive repl.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/sequentlabs/sequent/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Detect light/dark background
	)
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// GoalsMarkdown formats open goals as a markdown document.
func GoalsMarkdown(stateID domain.NodeID, goals []domain.Goal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## State %d\n\n", int(stateID))
	if len(goals) == 0 {
		b.WriteString("No open goals. 🎉\n")
		return b.String()
	}
	for i, g := range goals {
		label := g.Name
		if label == "" {
			label = fmt.Sprintf("goal %d", i+1)
		}
		fmt.Fprintf(&b, "**%s**\n\n```\n%s\n```\n\n", label, g.Pretty)
	}
	return b.String()
}
