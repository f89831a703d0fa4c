// Package render writes reports to a terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/monify-labs/hostreport/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#0D47A1", Dark: "#42A5F5"})
	fatalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#B71C1C", Dark: "#EF5350"})
	bodyStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.AdaptiveColor{Light: "#424242", Dark: "#E0E0E0"})
	statusStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"})
)

// Renderer prints reports section by section. Bodies keep their line
// breaks and line order.
type Renderer struct {
	w     io.Writer
	plain bool
}

// New creates a renderer. With plain set, no styling is applied.
func New(w io.Writer, plain bool) *Renderer {
	return &Renderer{w: w, plain: plain}
}

// Render writes every section of report, in order.
func (r *Renderer) Render(report models.Report) error {
	for i, section := range report.Sections {
		if i > 0 {
			if _, err := fmt.Fprintln(r.w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(r.w, r.title(section.Title, report.Fatal)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(r.w, r.body(section.Body)); err != nil {
			return err
		}
	}
	return nil
}

// Status prints a transient status line such as "Refreshing...".
func (r *Renderer) Status(msg string) error {
	if !r.plain {
		msg = statusStyle.Render(msg)
	}
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

func (r *Renderer) title(title string, fatal bool) string {
	switch {
	case r.plain:
		return title
	case fatal:
		return fatalStyle.Render(title)
	default:
		return titleStyle.Render(title)
	}
}

func (r *Renderer) body(body string) string {
	if r.plain {
		lines := strings.Split(body, "\n")
		for i, line := range lines {
			if line != "" {
				lines[i] = "  " + line
			}
		}
		return strings.Join(lines, "\n")
	}
	return bodyStyle.Render(body)
}

// WriteJSON writes report as indented JSON.
func WriteJSON(w io.Writer, report models.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(report)
}
