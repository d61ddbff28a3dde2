// Package pagination turns the link list of a PageMeta into navigation
// controls. Rendering is a pure function of the links; nothing is kept
// between renders.
package pagination

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ahmadalnaib/project-board/internal/listing"
	"github.com/ahmadalnaib/project-board/internal/querystate"
)

// Control is one rendered pagination entry.
type Control struct {
	// Key is unique within one render; labels alone repeat ("...").
	Key      string
	Label    string
	URL      string
	Active   bool
	Disabled bool
}

// Controls builds one control per link, in order.
func Controls(links []listing.PageLink) []Control {
	controls := make([]Control, 0, len(links))
	for i, link := range links {
		control := Control{
			Key:    fmt.Sprintf("%s-%d", link.Label, i),
			Label:  html.UnescapeString(link.Label),
			Active: link.Active,
		}
		if link.URL == nil {
			control.Disabled = true
		} else {
			control.URL = *link.URL
		}
		controls = append(controls, control)
	}
	return controls
}

// Activate follows the control at index. Disabled controls and indexes out
// of range produce no intent.
func Activate(controls []Control, index int, from querystate.State) (querystate.State, querystate.Intent, bool) {
	if index < 0 || index >= len(controls) || controls[index].Disabled {
		return from, querystate.Intent{}, false
	}
	next, intent, err := from.GoTo(controls[index].URL)
	if err != nil {
		return from, querystate.Intent{}, false
	}
	return next, intent, true
}

// Move returns the index of the next enabled control from focus in the
// direction of step, or focus itself when there is none.
func Move(controls []Control, focus, step int) int {
	if step == 0 {
		return focus
	}
	for i := focus + step; i >= 0 && i < len(controls); i += step {
		if !controls[i].Disabled {
			return i
		}
	}
	return focus
}

// Initial returns the index of the active control, falling back to the
// first enabled one, or -1 when every control is disabled.
func Initial(controls []Control) int {
	first := -1
	for i, control := range controls {
		if control.Disabled {
			continue
		}
		if control.Active {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

var (
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	focusStyle    = lipgloss.NewStyle().Bold(true).Reverse(true)
	disabledStyle = lipgloss.NewStyle().Faint(true)
	linkStyle     = lipgloss.NewStyle()
)

// Render draws the controls on one line, highlighting focus. An empty
// control list renders nothing.
func Render(controls []Control, focus int) string {
	if len(controls) == 0 {
		return ""
	}
	parts := make([]string, len(controls))
	for i, control := range controls {
		label := " " + control.Label + " "
		switch {
		case i == focus && !control.Disabled:
			parts[i] = focusStyle.Render(label)
		case control.Disabled:
			parts[i] = disabledStyle.Render(label)
		case control.Active:
			parts[i] = activeStyle.Render(label)
		default:
			parts[i] = linkStyle.Render(label)
		}
	}
	return strings.Join(parts, "")
}
