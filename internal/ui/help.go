package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reel/internal/keymap"
)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{"global", "playback", "view", "cache"}

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	"global":   "Global",
	"playback": "Playback",
	"view":     "View",
	"cache":    "Cache",
}

var helpBorderStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 2)

// helpModel renders the key binding overlay.
type helpModel struct {
	Base
	visible      bool
	scrollOffset int
}

// Toggle shows or hides the overlay.
func (h *helpModel) Toggle() {
	h.visible = !h.visible
	h.scrollOffset = 0
}

// HandleKey processes a key while the overlay is visible. It reports whether
// the key was consumed.
func (h *helpModel) HandleKey(key string) bool {
	switch key {
	case "?", "esc":
		h.visible = false
		return true
	case "j", "down":
		if h.scrollOffset < h.maxScroll() {
			h.scrollOffset++
		}
		return true
	case "k", "up":
		if h.scrollOffset > 0 {
			h.scrollOffset--
		}
		return true
	}
	return false
}

// View renders the bordered help box.
func (h helpModel) View() string {
	lines := strings.Split(h.buildContent(), "\n")

	visible := h.visibleHeight()
	start := min(h.scrollOffset, len(lines))
	end := min(start+visible, len(lines))
	body := strings.Join(lines[start:end], "\n")

	titleStyle := lipgloss.NewStyle().Bold(true)
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	content := titleStyle.Render("Help") + "\n\n" + body + "\n\n" +
		footerStyle.Render(h.footer())
	return helpBorderStyle.Render(content)
}

func (h helpModel) buildContent() string {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	var bindings []keymap.Binding
	for _, ctx := range categoryOrder {
		bindings = append(bindings, keymap.ByContext(ctx)...)
	}

	maxKeyWidth := 0
	for _, b := range bindings {
		if w := len(keyLabel(b.Keys)); w > maxKeyWidth {
			maxKeyWidth = w
		}
	}

	var sb strings.Builder
	currentContext := ""
	for _, b := range bindings {
		if b.Context != currentContext {
			if currentContext != "" {
				sb.WriteString("\n")
			}
			sb.WriteString(headerStyle.Render(categoryLabels[b.Context]))
			sb.WriteString("\n")
			currentContext = b.Context
		}
		key := keyLabel(b.Keys)
		sb.WriteString(keyStyle.Render(key + strings.Repeat(" ", maxKeyWidth-len(key))))
		sb.WriteString("  ")
		sb.WriteString(descStyle.Render(b.Description))
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// keyLabel joins binding keys for display, naming the space key.
func keyLabel(keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		parts[i] = k
	}
	return strings.Join(parts, ", ")
}

func (h helpModel) footer() string {
	if h.totalLines() <= h.visibleHeight() {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (h helpModel) visibleHeight() int {
	// Leave room for border, title and footer
	return max(h.Height()-8, 5)
}

func (h helpModel) totalLines() int {
	return strings.Count(h.buildContent(), "\n") + 1
}

func (h helpModel) maxScroll() int {
	total := h.totalLines()
	visible := h.visibleHeight()
	if total <= visible {
		return 0
	}
	return total - visible
}
