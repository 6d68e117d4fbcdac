package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/reel/internal/canvas"
	"github.com/llehouerou/reel/internal/frame"
	"github.com/llehouerou/reel/internal/playback"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))

	statusDimStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("245"))

	statusMsgStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("214"))

	promptLabelStyle = lipgloss.NewStyle().Bold(true)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var diff *frame.Difference
	if m.diffMode && m.peer != nil {
		diff, _ = m.handler.CalculateDifference(m.peer, m.clock.CurrentFrame())
	}

	viewer := m.renderViewer(diff)
	if m.help.visible {
		viewer = composeCentered(viewer, m.help.View(), m.width, m.viewerHeight())
	}

	return viewer + "\n" + m.renderStatusBar(diff)
}

func (m Model) renderViewer(diff *frame.Difference) string {
	h := m.viewerHeight()
	if h < MinViewerHeight {
		return strings.Repeat("\n", max(h-1, 0))
	}

	c := canvas.New(m.width, h, m.scaler)
	if diff != nil {
		dst := frame.CenteredRect(c.Bounds(), m.handler.Geometry(), m.zoom)
		c.DrawImage(dst, diff.Image)
	} else {
		m.handler.Draw(c, m.clock.CurrentFrame(), m.zoom)
	}
	return c.Render()
}

func (m Model) renderStatusBar(diff *frame.Difference) string {
	if m.gotoActive {
		prompt := promptLabelStyle.Render("Go to frame: ") + m.gotoPrompt.View()
		return ansi.Truncate(prompt, m.width, "")
	}

	left := fmt.Sprintf(" %s %d/%d", m.stateIcon(),
		m.clock.CurrentFrame()+1, m.clock.FrameCount())

	cache := fmt.Sprintf("  %d cached (%s)", m.handler.CachedFrameCount(),
		humanize.IBytes(uint64(m.handler.CacheSizeBytes())))
	if m.handler.LoadingInBackground() {
		cache += " ⟳"
	}

	// Highest priority first; comparison stats outrank the file info.
	var segments []string
	if diff != nil {
		segments = append(segments, "  "+formatDiff(diff))
	}
	segments = append(segments,
		fmt.Sprintf("  %s %s %.3gfps  %s",
			m.handler.Geometry(), m.handler.Format(), m.handler.FrameRate(),
			formatZoom(m.zoom)),
		cache,
	)

	var msg string
	if m.statusMsg != "" {
		msg = "  " + m.statusMsg
	}

	// On narrow terminals drop whole trailing segments instead of clipping
	// the bar mid-segment.
	avail := m.width - ansi.StringWidth(left) - ansi.StringWidth(msg)
	var dim string
	for _, seg := range segments {
		if ansi.StringWidth(dim)+ansi.StringWidth(seg) > avail {
			break
		}
		dim += seg
	}

	bar := statusBarStyle.Render(left) + statusDimStyle.Render(dim)
	if msg != "" {
		bar += statusMsgStyle.Render(msg)
	}

	// Pad to full width so the background color spans the line.
	if pad := m.width - ansi.StringWidth(bar); pad > 0 {
		bar += statusBarStyle.Render(strings.Repeat(" ", pad))
	}
	return ansi.Truncate(bar, m.width, "")
}

func (m Model) stateIcon() string {
	switch m.clock.State() {
	case playback.StatePlaying:
		return "▶"
	case playback.StatePaused:
		return "⏸"
	case playback.StateStopped:
		return "⏹"
	}
	return "⏹"
}

// formatDiff summarizes a frame comparison for the status bar.
func formatDiff(d *frame.Difference) string {
	if d.DiffCount == 0 {
		return "diff identical"
	}
	return fmt.Sprintf("diff %s px  MSE %.2f  PSNR %.1f dB",
		humanize.Comma(int64(d.DiffCount)), d.MSE, d.PSNR)
}

// formatZoom renders a zoom factor compactly: "2x", "0.5x".
func formatZoom(zoom float64) string {
	if zoom == float64(int(zoom)) {
		return fmt.Sprintf("%dx", int(zoom))
	}
	return fmt.Sprintf("%.3gx", zoom)
}
