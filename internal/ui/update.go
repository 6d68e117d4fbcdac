package ui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/canvas"
	"github.com/llehouerou/reel/internal/keymap"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case HandlerChangedMsg:
		// Redraw happens on the next View; drop scaled renditions of the
		// invalidated frames and rearm the watcher.
		if msg.Redraw {
			m.scaler.Purge()
		}
		return m, m.watchHandlerEvents()

	case FrameLimitsMsg:
		m.scheduler.PlanAround(m.clock.CurrentFrame())
		return m, m.watchHandlerEvents()

	case HandlerClosedMsg:
		m.handlerSub = nil
		return m, nil

	case PlaybackStateMsg:
		return m, m.watchPlaybackEvents()

	case PlaybackFrameMsg:
		m.scheduler.PlanAround(msg.Current)
		m.saveState()
		return m, m.watchPlaybackEvents()

	case PlaybackClosedMsg:
		m.playbackSub = nil
		return m, nil

	case statusClearMsg:
		if msg.id == m.statusID {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.gotoActive {
		var cmd tea.Cmd
		m.gotoPrompt, cmd = m.gotoPrompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.gotoActive {
		return m.handleGotoKey(msg)
	}

	if m.help.visible {
		if m.help.HandleKey(key) {
			return m, nil
		}
	}

	switch m.resolver.Resolve(key) {
	case keymap.ActionQuit:
		return m, tea.Quit

	case keymap.ActionHelp:
		m.help.Toggle()

	case keymap.ActionPlayPause:
		if err := m.clock.Toggle(); err != nil {
			return m.setStatus(err.Error())
		}

	case keymap.ActionStop:
		if err := m.clock.Stop(); err != nil {
			return m.setStatus(err.Error())
		}

	case keymap.ActionNextFrame:
		m.clock.StepForward()

	case keymap.ActionPrevFrame:
		m.clock.StepBackward()

	case keymap.ActionFirstFrame:
		m.clock.JumpTo(0)

	case keymap.ActionLastFrame:
		m.clock.JumpTo(m.clock.FrameCount() - 1)

	case keymap.ActionJumpAhead:
		m.clock.JumpTo(m.clock.CurrentFrame() + JumpFrames)

	case keymap.ActionJumpBack:
		m.clock.JumpTo(m.clock.CurrentFrame() - JumpFrames)

	case keymap.ActionGotoFrame:
		m.gotoActive = true
		m.gotoPrompt.SetValue("")
		m.gotoPrompt.Focus()
		return m, nil

	case keymap.ActionZoomIn:
		m.zoom = nextZoom(m.zoom, 1)
		m.saveState()

	case keymap.ActionZoomOut:
		m.zoom = nextZoom(m.zoom, -1)
		m.saveState()

	case keymap.ActionZoomFit:
		m.zoom = m.fitZoom()
		m.saveState()

	case keymap.ActionZoomOne:
		m.zoom = 1
		m.saveState()

	case keymap.ActionInspect:
		m.inspect = !m.inspect
		if m.inspect {
			m.handler.SetOverlay(canvas.PixelOverlay)
		} else {
			m.handler.SetOverlay(nil)
		}

	case keymap.ActionDifference:
		if m.peer == nil {
			return m.setStatus("no reference file")
		}
		if m.peer.Geometry() != m.handler.Geometry() {
			return m.setStatus("reference geometry mismatch")
		}
		m.diffMode = !m.diffMode

	case keymap.ActionPurgeCache:
		m.handler.OnControlChanged()
		m.scaler.Purge()
		return m.setStatus("cache purged")
	}

	return m, nil
}

func (m Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.gotoActive = false
		m.gotoPrompt.Blur()
		idx, err := strconv.Atoi(m.gotoPrompt.Value())
		if err != nil {
			return m.setStatus("not a frame number")
		}
		m.clock.JumpTo(idx)
		return m, nil
	case "esc":
		m.gotoActive = false
		m.gotoPrompt.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoPrompt, cmd = m.gotoPrompt.Update(msg)
	return m, cmd
}

// setStatus shows a transient message in the status bar.
func (m Model) setStatus(s string) (tea.Model, tea.Cmd) {
	m.statusMsg = s
	m.statusID++
	return m, clearStatusCmd(m.statusID)
}

// nextZoom moves one step through ZoomLevels in the given direction,
// snapping free values (from fit-to-window) to the nearest level first.
func nextZoom(zoom float64, dir int) float64 {
	idx := -1
	for i, z := range ZoomLevels {
		if z <= zoom {
			idx = i
		}
	}
	// A free value sits between levels; zooming out lands on the level
	// below, or stays put when there is none.
	if dir < 0 && idx < 0 {
		return zoom
	}
	if dir < 0 && ZoomLevels[idx] < zoom {
		return ZoomLevels[idx]
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx > len(ZoomLevels)-1 {
		idx = len(ZoomLevels) - 1
	}
	return ZoomLevels[idx]
}

// fitZoom returns the zoom factor that fills the viewer with the frame.
func (m Model) fitZoom() float64 {
	g := m.handler.Geometry()
	pixelW, pixelH := m.width, m.viewerHeight()*2
	if g.Width == 0 || g.Height == 0 || pixelW == 0 || pixelH == 0 {
		return 1
	}
	zx := float64(pixelW) / float64(g.Width)
	zy := float64(pixelH) / float64(g.Height)
	if zx < zy {
		return zx
	}
	return zy
}
