package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusMessageTimeout is how long a transient status message stays visible.
const statusMessageTimeout = 3 * time.Second

// watchHandlerEvents returns a command that waits for frame handler events
// and converts them to tea.Msg. It listens on all subscription channels.
func (m Model) watchHandlerEvents() tea.Cmd {
	if m.handlerSub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-m.handlerSub.HandlerChanged:
			return HandlerChangedMsg{Redraw: e.Redraw, InfoChanged: e.InfoChanged}
		case <-m.handlerSub.FrameLimits:
			return FrameLimitsMsg{}
		case <-m.handlerSub.Done:
			return HandlerClosedMsg{}
		}
	}
}

// watchPlaybackEvents returns a command that waits for playback clock events.
func (m Model) watchPlaybackEvents() tea.Cmd {
	if m.playbackSub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-m.playbackSub.StateChanged:
			return PlaybackStateMsg{Previous: e.Previous, Current: e.Current}
		case e := <-m.playbackSub.FrameChanged:
			return PlaybackFrameMsg{Previous: e.Previous, Current: e.Current}
		case <-m.playbackSub.Done:
			return PlaybackClosedMsg{}
		}
	}
}

// clearStatusCmd returns a command that clears the status message identified
// by id after the timeout, unless a newer message replaced it.
func clearStatusCmd(id int) tea.Cmd {
	return tea.Tick(statusMessageTimeout, func(_ time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}
