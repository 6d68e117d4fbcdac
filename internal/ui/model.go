package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/caching"
	"github.com/llehouerou/reel/internal/canvas"
	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/state"
	"github.com/llehouerou/reel/internal/video"
)

// Options carries the wired services the model renders and controls.
type Options struct {
	Handler   *video.Handler
	Playback  playback.Service
	Scheduler *caching.Scheduler
	State     *state.Manager
	FilePath  string
	Zoom      float64

	// Peer is an optional second handler to diff against. Nil disables the
	// difference view.
	Peer *video.Handler
}

// Model is the bubbletea root model.
type Model struct {
	handler   *video.Handler
	clock     playback.Service
	scheduler *caching.Scheduler
	stateMgr  *state.Manager
	resolver  *keymap.Resolver
	scaler    *canvas.Scaler
	filePath  string
	peer      *video.Handler

	handlerSub  *video.Subscription
	playbackSub *playback.Subscription

	width, height int
	zoom          float64
	inspect       bool
	diffMode      bool

	gotoPrompt textinput.Model
	gotoActive bool

	help helpModel

	statusMsg string
	statusID  int
}

// New creates the root model. The caller owns the services and closes them
// after the program exits.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "frame number"
	ti.CharLimit = 9
	ti.Width = 16

	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	return Model{
		handler:     opts.Handler,
		clock:       opts.Playback,
		scheduler:   opts.Scheduler,
		stateMgr:    opts.State,
		resolver:    keymap.NewResolver(keymap.All),
		scaler:      canvas.NewScaler(),
		filePath:    opts.FilePath,
		peer:        opts.Peer,
		handlerSub:  opts.Handler.Subscribe(),
		playbackSub: opts.Playback.Subscribe(),
		zoom:        zoom,
		gotoPrompt:  ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.watchHandlerEvents(), m.watchPlaybackEvents())
}

// viewerHeight returns the cell rows available to the frame viewer.
func (m Model) viewerHeight() int {
	h := m.height - StatusBarHeight
	if h < 0 {
		h = 0
	}
	return h
}

// saveState persists the current viewing position. The state manager
// debounces the actual write.
func (m Model) saveState() {
	if m.stateMgr == nil {
		return
	}
	g := m.handler.Geometry()
	m.stateMgr.SaveFileState(state.FileState{
		Path:        m.filePath,
		Width:       g.Width,
		Height:      g.Height,
		PixelFormat: m.handler.Format().String(),
		FrameRate:   m.handler.FrameRate(),
		LastFrame:   m.clock.CurrentFrame(),
		Zoom:        m.zoom,
	})
}
