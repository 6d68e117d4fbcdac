package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/caching"
	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/mpris"
	"github.com/llehouerou/reel/internal/notify"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/raw"
	"github.com/llehouerou/reel/internal/state"
	"github.com/llehouerou/reel/internal/ui"
	"github.com/llehouerou/reel/internal/video"
)

var version = "dev"

// CLI is the command line for reel.
type CLI struct {
	File      string           `arg:"" optional:"" help:"Raw video file (.yuv, .y4m, .rgb). Omit to reopen the most recent file." type:"existingfile"`
	Reference string           `arg:"" optional:"" help:"Reference file to diff against." type:"existingfile"`
	Size      string           `help:"Frame size as WxH, e.g. 1920x1080." short:"s"`
	Format    string           `help:"Pixel format: yuv420p, yuv422p, yuv444p, gray8, rgb24." short:"f"`
	Fps       float64          `help:"Frame rate." default:"0"`
	Zoom      float64          `help:"Initial zoom factor." default:"0"`
	Version   kong.VersionFlag `help:"Show version." short:"V"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("reel"),
		kong.Description("Terminal raw video frame inspector."),
		kong.Vars{"version": version},
	)
	kctx.FatalIfErrorf(run(cli))
}

func run(cli CLI) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	stateMgr, err := state.Open()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStateOpen, err))
	}
	defer stateMgr.Close()

	path, err := resolvePath(cli.File, stateMgr)
	if err != nil {
		return err
	}

	saved, err := stateMgr.GetFileState(path)
	if err != nil {
		saved = nil
	}

	opts, err := openOptions(cli, saved, cfg, path)
	if err != nil {
		return err
	}

	src, err := raw.Open(path, opts)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpOpenFile, err))
	}
	defer src.Close()

	handler := video.New(video.NewFileProducer(src))
	defer handler.Close()

	// A reference file enables the difference view. It is decoded with the
	// same options as the primary file.
	var peer *video.Handler
	if cli.Reference != "" {
		refPath, err := filepath.Abs(cli.Reference)
		if err != nil {
			return err
		}
		ref, err := raw.Open(refPath, opts)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpOpenFile, err))
		}
		defer ref.Close()

		peer = video.New(video.NewFileProducer(ref))
		defer peer.Close()
	}

	clock := playback.New(handler.FrameCount(), handler.FrameRate())
	defer clock.Close()
	if saved != nil && saved.LastFrame > 0 && saved.LastFrame < handler.FrameCount() {
		clock.JumpTo(saved.LastFrame)
	}

	notifier := notify.NewStub()
	if cfg.NotificationsEnabled() {
		if n, nerr := notify.New(); nerr == nil {
			notifier = n
		}
	}

	scheduler := caching.New(handler, cfg.GetCachingWorkers(), cfg.CacheBudgetBytes(), notifier)
	scheduler.Start()
	defer scheduler.Stop()
	scheduler.PlanAround(clock.CurrentFrame())

	if adapter, merr := mpris.New(clock, path); merr == nil {
		defer adapter.Close()
	}

	model := ui.New(ui.Options{
		Handler:   handler,
		Playback:  clock,
		Scheduler: scheduler,
		State:     stateMgr,
		FilePath:  path,
		Zoom:      initialZoom(cli, saved, cfg),
		Peer:      peer,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// recentLister is the slice of the state manager the path fallback needs.
type recentLister interface {
	RecentFiles(limit int) ([]state.FileState, error)
}

// resolvePath returns the absolute path of the file to open, falling back to
// the most recently opened file when none was given on the command line.
func resolvePath(file string, recent recentLister) (string, error) {
	if file == "" {
		files, err := recent.RecentFiles(1)
		if err != nil {
			return "", err
		}
		if len(files) == 0 {
			return "", errors.New("no file given and no recently opened file")
		}
		file = files[0].Path
	}
	return filepath.Abs(file)
}

// openOptions merges flags, remembered per-file state and config defaults
// into decode options. Flags win; Y4M headers are never overridden unless a
// flag says so.
func openOptions(cli CLI, saved *state.FileState, cfg *config.Config, path string) (raw.OpenOptions, error) {
	var opts raw.OpenOptions

	switch {
	case cli.Size != "":
		g, err := parseGeometry(cli.Size)
		if err != nil {
			return opts, err
		}
		opts.Geometry = g
	case saved != nil:
		opts.Geometry = raw.Geometry{Width: saved.Width, Height: saved.Height}
	}

	switch {
	case cli.Format != "":
		f, err := raw.ParseFormat(cli.Format)
		if err != nil {
			return opts, err
		}
		opts.Format = &f
	case saved != nil && saved.PixelFormat != "":
		if f, err := raw.ParseFormat(saved.PixelFormat); err == nil {
			opts.Format = &f
		}
	}

	switch {
	case cli.Fps > 0:
		opts.FrameRate = cli.Fps
	case saved != nil && saved.FrameRate > 0:
		opts.FrameRate = saved.FrameRate
	}

	// For bare planar files with nothing to go on, fall back to configured
	// defaults rather than the built-in ones.
	if !strings.EqualFold(filepath.Ext(path), ".y4m") {
		md := raw.GuessMetadata(path)
		if opts.Format == nil && !md.HasFormat {
			f := cfg.GetDefaultFormat()
			opts.Format = &f
		}
		if opts.FrameRate == 0 && md.FrameRate == 0 {
			opts.FrameRate = cfg.GetDefaultFrameRate()
		}
	}

	return opts, nil
}

func initialZoom(cli CLI, saved *state.FileState, cfg *config.Config) float64 {
	if cli.Zoom > 0 {
		return cli.Zoom
	}
	if saved != nil && saved.Zoom > 0 {
		return saved.Zoom
	}
	return cfg.GetDefaultZoom()
}

func parseGeometry(s string) (raw.Geometry, error) {
	var g raw.Geometry
	if _, err := fmt.Sscanf(s, "%dx%d", &g.Width, &g.Height); err != nil || !g.Valid() {
		return g, fmt.Errorf("invalid size %q, expected WxH", s)
	}
	return g, nil
}
