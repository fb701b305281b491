// raster3d - software rasterizer demo
// Renders a soft-shadowed, normal-mapped scene to image files or the
// terminal.
//
// Interactive controls (-view):
//
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	Q/E         - Move down/up
//	Arrows      - Turn (spring smoothed)
//	M           - Toggle 4x MSAA
//	P           - Save screenshot
//	R           - Reset turning
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"

	"github.com/taigrr/raster3d/internal/app"
	"github.com/taigrr/raster3d/internal/config"
	"github.com/taigrr/raster3d/internal/logging"
)

var (
	configPath = flag.String("config", "", "Path to a TOML or YAML config file")
	output     = flag.String("o", "screenshot.png", "Output image (png, jpg, bmp, tiff)")
	frames     = flag.Int("frames", 0, "Render a sequence of N frames into -outdir")
	outDir     = flag.String("outdir", "frames", "Directory for -frames sequences")
	fps        = flag.Int("fps", 30, "Frames per second for sequences and -view")
	at         = flag.Duration("t", time.Second, "Scene time of a single frame")
	view       = flag.Bool("view", false, "Render interactively in the terminal")
	watch      = flag.Bool("watch", false, "Re-render -o whenever the config, textures or model change")
	model      = flag.String("model", "", "glTF/GLB model replacing the cube")
	msaa       = flag.Bool("msaa", true, "Enable 4x MSAA")
	size       = flag.String("size", "", "Output size as WxH")
	cull       = flag.String("cull", "", "Cull mode: none, clockwise, counter-clockwise, all")
	bounds     = flag.Bool("bounds", false, "Draw object bounding boxes")
	logLevel   = flag.String("log-level", "info", "Log level: debug, info, warn, error")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "raster3d - software rasterizer demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: raster3d [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := logging.New(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		logger.Fatal("raster3d failed", "err", err)
	}
}

func run(ctx context.Context, logger *log.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch {
	case *view:
		return runView(ctx, cfg, logger)
	case *watch:
		return runWatch(ctx, cfg, logger)
	case *frames > 0:
		return renderSequence(ctx, cfg, logger)
	default:
		a, err := app.New(cfg, logger)
		if err != nil {
			return err
		}
		return renderOne(a, *at, *output, logger)
	}
}

// loadConfig reads -config (or the defaults) and applies flags the user set
// explicitly.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if err := applyFlags(&cfg, set); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyFlags(cfg *config.Config, set map[string]bool) error {
	if set["msaa"] {
		cfg.MSAA = *msaa
	}
	if set["model"] {
		cfg.Model = *model
	}
	if set["cull"] {
		cfg.Cull = *cull
	}
	if set["bounds"] {
		cfg.Bounds = *bounds
	}
	if set["size"] {
		w, h, err := parseSize(*size)
		if err != nil {
			return err
		}
		cfg.Width, cfg.Height = w, h
	}
	return nil
}

// parseSize parses "WxH".
func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	if w, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if h, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: dimensions must be positive", s)
	}
	return w, h, nil
}

func renderOne(a *app.App, t time.Duration, path string, logger *log.Logger) error {
	fb, err := a.RenderFrame(t)
	if err != nil {
		return err
	}
	if err := fb.Save(path); err != nil {
		return err
	}
	logger.Info("saved", "path", path, "frame", a.Stats().FrameTime().Round(time.Millisecond))
	return nil
}

// framePath names frame i of a sequence.
func framePath(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
}

func renderSequence(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	dir := filepath.Join(*outDir, a.RunID().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	bar := progressbar.Default(int64(*frames), "rendering")
	step := time.Second / time.Duration(max(*fps, 1))
	for i := range *frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		fb, err := a.RenderFrame(time.Duration(i) * step)
		if err != nil {
			return err
		}
		if err := fb.Save(framePath(dir, i)); err != nil {
			return err
		}
		bar.Add(1)
	}
	bar.Finish()

	st := a.Stats()
	logger.Info("sequence done", "dir", dir, "frames", st.Frames(),
		"avg", st.FrameTime().Round(time.Millisecond), "fps", fmt.Sprintf("%.1f", st.FPS()))
	return nil
}
