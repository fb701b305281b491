package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/raster3d/internal/app"
	"github.com/taigrr/raster3d/internal/config"
	"github.com/taigrr/raster3d/pkg/render"
)

const (
	moveSpeed   = 4.0 // units per second
	turnImpulse = 0.6 // degrees per tick
)

// runView renders into the terminal with two framebuffer rows per cell.
func runView(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	cfg.Width, cfg.Height = width, height*2

	// Logging would scribble over the alt screen.
	logger.SetLevel(log.ErrorLevel)
	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	orbit := app.NewOrbit(max(*fps, 1))
	var move struct{ forward, right, up float64 }
	resized := make(chan [2]int, 1)
	keys := make(chan uv.KeyPressEvent, 16)

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case resized <- [2]int{ev.Width, ev.Height}:
				default:
				}
			case uv.KeyPressEvent:
				if ev.MatchString("escape") || ev.MatchString("ctrl+c") {
					cancel()
					return
				}
				select {
				case keys <- ev:
				default:
				}
			}
		}
	}()

	handleKey := func(ev uv.KeyPressEvent, fb *render.Framebuffer) error {
		switch {
		case ev.MatchString("w"):
			move.forward = 1
		case ev.MatchString("s"):
			move.forward = -1
		case ev.MatchString("a"):
			move.right = -1
		case ev.MatchString("d"):
			move.right = 1
		case ev.MatchString("q"):
			move.up = -1
		case ev.MatchString("e"):
			move.up = 1
		case ev.MatchString("left"):
			orbit.Impulse(-turnImpulse, 0)
		case ev.MatchString("right"):
			orbit.Impulse(turnImpulse, 0)
		case ev.MatchString("up"):
			orbit.Impulse(0, turnImpulse)
		case ev.MatchString("down"):
			orbit.Impulse(0, -turnImpulse)
		case ev.MatchString("r"):
			orbit.Reset()
		case ev.MatchString("m"):
			a.SetMSAA(!a.MSAA())
		case ev.MatchString("p"):
			if fb != nil {
				return fb.Save(*output)
			}
		}
		return nil
	}

	var fb *render.Framebuffer
	frame := time.Second / time.Duration(max(*fps, 1))
	start := time.Now()
	last := start
	for {
		select {
		case <-ctx.Done():
			return nil
		case sz := <-resized:
			width, height = sz[0], sz[1]
			term.Erase()
			term.Resize(width, height)
			cfg.Width, cfg.Height = width, height*2
			if a, err = app.New(cfg, logger); err != nil {
				return err
			}
		default:
		}
	drain:
		for {
			select {
			case ev := <-keys:
				if err := handleKey(ev, fb); err != nil {
					return err
				}
			default:
				break drain
			}
		}

		now := time.Now()
		dt := min(now.Sub(last).Seconds(), 0.1)
		last = now

		a.Camera().Move(move.forward*moveSpeed*dt, move.right*moveSpeed*dt, move.up*moveSpeed*dt)
		// Key releases are unreliable in terminals; let movement fade out.
		move.forward *= 0.8
		move.right *= 0.8
		move.up *= 0.8
		orbit.Apply(a)

		if fb, err = a.RenderFrame(now.Sub(start)); err != nil {
			return err
		}

		fb.Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		if elapsed := time.Since(now); elapsed < frame {
			time.Sleep(frame - elapsed)
		}
	}
}
