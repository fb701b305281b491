// Package app wires the scene, the two rasterizer passes and the shaders
// into a frame renderer.
package app

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/taigrr/raster3d/internal/config"
	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/models"
	"github.com/taigrr/raster3d/pkg/render"
	"github.com/taigrr/raster3d/pkg/scene"
	"github.com/taigrr/raster3d/pkg/shader"
)

// Object names in the scene.
const (
	PlaneName  = "plane"
	CasterName = "cube"
)

// CasterSpin is the caster rotation speed in degrees per second.
const CasterSpin = 15.0

var (
	casterOffset = math3d.V3(0, 1.8, 0)
	casterAxis   = math3d.V3(1, 5, 6)
)

// App renders the demo scene: a plane receiving a soft shadow from a
// spinning normal-mapped caster.
type App struct {
	cfg   config.Config
	log   *log.Logger
	runID uuid.UUID

	shadow *render.Rasterizer
	main   *render.Rasterizer

	scene  *scene.Scene
	plane  *scene.Object
	caster *scene.Object
	camera *scene.FPSCamera
	light  *scene.DirectionalLight

	diffuse *render.Texture
	normal  *render.Texture

	stats FrameStats
}

// New builds both engines, the scene and its textures from cfg.
func New(cfg config.Config, logger *log.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{
		cfg:   cfg,
		runID: uuid.New(),
		scene: scene.New(),
	}
	a.log = logger.With("run", a.runID.String()[:8])

	var err error
	a.shadow, err = render.NewRasterizer(render.Config{
		Width:     cfg.ShadowMapSize,
		Height:    cfg.ShadowMapSize,
		DrawColor: false,
		DrawDepth: true,
		Cull:      render.CullClockwise,
		Workers:   cfg.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("shadow pass: %w", err)
	}
	a.main, err = render.NewRasterizer(cfg.Engine())
	if err != nil {
		return nil, fmt.Errorf("main pass: %w", err)
	}

	if err := a.loadTextures(); err != nil {
		return nil, err
	}
	if err := a.buildScene(); err != nil {
		return nil, err
	}

	cam := cfg.Camera
	a.camera = scene.NewFPSCamera(config.Vec(cam.Position), cam.Yaw, cam.Pitch, cam.FOV,
		float64(cfg.Width)/float64(cfg.Height), cam.Near, cam.Far)
	l := cfg.Light
	a.light = scene.NewDirectionalLight(config.Vec(l.Position), config.Vec(l.Target),
		l.HalfWidth, l.HalfHeight, l.Near, l.Far)

	a.log.Info("initialized",
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"msaa", cfg.MSAA,
		"cull", cfg.Cull,
		"shadow", cfg.ShadowMapSize,
		"objects", a.scene.Len())
	return a, nil
}

func (a *App) loadTextures() error {
	var err error
	if p := a.cfg.Textures.Diffuse; p != "" {
		a.diffuse, err = render.LoadTexture(p)
	} else {
		a.diffuse, err = render.NewCheckerTexture(256, 256, 32,
			render.RGB(0.62, 0.32, 0.22), render.RGB(0.78, 0.45, 0.3))
	}
	if err != nil {
		return fmt.Errorf("diffuse texture: %w", err)
	}

	if p := a.cfg.Textures.Normal; p != "" {
		a.normal, err = render.LoadTexture(p)
	} else {
		a.normal, err = render.NewBumpTexture(256, 32, 4)
	}
	if err != nil {
		return fmt.Errorf("normal texture: %w", err)
	}
	return nil
}

func (a *App) buildScene() error {
	a.plane = scene.NewObject(PlaneName, scene.NewPlane(5, 5, render.White))

	var mesh *models.Mesh
	if a.cfg.Model != "" {
		m, err := models.LoadGLB(a.cfg.Model)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		fitUnitCube(m)
		a.log.Info("loaded model", "path", a.cfg.Model,
			"vertices", len(m.Vertices), "triangles", m.TriangleCount())
		mesh = m
	} else {
		mesh = scene.NewCube(1, 1, 1)
	}
	a.caster = scene.NewObject(CasterName, mesh)

	for _, o := range []*scene.Object{a.plane, a.caster} {
		if _, err := a.scene.Add(o); err != nil {
			return err
		}
	}
	return nil
}

// fitUnitCube centers m on the origin and scales it into [-1, 1]^3.
func fitUnitCube(m *models.Mesh) {
	size := m.Size()
	maxDim := max(size.X, size.Y, size.Z)
	if maxDim <= 0 {
		return
	}
	m.Transform(math3d.ScaleUniform(2 / maxDim).Mul(math3d.Translate(m.Center().Negate())))
}

// Camera returns the viewer camera.
func (a *App) Camera() *scene.FPSCamera { return a.camera }

// Light returns the shadow casting light.
func (a *App) Light() *scene.DirectionalLight { return a.light }

// Scene returns the object registry.
func (a *App) Scene() *scene.Scene { return a.scene }

// RunID identifies this process run.
func (a *App) RunID() uuid.UUID { return a.runID }

// Stats returns the frame timing statistics.
func (a *App) Stats() *FrameStats { return &a.stats }

// MSAA reports whether the main pass multisamples.
func (a *App) MSAA() bool { return a.main.Config().MSAA }

// SetMSAA toggles multisampling on the main pass.
func (a *App) SetMSAA(on bool) {
	a.main.SetMSAA(on)
	a.log.Info("msaa", "enabled", on)
}

// Update places the objects for time t since start.
func (a *App) Update(t time.Duration) {
	a.plane.Model = math3d.RotateX(math3d.Radians(-90))
	angle := math3d.Radians(math.Mod(CasterSpin*t.Seconds(), 360))
	a.caster.Model = math3d.Translate(casterOffset).Mul(math3d.Rotate(casterAxis, angle))
}

// RenderFrame updates the scene for time t, renders the shadow pass and the
// main pass, and returns the main pass result. The framebuffer is owned by
// the App and overwritten by the next call.
func (a *App) RenderFrame(t time.Duration) (*render.Framebuffer, error) {
	start := time.Now()
	a.Update(t)

	a.shadow.ClearDepth()
	a.main.Clear()

	camView, camProj := a.camera.View(), a.camera.Projection()
	lc := a.light.Camera()
	lightView, lightProj := lc.View(), lc.Projection()

	lightFrustum := scene.NewFrustum(lightProj.Mul(lightView))
	for _, o := range a.scene.Visible(lightFrustum) {
		vs := shader.LightDepth{Model: o.Model, LightView: lightView, LightProjection: lightProj}
		if err := a.shadow.Render(o.Mesh.Vertices, o.Mesh.Indices, vs, shader.Depth{}); err != nil {
			return nil, fmt.Errorf("shadow pass %q: %w", o.Name, err)
		}
	}
	shadowDone := time.Now()

	shadowMap := a.shadow.ShadowMap()
	pcss := shader.PCSS{Map: shadowMap, Params: a.cfg.PCSS.Params()}
	bumps := shader.NewNormalMapped(a.diffuse, a.normal)

	drawn := 0
	for _, o := range a.scene.Visible(a.camera.Frustum()) {
		var (
			vs render.VertexShader
			fs render.FragmentShader
		)
		switch o {
		case a.plane:
			vs = shader.MVPLight{
				Model: o.Model, View: camView, Projection: camProj,
				LightView: lightView, LightProjection: lightProj,
			}
			fs = pcss
		default:
			vs = shader.NormalMapping{
				Model: o.Model, View: camView, Projection: camProj,
				LightPos: a.light.Position(), EyePos: a.camera.Position(),
			}
			fs = bumps
		}
		if err := a.main.Render(o.Mesh.Vertices, o.Mesh.Indices, vs, fs); err != nil {
			return nil, fmt.Errorf("main pass %q: %w", o.Name, err)
		}
		drawn++
	}

	fb := a.main.Result()
	if a.cfg.Bounds {
		w := scene.NewWireframe(camProj.Mul(camView), fb)
		w.DrawBounds(a.scene, render.RGB(0, 1, 0.5))
	}

	end := time.Now()
	a.stats.Update(end.Sub(start))
	a.log.Debug("frame",
		"t", t.Round(time.Millisecond),
		"shadow", shadowDone.Sub(start).Round(time.Microsecond),
		"main", end.Sub(shadowDone).Round(time.Microsecond),
		"drawn", drawn)
	return fb, nil
}

// ShadowMap exposes the depth of the last shadow pass.
func (a *App) ShadowMap() render.ShadowMap {
	return a.shadow.ShadowMap()
}
