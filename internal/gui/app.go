package gui

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/embersim/internal/audio"
	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/config"
	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/palette"
	"github.com/san-kum/embersim/internal/particles"
	"github.com/san-kum/embersim/internal/phase"
	"github.com/san-kum/embersim/internal/render"
	"github.com/san-kum/embersim/internal/sim"
)

const (
	Title = "embersim"
	Hint  = "Low=Red  High=Blue   (drag mouse to rotate)"

	barHeight   = 56
	historySize = 240
	nudgeStep   = 0.01
)

var (
	ColBg      = rl.NewColor(5, 5, 13, 255)
	ColBar     = rl.NewColor(16, 16, 24, 235)
	ColTrack   = rl.NewColor(48, 48, 64, 255)
	ColKnob    = rl.NewColor(230, 230, 240, 255)
	ColText    = rl.NewColor(170, 170, 180, 255)
	ColTextDim = rl.NewColor(90, 90, 100, 255)
	ColAccent  = rl.NewColor(255, 150, 60, 255)
)

type App struct {
	Clock    *sim.Clock
	Camera   *camera.Camera
	Renderer *render.Renderer
	Surface  *Surface
	Audio    *audio.Crackle
	Logger   *slog.Logger
	Font     rl.Font

	Width, Height int32
	Paused        bool

	homePitch, homeYaw float64
	draggingSlider     bool
	rotating           bool
	history            *sim.SeriesRecorder
	lastSpawned        uint64
	spawnPerSec        float64
	statsAge           float64
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds the simulation from cfg. The window must already be open.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	seed := cfg.ResolvedSeed()
	src, err := phase.New(cfg.Phase, seed)
	if err != nil {
		return nil, err
	}
	sys := particles.New(
		particles.WithSeed(seed),
		particles.WithPhase(src),
		particles.WithMaxParticles(cfg.MaxParticles),
	)
	clock := sim.NewClock(sys, cfg.Dt, cfg.TickInterval)
	clock.SetEnergy(cfg.Energy)

	app := &App{
		Clock:     clock,
		Camera:    camera.New(cfg.Camera.Pitch, cfg.Camera.Yaw),
		Renderer:  render.New(),
		Surface:   NewSurface(),
		Logger:    logger,
		Font:      loadFont(),
		Width:     int32(cfg.Window.Width),
		Height:    int32(cfg.Window.Height),
		homePitch: cfg.Camera.Pitch,
		homeYaw:   cfg.Camera.Yaw,
		history:   sim.NewSeriesRecorder(historySize),
	}
	clock.AddObserver(app.history)

	if cfg.Audio {
		crackle := audio.NewCrackle(seed)
		if err := crackle.Start(); err != nil {
			logger.Warn("audio unavailable, continuing silent", "err", err)
		} else {
			logger.Info("audio started", "sample_rate", audio.SampleRate)
			app.Audio = crackle
		}
	}

	return app, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, logger *slog.Logger) error {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	logger.Info("window open", "width", cfg.Window.Width, "height", cfg.Window.Height, "energy", cfg.Energy)
	app.RunLoop()
	logger.Info("window closed", "ticks", app.Clock.Ticks(), "spawned", app.Clock.System().Spawned())
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update(time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))) {
			return
		}
		a.Draw()
	}
}

func (a *App) Close() {
	if a.Audio != nil {
		a.Audio.Stop()
	}
}

// Update handles input and advances the clock; it reports whether the user
// asked to quit.
func (a *App) Update(elapsed time.Duration) bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Paused = !a.Paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Clock.Reset()
		a.lastSpawned = 0
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.Camera.Pitch, a.Camera.Yaw = a.homePitch, a.homeYaw
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressedRepeat(rl.KeyLeft) {
		a.Clock.SetEnergy(nudge(a.Clock.Energy(), -nudgeStep))
	}
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressedRepeat(rl.KeyRight) {
		a.Clock.SetEnergy(nudge(a.Clock.Energy(), nudgeStep))
	}

	a.handleMouse()

	if !a.Paused {
		a.Clock.Pump(elapsed)
	}
	a.updateStats(elapsed.Seconds())

	if a.Audio != nil {
		a.Audio.Update(a.Clock.Energy(), a.Clock.System().Len())
	}
	return false
}

func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()
	track := a.sliderTrack()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		hit := rl.NewRectangle(track.X-8, track.Y-10, track.Width+16, track.Height+20)
		if rl.CheckCollisionPointRec(mouse, hit) {
			a.draggingSlider = true
		} else if mouse.Y < float32(a.Height-barHeight) {
			a.rotating = true
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.draggingSlider = false
		a.rotating = false
	}

	switch {
	case a.draggingSlider:
		a.Clock.SetEnergy(float64(SliderValue(mouse.X, track.X, track.Width)) / 100)
	case a.rotating && rl.IsMouseButtonDown(rl.MouseLeftButton):
		d := rl.GetMouseDelta()
		a.Camera.OnDragDelta(float64(d.X), float64(d.Y))
	}
}

func (a *App) updateStats(dt float64) {
	a.statsAge += dt
	if a.statsAge < 0.5 {
		return
	}
	spawned := a.Clock.System().Spawned()
	a.spawnPerSec = float64(spawned-a.lastSpawned) / a.statsAge
	a.lastSpawned = spawned
	a.statsAge = 0
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.Renderer.Draw(a.Surface, a.Camera, a.Clock.System(), a.Clock.Energy())
	a.DrawHUD()
	a.drawControlBar()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	sys := a.Clock.System()
	a.drawText(Title, 24, 20, 22, ColKnob)
	a.drawText(fmt.Sprintf("particles %4d / %d", sys.Len(), sys.MaxParticles()), 24, 50, 14, ColText)
	a.drawText(fmt.Sprintf("spawn     %6.0f /s", a.spawnPerSec), 24, 68, 14, ColText)
	a.drawText(fmt.Sprintf("pitch %5.1f  yaw %6.1f", a.Camera.Pitch, a.Camera.Yaw), 24, 86, 14, ColTextDim)

	if a.Paused {
		a.drawText("PAUSED", int(a.Width)-100, 20, 16, ColAccent)
	}
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int(a.Width)-100, 44, 14, ColTextDim)

	a.drawHistory(24, 110, 200, 40)
}

// drawHistory plots the recent population as a line strip.
func (a *App) drawHistory(x, y, w, h int) {
	series := a.history.Series
	if len(series) < 2 {
		return
	}
	peak := 1.0
	for _, v := range series {
		peak = max(peak, v)
	}

	points := make([]rl.Vector2, len(series))
	for i, v := range series {
		px := float32(x) + float32(i)/float32(historySize-1)*float32(w)
		py := float32(y+h) - float32(v/peak)*float32(h)
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
}

func (a *App) sliderTrack() rl.Rectangle {
	return rl.NewRectangle(150, float32(a.Height-barHeight/2-3), float32(a.Width)*0.45, 6)
}

func (a *App) drawControlBar() {
	top := a.Height - barHeight
	rl.DrawRectangle(0, top, a.Width, barHeight, ColBar)

	e := a.Clock.Energy()
	a.drawText(fmt.Sprintf("Energy: %.2f", e), 16, int(top)+18, 18, ColText)

	track := a.sliderTrack()
	rl.DrawRectangleRec(track, ColTrack)
	fill := track
	fill.Width = track.Width * float32(e)
	rl.DrawRectangleRec(fill, toColor(energyTint(e)))
	rl.DrawCircle(int32(track.X+fill.Width), int32(track.Y+track.Height/2), 9, ColKnob)

	a.drawText(Hint, int(track.X+track.Width)+28, int(top)+20, 14, ColTextDim)
	a.drawText("[SPACE] PAUSE  [R] RESET  [C] CAMERA  [Q] QUIT", int(a.Width)-420, int(top)-22, 12, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// SliderValue maps a pointer x coordinate onto the 0..100 slider.
func SliderValue(mouseX, trackX, trackWidth float32) int {
	if trackWidth <= 0 {
		return 0
	}
	v := float64((mouseX - trackX) / trackWidth * 100)
	return int(dynamo.Clamp(v+0.5, 0, 100))
}

func nudge(energy, delta float64) float64 {
	return dynamo.Clamp01(energy + delta)
}

// energyTint is the slider fill colour: the mid flame colour at e.
func energyTint(e float64) render.RGBA {
	return render.FromColorful(palette.At(e).Mid, 1)
}
