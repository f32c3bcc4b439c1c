package viewer

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"

	compas "github.com/jf---/compas"
	"github.com/jf---/compas/colors"
	"github.com/jf---/compas/scene"
)

// input tuning.
const (
	orbitSpeed  = 1.6 // radians per second while an arrow key is held
	zoomFactor  = 1.25
	tweenLength = 0.35 // seconds, for eased camera moves
	strokeWidth = 1.5
	vertexSize  = 3
)

// App is the interactive viewer window. It renders the backend's retained
// display list through an orbit camera and implements [ebiten.Game].
type App struct {
	cfg    Config
	camera *Camera
	scn    *scene.Scene // optional, enables redraw on R
	bg     colors.Color
}

// NewApp creates a viewer for the given config. scn may be nil; when set,
// pressing R clears and redraws it.
func NewApp(scn *scene.Scene, cfg Config) *App {
	cam := NewCamera()
	if cfg.Camera.Distance > 0 {
		cam.Distance = cfg.Camera.Distance
	}
	cam.Yaw = cfg.Camera.Yaw
	cam.Pitch = clampPitch(cfg.Camera.Pitch)
	return &App{cfg: cfg, camera: cam, scn: scn, bg: cfg.background()}
}

// Camera returns the viewer camera.
func (a *App) Camera() *Camera { return a.camera }

// Update processes input and advances camera tweens.
func (a *App) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		a.camera.Yaw -= orbitSpeed * float64(dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		a.camera.Yaw += orbitSpeed * float64(dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		a.camera.Pitch = clampPitch(a.camera.Pitch + orbitSpeed*float64(dt))
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		a.camera.Pitch = clampPitch(a.camera.Pitch - orbitSpeed*float64(dt))
	}
	if ebiten.IsKeyPressed(ebiten.KeyPageUp) {
		a.camera.ZoomTo(a.camera.Distance/zoomFactor, tweenLength, ease.OutQuad)
	}
	if ebiten.IsKeyPressed(ebiten.KeyPageDown) {
		a.camera.ZoomTo(a.camera.Distance*zoomFactor, tweenLength, ease.OutQuad)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		a.camera.OrbitTo(a.cfg.Camera.Yaw, a.cfg.Camera.Pitch, tweenLength, ease.OutQuad)
	}
	if a.scn != nil && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := a.scn.Redraw(); err != nil {
			compas.Logger().Warn("viewer: redraw failed", "err", err)
		}
	}

	a.camera.update(dt)
	return nil
}

// Draw strokes the retained display list.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(a.bg, 1))

	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())

	for _, art := range theBackend.snapshot() {
		for _, s := range art.segments {
			x0, y0, ok0 := a.camera.Project(s.a, w, h)
			x1, y1, ok1 := a.camera.Project(s.b, w, h)
			if !ok0 || !ok1 {
				continue
			}
			vector.StrokeLine(screen,
				float32(x0), float32(y0), float32(x1), float32(y1),
				strokeWidth, toRGBA(s.color, art.opacity), true)
		}
		for _, v := range art.vertices {
			x, y, ok := a.camera.Project(v.p, w, h)
			if !ok {
				continue
			}
			vector.DrawFilledCircle(screen,
				float32(x), float32(y), vertexSize, toRGBA(v.color, art.opacity), true)
		}
	}
}

// Layout implements ebiten.Game.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	ebiten.SetWindowSize(a.cfg.Width, a.cfg.Height)
	ebiten.SetWindowTitle(a.cfg.Title)
	compas.Logger().Info("viewer: starting", "title", a.cfg.Title, "size", [2]int{a.cfg.Width, a.cfg.Height})
	return ebiten.RunGame(a)
}

// Show draws the scene into the display list and runs the viewer.
func Show(s *scene.Scene, cfg Config) error {
	if err := s.Draw(); err != nil {
		return err
	}
	return NewApp(s, cfg).Run()
}

// toRGBA converts a color and opacity to a premultiplied ebiten color.
func toRGBA(c colors.Color, opacity float64) color.Color {
	a := c.A * opacity
	return color.RGBA{
		R: uint8(math.Round(clamp01(c.R*a) * 255)),
		G: uint8(math.Round(clamp01(c.G*a) * 255)),
		B: uint8(math.Round(clamp01(c.B*a) * 255)),
		A: uint8(math.Round(clamp01(a) * 255)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
