package view

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/RobeSantoro/avatar-controller/camera"
	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/component"
)

const (
	pixelsPerMeter = 48.0
	gridSpacing    = 1.0
	bodyRadius     = 0.3
)

// Renderer draws the scene from above with z up the screen and x to the
// left, so a left turn reads as one. It
// is also the camera rig's View, so the frame follows the smoothed camera.
type Renderer struct {
	Body color.Color

	camPos  mgl64.Vec3
	camLook mgl64.Vec3
	hasCam  bool
}

var _ camera.View = (*Renderer)(nil)

func NewRenderer(body color.Color) *Renderer {
	if body == nil {
		body = colornames.Deepskyblue
	}
	return &Renderer{Body: body}
}

func (r *Renderer) SetPosition(p mgl64.Vec3) { r.camPos = p; r.hasCam = true }
func (r *Renderer) LookAt(p mgl64.Vec3)      { r.camLook = p }

// center is the world point drawn at the middle of the screen: the
// camera's ground point, halfway toward what it looks at.
func (r *Renderer) center() mgl64.Vec3 {
	if !r.hasCam {
		return mgl64.Vec3{}
	}
	return r.camPos.Add(r.camLook).Mul(0.5)
}

func (r *Renderer) project(screen *ebiten.Image, p mgl64.Vec3) (float32, float32) {
	b := screen.Bounds()
	c := r.center()
	x := float64(b.Dx())/2 - (p[0]-c[0])*pixelsPerMeter
	y := float64(b.Dy())/2 - (p[2]-c[2])*pixelsPerMeter
	return float32(x), float32(y)
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	r.drawGrid(screen)

	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, cam *component.Camera, t *component.Transform) {
		cx, cy := r.project(screen, t.Position)
		lx, ly := r.project(screen, cam.Rig.LookAt())
		vector.StrokeLine(screen, cx, cy, lx, ly, 1, colornames.Khaki, true)
		vector.StrokeRect(screen, cx-5, cy-5, 10, 10, 2, colornames.Khaki, true)
	})

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, t *component.Transform) {
		px, py := r.project(screen, t.Position)
		fwd := t.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
		fx, fy := r.project(screen, t.Position.Add(fwd.Mul(bodyRadius*2)))
		vector.FillCircle(screen, px, py, float32(bodyRadius*pixelsPerMeter), r.Body, true)
		vector.StrokeLine(screen, px, py, fx, fy, 3, colornames.White, true)
	})

	ecs.ForEach3(w, component.InputComponent.Kind(), component.CharacterComponent.Kind(), component.AnimationComponent.Kind(), func(_ ecs.Entity, in *component.Input, ch *component.Character, an *component.Animation) {
		if !ch.Ready {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("loading clips... %d missing", len(an.Binding.Missing())), 8, 8)
			return
		}
		if !in.Debug {
			ebitenutil.DebugPrintAt(screen, "V: debug", 8, 8)
		}
	})
}

func (r *Renderer) drawGrid(screen *ebiten.Image) {
	b := screen.Bounds()
	c := r.center()
	halfW := float64(b.Dx()) / 2 / pixelsPerMeter
	halfH := float64(b.Dy()) / 2 / pixelsPerMeter
	line := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x18}

	for x := math.Floor((c[0]-halfW)/gridSpacing) * gridSpacing; x <= c[0]+halfW; x += gridSpacing {
		x0, y0 := r.project(screen, mgl64.Vec3{x, 0, c[2] - halfH})
		x1, y1 := r.project(screen, mgl64.Vec3{x, 0, c[2] + halfH})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, line, false)
	}
	for z := math.Floor((c[2]-halfH)/gridSpacing) * gridSpacing; z <= c[2]+halfH; z += gridSpacing {
		x0, y0 := r.project(screen, mgl64.Vec3{c[0] - halfW, 0, z})
		x1, y1 := r.project(screen, mgl64.Vec3{c[0] + halfW, 0, z})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, line, false)
	}
}
