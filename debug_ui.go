package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/go-gl/mathgl/mgl64"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/RobeSantoro/avatar-controller/character"
	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/component"
)

// debugOverlay is the panel shown while the debug toggle is on.
type debugOverlay struct {
	g  *Game
	ui *ebitenui.UI

	state  *widget.Text
	motion *widget.Text
	cam    *widget.Text
	input  *widget.Text
	events *widget.Text
}

func newDebugOverlay(g *Game) *debugOverlay {
	o := &debugOverlay{g: g}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dim := color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}

	label := func(c color.Color) *widget.Text {
		return widget.NewText(widget.TextOpts.Text("", &face, c))
	}
	title := widget.NewText(widget.TextOpts.Text("locomotion", &face, white))
	o.state = label(white)
	o.motion = label(white)
	o.cam = label(dim)
	o.input = label(dim)
	o.events = label(dim)

	btnText := &widget.ButtonTextColor{Idle: white}
	reset := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Reset position", &face, btnText),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			o.resetCharacter()
		}),
	)
	closeBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Close", &face, btnText),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.setDebug(false)
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 14, Right: 14}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(300, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(o.state)
	panel.AddChild(o.motion)
	panel.AddChild(o.cam)
	panel.AddChild(o.input)
	panel.AddChild(o.events)
	panel.AddChild(reset)
	panel.AddChild(closeBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	o.ui = &ebitenui.UI{Container: root}
	return o
}

func (o *debugOverlay) refresh() {
	w := o.g.world
	ch, ok := ecs.Get(w, o.g.scene.Player, component.CharacterComponent.Kind())
	if !ok {
		return
	}
	ctrl := ch.Controller

	state, _ := ctrl.State()
	prev, hasPrev := ctrl.Machine().Previous()
	if hasPrev {
		o.state.Label = fmt.Sprintf("state %s (from %s)", state, prev)
	} else {
		o.state.Label = fmt.Sprintf("state %s", state)
	}

	v, p := ctrl.Velocity(), ctrl.Position()
	yaw := mgl64.RadToDeg(ctrl.Motion().Yaw())
	o.motion.Label = fmt.Sprintf("speed %5.2f  pos (%.2f, %.2f)  yaw %4.0f", v[2], p[0], p[2], yaw)

	if cam, ok := ecs.Get(w, o.g.scene.Camera, component.CameraComponent.Kind()); ok {
		c, l := cam.Rig.Position(), cam.Rig.LookAt()
		o.cam.Label = fmt.Sprintf("camera (%.2f, %.2f, %.2f) -> (%.2f, %.2f)", c[0], c[1], c[2], l[0], l[2])
	}
	if in, ok := ecs.Get(w, o.g.scene.Player, component.InputComponent.Kind()); ok {
		o.input.Label = "input " + in.Snapshot.String()
	}

	var lines []string
	for _, evt := range o.g.events.Recent() {
		if sc, ok := evt.Data.(ecs.StateChanged); ok {
			lines = append(lines, fmt.Sprintf("%s -> %s", orDash(sc.From), sc.To))
		}
	}
	o.events.Label = strings.Join(lines, "\n")
}

// resetCharacter returns the character to the origin facing +z, keeping its
// locomotion state. The camera snaps with it.
func (o *debugOverlay) resetCharacter() {
	ch, ok := ecs.Get(o.g.world, o.g.scene.Player, component.CharacterComponent.Kind())
	if !ok {
		return
	}
	ch.Controller.Motion().Reset(character.MotionState{Orientation: mgl64.QuatIdent()})
	if cam, ok := ecs.Get(o.g.world, o.g.scene.Camera, component.CameraComponent.Kind()); ok {
		cam.Rig.Snap()
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
