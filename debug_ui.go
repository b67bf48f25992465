package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
	"golang.org/x/image/font/basicfont"
)

// DebugOverlay is a corner panel with live scene stats, shown with -debug.
type DebugOverlay struct {
	ui    *ebitenui.UI
	label *widget.Text
}

// NewDebugOverlay builds the panel from a colored nine-slice and the
// built-in basic font, so no theme assets are needed.
func NewDebugOverlay() *DebugOverlay {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	label := widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(label)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &DebugOverlay{
		ui:    &ebitenui.UI{Container: root},
		label: label,
	}
}

func (d *DebugOverlay) Update(g *Game) {
	d.label.Label = debugText(g)
	d.ui.Update()
}

func (d *DebugOverlay) Draw(screen *ebiten.Image) {
	d.ui.Draw(screen)
}

func debugText(g *Game) string {
	var b strings.Builder
	fmt.Fprintf(&b, "scene: %s  fps: %.1f  frame: %d\n", g.spec.Name, ebiten.ActualFPS(), g.world.Frame())
	fmt.Fprintf(&b, "offset: %.0f\n", g.input.Offset())

	if t, ok := ecs.Get(g.world, g.scene.Camera, component.TransformComponent.Kind()); ok {
		fmt.Fprintf(&b, "camera: (%.2f, %.2f, %.2f) rot y %.3f\n", t.Position.X(), t.Position.Y(), t.Position.Z(), t.Rotation.Y())
	}

	stats := g.renderer.Stats()
	fmt.Fprintf(&b, "objects: %d  triangles: %d  culled: %d\n", stats.Objects, stats.Triangles, stats.Culled)
	fmt.Fprintf(&b, "trail: %d/%d\n", g.trail.Len(), g.trail.Capacity())

	var names []string
	for _, h := range g.picking.LastHits() {
		name := "#" + h.Entity.String()
		if n, ok := ecs.Get(g.world, h.Entity, component.NameComponent.Kind()); ok && n.Value != "" {
			name = n.Value
		}
		names = append(names, fmt.Sprintf("%s@%.1f", name, h.Distance))
	}
	if len(names) == 0 {
		names = []string{"none"}
	}
	fmt.Fprintf(&b, "last click: %s", strings.Join(names, ", "))
	return b.String()
}
