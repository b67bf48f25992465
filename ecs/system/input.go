package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/portfolio3d/ecs"
)

// InputSource is the host's view of the pointer, wheel, and viewport for
// the current frame.
type InputSource interface {
	CursorPosition() (x, y float64)
	PrimaryJustPressed() bool
	SecondaryJustPressed() bool
	// Wheel returns the vertical wheel delta; positive scrolls up.
	Wheel() float64
	Viewport() (width, height float64)
}

// EbitenInput reads input from ebiten. The viewport is whatever the game's
// Layout last reported.
type EbitenInput struct {
	width, height float64
}

func NewEbitenInput(width, height float64) *EbitenInput {
	return &EbitenInput{width: width, height: height}
}

func (in *EbitenInput) SetViewport(width, height float64) {
	in.width, in.height = width, height
}

func (in *EbitenInput) CursorPosition() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

func (in *EbitenInput) PrimaryJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (in *EbitenInput) SecondaryJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}

func (in *EbitenInput) Wheel() float64 {
	_, dy := ebiten.Wheel()
	return dy
}

func (in *EbitenInput) Viewport() (float64, float64) {
	return in.width, in.height
}

// InputSystem turns host input into world events. Pointer moves are only
// reported when the cursor actually moved. The page offset is simulated
// from the wheel: each notch scrolls step pixels, clamped to [0, max].
type InputSystem struct {
	source    InputSource
	step      float64
	maxOffset float64

	offset     float64
	lastX      float64
	lastY      float64
	hasCursor  bool
	lastWidth  float64
	lastHeight float64
}

func NewInputSystem(source InputSource, step, maxOffset float64) *InputSystem {
	if step <= 0 {
		step = 40
	}
	return &InputSystem{source: source, step: step, maxOffset: maxOffset}
}

// Offset returns the simulated page scroll offset.
func (i *InputSystem) Offset() float64 {
	return i.offset
}

// SetOffset restores an offset without emitting a scroll event.
func (i *InputSystem) SetOffset(offset float64) {
	i.offset = math.Max(0, offset)
	if i.maxOffset > 0 {
		i.offset = math.Min(i.maxOffset, i.offset)
	}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.source == nil {
		return
	}
	events := w.Events()

	width, height := i.source.Viewport()
	if width != i.lastWidth || height != i.lastHeight {
		i.lastWidth, i.lastHeight = width, height
		events.Push(ecs.Event{Type: ecs.EventViewportResized, Data: ecs.PointerEvent{Width: width, Height: height}})
	}

	x, y := i.source.CursorPosition()
	pointer := ecs.PointerEvent{ClientX: x, ClientY: y, Width: width, Height: height}
	if !i.hasCursor || x != i.lastX || y != i.lastY {
		i.hasCursor = true
		i.lastX, i.lastY = x, y
		events.Push(ecs.Event{Type: ecs.EventPointerMove, Data: pointer})
	}

	if i.source.PrimaryJustPressed() {
		events.Push(ecs.Event{Type: ecs.EventPointerClick, Data: pointer})
	}
	if i.source.SecondaryJustPressed() {
		events.Push(ecs.Event{Type: ecs.EventPointerAltClick, Data: pointer})
	}

	if dy := i.source.Wheel(); dy != 0 {
		next := i.offset - dy*i.step
		next = math.Max(0, next)
		if i.maxOffset > 0 {
			next = math.Min(i.maxOffset, next)
		}
		if next != i.offset {
			i.offset = next
			events.Push(ecs.Event{Type: ecs.EventScroll, Data: ecs.ScrollEvent{Offset: next}})
		}
	}
}
