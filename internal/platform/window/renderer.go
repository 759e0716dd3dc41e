package window

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

type opKind int

const (
	opClear opKind = iota
	opDraw
)

type drawOp struct {
	kind  opKind
	img   *ebiten.Image
	frame core.Rect
	dest  core.Rect
}

// recorder collects the draw calls of one frame callback.
type recorder struct {
	ops []drawOp
}

func (r *recorder) reset() {
	r.ops = r.ops[:0]
}

func (r *recorder) Clear(rect core.Rect) {
	r.ops = append(r.ops, drawOp{kind: opClear, dest: rect})
}

func (r *recorder) DrawImage(img image.Image, frame, dest core.Rect) error {
	eimg, ok := img.(*ebiten.Image)
	if !ok {
		return fmt.Errorf("window: cannot draw %T, expected *ebiten.Image", img)
	}
	if frame.Empty() {
		return fmt.Errorf("window: empty source frame %v", frame)
	}
	r.ops = append(r.ops, drawOp{kind: opDraw, img: eimg, frame: frame, dest: dest})
	return nil
}

func toRectangle(r core.Rect) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.Right()), int(r.Bottom()))
}

func (r *recorder) replay(screen *ebiten.Image) {
	for _, op := range r.ops {
		switch op.kind {
		case opClear:
			area := toRectangle(op.dest).Intersect(screen.Bounds())
			if area.Empty() {
				continue
			}
			screen.SubImage(area).(*ebiten.Image).Clear()
		case opDraw:
			sprite := op.img.SubImage(toRectangle(op.frame)).(*ebiten.Image)
			opts := &ebiten.DrawImageOptions{}
			opts.GeoM.Scale(float64(op.dest.W/op.frame.W), float64(op.dest.H/op.frame.H))
			opts.GeoM.Translate(float64(op.dest.X), float64(op.dest.Y))
			screen.DrawImage(sprite, opts)
		}
	}
}
