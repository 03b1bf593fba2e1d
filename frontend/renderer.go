package frontend

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"wavesurvivor/game"
)

// spriteDraw is one PlaceSprite call buffered for the next Draw
type spriteDraw struct {
	id       game.SpriteID
	pos      game.Vec2
	rotation float64
	scale    float64
	alpha    float64
	tint     game.Tint
}

// label is the latest state of a text
type label struct {
	text    string
	visible bool
}

// Renderer implements game.Renderer on ebiten. Sprites are buffered per
// frame and flushed by Draw; labels keep their last text and visibility.
type Renderer struct {
	sprites *Sprites
	face    *text.GoXFace

	frame  []spriteDraw
	labels map[game.TextID]*label
}

// NewRenderer creates a renderer that draws with sprites. A nil sprites
// skips sprite drawing, which is what tests use.
func NewRenderer(sprites *Sprites) *Renderer {
	return &Renderer{
		sprites: sprites,
		face:    text.NewGoXFace(basicfont.Face7x13),
		frame:   make([]spriteDraw, 0, 64),
		labels:  make(map[game.TextID]*label, 6),
	}
}

// PlaceSprite implements game.Renderer
func (r *Renderer) PlaceSprite(id game.SpriteID, x, y, rotation, scale, alpha float64, tint game.Tint) {
	r.frame = append(r.frame, spriteDraw{
		id:       id,
		pos:      game.Vec2{X: x, Y: y},
		rotation: rotation,
		scale:    scale,
		alpha:    alpha,
		tint:     tint,
	})
}

// SetText implements game.Renderer
func (r *Renderer) SetText(id game.TextID, s string) {
	r.label(id).text = s
}

// SetVisible implements game.Renderer
func (r *Renderer) SetVisible(id game.TextID, visible bool) {
	r.label(id).visible = visible
}

func (r *Renderer) label(id game.TextID) *label {
	l, ok := r.labels[id]
	if !ok {
		l = &label{visible: true}
		r.labels[id] = l
	}
	return l
}

// Text returns a label's text and whether it is shown
func (r *Renderer) Text(id game.TextID) (string, bool) {
	l, ok := r.labels[id]
	if !ok {
		return "", false
	}
	return l.text, l.visible && l.text != ""
}

// LabelRect returns the on-field bounds of a shown label, or an empty Rect
func (r *Renderer) LabelRect(id game.TextID, f game.PlayField) Rect {
	s, shown := r.Text(id)
	if !shown {
		return Rect{}
	}
	return labelBounds(r.face, s, hudLayout(f)[id])
}

// Pending returns the number of sprites buffered for the next Draw
func (r *Renderer) Pending() int {
	return len(r.frame)
}

// Draw flushes the buffered sprites and every visible label onto dst,
// offset by origin
func (r *Renderer) Draw(dst *ebiten.Image, origin game.Vec2, f game.PlayField) {
	if r.sprites != nil {
		for _, d := range r.frame {
			r.drawSprite(dst, origin, d)
		}
	}
	r.frame = r.frame[:0]

	layout := hudLayout(f)
	for _, id := range []game.TextID{game.TextScore, game.TextHealth, game.TextWave, game.TextPause, game.TextGameOver, game.TextRestart} {
		s, shown := r.Text(id)
		if !shown {
			continue
		}
		r.drawLabel(dst, origin, s, layout[id])
	}
}

func (r *Renderer) drawSprite(dst *ebiten.Image, origin game.Vec2, d spriteDraw) {
	img := r.sprites.Image(d.id.Kind)
	if img == nil {
		return
	}
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(d.scale, d.scale)
	op.GeoM.Rotate(d.rotation)
	op.GeoM.Translate(origin.X+d.pos.X, origin.Y+d.pos.Y)

	cr, cg, cb := d.tint.RGB()
	op.ColorScale.Scale(float32(cr), float32(cg), float32(cb), 1)
	op.ColorScale.ScaleAlpha(float32(d.alpha))
	op.Filter = ebiten.FilterLinear

	dst.DrawImage(img, op)
}

// drawLabel draws s with a black outline made of offset copies
func (r *Renderer) drawLabel(dst *ebiten.Image, origin game.Vec2, s string, style labelStyle) {
	scale := style.Size / baseFontSize
	x := origin.X + style.Pos.X
	y := origin.Y + style.Pos.Y

	draw := func(dx, dy float64, clr color.Color) {
		op := &text.DrawOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x+dx, y+dy)
		op.PrimaryAlign = style.Align
		op.SecondaryAlign = style.VAlign
		op.LineSpacing = baseFontSize + 2
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(dst, s, r.face, op)
	}

	o := style.Outline * scale / 2
	if o > 0 {
		for _, off := range [][2]float64{{-o, 0}, {o, 0}, {0, -o}, {0, o}} {
			draw(off[0], off[1], color.Black)
		}
	}
	draw(0, 0, style.Color)
}
