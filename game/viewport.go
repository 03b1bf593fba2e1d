package game

import "math"

// Reference resolution the UI scale is measured against
const (
	ReferenceWidth  = 1920.0
	ReferenceHeight = 1080.0

	// MinWindowSide is the smallest window side the viewport will lay out for
	MinWindowSide = 160.0

	touchVerticalMaxWidth   = 480.0
	touchLandscapeMaxWidth  = 800.0
	touchLandscapeMaxHeight = 450.0
	touchLandscapeAsset     = 0.6
	minScaledFactor         = 0.5
)

// LayoutPolicy identifies which aspect-ratio rule produced a PlayField
type LayoutPolicy int

const (
	PolicyDesktop LayoutPolicy = iota
	PolicyTouchVertical
	PolicyTouchLandscape
)

func (p LayoutPolicy) String() string {
	switch p {
	case PolicyTouchVertical:
		return "touch-vertical"
	case PolicyTouchLandscape:
		return "touch-landscape"
	default:
		return "desktop"
	}
}

// PlayField is the logical play area derived from the window
type PlayField struct {
	Width, Height float64
	Vertical      bool
	Touch         bool
	UIScale       float64
	AssetScale    float64
	Policy        LayoutPolicy
}

// Recompute derives the play field for a window size and input capability.
// It has no side effects; calling it twice with the same arguments yields the same field.
func Recompute(windowWidth, windowHeight float64, touchCapable bool) PlayField {
	w := math.Max(windowWidth, MinWindowSide)
	h := math.Max(windowHeight, MinWindowSide)

	f := PlayField{
		Vertical: h > w,
		Touch:    touchCapable,
	}

	switch {
	case touchCapable && f.Vertical:
		const aspect = 9.0 / 16.0
		f.Policy = PolicyTouchVertical
		f.Width = math.Min(touchVerticalMaxWidth, w)
		f.Height = f.Width / aspect
		if f.Height > h {
			f.Height = h
			f.Width = f.Height * aspect
		}
		f.AssetScale = clamp(f.Width/touchVerticalMaxWidth, 0.8, 1.5)
		f.UIScale = f.Width / ReferenceWidth

	case touchCapable:
		f.Policy = PolicyTouchLandscape
		f.Width = math.Min(touchLandscapeMaxWidth, w)
		f.Height = math.Min(touchLandscapeMaxHeight, h)
		f.AssetScale = touchLandscapeAsset
		f.UIScale = f.Width / ReferenceWidth

	default:
		const aspect = ReferenceWidth / ReferenceHeight
		f.Policy = PolicyDesktop
		if w/h > aspect {
			f.Height = math.Min(ReferenceHeight, h)
			f.Width = f.Height * aspect
		} else {
			f.Width = math.Min(ReferenceWidth, w)
			f.Height = f.Width / aspect
		}
		f.AssetScale = 1
		f.UIScale = math.Min(f.Width/ReferenceWidth, f.Height/ReferenceHeight)
	}

	return f
}

// Scaled converts a reference-resolution size, speed or margin to this field.
// The result never drops below half of base.
func (f PlayField) Scaled(base float64) float64 {
	return math.Max(base*f.UIScale, base*minScaledFactor)
}

// AssetScaled converts sprite geometry to this field
func (f PlayField) AssetScaled(base float64) float64 {
	return base * f.AssetScale
}

// Center returns the middle of the field
func (f PlayField) Center() Vec2 {
	return Vec2{X: f.Width / 2, Y: f.Height / 2}
}

// LongAxis is the height for vertical fields and the width otherwise
func (f PlayField) LongAxis() float64 {
	if f.Vertical {
		return f.Height
	}
	return f.Width
}

// byOrientation picks the vertical or landscape variant of a constant
func (f PlayField) byOrientation(vertical, landscape float64) float64 {
	if f.Vertical {
		return vertical
	}
	return landscape
}

// Contains reports whether p lies inside the field grown by margin on every side
func (f PlayField) Contains(p Vec2, margin float64) bool {
	return p.X >= -margin && p.X <= f.Width+margin &&
		p.Y >= -margin && p.Y <= f.Height+margin
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
