package blend

import "github.com/go-drift/motion/pkg/style"

// floatWrapper covers plain numeric properties.
type floatWrapper struct {
	prop style.Property
	get  func(*style.Style) float64
	set  func(*style.Style, float64)
}

func (w floatWrapper) Property() style.Property { return w.prop }

func (w floatWrapper) Equal(a, b *style.Style) bool { return w.get(a) == w.get(b) }

func (w floatWrapper) Blend(dst, a, b *style.Style, t float64) {
	w.set(dst, lerp(w.get(a), w.get(b), t))
}

// intWrapper covers integer properties, truncating like CSS integer
// interpolation.
type intWrapper struct {
	prop style.Property
	get  func(*style.Style) int
	set  func(*style.Style, int)
}

func (w intWrapper) Property() style.Property { return w.prop }

func (w intWrapper) Equal(a, b *style.Style) bool { return w.get(a) == w.get(b) }

func (w intWrapper) Blend(dst, a, b *style.Style, t float64) {
	from, to := w.get(a), w.get(b)
	w.set(dst, from+int(float64(to-from)*t))
}

// lengthWrapper covers unit-tagged lengths.
type lengthWrapper struct {
	prop style.Property
	get  func(*style.Style) style.Length
	set  func(*style.Style, style.Length)
}

func (w lengthWrapper) Property() style.Property { return w.prop }

func (w lengthWrapper) Equal(a, b *style.Style) bool { return w.get(a) == w.get(b) }

func (w lengthWrapper) Blend(dst, a, b *style.Style, t float64) {
	w.set(dst, w.get(b).Blend(w.get(a), t))
}

// sizeWrapper covers length pairs (border radii), component-wise.
type sizeWrapper struct {
	prop style.Property
	get  func(*style.Style) style.Size
	set  func(*style.Style, style.Size)
}

func (w sizeWrapper) Property() style.Property { return w.prop }

func (w sizeWrapper) Equal(a, b *style.Style) bool { return w.get(a) == w.get(b) }

func (w sizeWrapper) Blend(dst, a, b *style.Style, t float64) {
	from, to := w.get(a), w.get(b)
	w.set(dst, style.Size{
		Width:  to.Width.Blend(from.Width, t),
		Height: to.Height.Blend(from.Height, t),
	})
}

// colorWrapper covers always-set colors, blended component-wise in the
// color's native channel space, alpha included.
type colorWrapper struct {
	prop style.Property
	get  func(*style.Style) style.Color
	set  func(*style.Style, style.Color)
}

func (w colorWrapper) Property() style.Property { return w.prop }

func (w colorWrapper) Equal(a, b *style.Style) bool { return w.get(a) == w.get(b) }

func (w colorWrapper) Blend(dst, a, b *style.Style, t float64) {
	w.set(dst, blendColor(w.get(a), w.get(b), t))
}

// maybeColorWrapper covers colors that may be unset, falling back to the
// style's foreground color on either side.
type maybeColorWrapper struct {
	prop style.Property
	get  func(*style.Style) style.MaybeColor
	set  func(*style.Style, style.MaybeColor)
}

func (w maybeColorWrapper) Property() style.Property { return w.prop }

func (w maybeColorWrapper) Equal(a, b *style.Style) bool {
	return w.get(a).Or(a.Color) == w.get(b).Or(b.Color)
}

func (w maybeColorWrapper) Blend(dst, a, b *style.Style, t float64) {
	from := w.get(a).Or(a.Color)
	to := w.get(b).Or(b.Color)
	w.set(dst, style.SomeColor(blendColor(from, to, t)))
}

// shadowWrapper covers optional shadows.
type shadowWrapper struct {
	prop style.Property
	get  func(*style.Style) *style.Shadow
	set  func(*style.Style, *style.Shadow)
}

func (w shadowWrapper) Property() style.Property { return w.prop }

func (w shadowWrapper) Equal(a, b *style.Style) bool { return w.get(a).Equal(w.get(b)) }

func (w shadowWrapper) Blend(dst, a, b *style.Style, t float64) {
	w.set(dst, blendShadow(w.get(a), w.get(b), t))
}

// transformWrapper covers the transform operation list.
type transformWrapper struct{}

func (transformWrapper) Property() style.Property { return style.PropertyTransform }

func (transformWrapper) Equal(a, b *style.Style) bool { return a.Transform.Equal(b.Transform) }

func (transformWrapper) Blend(dst, a, b *style.Style, t float64) {
	dst.Transform = style.BlendTransforms(a.Transform, b.Transform, t)
}

// visibilityWrapper covers the discrete visibility keyword.
type visibilityWrapper struct{}

func (visibilityWrapper) Property() style.Property { return style.PropertyVisibility }

func (visibilityWrapper) Equal(a, b *style.Style) bool { return a.Visibility == b.Visibility }

func (visibilityWrapper) Blend(dst, a, b *style.Style, t float64) {
	dst.Visibility = blendVisibility(a.Visibility, b.Visibility, t)
}

func buildWrappers() []Wrapper {
	return []Wrapper{
		lengthWrapper{style.PropertyLeft,
			func(s *style.Style) style.Length { return s.Left },
			func(s *style.Style, v style.Length) { s.Left = v }},
		lengthWrapper{style.PropertyTop,
			func(s *style.Style) style.Length { return s.Top },
			func(s *style.Style, v style.Length) { s.Top = v }},
		lengthWrapper{style.PropertyRight,
			func(s *style.Style) style.Length { return s.Right },
			func(s *style.Style, v style.Length) { s.Right = v }},
		lengthWrapper{style.PropertyBottom,
			func(s *style.Style) style.Length { return s.Bottom },
			func(s *style.Style, v style.Length) { s.Bottom = v }},
		lengthWrapper{style.PropertyWidth,
			func(s *style.Style) style.Length { return s.Width },
			func(s *style.Style, v style.Length) { s.Width = v }},
		lengthWrapper{style.PropertyHeight,
			func(s *style.Style) style.Length { return s.Height },
			func(s *style.Style, v style.Length) { s.Height = v }},
		floatWrapper{style.PropertyOpacity,
			func(s *style.Style) float64 { return s.Opacity },
			func(s *style.Style, v float64) { s.Opacity = v }},
		colorWrapper{style.PropertyColor,
			func(s *style.Style) style.Color { return s.Color },
			func(s *style.Style, v style.Color) { s.Color = v }},
		colorWrapper{style.PropertyBackgroundColor,
			func(s *style.Style) style.Color { return s.BackgroundColor },
			func(s *style.Style, v style.Color) { s.BackgroundColor = v }},
		maybeColorWrapper{style.PropertyBorderColor,
			func(s *style.Style) style.MaybeColor { return s.BorderColor },
			func(s *style.Style, v style.MaybeColor) { s.BorderColor = v }},
		maybeColorWrapper{style.PropertyOutlineColor,
			func(s *style.Style) style.MaybeColor { return s.OutlineColor },
			func(s *style.Style, v style.MaybeColor) { s.OutlineColor = v }},
		floatWrapper{style.PropertyFontSize,
			func(s *style.Style) float64 { return s.FontSize },
			func(s *style.Style, v float64) { s.FontSize = v }},
		intWrapper{style.PropertyZIndex,
			func(s *style.Style) int { return s.ZIndex },
			func(s *style.Style, v int) { s.ZIndex = v }},
		floatWrapper{style.PropertyLetterSpacing,
			func(s *style.Style) float64 { return s.LetterSpacing },
			func(s *style.Style, v float64) { s.LetterSpacing = v }},
		floatWrapper{style.PropertyWordSpacing,
			func(s *style.Style) float64 { return s.WordSpacing },
			func(s *style.Style, v float64) { s.WordSpacing = v }},
		sizeWrapper{style.PropertyBorderTopLeftRadius,
			func(s *style.Style) style.Size { return s.BorderTopLeftRadius },
			func(s *style.Style, v style.Size) { s.BorderTopLeftRadius = v }},
		sizeWrapper{style.PropertyBorderTopRightRadius,
			func(s *style.Style) style.Size { return s.BorderTopRightRadius },
			func(s *style.Style, v style.Size) { s.BorderTopRightRadius = v }},
		visibilityWrapper{},
		transformWrapper{},
		shadowWrapper{style.PropertyBoxShadow,
			func(s *style.Style) *style.Shadow { return s.BoxShadow },
			func(s *style.Style, v *style.Shadow) { s.BoxShadow = v }},
		shadowWrapper{style.PropertyTextShadow,
			func(s *style.Style) *style.Shadow { return s.TextShadow },
			func(s *style.Style, v *style.Shadow) { s.TextShadow = v }},
	}
}
