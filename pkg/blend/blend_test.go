package blend

import (
	"testing"

	"github.com/go-drift/motion/pkg/style"
)

func TestBlendEndpointsReproduceInputs(t *testing.T) {
	a := style.New()
	a.Opacity = 1
	a.Left = style.Px(10)
	a.Color = style.RGB(255, 0, 0)
	a.ZIndex, a.HasAutoZIndex = 3, false

	b := style.New()
	b.Opacity = 0
	b.Left = style.Px(50)
	b.Color = style.RGB(0, 0, 255)
	b.ZIndex, b.HasAutoZIndex = 7, false

	for _, p := range []style.Property{
		style.PropertyOpacity, style.PropertyLeft, style.PropertyColor, style.PropertyZIndex,
	} {
		dst := b.Clone()
		if !Blend(p, dst, a, b, 0) {
			t.Fatalf("%v should be animatable", p)
		}
		if !Equal(p, dst, a) {
			t.Errorf("%v at t=0 does not match the source style", p)
		}
		dst = a.Clone()
		Blend(p, dst, a, b, 1)
		if !Equal(p, dst, b) {
			t.Errorf("%v at t=1 does not match the destination style", p)
		}
	}
}

func TestBlendOpacityMidpoint(t *testing.T) {
	a, b := style.New(), style.New()
	a.Opacity, b.Opacity = 1, 0
	dst := style.New()
	Blend(style.PropertyOpacity, dst, a, b, 0.5)
	if dst.Opacity != 0.5 {
		t.Errorf("opacity midpoint = %v, want 0.5", dst.Opacity)
	}
}

func TestBlendColorChannels(t *testing.T) {
	a, b := style.New(), style.New()
	a.Color = style.RGB(0, 0, 0)
	b.Color = style.RGB(255, 0, 0)
	dst := style.New()
	Blend(style.PropertyColor, dst, a, b, 0.5)
	if got := dst.Color.Red(); got != 127 {
		t.Errorf("red channel at midpoint = %d, want 127", got)
	}
	if dst.Color.Alpha() != 255 {
		t.Errorf("alpha changed to %d during an opaque blend", dst.Color.Alpha())
	}
}

func TestUnknownPropertyIsNotAnimatable(t *testing.T) {
	a, b := style.New(), style.New()
	if Blend(style.PropertyInvalid, style.New(), a, b, 0.5) {
		t.Error("invalid property reported animatable")
	}
	if !Equal(style.PropertyInvalid, a, b) {
		t.Error("invalid property should always compare equal")
	}
}

func TestEqualAllCoversEveryWrapper(t *testing.T) {
	a, b := style.New(), style.New()
	if !Equal(style.PropertyAll, a, b) {
		t.Fatal("identical styles compare unequal under all")
	}
	b.LetterSpacing = 2
	if Equal(style.PropertyAll, a, b) {
		t.Fatal("letter-spacing difference not seen under all")
	}
}

func TestMaybeColorFallsBackToForeground(t *testing.T) {
	a, b := style.New(), style.New()
	a.Color = style.RGB(10, 10, 10)
	b.Color = style.RGB(10, 10, 10)

	// Neither side sets border-color, so both resolve to the foreground
	// and compare equal.
	if !Equal(style.PropertyBorderColor, a, b) {
		t.Fatal("unset border colors with matching foregrounds compare unequal")
	}

	b.BorderColor = style.SomeColor(style.RGB(200, 10, 10))
	if Equal(style.PropertyBorderColor, a, b) {
		t.Fatal("set border color should differ from the fallback")
	}

	dst := style.New()
	Blend(style.PropertyBorderColor, dst, a, b, 1)
	if !dst.BorderColor.Set || dst.BorderColor.Color != b.BorderColor.Color {
		t.Errorf("border color at t=1 = %+v, want the destination color", dst.BorderColor)
	}
}

func TestShadowFadesFromAbsent(t *testing.T) {
	a, b := style.New(), style.New()
	b.BoxShadow = &style.Shadow{X: 4, Y: 8, Blur: 2, Color: style.RGB(0, 0, 0)}

	dst := style.New()
	Blend(style.PropertyBoxShadow, dst, a, b, 0.5)
	if dst.BoxShadow == nil {
		t.Fatal("blending toward a shadow produced none")
	}
	if dst.BoxShadow.X != 2 || dst.BoxShadow.Y != 4 || dst.BoxShadow.Blur != 1 {
		t.Errorf("shadow geometry at midpoint = %+v, want 2/4/1", dst.BoxShadow)
	}
	if got := dst.BoxShadow.Color.Alpha(); got != 127 {
		t.Errorf("shadow alpha at midpoint = %d, want 127 (fading in from transparent)", got)
	}
}

func TestVisibilityStaysVisibleWhileMixed(t *testing.T) {
	a, b := style.New(), style.New()
	a.Visibility = style.VisibilityVisible
	b.Visibility = style.VisibilityHidden

	dst := style.New()
	Blend(style.PropertyVisibility, dst, a, b, 0.5)
	if dst.Visibility != style.VisibilityVisible {
		t.Errorf("visibility mid-fade = %v, want visible", dst.Visibility)
	}
	Blend(style.PropertyVisibility, dst, a, b, 1)
	if dst.Visibility != style.VisibilityHidden {
		t.Errorf("visibility at t=1 = %v, want hidden", dst.Visibility)
	}
}

func TestTransformPairwiseBlend(t *testing.T) {
	a, b := style.New(), style.New()
	a.Transform = style.Transform{style.Translate{X: style.Px(0), Y: style.Px(0)}}
	b.Transform = style.Transform{style.Translate{X: style.Px(100), Y: style.Px(0)}}

	dst := style.New()
	Blend(style.PropertyTransform, dst, a, b, 0.5)
	if len(dst.Transform) != 1 {
		t.Fatalf("blended transform has %d ops, want 1", len(dst.Transform))
	}
	tr, ok := dst.Transform[0].(style.Translate)
	if !ok {
		t.Fatalf("blended op is %T, want Translate", dst.Transform[0])
	}
	if tr.X.Value != 50 {
		t.Errorf("translate x at midpoint = %v, want 50", tr.X.Value)
	}
}

func TestTransformSurplusOpsFadeToIdentity(t *testing.T) {
	a, b := style.New(), style.New()
	a.Transform = style.Transform{
		style.Translate{X: style.Px(100), Y: style.Px(0)},
		style.Scale{X: 2, Y: 2},
	}
	b.Transform = style.Transform{
		style.Translate{X: style.Px(100), Y: style.Px(0)},
	}

	dst := style.New()
	Blend(style.PropertyTransform, dst, a, b, 1)
	if len(dst.Transform) != 2 {
		t.Fatalf("blended transform has %d ops, want 2", len(dst.Transform))
	}
	sc, ok := dst.Transform[1].(style.Scale)
	if !ok {
		t.Fatalf("surplus op is %T, want Scale", dst.Transform[1])
	}
	if sc.X != 1 || sc.Y != 1 {
		t.Errorf("surplus scale at t=1 = %v/%v, want identity 1/1", sc.X, sc.Y)
	}
}

func TestPropertiesEnumerationIsStable(t *testing.T) {
	first := Properties()
	second := Properties()
	if len(first) == 0 {
		t.Fatal("no registered properties")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("enumeration order changed between calls at %d", i)
		}
	}
	if Lookup(first[0]) == nil {
		t.Fatal("enumerated property has no wrapper")
	}
}
