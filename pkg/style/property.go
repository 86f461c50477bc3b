package style

import "fmt"

// Property identifies one animatable style property.
//
// The set of properties mirrors what the blend registry knows how to
// interpolate. PropertyAll is a declaration-only sentinel used by
// transition declarations; live animations always track a concrete property.
type Property int

const (
	// PropertyInvalid is the zero value and never names a real property.
	PropertyInvalid Property = iota
	PropertyLeft
	PropertyTop
	PropertyRight
	PropertyBottom
	PropertyWidth
	PropertyHeight
	PropertyOpacity
	PropertyColor
	PropertyBackgroundColor
	PropertyBorderColor
	PropertyOutlineColor
	PropertyFontSize
	PropertyZIndex
	PropertyLetterSpacing
	PropertyWordSpacing
	PropertyBorderTopLeftRadius
	PropertyBorderTopRightRadius
	PropertyVisibility
	PropertyTransform
	PropertyBoxShadow
	PropertyTextShadow
)

// PropertyAll stands for "every animatable property" in a transition
// declaration. It is expanded into concrete properties by the blend registry.
const PropertyAll Property = -1

var propertyNames = map[Property]string{
	PropertyLeft:                 "left",
	PropertyTop:                  "top",
	PropertyRight:                "right",
	PropertyBottom:               "bottom",
	PropertyWidth:                "width",
	PropertyHeight:               "height",
	PropertyOpacity:              "opacity",
	PropertyColor:                "color",
	PropertyBackgroundColor:      "background-color",
	PropertyBorderColor:          "border-color",
	PropertyOutlineColor:         "outline-color",
	PropertyFontSize:             "font-size",
	PropertyZIndex:               "z-index",
	PropertyLetterSpacing:        "letter-spacing",
	PropertyWordSpacing:          "word-spacing",
	PropertyBorderTopLeftRadius:  "border-top-left-radius",
	PropertyBorderTopRightRadius: "border-top-right-radius",
	PropertyVisibility:           "visibility",
	PropertyTransform:            "transform",
	PropertyBoxShadow:            "box-shadow",
	PropertyTextShadow:           "text-shadow",
}

// String returns the CSS name of the property.
func (p Property) String() string {
	if p == PropertyAll {
		return "all"
	}
	if name, ok := propertyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Property(%d)", int(p))
}

// ParseProperty resolves a CSS property name. It accepts "all" and returns
// PropertyInvalid with ok=false for names the engine cannot animate.
func ParseProperty(name string) (Property, bool) {
	if name == "all" {
		return PropertyAll, true
	}
	for p, n := range propertyNames {
		if n == name {
			return p, true
		}
	}
	return PropertyInvalid, false
}
