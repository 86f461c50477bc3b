package style

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// ParseError reports a declaration document that could not be decoded.
type ParseError struct {
	// Section is the document section that failed ("transitions",
	// "animations" or "keyframes").
	Section string
	// Name identifies the failing entry where one exists.
	Name string
	// Err is the underlying error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("style: %s %q: %v", e.Section, e.Name, e.Err)
	}
	return fmt.Sprintf("style: %s: %v", e.Section, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DeclarationSet is the result of parsing a declaration document: the
// transition and animation declarations ready to attach to a style.
type DeclarationSet struct {
	Transitions []*Declaration
	Animations  []*Declaration
}

// Attach sets the declarations on a style.
func (ds *DeclarationSet) Attach(s *Style) {
	s.Transitions = ds.Transitions
	s.Animations = ds.Animations
}

type declDoc struct {
	Transitions []transitionDoc       `yaml:"transitions"`
	Animations  []animationDoc        `yaml:"animations"`
	Keyframes   map[string][]frameDoc `yaml:"keyframes"`
}

type transitionDoc struct {
	Property string    `yaml:"property"`
	Duration string    `yaml:"duration"`
	Delay    string    `yaml:"delay"`
	Timing   string    `yaml:"timing"`
	Bezier   []float64 `yaml:"bezier"`
}

type animationDoc struct {
	Name       string    `yaml:"name"`
	Duration   string    `yaml:"duration"`
	Delay      string    `yaml:"delay"`
	Iterations yaml.Node `yaml:"iterations"`
	Direction  string    `yaml:"direction"`
	PlayState  string    `yaml:"play-state"`
	Timing     string    `yaml:"timing"`
	Bezier     []float64 `yaml:"bezier"`
	Keyframes  string    `yaml:"keyframes"`
}

type frameDoc struct {
	Key float64 `yaml:"key"`

	Left            *string  `yaml:"left"`
	Top             *string  `yaml:"top"`
	Right           *string  `yaml:"right"`
	Bottom          *string  `yaml:"bottom"`
	Width           *string  `yaml:"width"`
	Height          *string  `yaml:"height"`
	Opacity         *float64 `yaml:"opacity"`
	Color           *string  `yaml:"color"`
	BackgroundColor *string  `yaml:"background-color"`
	FontSize        *float64 `yaml:"font-size"`
	ZIndex          *int     `yaml:"z-index"`
	LetterSpacing   *float64 `yaml:"letter-spacing"`
	WordSpacing     *float64 `yaml:"word-spacing"`
	Visibility      *string  `yaml:"visibility"`
}

// ParseDeclarations decodes a YAML declaration document into transition and
// animation declarations. Durations use Go duration notation ("300ms"),
// timing functions are CSS keywords or an explicit bezier 4-tuple, and colors
// are hex values or SVG 1.1 names.
func ParseDeclarations(data []byte) (*DeclarationSet, error) {
	var doc declDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Section: "document", Err: err}
	}

	set := &DeclarationSet{}

	for _, td := range doc.Transitions {
		prop, ok := ParseProperty(td.Property)
		if !ok {
			return nil, &ParseError{Section: "transitions", Name: td.Property,
				Err: fmt.Errorf("unknown property %q", td.Property)}
		}
		d := &Declaration{Property: prop, IterationCount: 1}
		if err := fillTiming(&d.Timing, td.Timing, td.Bezier); err != nil {
			return nil, &ParseError{Section: "transitions", Name: td.Property, Err: err}
		}
		var err error
		if d.Duration, err = parseDuration(td.Duration); err != nil {
			return nil, &ParseError{Section: "transitions", Name: td.Property, Err: err}
		}
		if d.Delay, err = parseDuration(td.Delay); err != nil {
			return nil, &ParseError{Section: "transitions", Name: td.Property, Err: err}
		}
		set.Transitions = append(set.Transitions, d)
	}

	for _, ad := range doc.Animations {
		if ad.Name == "" {
			return nil, &ParseError{Section: "animations", Err: fmt.Errorf("animation needs a name")}
		}
		d := &Declaration{Name: ad.Name, IterationCount: 1}
		if err := fillTiming(&d.Timing, ad.Timing, ad.Bezier); err != nil {
			return nil, &ParseError{Section: "animations", Name: ad.Name, Err: err}
		}
		var err error
		if d.Duration, err = parseDuration(ad.Duration); err != nil {
			return nil, &ParseError{Section: "animations", Name: ad.Name, Err: err}
		}
		if d.Delay, err = parseDuration(ad.Delay); err != nil {
			return nil, &ParseError{Section: "animations", Name: ad.Name, Err: err}
		}
		if d.IterationCount, err = parseIterations(ad.Iterations); err != nil {
			return nil, &ParseError{Section: "animations", Name: ad.Name, Err: err}
		}
		switch ad.Direction {
		case "", "normal":
		case "alternate":
			d.Direction = DirectionAlternate
		default:
			return nil, &ParseError{Section: "animations", Name: ad.Name,
				Err: fmt.Errorf("unknown direction %q", ad.Direction)}
		}
		switch ad.PlayState {
		case "", "running":
		case "paused":
			d.PlayState = PlayPaused
		default:
			return nil, &ParseError{Section: "animations", Name: ad.Name,
				Err: fmt.Errorf("unknown play state %q", ad.PlayState)}
		}

		framesName := ad.Keyframes
		if framesName == "" {
			framesName = ad.Name
		}
		frames, ok := doc.Keyframes[framesName]
		if !ok {
			return nil, &ParseError{Section: "animations", Name: ad.Name,
				Err: fmt.Errorf("keyframes %q not defined", framesName)}
		}
		if d.Keyframes, err = buildKeyframeList(frames); err != nil {
			return nil, &ParseError{Section: "keyframes", Name: framesName, Err: err}
		}
		set.Animations = append(set.Animations, d)
	}

	return set, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func parseIterations(node yaml.Node) (int, error) {
	if node.IsZero() {
		return 1, nil
	}
	var s string
	if err := node.Decode(&s); err == nil && s == "infinite" {
		return IterationInfinite, nil
	}
	var n int
	if err := node.Decode(&n); err != nil {
		return 0, fmt.Errorf("iterations must be an integer or \"infinite\"")
	}
	if n < 0 {
		return 0, fmt.Errorf("iterations must not be negative")
	}
	return n, nil
}

func fillTiming(dst *TimingFunction, keyword string, bezier []float64) error {
	if len(bezier) > 0 {
		if len(bezier) != 4 {
			return fmt.Errorf("bezier needs exactly 4 control values")
		}
		*dst = Bezier(bezier[0], bezier[1], bezier[2], bezier[3])
		return nil
	}
	tf, ok := ParseTimingFunction(keyword)
	if !ok {
		return fmt.Errorf("unknown timing function %q", keyword)
	}
	*dst = tf
	return nil
}

func buildKeyframeList(frames []frameDoc) (*KeyframeList, error) {
	list := &KeyframeList{}
	props := map[Property]bool{}
	lastKey := 0.0
	for i, fd := range frames {
		if fd.Key < 0 || fd.Key > 1 {
			return nil, fmt.Errorf("frame %d: key %v outside [0, 1]", i, fd.Key)
		}
		if fd.Key < lastKey {
			return nil, fmt.Errorf("frame %d: keys must be non-decreasing", i)
		}
		lastKey = fd.Key

		s := New()
		if err := applyFrame(s, fd, props); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		list.Frames = append(list.Frames, Keyframe{Key: fd.Key, Style: s})
	}
	for p := range props {
		list.Properties = append(list.Properties, p)
	}
	sort.Slice(list.Properties, func(i, j int) bool {
		return list.Properties[i] < list.Properties[j]
	})
	return list, nil
}

func applyFrame(s *Style, fd frameDoc, props map[Property]bool) error {
	setLength := func(p Property, dst *Length, v *string) error {
		if v == nil {
			return nil
		}
		l, err := ParseLength(*v)
		if err != nil {
			return err
		}
		*dst = l
		props[p] = true
		return nil
	}
	if err := setLength(PropertyLeft, &s.Left, fd.Left); err != nil {
		return err
	}
	if err := setLength(PropertyTop, &s.Top, fd.Top); err != nil {
		return err
	}
	if err := setLength(PropertyRight, &s.Right, fd.Right); err != nil {
		return err
	}
	if err := setLength(PropertyBottom, &s.Bottom, fd.Bottom); err != nil {
		return err
	}
	if err := setLength(PropertyWidth, &s.Width, fd.Width); err != nil {
		return err
	}
	if err := setLength(PropertyHeight, &s.Height, fd.Height); err != nil {
		return err
	}
	if fd.Opacity != nil {
		s.Opacity = *fd.Opacity
		props[PropertyOpacity] = true
	}
	if fd.Color != nil {
		c, err := ParseColor(*fd.Color)
		if err != nil {
			return err
		}
		s.Color = c
		props[PropertyColor] = true
	}
	if fd.BackgroundColor != nil {
		c, err := ParseColor(*fd.BackgroundColor)
		if err != nil {
			return err
		}
		s.BackgroundColor = c
		props[PropertyBackgroundColor] = true
	}
	if fd.FontSize != nil {
		s.FontSize = *fd.FontSize
		props[PropertyFontSize] = true
	}
	if fd.ZIndex != nil {
		s.ZIndex = *fd.ZIndex
		s.HasAutoZIndex = false
		props[PropertyZIndex] = true
	}
	if fd.LetterSpacing != nil {
		s.LetterSpacing = *fd.LetterSpacing
		props[PropertyLetterSpacing] = true
	}
	if fd.WordSpacing != nil {
		s.WordSpacing = *fd.WordSpacing
		props[PropertyWordSpacing] = true
	}
	if fd.Visibility != nil {
		v, ok := ParseVisibility(*fd.Visibility)
		if !ok {
			return fmt.Errorf("unknown visibility %q", *fd.Visibility)
		}
		s.Visibility = v
		props[PropertyVisibility] = true
	}
	return nil
}
