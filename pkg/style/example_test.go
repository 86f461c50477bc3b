package style_test

import (
	"fmt"

	"github.com/go-drift/motion/pkg/style"
)

// This example parses a declaration document and attaches the result to a
// style, the way a host would load animation definitions from configuration.
func ExampleParseDeclarations() {
	doc := []byte(`
transitions:
  - property: opacity
    duration: 300ms
    timing: ease-out

animations:
  - name: pulse
    duration: 2s
    iterations: infinite
    direction: alternate

keyframes:
  pulse:
    - key: 0
      opacity: 0.2
    - key: 1
      opacity: 1
`)

	set, err := style.ParseDeclarations(doc)
	if err != nil {
		fmt.Println("parse failed:", err)
		return
	}

	s := style.New()
	set.Attach(s)

	for _, d := range s.Transitions {
		fmt.Println(d)
	}
	for _, d := range s.Animations {
		fmt.Println(d, "frames:", len(d.Keyframes.Frames))
	}

	// Output:
	// transition opacity 300ms
	// animation "pulse" 2s frames: 2
}
