package animation

import (
	"fmt"
	"time"

	"github.com/go-drift/motion/pkg/style"
)

// EventType names the animation lifecycle events the engine can request from
// the host's event-dispatch system.
type EventType int

const (
	EventTransitionEnd EventType = iota
	EventAnimationStart
	EventAnimationIteration
	EventAnimationEnd
)

// String returns the DOM event name.
func (e EventType) String() string {
	switch e {
	case EventTransitionEnd:
		return "transitionend"
	case EventAnimationStart:
		return "animationstart"
	case EventAnimationIteration:
		return "animationiteration"
	case EventAnimationEnd:
		return "animationend"
	default:
		return fmt.Sprintf("EventType(%d)", int(e))
	}
}

// Event is one lifecycle event request. Transition events carry the property;
// animation events carry the declared animation name.
type Event struct {
	Target   Target
	Type     EventType
	Name     string
	Property style.Property
	Elapsed  time.Duration
}

// Target is one animated render object, as seen by the engine. The engine
// holds targets only as map keys and for the callbacks below; it never
// assumes anything about the rendering tree behind them.
type Target interface {
	// Document returns the target's owning document.
	Document() Document
	// Style returns the target's committed style, or nil before the first
	// style resolution.
	Style() *style.Style
	// MarkStyleDirty schedules a style recompute for this target. The next
	// Document.UpdateStyles pass must call Controller.UpdateAnimations for
	// every dirty target.
	MarkStyleDirty()
}

// Document is the per-document host surface: one style recomputation pass,
// listener presence checks, and event delivery.
type Document interface {
	// UpdateStyles runs one style recomputation pass over dirty targets.
	UpdateStyles()
	// HasListener reports whether anything listens for the event type.
	// Events without listeners are not dispatched at all.
	HasListener(EventType) bool
	// DispatchEvent delivers an event to the scripting side. Dispatch may
	// destroy render targets; the engine never touches an animation after
	// handing its end event over.
	DispatchEvent(Event)
}

// Starter is an optional Target capability for hosts that run animations
// out-of-band (a compositor, for example). StartAnimation returns true when
// the host has taken the animation and will confirm the actual start time
// later through Controller.SetAnimationStartTime or SetTransitionStartTime;
// returning false makes the engine assume the start happened now. Transitions
// identify themselves by property, keyframe animations by name.
type Starter interface {
	StartAnimation(property style.Property, name string, elapsed time.Duration) bool
	EndAnimation(property style.Property, name string)
}
