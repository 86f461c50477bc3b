// Package animation runs declarative style transitions and keyframe
// animations against host-provided render targets.
//
// The engine is cooperative and single-threaded. The host resolves styles,
// routes every freshly computed style through Controller.UpdateAnimations,
// announces finished passes with Controller.StyleAvailable, and pumps
// Controller.Step from its event loop. In return the engine hands back
// blended styles and asks for recomputes (through Target.MarkStyleDirty and
// Document.UpdateStyles) whenever animations need them.
package animation
