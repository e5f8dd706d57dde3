// Package input turns SDL2 events into editor pointer and key events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/decal-studio/internal/editor"
)

// EventType identifies a translated event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventKey
	EventWheel
	EventDrop
	EventOpen
	EventScreenshot
)

// Event is one translated input event.
type Event struct {
	Type    EventType
	Pointer editor.Pointer
	Button  uint8
	Key     editor.Key
	Mods    editor.Modifiers
	Width   int
	Height  int
	Wheel   float32
	File    string
}

// Input polls SDL and keeps the viewport size for pixel to NDC conversion.
type Input struct {
	events []Event
	width  int
	height int
}

// New creates an input handler for a viewport of the given size.
func New(width, height int) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		width:  width,
		height: height,
	}
}

// Update polls pending SDL events. It returns true when the user asked to quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.width, i.height = int(e.Data1), int(e.Data2)
				i.events = append(i.events, Event{Type: EventResize, Width: i.width, Height: i.height})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			switch e.Keysym.Sym {
			case sdl.K_o:
				i.events = append(i.events, Event{Type: EventOpen})
				continue
			case sdl.K_F12:
				i.events = append(i.events, Event{Type: EventScreenshot})
				continue
			}
			k := KeyFor(e.Keysym.Sym)
			if k == editor.KeyNone {
				continue
			}
			mods := editor.Modifiers{Shift: e.Keysym.Mod&uint16(sdl.KMOD_SHIFT) != 0}
			i.events = append(i.events, Event{Type: EventKey, Key: k, Mods: mods})

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{Type: EventPointerMove, Pointer: i.pointer(e.X, e.Y)})

		case *sdl.MouseButtonEvent:
			typ := EventPointerUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				typ = EventPointerDown
			}
			i.events = append(i.events, Event{Type: typ, Pointer: i.pointer(e.X, e.Y), Button: e.Button})

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{Type: EventWheel, Wheel: float32(e.Y)})

		case *sdl.DropEvent:
			if e.Type == sdl.DROPFILE {
				i.events = append(i.events, Event{Type: EventDrop, File: e.File})
			}
		}
	}
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

func (i *Input) pointer(x, y int32) editor.Pointer {
	return editor.PointerAt(float32(x), float32(y), float32(i.width), float32(i.height))
}

// KeyFor maps a keyboard symbol to an editor command key.
func KeyFor(sym sdl.Keycode) editor.Key {
	switch sym {
	case sdl.K_r:
		return editor.KeyRotate
	case sdl.K_EQUALS, sdl.K_PLUS, sdl.K_KP_PLUS:
		return editor.KeyGrow
	case sdl.K_MINUS, sdl.K_KP_MINUS:
		return editor.KeyShrink
	case sdl.K_h:
		return editor.KeyFlipH
	case sdl.K_v:
		return editor.KeyFlipV
	case sdl.K_RIGHTBRACKET:
		return editor.KeyLayerUp
	case sdl.K_LEFTBRACKET:
		return editor.KeyLayerDown
	case sdl.K_PAGEUP:
		return editor.KeyStepUp
	case sdl.K_PAGEDOWN:
		return editor.KeyStepDown
	case sdl.K_DELETE, sdl.K_BACKSPACE:
		return editor.KeyDelete
	case sdl.K_ESCAPE:
		return editor.KeyEscape
	default:
		return editor.KeyNone
	}
}
