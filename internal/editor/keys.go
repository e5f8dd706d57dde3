package editor

// Key is an editor command key, already mapped from the platform keyboard.
type Key int

const (
	KeyNone Key = iota
	KeyRotate
	KeyGrow
	KeyShrink
	KeyFlipH
	KeyFlipV
	KeyLayerUp   // ]
	KeyLayerDown // [
	KeyStepUp
	KeyStepDown
	KeyDelete
	KeyEscape
)

// Modifiers holds modifier key state.
type Modifiers struct {
	Shift bool
}

func (k Key) String() string {
	switch k {
	case KeyRotate:
		return "rotate"
	case KeyGrow:
		return "grow"
	case KeyShrink:
		return "shrink"
	case KeyFlipH:
		return "flip-h"
	case KeyFlipV:
		return "flip-v"
	case KeyLayerUp:
		return "layer-up"
	case KeyLayerDown:
		return "layer-down"
	case KeyStepUp:
		return "step-up"
	case KeyStepDown:
		return "step-down"
	case KeyDelete:
		return "delete"
	case KeyEscape:
		return "escape"
	default:
		return "none"
	}
}
