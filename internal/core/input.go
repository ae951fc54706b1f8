package core

// Action represents a semantic player action, abstracted from physical input.
// Backends map keys (or a rotary encoder) to actions and hand them to the game.
type Action int

const (
	ActionNone  Action = iota
	ActionLeft         // knob turned left / left arrow
	ActionRight        // knob turned right / right arrow
	ActionClick        // knob pressed / enter / space
	ActionQuit         // q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionClick:
		return "Click"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
