package core

// Action represents a semantic player action, abstracted from physical key
// presses so sessions work with intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Shift tiles left
	ActionRight          // Shift tiles right
	ActionUp             // Shift tiles up
	ActionDown           // Shift tiles down
	ActionUndo           // Revert the last move
	ActionRestart        // Start a new board
	ActionSave           // Store the session in a save slot
	ActionBack           // Leave the current screen
	ActionConfirm        // Confirm a selection
	ActionQuit           // Exit the program
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
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionUndo:
		return "Undo"
	case ActionRestart:
		return "Restart"
	case ActionSave:
		return "Save"
	case ActionBack:
		return "Back"
	case ActionConfirm:
		return "Confirm"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsShift reports whether the action moves tiles.
func (a Action) IsShift() bool {
	return a >= ActionLeft && a <= ActionDown
}
