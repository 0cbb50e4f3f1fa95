package types

// AssignmentMode selects how a newly created light is bound to cameras.
type AssignmentMode int

const (
	// ModeScene binds the light to every camera (global light).
	ModeScene AssignmentMode = iota

	// ModeCamera binds the light to the active camera only.
	ModeCamera
)

// String returns the string representation of the mode.
func (m AssignmentMode) String() string {
	switch m {
	case ModeScene:
		return "SCENE"
	case ModeCamera:
		return "CAMERA"
	default:
		return "Unknown"
	}
}
