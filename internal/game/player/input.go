package player

// Input is the raw per-tick input snapshot forwarded by the platform layer.
// The simulation never reads input devices itself; the collaborator that owns
// pointer lock and key state assembles one of these each frame.
type Input struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Sprint  bool
	Jump    bool
	// Yaw is the facing angle about the vertical axis, in radians. Zero faces
	// +Z; positive yaw turns toward +X.
	Yaw float64
	// Pitch is the look angle above the horizon, in radians.
	Pitch float64
}

// hasDirection reports whether any directional key is held.
func (in Input) hasDirection() bool {
	return in.Forward || in.Back || in.Left || in.Right
}
