package heykube

// Phase is the solving progress level reported by the cube's status
// notifications. The cube tracks layer-by-layer progress with the
// bottom (white) layer first.
type Phase int

const (
	PhaseScrambled Phase = iota
	PhaseBottomCross
	PhaseBottomLayer
	PhaseMiddleLayer
	PhaseTopCross
	PhaseTopFace
	PhaseTopCorners
	PhaseSolved
)

var phaseNames = [...]string{
	"scrambled",
	"bottom_cross",
	"bottom_layer",
	"middle_layer",
	"top_layer_cross",
	"top_layer_face",
	"top_layer_corner",
	"solved",
}

// String returns the firmware's name for the phase.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// DisplayName returns a human-readable phase name.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseScrambled:
		return "Scrambled"
	case PhaseBottomCross:
		return "Bottom Cross"
	case PhaseBottomLayer:
		return "Bottom Layer"
	case PhaseMiddleLayer:
		return "Middle Layer"
	case PhaseTopCross:
		return "Top Cross"
	case PhaseTopFace:
		return "Top Face"
	case PhaseTopCorners:
		return "Top Corners"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}
