package heykube

// Local phase detection for layer-by-layer solving, mirroring the
// progress levels the cube reports in its status notifications. Useful
// for standalone simulation where no device is attached.
//
// The bottom layer is the D (yellow) face.

var (
	phaseBottomCross = NewMatch().AddCross(FaceD)
	phaseBottomLayer = NewMatch().AddFace(FaceD)
	phaseMiddleLayer = NewMatch().AddTwoLayer(FaceD)
	phaseTopCross    = phaseMiddleLayer.Add(NewMatch().AddCrossColor(FaceU))
	phaseTopFace     = phaseMiddleLayer.Add(NewMatch().AddFaceColor(FaceU))
	phaseTopCorners  = func() *Match {
		m := phaseMiddleLayer.Add(NewMatch().AddFaceColor(FaceU))
		for _, corner := range []string{"UFR", "URB", "ULB", "ULF"} {
			m.AddCubie(corner)
		}
		return m
	}()
)

// ComputePhase returns the highest layer-by-layer phase the cube state
// satisfies.
func ComputePhase(c *Cube) Phase {
	switch {
	case c.IsSolved():
		return PhaseSolved
	case phaseTopCorners.Matches(c):
		return PhaseTopCorners
	case phaseTopFace.Matches(c):
		return PhaseTopFace
	case phaseTopCross.Matches(c):
		return PhaseTopCross
	case phaseMiddleLayer.Matches(c):
		return PhaseMiddleLayer
	case phaseBottomLayer.Matches(c):
		return PhaseBottomLayer
	case phaseBottomCross.Matches(c):
		return PhaseBottomCross
	default:
		return PhaseScrambled
	}
}

// Phase returns the layer-by-layer phase of this cube state.
func (c *Cube) Phase() Phase {
	return ComputePhase(c)
}
