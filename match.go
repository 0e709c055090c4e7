package heykube

import (
	"fmt"
	"strings"
)

// MatchSize is the length of the match characteristic payload: 48
// non-center facelets at 3 bits each, packed LSB first.
const MatchSize = 18

// Match describes a target coloring of the cube. Facelets set to
// DontCare may hold any color. Writing a match to the cube makes it
// notify when the pattern is reached.
//
// Builder methods mutate the match and return it for chaining:
//
//	m := heykube.NewMatch().AddCross(heykube.FaceD).AddCubie("DFR")
type Match struct {
	state [54]Color
}

// NewMatch creates an empty match: every facelet is DontCare except the
// fixed centers.
func NewMatch() *Match {
	m := &Match{}
	m.Clear()
	return m
}

// MatchCube creates a match for the exact coloring of a cube.
func MatchCube(c *Cube) *Match {
	m := NewMatch()
	m.state = c.Colors()
	return m
}

// Clear resets every facelet to DontCare and restores the centers.
func (m *Match) Clear() *Match {
	for i := range m.state {
		m.state[i] = DontCare
	}
	m.restoreCenters()
	return m
}

func (m *Match) restoreCenters() {
	for f := 0; f < 6; f++ {
		m.state[f*9+4] = Color(f)
	}
}

// At returns the required color at a position.
func (m *Match) At(pos Facelet) Color {
	return m.state[pos]
}

// Solved sets the match to the fully solved cube.
func (m *Match) Solved() *Match {
	for i := range m.state {
		m.state[i] = Facelet(i).Color()
	}
	return m
}

// faceRingFacelets lists, per face, the twelve side facelets that wrap
// around the face's own nine stickers.
var faceRingFacelets = map[Face][]Facelet{
	FaceU: {9, 12, 15, 18, 21, 24, 27, 30, 33, 36, 39, 42},
	FaceL: {0, 1, 2, 18, 19, 20, 45, 46, 47, 42, 43, 44},
	FaceF: {2, 5, 8, 27, 28, 29, 51, 48, 45, 17, 16, 15},
	FaceR: {6, 7, 8, 24, 25, 26, 51, 52, 53, 36, 37, 38},
	FaceB: {33, 34, 35, 47, 50, 53, 0, 3, 6, 9, 10, 11},
	FaceD: {20, 23, 26, 29, 32, 35, 38, 41, 44, 11, 14, 17},
}

// crossSideFacelets lists, per face, the side sticker of each cross edge.
var crossSideFacelets = map[Face][]Facelet{
	FaceU: {12, 21, 30, 39},
	FaceL: {1, 19, 46, 43},
	FaceF: {5, 28, 48, 16},
	FaceR: {25, 52, 37, 7},
	FaceB: {3, 34, 50, 10},
	FaceD: {23, 32, 41, 14},
}

// secondLayerFacelets lists, per face, the side stickers of the second
// layer below the face.
var secondLayerFacelets = map[Face][]Facelet{
	FaceU: {10, 16, 19, 25, 28, 34, 37, 43},
	FaceL: {3, 5, 21, 23, 48, 50, 39, 41},
	FaceF: {1, 7, 30, 32, 52, 46, 14, 12},
	FaceR: {3, 5, 21, 23, 48, 50, 39, 41},
	FaceB: {30, 32, 1, 7, 46, 52, 12, 14},
	FaceD: {19, 25, 28, 34, 37, 43, 10, 16},
}

// AddFaceColor requires all nine stickers of a face to show its color.
func (m *Match) AddFaceColor(face Face) *Match {
	for i := 0; i < 9; i++ {
		m.state[int(face)*9+i] = face.SolvedColor()
	}
	return m
}

// AddFace requires a complete face: the face's own stickers plus the
// surrounding ring of side stickers.
func (m *Match) AddFace(face Face) *Match {
	m.AddFaceColor(face)
	for _, idx := range faceRingFacelets[face] {
		m.state[idx] = idx.Color()
	}
	return m
}

// AddLayer is an alias for AddFace.
func (m *Match) AddLayer(face Face) *Match {
	return m.AddFace(face)
}

// AddTwoLayer requires a complete face plus the adjacent second layer.
func (m *Match) AddTwoLayer(face Face) *Match {
	m.AddFace(face)
	for _, idx := range secondLayerFacelets[face] {
		m.state[idx] = idx.Color()
	}
	return m
}

// AddCrossColor requires the four edge stickers of a face to show its
// color, without constraining the side stickers.
func (m *Match) AddCrossColor(face Face) *Match {
	for i := 0; i < 4; i++ {
		m.state[int(face)*9+2*i+1] = face.SolvedColor()
	}
	return m
}

// AddCross requires a full cross on a face: the face's edge stickers
// plus the matching side stickers.
func (m *Match) AddCross(face Face) *Match {
	m.AddCrossColor(face)
	for _, idx := range crossSideFacelets[face] {
		m.state[idx] = idx.Color()
	}
	return m
}

// AddFacelet requires a single facelet, named as for ParseFacelet, to
// show its solved color.
func (m *Match) AddFacelet(name string) error {
	f, err := ParseFacelet(name)
	if err != nil {
		return err
	}
	m.state[f] = f.Color()
	return nil
}

// AddCubie requires the whole piece containing the named facelet to be
// in its solved position and orientation.
func (m *Match) AddCubie(name string) error {
	f, err := ParseFacelet(name)
	if err != nil {
		return err
	}
	for _, facelet := range cubieFacelets(f) {
		m.state[facelet] = facelet.Color()
	}
	return nil
}

// cubieFacelets returns all stickers of the piece containing f.
func cubieFacelets(f Facelet) []Facelet {
	if f.IsCenter() {
		return []Facelet{f}
	}
	for _, pair := range edgePairs {
		if f == pair[0] || f == pair[1] {
			return pair[:]
		}
	}
	for _, set := range cornerSets {
		if f == set[0] || f == set[1] || f == set[2] {
			return set[:]
		}
	}
	return []Facelet{f}
}

// Invert returns a new match with constrained and unconstrained facelets
// swapped: DontCare positions become their solved color and vice versa.
// Centers stay fixed.
func (m *Match) Invert() *Match {
	y := NewMatch()
	for i, c := range m.state {
		if c == DontCare {
			y.state[i] = Facelet(i).Color()
		} else {
			y.state[i] = DontCare
		}
	}
	y.restoreCenters()
	return y
}

// Add returns a new match combining both: constrained facelets of other
// override this match.
func (m *Match) Add(other *Match) *Match {
	y := NewMatch()
	y.state = m.state
	for i, c := range other.state {
		if c < DontCare {
			y.state[i] = c
		}
	}
	return y
}

// Sub returns a new match with every facelet constrained in other reset
// to DontCare. Centers stay fixed.
func (m *Match) Sub(other *Match) *Match {
	y := NewMatch()
	y.state = m.state
	for i, c := range other.state {
		if c < DontCare {
			y.state[i] = DontCare
		}
	}
	y.restoreCenters()
	return y
}

// Matches reports whether the cube satisfies this match.
func (m *Match) Matches(c *Cube) bool {
	for i, want := range m.state {
		if want == DontCare {
			continue
		}
		if c.ColorAt(Facelet(i)) != want {
			return false
		}
	}
	return true
}

// Encode packs the match into the 18-byte characteristic payload.
// Centers are fixed and not encoded.
func (m *Match) Encode() [MatchSize]byte {
	var out [MatchSize]byte
	ptr, bitPos := 0, 0
	for i, c := range m.state {
		if i%9 == 4 {
			continue
		}
		out[ptr] |= byte(c) << bitPos & 0xFF
		switch bitPos {
		case 6:
			out[ptr+1] |= byte(c) >> 2
		case 7:
			out[ptr+1] |= byte(c) >> 1
		}
		bitPos += 3
		if bitPos >= 8 {
			bitPos -= 8
			ptr++
		}
	}
	return out
}

// DecodeMatch unpacks a match characteristic payload.
func DecodeMatch(data []byte) (*Match, error) {
	if len(data) < MatchSize {
		return nil, fmt.Errorf("%w: match needs %d bytes, got %d", ErrShortRead, MatchSize, len(data))
	}
	m := NewMatch()
	ptr, bitPos := 0, 0
	for i := range m.state {
		if i%9 == 4 {
			m.state[i] = Color(i / 9)
			continue
		}
		c := data[ptr] >> bitPos & 0x7
		switch bitPos {
		case 6:
			c |= data[ptr+1] & 0x1 << 2
		case 7:
			c |= data[ptr+1] & 0x3 << 1
		}
		m.state[i] = Color(c)
		bitPos += 3
		if bitPos >= 8 {
			bitPos -= 8
			ptr++
		}
	}
	return m, nil
}

// String renders the match as an unfolded net, with "-" for DontCare.
func (m *Match) String() string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(m.state[col*3+row].String())
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	for row := 0; row < 3; row++ {
		for _, f := range []Face{FaceL, FaceF, FaceR, FaceB} {
			for col := 0; col < 3; col++ {
				b.WriteString(m.state[int(f)*9+col*3+row].String())
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(m.state[45+col*3+row].String())
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
