package heykube

import "strings"

// Cube models a 3x3 cube as a permutation of 54 facelets. state[i] holds
// the facelet whose sticker currently occupies position i, so a solved
// cube is the identity permutation. Tracking facelets rather than bare
// colors keeps enough information to encode the firmware's piece-level
// state format.
type Cube struct {
	state [54]Facelet
}

// NewCube creates a solved cube.
func NewCube() *Cube {
	c := &Cube{}
	c.Reset()
	return c
}

// Reset returns the cube to the solved state.
func (c *Cube) Reset() {
	for i := range c.state {
		c.state[i] = Facelet(i)
	}
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := &Cube{}
	clone.state = c.state
	return clone
}

// IsSolved reports whether every facelet shows its face's color.
func (c *Cube) IsSolved() bool {
	for i, f := range c.state {
		if f.Color() != Facelet(i).Color() {
			return false
		}
	}
	return true
}

// ColorAt returns the color currently showing at the given position.
func (c *Cube) ColorAt(pos Facelet) Color {
	return c.state[pos].Color()
}

// Colors returns the color currently showing at every position.
func (c *Cube) Colors() [54]Color {
	var out [54]Color
	for i, f := range c.state {
		out[i] = f.Color()
	}
	return out
}

// FaceColors returns the nine colors of one face in state order.
// Within a face, facelets run down each column: index 3*col+row.
func (c *Cube) FaceColors(face Face) [9]Color {
	var out [9]Color
	for i := 0; i < 9; i++ {
		out[i] = c.state[int(face)*9+i].Color()
	}
	return out
}

// Orientation returns the colors currently facing up and front.
func (c *Cube) Orientation() (up, front Color) {
	return c.state[FaceU.Center()].Color(), c.state[FaceF.Center()].Color()
}

// ResetOrientation rotates the whole cube until white faces up and
// green faces front, without disturbing the piece arrangement.
func (c *Cube) ResetOrientation() {
	x := Move{Axis: AxisX, Rotation: true}
	y := Move{Axis: AxisY, Rotation: true}
	z := Move{Axis: AxisZ, Rotation: true}

	// x cycles U through F, D and B; a z first brings L or R into
	// that cycle.
	whiteUp := func() bool { return c.state[FaceU.Center()].Color() == White }
	for i := 0; i < 3 && !whiteUp(); i++ {
		c.Apply(x)
	}
	if !whiteUp() {
		c.Apply(z)
		for i := 0; i < 3 && !whiteUp(); i++ {
			c.Apply(x)
		}
	}
	for i := 0; i < 3 && c.state[FaceF.Center()].Color() != Green; i++ {
		c.Apply(y)
	}
}

// Apply applies moves to the cube in order.
func (c *Cube) Apply(moves ...Move) {
	for _, m := range moves {
		t := moveTable(m)
		prev := c.state
		for i := range c.state {
			c.state[i] = prev[t[i]]
		}
	}
}

// ApplyNotation parses a move sequence and applies it.
func (c *Cube) ApplyNotation(s string) error {
	moves, err := ParseMoves(s)
	if err != nil {
		return err
	}
	c.Apply(moves...)
	return nil
}

// Equal reports whether both cubes show the same colors everywhere.
func (c *Cube) Equal(other *Cube) bool {
	for i := range c.state {
		if c.state[i].Color() != other.state[i].Color() {
			return false
		}
	}
	return true
}

// String renders the cube as an unfolded net with single-letter colors:
//
//	      U U U
//	      U U U
//	      U U U
//	L L L F F F R R R B B B
//	...
func (c *Cube) String() string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(&b, c, FaceU, row)
		b.WriteByte('\n')
	}
	for row := 0; row < 3; row++ {
		for _, f := range []Face{FaceL, FaceF, FaceR, FaceB} {
			writeRow(&b, c, f, row)
		}
		b.WriteByte('\n')
	}
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(&b, c, FaceD, row)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeRow(b *strings.Builder, c *Cube, face Face, row int) {
	for col := 0; col < 3; col++ {
		b.WriteString(c.ColorAt(Facelet(int(face)*9 + col*3 + row)).String())
		b.WriteByte(' ')
	}
}

// rotationTables holds the facelet permutation for each clockwise base
// move, in the order U, L, F, R, B, D, x, y, z. Applying table t maps
// position i to the facelet previously at t[i]. Counter-clockwise tables
// are the functional inverses, built at init.
var rotationTables = [9][54]Facelet{
	// U
	{2, 5, 8, 1, 4, 7, 0, 3, 6, 18, 10, 11, 21, 13, 14, 24, 16, 17, 27, 19, 20, 30, 22, 23, 33, 25, 26, 36, 28, 29, 39, 31, 32, 42, 34, 35, 9, 37, 38, 12, 40, 41, 15, 43, 44, 45, 46, 47, 48, 49, 50, 51, 52, 53},
	// L
	{44, 43, 42, 3, 4, 5, 6, 7, 8, 11, 14, 17, 10, 13, 16, 9, 12, 15, 0, 1, 2, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40, 41, 47, 46, 45, 18, 19, 20, 48, 49, 50, 51, 52, 53},
	// F
	{0, 1, 17, 3, 4, 16, 6, 7, 15, 9, 10, 11, 12, 13, 14, 45, 48, 51, 20, 23, 26, 19, 22, 25, 18, 21, 24, 2, 5, 8, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40, 41, 42, 43, 44, 29, 46, 47, 28, 49, 50, 27, 52, 53},
	// R
	{0, 1, 2, 3, 4, 5, 24, 25, 26, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 51, 52, 53, 29, 32, 35, 28, 31, 34, 27, 30, 33, 8, 7, 6, 39, 40, 41, 42, 43, 44, 45, 46, 47, 48, 49, 50, 38, 37, 36},
	// B
	{33, 1, 2, 34, 4, 5, 35, 7, 8, 6, 3, 0, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 53, 50, 47, 38, 41, 44, 37, 40, 43, 36, 39, 42, 45, 46, 9, 48, 49, 10, 51, 52, 11},
	// D
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 38, 12, 13, 41, 15, 16, 44, 18, 19, 11, 21, 22, 14, 24, 25, 17, 27, 28, 20, 30, 31, 23, 33, 34, 26, 36, 37, 29, 39, 40, 32, 42, 43, 35, 47, 50, 53, 46, 49, 52, 45, 48, 51},
	// x
	{18, 19, 20, 21, 22, 23, 24, 25, 26, 15, 12, 9, 16, 13, 10, 17, 14, 11, 45, 46, 47, 48, 49, 50, 51, 52, 53, 29, 32, 35, 28, 31, 34, 27, 30, 33, 8, 7, 6, 5, 4, 3, 2, 1, 0, 44, 43, 42, 41, 40, 39, 38, 37, 36},
	// y
	{2, 5, 8, 1, 4, 7, 0, 3, 6, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40, 41, 42, 43, 44, 9, 10, 11, 12, 13, 14, 15, 16, 17, 51, 48, 45, 52, 49, 46, 53, 50, 47},
	// z
	{11, 14, 17, 10, 13, 16, 9, 12, 15, 47, 50, 53, 46, 49, 52, 45, 48, 51, 20, 23, 26, 19, 22, 25, 18, 21, 24, 2, 5, 8, 1, 4, 7, 0, 3, 6, 42, 39, 36, 43, 40, 37, 44, 41, 38, 29, 32, 35, 28, 31, 34, 27, 30, 33},
}

var inverseTables = func() [9][54]Facelet {
	var inv [9][54]Facelet
	for t := range rotationTables {
		for i, v := range rotationTables[t] {
			inv[t][v] = Facelet(i)
		}
	}
	return inv
}()

func moveTable(m Move) *[54]Facelet {
	idx := int(m.Face)
	if m.Rotation {
		idx = 6 + int(m.Axis)
	}
	if m.Prime {
		return &inverseTables[idx]
	}
	return &rotationTables[idx]
}
