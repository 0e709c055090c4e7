package heykube

import (
	"testing"
)

func TestNewCubeIsSolved(t *testing.T) {
	c := NewCube()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	c := NewCube()
	if err := c.ApplyNotation("R"); err != nil {
		t.Fatal(err)
	}
	if c.IsSolved() {
		t.Error("Cube should not be solved after R move")
	}
}

func TestFourTurnsReturnToSolved(t *testing.T) {
	for _, face := range []string{"U", "L", "F", "R", "B", "D"} {
		c := NewCube()
		for i := 0; i < 4; i++ {
			if err := c.ApplyNotation(face); err != nil {
				t.Fatal(err)
			}
		}
		if !c.IsSolved() {
			t.Errorf("%s x 4 should return to solved", face)
			t.Log(c.String())
		}
	}
}

func TestMoveThenInverseReturnsToSolved(t *testing.T) {
	for _, notation := range []string{"R", "U'", "x", "y'", "z", "M", "u", "f'"} {
		c := NewCube()
		moves, err := ParseMoves(notation)
		if err != nil {
			t.Fatal(err)
		}
		c.Apply(moves...)
		for i := len(moves) - 1; i >= 0; i-- {
			c.Apply(moves[i].Inverse())
		}
		if !c.IsSolved() {
			t.Errorf("%s then inverse should return to solved", notation)
		}
	}
}

func TestSexyMoveSixTimesReturnsToSolved(t *testing.T) {
	c := NewCube()
	for i := 0; i < 6; i++ {
		if err := c.ApplyNotation("R U R' U'"); err != nil {
			t.Fatal(err)
		}
	}
	if !c.IsSolved() {
		t.Error("(R U R' U') x 6 should return to solved")
		t.Log(c.String())
	}
}

func TestRotationsPreserveSolved(t *testing.T) {
	c := NewCube()
	if err := c.ApplyNotation("x y z x' y' z'"); err != nil {
		t.Fatal(err)
	}
	// Whole-cube rotations permute centers, so the cube stays solved
	// even though the facelets move.
	if !c.IsSolved() {
		t.Error("rotations alone should keep the cube solved")
	}
}

func TestRotationFourTimesIsIdentity(t *testing.T) {
	for _, rot := range []string{"x", "y", "z"} {
		c := NewCube()
		c.ApplyNotation("R U F")
		before := c.Colors()
		for i := 0; i < 4; i++ {
			c.ApplyNotation(rot)
		}
		if c.Colors() != before {
			t.Errorf("%s x 4 should be the identity", rot)
		}
	}
}

func TestScrambleAndReverseReturnsToSolved(t *testing.T) {
	c := NewCube()
	scramble := Scramble(25)
	if len(scramble) != 25 {
		t.Fatalf("expected 25 moves, got %d", len(scramble))
	}
	c.Apply(scramble...)
	if c.IsSolved() {
		t.Error("cube should not be solved after scramble")
	}
	c.Apply(ReverseMoves(scramble)...)
	if !c.IsSolved() {
		t.Error("reversing the scramble should solve the cube")
	}
}

func TestScrambleNeverUndoesItself(t *testing.T) {
	for trial := 0; trial < 20; trial++ {
		moves := Scramble(30)
		for i := 1; i < len(moves); i++ {
			if moves[i] == moves[i-1].Inverse() {
				t.Fatalf("move %d (%s) undoes move %d (%s)",
					i, moves[i].Notation(), i-1, moves[i-1].Notation())
			}
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewCube()
	c.ApplyNotation("R U")
	clone := c.Clone()
	clone.Reset()
	if c.IsSolved() {
		t.Error("resetting the clone should not affect the original")
	}
	if !clone.IsSolved() {
		t.Error("clone should be solved after reset")
	}
}

func TestEqual(t *testing.T) {
	a := NewCube()
	b := NewCube()
	a.ApplyNotation("R U R' U'")
	b.ApplyNotation("R U R' U'")
	if !a.Equal(b) {
		t.Error("cubes with the same history should be equal")
	}
	b.ApplyNotation("F")
	if a.Equal(b) {
		t.Error("cubes with different states should not be equal")
	}
}

func TestSliceMovesHaveOrderFour(t *testing.T) {
	for _, slice := range []string{"M", "E", "S"} {
		c := NewCube()
		c.ApplyNotation("R F")
		before := c.Colors()
		for i := 0; i < 4; i++ {
			if err := c.ApplyNotation(slice); err != nil {
				t.Fatal(err)
			}
		}
		if c.Colors() != before {
			t.Errorf("%s x 4 should be the identity", slice)
		}
	}
}

func TestWideMovesHaveOrderFour(t *testing.T) {
	for _, wide := range []string{"u", "l", "f", "r", "b", "d"} {
		c := NewCube()
		before := c.Colors()
		for i := 0; i < 4; i++ {
			if err := c.ApplyNotation(wide); err != nil {
				t.Fatal(err)
			}
		}
		if c.Colors() != before {
			t.Errorf("%s x 4 should be the identity", wide)
		}
	}
}

func TestFaceColorsSolved(t *testing.T) {
	c := NewCube()
	for f := FaceU; f <= FaceD; f++ {
		colors := c.FaceColors(f)
		for i, col := range colors {
			if col != f.SolvedColor() {
				t.Errorf("face %s position %d: got %s, want %s", f, i, col, f.SolvedColor())
			}
		}
	}
}

func TestOrientation(t *testing.T) {
	c := NewCube()
	up, front := c.Orientation()
	if up != White || front != Green {
		t.Errorf("solved orientation = %s/%s, want white/green", up.Name(), front.Name())
	}

	if err := c.ApplyNotation("x"); err != nil {
		t.Fatal(err)
	}
	up, _ = c.Orientation()
	if up == White {
		t.Error("x rotation should move white off the top")
	}
}

func TestResetOrientation(t *testing.T) {
	for _, rot := range []string{"x", "x'", "x2", "y", "y'", "z", "z'", "z2", "x y", "z y'"} {
		c := NewCube()
		if err := c.ApplyNotation("R U R' U'"); err != nil {
			t.Fatal(err)
		}
		want := c.Colors()

		if err := c.ApplyNotation(rot); err != nil {
			t.Fatal(err)
		}
		c.ResetOrientation()

		up, front := c.Orientation()
		if up != White || front != Green {
			t.Errorf("after %s: orientation = %s/%s, want white/green", rot, up.Name(), front.Name())
		}
		if c.Colors() != want {
			t.Errorf("after %s: reset did not restore the original view", rot)
		}
	}
}
