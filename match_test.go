package heykube

import (
	"testing"
)

func TestSolvedMatchTarget(t *testing.T) {
	m := NewMatch().Solved()
	c := NewCube()
	if !m.Matches(c) {
		t.Error("solved match should match a solved cube")
	}
	c.ApplyNotation("R")
	if m.Matches(c) {
		t.Error("solved match should not match a scrambled cube")
	}
}

func TestNewMatchMatchesAnything(t *testing.T) {
	m := NewMatch()
	c := NewCube()
	c.Apply(Scramble(20)...)
	if !m.Matches(c) {
		t.Error("empty match should match any cube")
	}
}

func TestClearKeepsCenters(t *testing.T) {
	m := NewMatch().Clear()
	for f := FaceU; f <= FaceD; f++ {
		if m.At(Facelet(f.Center())) != f.SolvedColor() {
			t.Errorf("center of %s should stay constrained", f)
		}
	}
}

func TestAddCross(t *testing.T) {
	m := NewMatch().Clear().AddCross(FaceD)
	c := NewCube()
	if !m.Matches(c) {
		t.Error("solved cube has its bottom cross")
	}

	// Turning the top face leaves the bottom cross intact.
	c.ApplyNotation("U")
	if !m.Matches(c) {
		t.Error("U move should not break the bottom cross")
	}

	// Turning a side face breaks it.
	c.ApplyNotation("R")
	if m.Matches(c) {
		t.Error("R move should break the bottom cross")
	}
}

func TestAddLayerIgnoresOtherLayers(t *testing.T) {
	m := NewMatch().Clear().AddLayer(FaceD)
	c := NewCube()
	c.ApplyNotation("U")
	if !m.Matches(c) {
		t.Error("bottom layer match should ignore top face turns")
	}
	c.ApplyNotation("F")
	if m.Matches(c) {
		t.Error("F move should break the bottom layer")
	}
}

func TestAddTwoLayer(t *testing.T) {
	m := NewMatch().Clear().AddTwoLayer(FaceD)
	c := NewCube()
	c.ApplyNotation("U")
	if !m.Matches(c) {
		t.Error("two-layer match should ignore top face turns")
	}
	c.ApplyNotation("R")
	if m.Matches(c) {
		t.Error("R move should break the first two layers")
	}
}

func TestAddCubie(t *testing.T) {
	m := NewMatch().Clear()
	if err := m.AddCubie("DLF"); err != nil {
		t.Fatal(err)
	}
	c := NewCube()
	if !m.Matches(c) {
		t.Error("solved cube should match its own corner")
	}
	if err := m.AddCubie("XYZ"); err == nil {
		t.Error("bogus cubie name should fail")
	}
}

func TestInvert(t *testing.T) {
	m := NewMatch().Clear().AddFaceColor(FaceU).Invert()
	// Inversion swaps constrained and unconstrained stickers while
	// keeping the centers fixed.
	if m.At(0) != DontCare {
		t.Errorf("U sticker should be unconstrained, got %s", m.At(0))
	}
	if m.At(9) != Orange {
		t.Errorf("L sticker should be constrained to orange, got %s", m.At(9))
	}
	if m.At(4) != White {
		t.Errorf("U center should stay white, got %s", m.At(4))
	}
}

func TestMatchEncodeDecodeRoundtrip(t *testing.T) {
	m := NewMatch().Clear().AddTwoLayer(FaceD)
	encoded := m.Encode()

	decoded, err := DecodeMatch(encoded[:])
	if err != nil {
		t.Fatal(err)
	}
	for pos := Facelet(0); pos < 54; pos++ {
		if pos.IsCenter() {
			continue
		}
		if decoded.At(pos) != m.At(pos) {
			t.Errorf("position %d: got %s, want %s", pos, decoded.At(pos), m.At(pos))
		}
	}
}

func TestMatchEncodeSolved(t *testing.T) {
	// A fully constrained match encodes each non-center facelet's color
	// in 3 bits, LSB first.
	m := NewMatch().Solved()
	encoded := m.Encode()

	decoded, err := DecodeMatch(encoded[:])
	if err != nil {
		t.Fatal(err)
	}
	c := NewCube()
	if !decoded.Matches(c) {
		t.Error("decoded solved match should match a solved cube")
	}
	c.ApplyNotation("R")
	if decoded.Matches(c) {
		t.Error("decoded solved match should reject a scrambled cube")
	}
}

func TestMatchAddSub(t *testing.T) {
	cross := NewMatch().Clear().AddCross(FaceD)
	layer := NewMatch().Clear().AddLayer(FaceD)

	combined := NewMatch().Clear().Add(cross).Add(layer)
	c := NewCube()
	if !combined.Matches(c) {
		t.Error("combined match should match a solved cube")
	}

	// Removing the layer constraints leaves nothing but the centers,
	// since the layer is a superset of the cross.
	stripped := combined.Sub(layer)
	scrambled := NewCube()
	scrambled.Apply(Scramble(20)...)
	if !stripped.Matches(scrambled) {
		t.Error("stripped match should have no sticker constraints left")
	}
}
