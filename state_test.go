package heykube

import (
	"errors"
	"testing"
)

func TestEncodeSolvedState(t *testing.T) {
	c := NewCube()
	state := c.EncodeState()
	want := [StateSize]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 8, 0}
	if state != want {
		t.Errorf("solved state encoding: got %x, want %x", state, want)
	}
}

func TestDecodeSolvedState(t *testing.T) {
	c := NewCube()
	c.ApplyNotation("R U F")

	solved := [StateSize]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 8, 0}
	if err := c.DecodeState(solved[:]); err != nil {
		t.Fatal(err)
	}
	if !c.IsSolved() {
		t.Error("decoding the solved state should produce a solved cube")
	}
}

func TestStateRoundtrip(t *testing.T) {
	sequences := []string{
		"R",
		"R U R' U'",
		"F2 B2 U2 D2 L2 R2",
		"R U F L B D R U F L B D",
	}
	for _, seq := range sequences {
		c := NewCube()
		if err := c.ApplyNotation(seq); err != nil {
			t.Fatal(err)
		}
		state := c.EncodeState()

		decoded := NewCube()
		if err := decoded.DecodeState(state[:]); err != nil {
			t.Fatalf("%s: decode failed: %v", seq, err)
		}
		if !decoded.Equal(c) {
			t.Errorf("%s: state roundtrip mismatch", seq)
			t.Log(c.String())
			t.Log(decoded.String())
		}
	}
}

func TestStateRoundtripScrambled(t *testing.T) {
	for trial := 0; trial < 10; trial++ {
		c := NewCube()
		c.Apply(Scramble(30)...)
		state := c.EncodeState()

		decoded := NewCube()
		if err := decoded.DecodeState(state[:]); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if !decoded.Equal(c) {
			t.Error("scrambled state roundtrip mismatch")
		}
	}
}

func TestDecodeStateShort(t *testing.T) {
	c := NewCube()
	if err := c.DecodeState([]byte{1, 2, 3}); err == nil {
		t.Error("short payload should fail")
	}
}

func TestDecodeStateInvalid(t *testing.T) {
	c := NewCube()
	c.ApplyNotation("R U")
	before := c.Colors()

	// A nonzero position field marks the state invalid.
	bad := [StateSize]byte{0, 0, 0, 0, 0, 0, 0, 0, 0xC0, 0, 0}
	err := c.DecodeState(bad[:])
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
	if c.Colors() != before {
		t.Error("a failed decode should leave the cube untouched")
	}
}
