package heykube

import (
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"white":  White,
		"W":      White,
		"orange": Orange,
		"g":      Green,
		"Red":    Red,
		"B":      Blue,
		"yellow": Yellow,
		"-":      DontCare,
	}
	for name, want := range cases {
		got, ok := ParseColor(name)
		if !ok {
			t.Errorf("ParseColor(%q) should succeed", name)
			continue
		}
		if got != want {
			t.Errorf("ParseColor(%q) = %s, want %s", name, got, want)
		}
	}

	if _, ok := ParseColor("magenta"); ok {
		t.Error("ParseColor(magenta) should fail")
	}
}

func TestColorRoundtrip(t *testing.T) {
	for c := White; c <= Yellow; c++ {
		got, ok := ParseColor(c.Name())
		if !ok || got != c {
			t.Errorf("ParseColor(%q) = %s, ok=%v", c.Name(), got, ok)
		}
		got, ok = ParseColor(c.String())
		if !ok || got != c {
			t.Errorf("ParseColor(%q) = %s, ok=%v", c.String(), got, ok)
		}
	}
}

func TestFaceSolvedColor(t *testing.T) {
	cases := map[Face]Color{
		FaceU: White,
		FaceL: Orange,
		FaceF: Green,
		FaceR: Red,
		FaceB: Blue,
		FaceD: Yellow,
	}
	for face, want := range cases {
		if got := face.SolvedColor(); got != want {
			t.Errorf("%s.SolvedColor() = %s, want %s", face, got, want)
		}
	}
}

func TestParseFace(t *testing.T) {
	for _, name := range []string{"U", "L", "F", "R", "B", "D"} {
		face, ok := ParseFace(name)
		if !ok {
			t.Errorf("ParseFace(%q) should succeed", name)
			continue
		}
		if face.String() != name {
			t.Errorf("ParseFace(%q).String() = %q", name, face.String())
		}
	}
	if _, ok := ParseFace("M"); ok {
		t.Error("ParseFace(M) should fail")
	}
}

func TestPatternNames(t *testing.T) {
	names := PatternNames()
	if len(names) != NumPatterns {
		t.Fatalf("expected %d patterns, got %d", NumPatterns, len(names))
	}

	p, err := ParsePattern("checkerboard")
	if err != nil {
		t.Fatal(err)
	}
	if p != 0 {
		t.Errorf("checkerboard should be pattern 0, got %d", p)
	}

	// Case-insensitive.
	if _, err := ParsePattern("CubeInCube"); err != nil {
		t.Errorf("ParsePattern should be case-insensitive: %v", err)
	}

	if _, err := ParsePattern("nosuchpattern"); err == nil {
		t.Error("unknown pattern should fail")
	}
}
