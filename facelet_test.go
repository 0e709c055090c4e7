package heykube

import (
	"testing"
)

func TestParseFacelet(t *testing.T) {
	cases := map[string]Facelet{
		"ULB": 0,
		"U":   4,
		"UFR": 8,
		"L":   13,
		"F":   22,
		"R":   31,
		"B":   40,
		"D":   49,
		"DRB": 53,
	}
	for name, want := range cases {
		got, err := ParseFacelet(name)
		if err != nil {
			t.Errorf("ParseFacelet(%q): %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFacelet(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestParseFaceletCanonicalizes(t *testing.T) {
	// Corner names list the two neighbor faces in a fixed order; the
	// parser accepts either spelling.
	a, err := ParseFacelet("UFR")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseFacelet("URF")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("UFR (%d) and URF (%d) should parse to the same facelet", a, b)
	}
}

func TestParseFaceletInvalid(t *testing.T) {
	for _, bad := range []string{"Q", "UU", "XYZ"} {
		if _, err := ParseFacelet(bad); err == nil {
			t.Errorf("ParseFacelet(%q) should fail", bad)
		}
	}
}

func TestFaceletColor(t *testing.T) {
	cases := []struct {
		pos  Facelet
		want Color
	}{
		{0, White},
		{9, Orange},
		{22, Green},
		{31, Red},
		{40, Blue},
		{53, Yellow},
	}
	for _, tc := range cases {
		if got := tc.pos.Color(); got != tc.want {
			t.Errorf("Facelet(%d).Color() = %s, want %s", tc.pos, got, tc.want)
		}
	}
}

func TestFaceletIsCenter(t *testing.T) {
	centers := 0
	for f := Facelet(0); f < 54; f++ {
		if f.IsCenter() {
			centers++
			if int(f)%9 != 4 {
				t.Errorf("facelet %d wrongly reported as center", f)
			}
		}
	}
	if centers != 6 {
		t.Errorf("expected 6 centers, found %d", centers)
	}
}

func TestEdgeAndCornerTablesCoverEverySticker(t *testing.T) {
	seen := make(map[Facelet]bool)
	for _, pair := range edgePairs {
		for _, f := range pair {
			if seen[f] {
				t.Errorf("facelet %d appears twice", f)
			}
			seen[f] = true
		}
	}
	for _, set := range cornerSets {
		for _, f := range set {
			if seen[f] {
				t.Errorf("facelet %d appears twice", f)
			}
			seen[f] = true
		}
	}
	// 12 edges x 2 + 8 corners x 3 = 48 stickers, everything but centers.
	if len(seen) != 48 {
		t.Fatalf("expected 48 stickers, got %d", len(seen))
	}
	for f := Facelet(0); f < 54; f++ {
		if f.IsCenter() {
			if seen[f] {
				t.Errorf("center %d should not be in piece tables", f)
			}
		} else if !seen[f] {
			t.Errorf("sticker %d missing from piece tables", f)
		}
	}
}
