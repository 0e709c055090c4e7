package heykube

import "strings"

// Color represents a facelet color.
//
// The numeric values follow the cube firmware: each face of a solved cube
// holds the color with the same index as the face (U=White, L=Orange,
// F=Green, R=Red, B=Blue, D=Yellow). DontCare is used in pattern matches
// for facelets that may hold any color.
type Color byte

const (
	White    Color = 0
	Orange   Color = 1
	Green    Color = 2
	Red      Color = 3
	Blue     Color = 4
	Yellow   Color = 5
	DontCare Color = 6
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Orange:
		return "O"
	case Green:
		return "G"
	case Red:
		return "R"
	case Blue:
		return "B"
	case Yellow:
		return "Y"
	case DontCare:
		return "-"
	default:
		return "?"
	}
}

// Name returns the full lowercase color name.
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Orange:
		return "orange"
	case Green:
		return "green"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	case DontCare:
		return "dontcare"
	default:
		return "unknown"
	}
}

// ParseColor parses a color from its full name or single-letter
// abbreviation, case-insensitively.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "white", "w":
		return White, true
	case "orange", "o":
		return Orange, true
	case "green", "g":
		return Green, true
	case "red", "r":
		return Red, true
	case "blue", "b":
		return Blue, true
	case "yellow", "y":
		return Yellow, true
	case "dontcare", "-":
		return DontCare, true
	}
	return 0, false
}

// Face identifies one of the six cube faces. Faces are ordered to match
// the firmware's facelet layout: face i owns facelets 9*i through 9*i+8,
// with the center at 9*i+4.
type Face int

const (
	FaceU Face = 0
	FaceL Face = 1
	FaceF Face = 2
	FaceR Face = 3
	FaceB Face = 4
	FaceD Face = 5
)

func (f Face) String() string {
	switch f {
	case FaceU:
		return "U"
	case FaceL:
		return "L"
	case FaceF:
		return "F"
	case FaceR:
		return "R"
	case FaceB:
		return "B"
	case FaceD:
		return "D"
	default:
		return "?"
	}
}

// SolvedColor returns the color of this face on a solved cube.
func (f Face) SolvedColor() Color {
	return Color(f)
}

// Center returns the state index of this face's center facelet.
func (f Face) Center() int {
	return int(f)*9 + 4
}

// ParseFace parses a face letter (U, L, F, R, B or D).
func ParseFace(s string) (Face, bool) {
	switch strings.ToUpper(s) {
	case "U":
		return FaceU, true
	case "L":
		return FaceL, true
	case "F":
		return FaceF, true
	case "R":
		return FaceR, true
	case "B":
		return FaceB, true
	case "D":
		return FaceD, true
	}
	return 0, false
}
