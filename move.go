package heykube

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Axis identifies a whole-cube rotation axis.
type Axis int

const (
	AxisX Axis = 0 // rotate around R face
	AxisY Axis = 1 // rotate around U face
	AxisZ Axis = 2 // rotate around F face
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Move is a single quarter turn of a face, or a whole-cube rotation.
// The zero value is a clockwise U turn.
//
// The cube only reports quarter turns, so half turns ("R2") expand to
// two moves when parsed.
type Move struct {
	Face     Face      // face for turns; ignored when Rotation is set
	Axis     Axis      // axis for whole-cube rotations
	Prime    bool      // counter-clockwise
	Rotation bool      // whole-cube rotation (x, y, z)
	Time     time.Time // when the move was observed; zero for synthetic moves
}

// Wire index layout: faces 0-5 in ULFRBD order, bit 3 marks prime,
// whole-cube rotations at 16-18 (x, y, z).
const (
	moveIndexPrime    = 0x8
	moveIndexRotation = 0x10
)

// Index returns the firmware index for this move.
func (m Move) Index() byte {
	var idx byte
	if m.Rotation {
		idx = moveIndexRotation | byte(m.Axis)
	} else {
		idx = byte(m.Face)
	}
	if m.Prime {
		idx |= moveIndexPrime
	}
	return idx
}

// MoveFromIndex decodes a firmware move index.
func MoveFromIndex(idx byte) (Move, bool) {
	m := Move{Prime: idx&moveIndexPrime != 0}
	base := idx &^ moveIndexPrime
	switch {
	case base <= 5:
		m.Face = Face(base)
	case base >= moveIndexRotation && base <= moveIndexRotation+2:
		m.Rotation = true
		m.Axis = Axis(base - moveIndexRotation)
	default:
		return Move{}, false
	}
	return m, true
}

// Notation returns the move in standard cube notation ("R", "U'", "x").
func (m Move) Notation() string {
	var s string
	if m.Rotation {
		s = m.Axis.String()
	} else {
		s = m.Face.String()
	}
	if m.Prime {
		s += "'"
	}
	return s
}

func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the opposite turn of the same face or axis.
func (m Move) Inverse() Move {
	m.Prime = !m.Prime
	return m
}

// wideMoves maps lowercase wide turns onto an equivalent pair of an
// opposite-face turn plus a whole-cube rotation.
var wideMoves = map[string]string{
	"u": "D y", "l": "R x'", "f": "B z",
	"r": "L x", "b": "F z'", "d": "U y'",
	"u'": "D' y'", "l'": "R' x", "f'": "B' z'",
	"r'": "L' x'", "b'": "F' z", "d'": "U' y",
}

// sliceMoves maps slice turns onto three equivalent moves.
var sliceMoves = map[string]string{
	"M": "x' L' R", "E": "y' U D'", "S": "z F' B",
	"M'": "x L R'", "E'": "y U' D", "S'": "z' F B'",
}

// ParseMoves parses a move sequence in standard notation.
//
// Supported forms: face turns (U, L, F, R, B, D), whole-cube rotations
// (x, y, z), primes (R'), repeat counts 2 and 3 (R2, R3), wide turns
// (u, r, ...), slice turns (M, E, S), and parenthesized groups with an
// optional repeat count ("(R U R' U')3"). Repeats expand to individual
// quarter turns.
func ParseMoves(s string) ([]Move, error) {
	expanded, err := expandGroups(s)
	if err != nil {
		return nil, err
	}

	var moves []Move
	i := 0
	for i < len(expanded) {
		ch := expanded[i]
		if ch == ' ' || ch == '\t' || ch == '\n' {
			i++
			continue
		}

		name := string(ch)
		i++

		// Repeat count comes before the prime: "R2'" is R' twice.
		count := 1
		if i < len(expanded) && (expanded[i] == '2' || expanded[i] == '3') {
			count = int(expanded[i] - '0')
			i++
		}
		if i < len(expanded) && expanded[i] == '\'' {
			name += "'"
			i++
		}

		var seq []Move
		switch {
		case isBaseMove(name):
			m, _ := parseBaseMove(name)
			seq = []Move{m}
		case wideMoves[name] != "":
			seq = mustParseBase(wideMoves[name])
		case sliceMoves[name] != "":
			seq = mustParseBase(sliceMoves[name])
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, name)
		}

		for n := 0; n < count; n++ {
			moves = append(moves, seq...)
		}
	}
	return moves, nil
}

// expandGroups rewrites "(A B)2" style groups into repeated plain moves.
func expandGroups(s string) (string, error) {
	for {
		// Innermost group first so nesting works.
		end := strings.IndexByte(s, ')')
		if end == -1 {
			if strings.IndexByte(s, '(') != -1 {
				return "", fmt.Errorf("%w: unbalanced parentheses", ErrInvalidNotation)
			}
			break
		}
		start := strings.LastIndexByte(s[:end], '(')
		if start == -1 {
			return "", fmt.Errorf("%w: unbalanced parentheses", ErrInvalidNotation)
		}

		group := s[start+1 : end]
		rest := s[end+1:]
		count := 1
		if len(rest) > 0 && (rest[0] == '2' || rest[0] == '3') {
			count = int(rest[0] - '0')
			rest = rest[1:]
		}

		var b strings.Builder
		b.WriteString(s[:start])
		for n := 0; n < count; n++ {
			b.WriteString(group)
			b.WriteByte(' ')
		}
		b.WriteString(rest)
		s = b.String()
	}
	return s, nil
}

func isBaseMove(name string) bool {
	_, ok := parseBaseMove(name)
	return ok
}

func parseBaseMove(name string) (Move, bool) {
	var m Move
	base := name
	if strings.HasSuffix(base, "'") {
		m.Prime = true
		base = base[:len(base)-1]
	}
	switch base {
	case "U", "L", "F", "R", "B", "D":
		m.Face, _ = ParseFace(base)
	case "x":
		m.Rotation, m.Axis = true, AxisX
	case "y":
		m.Rotation, m.Axis = true, AxisY
	case "z":
		m.Rotation, m.Axis = true, AxisZ
	default:
		return Move{}, false
	}
	return m, true
}

func mustParseBase(s string) []Move {
	moves := make([]Move, 0, 3)
	for _, tok := range strings.Fields(s) {
		m, _ := parseBaseMove(tok)
		moves = append(moves, m)
	}
	return moves
}

// FormatMoves renders a move sequence as space-separated notation.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// ReverseMoves returns the sequence that undoes the given moves.
func ReverseMoves(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}

// Scramble generates n random quarter turns. Consecutive moves are never
// exact inverses of each other.
func Scramble(n int) []Move {
	moves := make([]Move, 0, n)
	invLast := byte(rand.IntN(6)) | byte(rand.IntN(2))<<3
	for i := 0; i < n; i++ {
		next := invLast
		for next == invLast {
			next = byte(rand.IntN(6)) | byte(rand.IntN(2))<<3
		}
		invLast = next ^ moveIndexPrime

		m, _ := MoveFromIndex(next)
		moves = append(moves, m)
	}
	return moves
}

// PatternEnableMoves is the physical move sequence that unlocks the
// built-in pattern mode on the cube.
func PatternEnableMoves() []Move {
	moves, _ := ParseMoves("L' L' D' D' D D L L")
	return moves
}

// HintsToggleMoves is the physical move sequence that toggles hints.
func HintsToggleMoves() []Move {
	moves, _ := ParseMoves("R R D D D' D' R' R'")
	return moves
}
