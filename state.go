package heykube

import (
	"fmt"
	"math/bits"
)

// StateSize is the length of the firmware's packed cube state.
//
// The format packs the edge permutation (lexicographic rank, 29 bits),
// edge orientations (12 bits), corner permutation (16 bits), corner
// orientations (base 3, 13 bits) and puzzle orientation into 11 bytes.
// See https://experiments.cubing.net/cubing.js/spec/binary/index.html
// for the layout this is derived from.
const StateSize = 11

// EncodeState packs the cube into the 11-byte firmware state format.
func (c *Cube) EncodeState() [StateSize]byte {
	var cstate [StateSize]byte

	// Edge permutation and orientation.
	edgeOrient := 0
	var edges [12]int
	for i := 0; i < 12; i++ {
		piece := c.state[edgePairs[i][0]]
		edgeOrient <<= 1
		edges[i] = -1
	search:
		for j := 0; j < 12; j++ {
			for o := 0; o < 2; o++ {
				if piece == edgePairs[j][o] {
					edges[i] = j
					edgeOrient += o
					break search
				}
			}
		}
	}

	enc := encodePerm(edges[:]) & 0x1FFFFFFF
	for i := 0; i < 4; i++ {
		cstate[i] = byte(enc & 0xFF)
		enc >>= 8
	}
	cstate[3] |= byte(edgeOrient&0x7) << 5
	edgeOrient >>= 3
	cstate[4] = byte(edgeOrient & 0xFF)
	edgeOrient >>= 8
	cstate[5] = byte(edgeOrient & 0x1)

	// Corner permutation and orientation.
	cornerOrient := 0
	var corners [8]int
	for i := 0; i < 8; i++ {
		piece := c.state[cornerSets[i][0]]
		cornerOrient *= 3
		corners[i] = -1
	csearch:
		for j := 0; j < 8; j++ {
			for o := 0; o < 3; o++ {
				if piece == cornerSets[j][o] {
					corners[i] = j
					cornerOrient += o
					break csearch
				}
			}
		}
	}

	enc = encodePerm(corners[:]) & 0xFFFF
	cstate[5] |= byte(enc&0x7F) << 1
	enc >>= 7
	cstate[6] = byte(enc & 0xFF)
	enc >>= 8
	cstate[7] = byte(enc & 0x1)

	cstate[7] |= byte(cornerOrient&0x7F) << 1
	cornerOrient >>= 7
	cstate[8] = byte(cornerOrient & 0x3F)

	// Puzzle orientation: centers are always reported as U/L = 0,0.
	cstate[9] = 0x8
	cstate[10] = 0

	return cstate
}

// DecodeState reconstructs the cube from the 11-byte firmware state
// format. The cube is left unchanged when the payload does not describe
// a reachable state.
func (c *Cube) DecodeState(cstate []byte) error {
	if len(cstate) < StateSize {
		return fmt.Errorf("%w: state needs %d bytes, got %d", ErrShortRead, StateSize, len(cstate))
	}

	// Edge permutation rank and orientation bits.
	r := int(cstate[0]) | int(cstate[1])<<8 | int(cstate[2])<<16 | int(cstate[3]&0x1F)<<24
	edgeOrient := int(cstate[3])>>5 | int(cstate[4])<<3 | int(cstate[5]&0x1)<<11
	edgePerm := decodePerm(r, 12)

	// Corner permutation rank and orientation trits.
	r = int(cstate[5])>>1 | int(cstate[6])<<7 | int(cstate[7]&0x1)<<15
	cornerPerm := decodePerm(r, 8)
	cornerOrient := int(cstate[7])>>1 | int(cstate[8]&0x3F)<<7

	// Reported face position must be the reference orientation.
	pos := int(cstate[8])>>6 | int(cstate[9]&0x7)<<2
	if pos != 0 {
		return ErrInvalidState
	}

	var state [54]Facelet
	for i := range state {
		state[i] = Facelet(i)
	}

	for i := 11; i >= 0; i-- {
		orient := edgeOrient & 0x1
		for o := 0; o < 2; o++ {
			state[edgePairs[i][o]] = edgePairs[edgePerm[i]][orient]
			orient ^= 0x1
		}
		edgeOrient >>= 1
	}

	for i := 7; i >= 0; i-- {
		orient := cornerOrient % 3
		for o := 0; o < 3; o++ {
			state[cornerSets[i][o]] = cornerSets[cornerPerm[i]][orient]
			orient = (orient + 1) % 3
		}
		cornerOrient /= 3
	}

	// Every facelet must appear exactly once; the identity sums to 1431.
	sum := 0
	for _, f := range state {
		sum += int(f)
	}
	if sum != 1431 {
		return ErrInvalidState
	}

	c.state = state
	return nil
}

// encodePerm returns the lexicographic rank of a permutation, or -1 if
// the input is not a permutation of 0..n-1.
func encodePerm(a []int) int {
	n := len(a)
	bits64 := uint64(0)
	r := 0
	for i := 0; i < n; i++ {
		bits64 |= 1 << a[i]
		low := (uint64(1)<<a[i] - 1) & bits64
		r = r*(n-i) + a[i] - bits.OnesCount64(low)
	}
	if bits64+1 != 1<<n {
		return -1
	}
	return r
}

// decodePerm is the inverse of encodePerm.
func decodePerm(lex, n int) []int {
	a := make([]int, n)
	for i := n - 2; i >= 0; i-- {
		a[i] = lex % (n - i)
		lex /= n - i
		for j := i + 1; j < n; j++ {
			if a[j] >= a[i] {
				a[j]++
			}
		}
	}
	return a
}
