package protocol

import (
	"errors"
	"fmt"
	"time"
)

// ErrShortPayload reports a characteristic read shorter than its format.
var ErrShortPayload = errors.New("protocol: characteristic payload too short")

// Version holds the decoded version characteristic.
type Version struct {
	Major int
	Minor int

	BatteryOK    bool // battery voltage in range
	Motion       bool // motion detection enabled
	Full6        bool // FULL6 move reporting
	CustomConfig bool // non-default configuration active
	Hints        bool // hints currently on

	DisconnectReason string // last BLE disconnect, "" if none known
}

func (v *Version) String() string {
	return fmt.Sprintf("v%d.%d", v.Major, v.Minor)
}

// DecodeVersion decodes the version characteristic.
func DecodeVersion(data []byte) (*Version, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: version needs 4 bytes, got %d", ErrShortPayload, len(data))
	}
	v := &Version{
		Major:        int(data[1]),
		Minor:        int(data[0]),
		BatteryOK:    data[2]&0x02 != 0,
		Motion:       data[2]&0x04 != 0,
		Full6:        data[2]&0x08 != 0,
		CustomConfig: data[2]&0x10 != 0,
		Hints:        data[2]&0x20 == 0,
	}
	if reason, ok := DisconnectReasons[data[3]]; ok {
		v.DisconnectReason = reason
	} else if data[3] != 0 {
		v.DisconnectReason = fmt.Sprintf("code 0x%02x", data[3])
	}
	return v, nil
}

// Battery holds the decoded battery characteristic.
type Battery struct {
	Capacity int     // 0-100 percent
	Voltage  float64 // volts
	Charging bool
}

// DecodeBattery decodes the battery characteristic. Voltage is reported
// in unsigned 4.9 fixed point.
func DecodeBattery(data []byte) (*Battery, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: battery needs 2 bytes, got %d", ErrShortPayload, len(data))
	}
	voltage := float64(int(data[0])|int(data[1]&0xF)<<8) / 512.0
	return &Battery{
		Capacity: batteryCapacity(voltage),
		Voltage:  voltage,
		Charging: data[1]&0x10 != 0,
	}, nil
}

// Battery discharge curve for the cube's lithium cell.
var batteryCurve = []struct {
	volts    float64
	capacity float64
}{
	{3.0, 0.0}, {3.1, 0.01}, {3.2, 0.03}, {3.3, 0.04}, {3.4, 0.05},
	{3.5, 0.1}, {3.6, 0.18}, {3.7, 0.35}, {3.8, 0.65}, {3.9, 0.8},
	{4.0, 0.9}, {4.1, 0.95}, {4.2, 1.0},
}

// batteryCapacity interpolates the discharge curve to a 0-100 percent
// capacity estimate.
func batteryCapacity(voltage float64) int {
	last := len(batteryCurve) - 1
	switch {
	case voltage < batteryCurve[0].volts:
		return int(batteryCurve[0].capacity * 100)
	case voltage >= batteryCurve[last].volts:
		return int(batteryCurve[last].capacity * 100)
	}
	for i := 0; i < last; i++ {
		v0, v1 := batteryCurve[i].volts, batteryCurve[i+1].volts
		if voltage >= v0 && voltage < v1 {
			c0, c1 := batteryCurve[i].capacity, batteryCurve[i+1].capacity
			return int(((c1-c0)/(v1-v0)*(voltage-v0) + c0) * 100)
		}
	}
	return 0
}

// Accel holds a decoded accelerometer reading.
type Accel struct {
	Vector [3]float64 // acceleration in g
	FaceUp string     // color name of the face pointing up
}

// Color pairs per accelerometer axis; the second entry of each pair is
// up when the axis reads positive.
var accelFacePairs = [3][2]string{
	{"White", "Yellow"},
	{"Orange", "Red"},
	{"Blue", "Green"},
}

// DecodeAccel decodes the accelerometer characteristic: three signed
// bytes scaled to +/-2g. The up face follows the dominant axis.
func DecodeAccel(data []byte) (*Accel, error) {
	if len(data) < 3 {
		return nil, fmt.Errorf("%w: accel needs 3 bytes, got %d", ErrShortPayload, len(data))
	}
	a := &Accel{}
	maxIdx := 0
	for i := 0; i < 3; i++ {
		a.Vector[i] = float64(int8(data[i])) * 2.0 / 128.0
		if abs(a.Vector[i]) > abs(a.Vector[maxIdx]) {
			maxIdx = i
		}
	}
	if a.Vector[maxIdx] >= 0 {
		a.FaceUp = accelFacePairs[maxIdx][1]
	} else {
		a.FaceUp = accelFacePairs[maxIdx][0]
	}
	return a, nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// StatusEvent is one entry from the status characteristic.
type StatusEvent struct {
	Solution         bool // solving progress changed
	Move             bool // a move was made
	Match            bool // registered match pattern reached
	DoubleTap        bool
	InstructionEmpty bool // instruction queue drained
	InstructionMax   bool // instruction queue full

	SolutionPhase int // layer-by-layer progress index, valid with Solution
	NumCorrect    int // correct pieces within the phase, valid with Solution

	Seq       uint8
	Timestamp time.Duration
}

// DecodeStatus decodes the status characteristic, which holds up to four
// recent events, most recent first. Empty slots are skipped.
func DecodeStatus(data []byte) ([]StatusEvent, error) {
	if len(data) < 21 {
		return nil, fmt.Errorf("%w: status needs 21 bytes, got %d", ErrShortPayload, len(data))
	}
	var events []StatusEvent
	for slot := 0; slot < 4; slot++ {
		if ev, ok := decodeStatusSlot(data[slot*5+1 : slot*5+6]); ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

func decodeStatusSlot(b []byte) (StatusEvent, bool) {
	if b[0] == 0 {
		return StatusEvent{}, false
	}
	ev := StatusEvent{
		Solution:         b[0]&0x01 != 0,
		Move:             b[0]&0x02 != 0,
		Match:            b[0]&0x04 != 0,
		DoubleTap:        b[0]&0x08 != 0,
		InstructionEmpty: b[0]&0x10 != 0,
		InstructionMax:   b[0]&0x20 != 0,
		Seq:              b[2],
		Timestamp:        Ticks(int(b[3]) | int(b[4])<<8),
	}
	if ev.Solution {
		ev.NumCorrect = int(b[1] & 0x3)
		ev.SolutionPhase = int(b[1]>>2) & 0x7
	}
	return ev, true
}

// CubeState is the decoded cube state characteristic: the packed piece
// state plus the most recent moves.
type CubeState struct {
	State     [11]byte // packed permutation state
	Seq       uint8
	Moves     []byte // firmware move indices, oldest first
	Timestamp time.Duration
}

// DecodeCubeState decodes the cube state characteristic. The payload
// carries the 11-byte packed state, a sequence number, up to 18
// nibble-packed moves and a 16-bit timestamp.
func DecodeCubeState(data []byte) (*CubeState, error) {
	if len(data) < 23 {
		return nil, fmt.Errorf("%w: cube state needs 23 bytes, got %d", ErrShortPayload, len(data))
	}
	cs := &CubeState{
		Seq:       data[11],
		Moves:     unpackMoves(data[12:21]),
		Timestamp: Ticks(int(data[21]) | int(data[22])<<8),
	}
	copy(cs.State[:], data[:11])
	return cs, nil
}

// MoveHistory is the decoded moves characteristic: up to the last 40
// moves reported by the cube.
type MoveHistory struct {
	Seq       uint8
	Moves     []byte // firmware move indices, oldest first
	Timestamp time.Duration
}

// DecodeMoves decodes the moves characteristic.
func DecodeMoves(data []byte) (*MoveHistory, error) {
	if len(data) < 23 {
		return nil, fmt.Errorf("%w: moves needs 23 bytes, got %d", ErrShortPayload, len(data))
	}
	return &MoveHistory{
		Seq:       data[0],
		Moves:     unpackMoves(data[1:21]),
		Timestamp: Ticks(int(data[21]) | int(data[22])<<8),
	}, nil
}

// TrimMoves drops all but the moves recorded after prevSeq, given the
// sequence number that accompanied the list.
func TrimMoves(moves []byte, seq, prevSeq uint8) []byte {
	n := int(seq-prevSeq) % 256
	if n < len(moves) {
		return moves[len(moves)-n:]
	}
	return moves
}

// unpackMoves expands nibble-packed move indices, low nibble first.
// 0xF marks an empty slot.
func unpackMoves(data []byte) []byte {
	var moves []byte
	for _, b := range data {
		if v := b & 0xF; v != 0xF {
			moves = append(moves, v)
		}
		if v := b >> 4 & 0xF; v != 0xF {
			moves = append(moves, v)
		}
	}
	return moves
}

// DecodeInstructions decodes the queued instruction list. Hint markers
// (0x6 and 0x7) consume the following nibble and are dropped.
func DecodeInstructions(data []byte) ([]byte, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("%w: instructions needs a count byte", ErrShortPayload)
	}
	count := int(data[0])
	var moves []byte
	skip := false
	index := 1
	for i := 0; i < count; i++ {
		if index >= len(data) {
			break
		}
		var v byte
		if i&0x1 != 0 {
			v = data[index] >> 4 & 0xF
			index++
		} else {
			v = data[index] & 0xF
		}
		switch {
		case skip:
			skip = false
		case v == 0x6 || v == 0x7:
			skip = true
		default:
			moves = append(moves, v)
		}
	}
	return moves, nil
}

// Ticks converts a cube timestamp in 1/512 s ticks to a Duration.
func Ticks(n int) time.Duration {
	return time.Duration(n) * time.Second / TickRate
}
