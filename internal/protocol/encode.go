package protocol

import (
	"errors"
	"fmt"
)

// ErrTooManyInstructions reports an instruction list over the queue limit.
var ErrTooManyInstructions = errors.New("protocol: instruction queue limit exceeded")

// SolvedState is the packed state of a solved cube, written to the cube
// state characteristic to reset it.
var SolvedState = [11]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 8, 0}

// EncodeInstructions packs move indices for the instructions
// characteristic. An empty list clears the queue and returns control to
// the internal solver. With append set, the moves extend the current
// queue instead of replacing it.
func EncodeInstructions(moves []byte, appendQueue bool) ([]byte, error) {
	if len(moves) > MaxInstructions {
		return nil, fmt.Errorf("%w: %d moves, limit %d", ErrTooManyInstructions, len(moves), MaxInstructions)
	}
	if len(moves) == 0 {
		return []byte{0x00, 0xFF}, nil
	}

	data := make([]byte, 1, 1+(len(moves)+1)/2)
	data[0] = byte(len(moves))
	if appendQueue {
		data[0] |= 0x80
	}
	for i, m := range moves {
		if i%2 == 0 {
			data = append(data, m&0xF)
		} else {
			data[len(data)-1] |= m & 0xF << 4
		}
	}
	if len(moves)&0x1 != 0 {
		data[len(data)-1] |= 0xF0
	}
	return data, nil
}

// EncodeMatch packs a match payload for the match state characteristic.
// The packed pattern follows a single enable byte.
func EncodeMatch(pattern [18]byte, enable bool) []byte {
	data := make([]byte, 19)
	if enable {
		data[0] = 1
	}
	copy(data[1:], pattern[:])
	return data
}

// MatchEnable re-arms the match notification; it disarms itself after
// each match.
func MatchEnable() []byte { return []byte{1} }

// MatchDisable stops the match from firing.
func MatchDisable() []byte { return []byte{0} }

// Action characteristic commands.

// SoftwareReset reboots the cube.
func SoftwareReset() []byte { return []byte{0x04, 0x00, 0x34, 0x12, 0x45} }

// PlaySound plays one of the cube's 8 sounds.
func PlaySound(sel int) []byte { return []byte{0x06, byte(sel) & 0x7} }

// Prompt flashes the face LEDs with one of 6 flash patterns.
func Prompt(index int) []byte { return []byte{0x07, byte(index % 6)} }

// FlashAll flashes all the LEDs.
func FlashAll() []byte { return []byte{0x07, 0x06} }

// EnablePattern starts instructions for a built-in pattern; the cube
// must be solved for the pattern to engage.
func EnablePattern(index int) []byte { return []byte{0x08, byte(index)} }

// HintsOn turns solving hints back on.
func HintsOn() []byte { return []byte{0x09, 0x00} }

// HintsOff turns solving hints off until the next solve.
func HintsOff() []byte { return []byte{0x0A, 0x00} }

// SendHint lights up one of the 6 faces as a hint.
func SendHint(face int) []byte { return []byte{0x0B, byte(face)} }

// LightLED lights a single LED by index.
func LightLED(index int) []byte { return []byte{0x0D, byte(index)} }

// LEDOff turns all LEDs off.
func LEDOff() []byte { return LightLED(36) }

// Config characteristic bits.
const (
	configSoundMajor = 0x08
	configSoundMinor = 0x10
	configSoundMask  = 0xE7
)

// SoundConfig updates the sound bits of a config byte, preserving the
// remaining settings.
func SoundConfig(current byte, major, minor bool) byte {
	out := current & configSoundMask
	if major {
		out |= configSoundMajor
	}
	if minor {
		out |= configSoundMinor
	}
	return out
}
