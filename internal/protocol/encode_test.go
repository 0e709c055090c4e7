package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeInstructions(t *testing.T) {
	data, err := EncodeInstructions([]byte{1, 2, 3}, false)
	if err != nil {
		t.Fatalf("EncodeInstructions: %v", err)
	}
	if !bytes.Equal(data, []byte{0x03, 0x21, 0xF3}) {
		t.Errorf("data = % x, want 03 21 f3", data)
	}
}

func TestEncodeInstructionsEmpty(t *testing.T) {
	data, err := EncodeInstructions(nil, false)
	if err != nil {
		t.Fatalf("EncodeInstructions: %v", err)
	}
	if !bytes.Equal(data, []byte{0x00, 0xFF}) {
		t.Errorf("data = % x, want 00 ff", data)
	}
}

func TestEncodeInstructionsAppend(t *testing.T) {
	data, err := EncodeInstructions([]byte{5}, true)
	if err != nil {
		t.Fatalf("EncodeInstructions: %v", err)
	}
	if !bytes.Equal(data, []byte{0x81, 0xF5}) {
		t.Errorf("data = % x, want 81 f5", data)
	}
}

func TestEncodeInstructionsLimit(t *testing.T) {
	moves := make([]byte, MaxInstructions)
	if _, err := EncodeInstructions(moves, false); err != nil {
		t.Errorf("EncodeInstructions at the limit: %v", err)
	}

	moves = append(moves, 0)
	if _, err := EncodeInstructions(moves, false); !errors.Is(err, ErrTooManyInstructions) {
		t.Errorf("got %v, want ErrTooManyInstructions", err)
	}
}

func TestInstructionsRoundtrip(t *testing.T) {
	moves := []byte{0, 5, 8, 13, 2}
	data, err := EncodeInstructions(moves, false)
	if err != nil {
		t.Fatalf("EncodeInstructions: %v", err)
	}
	got, err := DecodeInstructions(data)
	if err != nil {
		t.Fatalf("DecodeInstructions: %v", err)
	}
	if !bytes.Equal(got, moves) {
		t.Errorf("roundtrip = %v, want %v", got, moves)
	}
}

func TestEncodeMatch(t *testing.T) {
	var pattern [18]byte
	pattern[0] = 0xAB
	pattern[17] = 0xCD

	data := EncodeMatch(pattern, true)
	if len(data) != 19 {
		t.Fatalf("len = %d, want 19", len(data))
	}
	if data[0] != 1 {
		t.Errorf("enable byte = %d, want 1", data[0])
	}
	if data[1] != 0xAB || data[18] != 0xCD {
		t.Errorf("pattern bytes not copied: % x", data)
	}

	if data = EncodeMatch(pattern, false); data[0] != 0 {
		t.Errorf("enable byte = %d, want 0", data[0])
	}
}

func TestMatchEnableDisable(t *testing.T) {
	if !bytes.Equal(MatchEnable(), []byte{1}) {
		t.Errorf("MatchEnable() = % x", MatchEnable())
	}
	if !bytes.Equal(MatchDisable(), []byte{0}) {
		t.Errorf("MatchDisable() = % x", MatchDisable())
	}
}

func TestActionCommands(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"SoftwareReset", SoftwareReset(), []byte{0x04, 0x00, 0x34, 0x12, 0x45}},
		{"PlaySound", PlaySound(3), []byte{0x06, 0x03}},
		{"PlaySoundWraps", PlaySound(9), []byte{0x06, 0x01}},
		{"Prompt", Prompt(2), []byte{0x07, 0x02}},
		{"PromptWraps", Prompt(7), []byte{0x07, 0x01}},
		{"FlashAll", FlashAll(), []byte{0x07, 0x06}},
		{"EnablePattern", EnablePattern(4), []byte{0x08, 0x04}},
		{"HintsOn", HintsOn(), []byte{0x09, 0x00}},
		{"HintsOff", HintsOff(), []byte{0x0A, 0x00}},
		{"SendHint", SendHint(5), []byte{0x0B, 0x05}},
		{"LightLED", LightLED(12), []byte{0x0D, 0x0C}},
		{"LEDOff", LEDOff(), []byte{0x0D, 0x24}},
	}
	for _, tt := range tests {
		if !bytes.Equal(tt.got, tt.want) {
			t.Errorf("%s = % x, want % x", tt.name, tt.got, tt.want)
		}
	}
}

func TestSoundConfig(t *testing.T) {
	if got := SoundConfig(0x00, true, false); got != 0x08 {
		t.Errorf("major only = %#02x, want 0x08", got)
	}
	if got := SoundConfig(0x00, false, true); got != 0x10 {
		t.Errorf("minor only = %#02x, want 0x10", got)
	}
	if got := SoundConfig(0xFF, false, false); got != 0xE7 {
		t.Errorf("sounds off preserves other bits: got %#02x, want 0xe7", got)
	}
	if got := SoundConfig(0xE7, true, true); got != 0xFF {
		t.Errorf("both on = %#02x, want 0xff", got)
	}
}
