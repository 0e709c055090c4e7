// Package protocol implements the HEYKUBE BLE characteristic formats.
//
// The cube exposes a single GATT service with characteristics for state,
// moves, status events, pattern matching, instruction queueing and
// device control. All decoding here works on raw characteristic
// payloads; move values are firmware indices (faces 0-5 in ULFRBD
// order, bit 3 for counter-clockwise).
package protocol

// ServiceUUID is the HEYKUBE GATT service.
const ServiceUUID = "b46a791a-8273-4fc1-9e67-94d3dc2aac1c"

// Characteristic UUIDs within the HEYKUBE service.
const (
	VersionUUID      = "5b9009f6-03bf-41aa-87fc-582d8b2bd6b9"
	BatteryUUID      = "fd51b3ba-99c7-49c6-9f85-5644ff56a378"
	ConfigUUID       = "f0ac8d24-6daf-4f47-9953-fd921da215e1"
	CubeStateUUID    = "a2f41a4e-0e31-4bbc-9389-4253475481fb"
	StatusUUID       = "9bbc2d67-0ba7-4440-aedf-08fb019687f9"
	MatchStateUUID   = "982af399-ef78-4eff-b24d-2e1a01aa9f13"
	InstructionsUUID = "1379570d-86c6-45a4-8778-f552e7feb290"
	ActionUUID       = "e06da2b8-c643-42b1-895b-a5acbbf30afd"
	AccelUUID        = "272a1fe9-058b-402b-8298-7fec5ce7473e"
	MovesUUID        = "f2ff5401-2bc0-415b-a2f1-6549d6ca0ad8"
)

// DeviceNamePrefix identifies HEYKUBE devices during scanning.
const DeviceNamePrefix = "HEYKUBE"

// TickRate is the cube's timestamp resolution in ticks per second.
const TickRate = 512

// MaxInstructions is the firmware's instruction queue capacity.
const MaxInstructions = 52

// DisconnectReasons maps BLE disconnect codes reported in the version
// characteristic to their meaning.
var DisconnectReasons = map[byte]string{
	0x13: "Remote User Terminated Connection",
	0x10: "Connection Accept Timeout Exceeded",
	0x08: "Connection timeout",
}
