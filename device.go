package heykube

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mtouzot/heykube/internal/ble"
	"github.com/mtouzot/heykube/internal/protocol"
)

// Device represents a discovered HEYKUBE device.
// Devices are returned by the Scan function and can be passed to Connect.
type Device struct {
	Name    string // Device name (e.g., "HEYKUBE_XXXX")
	UUID    string // Device UUID for connection
	RSSI    int16  // Signal strength in dBm (higher = stronger, typical range -30 to -90)
	address interface{}
}

// VersionInfo describes the cube firmware and its feature flags.
type VersionInfo struct {
	Major int
	Minor int

	BatteryOK    bool // battery voltage in range
	Motion       bool // motion detection enabled
	Full6        bool // FULL6 move reporting
	CustomConfig bool // non-default configuration active
	Hints        bool // hints currently on

	DisconnectReason string // last BLE disconnect, "" if none known
}

// String returns the firmware version as "vMAJOR.MINOR".
func (v VersionInfo) String() string {
	return (&protocol.Version{Major: v.Major, Minor: v.Minor}).String()
}

// BatteryStatus is a battery reading from the cube.
type BatteryStatus struct {
	Capacity int     // 0-100 percent
	Voltage  float64 // volts
	Charging bool
}

// Orientation is an accelerometer reading: which face points up and the
// raw acceleration vector in g.
type Orientation struct {
	FaceUp Color
	Vector [3]float64
}

// Status is a single event from the cube's status notifications.
type Status struct {
	Solution         bool // solving progress changed
	Move             bool // a move was made
	Match            bool // registered match pattern reached
	DoubleTap        bool
	InstructionEmpty bool // instruction queue drained
	InstructionMax   bool // instruction queue full

	Phase      Phase // valid when Solution is set
	NumCorrect int   // correct pieces within the phase

	Seq       uint8
	Timestamp time.Duration // cube clock, 1/512 s resolution
}

// HEYKUBE represents a connected HEYKUBE smart cube.
// It wraps the BLE connection and provides a clean callback-based API.
//
// Create one with Connect or ConnectFirst:
//
//	cube, err := heykube.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cube.Close()
//
//	cube.OnMove(func(m heykube.Move) {
//	    fmt.Println("Move:", m.Notation())
//	})
//
// HEYKUBE maintains an internal Cube that mirrors the physical cube.
// Access it with the Cube() method.
type HEYKUBE struct {
	client *ble.Client
	device Device

	mu          sync.RWMutex
	cube        *Cube
	moveHistory []Move
	seq         uint8
	statusSeq   uint8
	haveSeq     bool
	clock       time.Duration
	config      *config

	// Callbacks
	onMove             func(Move)
	onPhaseChange      func(Phase, int)
	onSolved           func()
	onMatch            func()
	onDoubleTap        func()
	onInstructionEmpty func()
}

// Scan discovers nearby HEYKUBE devices via Bluetooth Low Energy.
// Returns all devices found within the timeout period.
//
// Typical usage:
//
//	devices, err := heykube.Scan(ctx, 10*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range devices {
//	    fmt.Printf("Found: %s (RSSI: %d)\n", d.Name, d.RSSI)
//	}
//
// Note: make sure the cube is not connected to another device
// (e.g., the phone app) or it will not advertise.
func Scan(ctx context.Context, timeout time.Duration) ([]Device, error) {
	cfg := defaultConfig()
	client, err := ble.NewClient(cfg.logger)
	if err != nil {
		return nil, err
	}
	defer client.Disconnect()

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, len(results))
	for i, r := range results {
		devices[i] = Device{
			Name:    r.Name,
			UUID:    r.UUID,
			RSSI:    r.RSSI,
			address: r.Address,
		}
	}

	return devices, nil
}

// Connect connects to a specific HEYKUBE device.
func Connect(ctx context.Context, device Device, opts ...Option) (*HEYKUBE, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := ble.NewClient(cfg.logger)
	if err != nil {
		return nil, err
	}

	if err := client.Connect(ctx, device.UUID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConnectionFailed, err)
	}

	h := &HEYKUBE{
		client:      client,
		device:      device,
		cube:        NewCube(),
		moveHistory: make([]Move, 0),
		config:      cfg,
	}

	client.SetNotifyCallback(h.handleNotify)

	// Arm status notifications for the requested events.
	if err := client.Write(ble.Status, []byte{cfg.statusMask}); err != nil {
		cfg.logger.Warn().Err(err).Msg("status event arming failed")
	}

	// Sync the local cube with the physical one.
	if _, err := h.ReadCubeState(); err != nil {
		cfg.logger.Warn().Err(err).Msg("initial state read failed")
	}

	return h, nil
}

// ConnectFirst scans and connects to the first HEYKUBE found.
// This is a convenience function for quick prototyping and single-cube
// setups.
//
// It performs a 10-second scan and connects to the first device
// discovered. For setups with multiple cubes, use Scan and Connect
// separately.
func ConnectFirst(ctx context.Context, opts ...Option) (*HEYKUBE, error) {
	devices, err := Scan(ctx, 10*time.Second)
	if err != nil {
		return nil, err
	}

	if len(devices) == 0 {
		return nil, ErrDeviceNotFound
	}

	return Connect(ctx, devices[0], opts...)
}

// Close disconnects from the cube and cleans up resources.
func (h *HEYKUBE) Close() error {
	return h.client.Disconnect()
}

// IsConnected returns true if still connected to the cube.
func (h *HEYKUBE) IsConnected() bool {
	return h.client.IsConnected()
}

// DeviceName returns the connected device name.
func (h *HEYKUBE) DeviceName() string {
	return h.client.DeviceName()
}

// Event callbacks

// OnMove sets a callback that fires for each move detected.
func (h *HEYKUBE) OnMove(cb func(Move)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMove = cb
}

// OnPhaseChange sets a callback that fires when the cube reports solving
// progress. It receives the phase and the number of correct pieces
// within it.
func (h *HEYKUBE) OnPhaseChange(cb func(Phase, int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPhaseChange = cb
}

// OnSolved sets a callback that fires when the cube reaches the solved
// state.
func (h *HEYKUBE) OnSolved(cb func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSolved = cb
}

// OnMatch sets a callback that fires when a registered match pattern is
// reached. The match disarms after firing; call EnableMatch to re-arm.
func (h *HEYKUBE) OnMatch(cb func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMatch = cb
}

// OnDoubleTap sets a callback for double-tap gestures on the cube.
func (h *HEYKUBE) OnDoubleTap(cb func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDoubleTap = cb
}

// OnInstructionEmpty sets a callback that fires when the instruction
// queue drains.
func (h *HEYKUBE) OnInstructionEmpty(cb func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onInstructionEmpty = cb
}

// State access

// Cube returns a copy of the internal cube state.
func (h *HEYKUBE) Cube() *Cube {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cube.Clone()
}

// IsSolved returns true if the internal cube state is solved.
func (h *HEYKUBE) IsSolved() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cube.IsSolved()
}

// Moves returns the move history since connection or last clear.
func (h *HEYKUBE) Moves() []Move {
	h.mu.RLock()
	defer h.mu.RUnlock()
	result := make([]Move, len(h.moveHistory))
	copy(result, h.moveHistory)
	return result
}

// ClearHistory clears the move history.
func (h *HEYKUBE) ClearHistory() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.moveHistory = h.moveHistory[:0]
}

// SeqNum returns the last move sequence number reported by the cube.
func (h *HEYKUBE) SeqNum() uint8 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.seq
}

// Timestamp returns the cube clock from the last state or moves read.
// The clock has 1/512 s resolution and wraps every two minutes.
func (h *HEYKUBE) Timestamp() time.Duration {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clock
}

// Reads

// ReadVersion reads the firmware version and feature flags.
func (h *HEYKUBE) ReadVersion() (*VersionInfo, error) {
	data, err := h.client.Read(ble.Version)
	if err != nil {
		return nil, err
	}
	v, err := protocol.DecodeVersion(data)
	if err != nil {
		return nil, err
	}
	return &VersionInfo{
		Major:            v.Major,
		Minor:            v.Minor,
		BatteryOK:        v.BatteryOK,
		Motion:           v.Motion,
		Full6:            v.Full6,
		CustomConfig:     v.CustomConfig,
		Hints:            v.Hints,
		DisconnectReason: v.DisconnectReason,
	}, nil
}

// ReadBattery reads the battery capacity, voltage and charge state.
func (h *HEYKUBE) ReadBattery() (*BatteryStatus, error) {
	data, err := h.client.Read(ble.Battery)
	if err != nil {
		return nil, err
	}
	b, err := protocol.DecodeBattery(data)
	if err != nil {
		return nil, err
	}
	return &BatteryStatus{
		Capacity: b.Capacity,
		Voltage:  b.Voltage,
		Charging: b.Charging,
	}, nil
}

// ReadOrientation reads the accelerometer and reports which face is up.
func (h *HEYKUBE) ReadOrientation() (*Orientation, error) {
	data, err := h.client.Read(ble.Accel)
	if err != nil {
		return nil, err
	}
	a, err := protocol.DecodeAccel(data)
	if err != nil {
		return nil, err
	}
	face, _ := ParseColor(a.FaceUp)
	return &Orientation{FaceUp: face, Vector: a.Vector}, nil
}

// ReadStatus reads the last few status events, most recent first.
func (h *HEYKUBE) ReadStatus() ([]Status, error) {
	data, err := h.client.Read(ble.Status)
	if err != nil {
		return nil, err
	}
	events, err := protocol.DecodeStatus(data)
	if err != nil {
		return nil, err
	}
	out := make([]Status, len(events))
	for i, ev := range events {
		out[i] = statusFromEvent(ev)
	}
	return out, nil
}

// ReadLastStatus reads the most recent status event, or nil when the
// cube has nothing to report.
func (h *HEYKUBE) ReadLastStatus() (*Status, error) {
	events, err := h.ReadStatus()
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

// ReadCubeState reads the full cube state and syncs the internal cube.
// It returns the moves made since the previous sync.
func (h *HEYKUBE) ReadCubeState() ([]Move, error) {
	data, err := h.client.Read(ble.CubeState)
	if err != nil {
		return nil, err
	}
	return h.applyCubeState(data, false)
}

// ReadMoves reads up to the last 40 moves from the cube.
func (h *HEYKUBE) ReadMoves() ([]Move, error) {
	data, err := h.client.Read(ble.Moves)
	if err != nil {
		return nil, err
	}
	hist, err := protocol.DecodeMoves(data)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	indices := hist.Moves
	if h.haveSeq {
		indices = protocol.TrimMoves(indices, hist.Seq, h.seq)
	}
	h.seq = hist.Seq
	h.haveSeq = true
	h.clock = hist.Timestamp
	h.mu.Unlock()

	return movesFromIndices(indices, time.Time{}), nil
}

// ReadInstructions reads the queued instruction moves.
func (h *HEYKUBE) ReadInstructions() ([]Move, error) {
	data, err := h.client.Read(ble.Instructions)
	if err != nil {
		return nil, err
	}
	indices, err := protocol.DecodeInstructions(data)
	if err != nil {
		return nil, err
	}
	return movesFromIndices(indices, time.Time{}), nil
}

// Writes

// Reset writes the solved state to the cube and resets the internal
// state. The physical stickers are of course unaffected; this rebases
// what the cube considers solved.
func (h *HEYKUBE) Reset() error {
	if err := h.client.Write(ble.CubeState, protocol.SolvedState[:]); err != nil {
		return err
	}
	h.mu.Lock()
	h.cube.Reset()
	h.moveHistory = h.moveHistory[:0]
	h.mu.Unlock()

	// Re-sync sequence numbers.
	_, err := h.ReadCubeState()
	return err
}

// WriteInstructions replaces the instruction queue. The cube lights
// guide the user through the moves. An empty list clears the queue.
func (h *HEYKUBE) WriteInstructions(moves []Move) error {
	data, err := encodeInstructionMoves(moves, false)
	if err != nil {
		return err
	}
	return h.client.Write(ble.Instructions, data)
}

// AppendInstructions extends the instruction queue.
func (h *HEYKUBE) AppendInstructions(moves []Move) error {
	data, err := encodeInstructionMoves(moves, true)
	if err != nil {
		return err
	}
	return h.client.Write(ble.Instructions, data)
}

func encodeInstructionMoves(moves []Move, appendQueue bool) ([]byte, error) {
	data, err := protocol.EncodeInstructions(indicesFromMoves(moves), appendQueue)
	if errors.Is(err, protocol.ErrTooManyInstructions) {
		return nil, fmt.Errorf("%w: %d moves, limit %d", ErrTooManyMoves, len(moves), protocol.MaxInstructions)
	}
	return data, err
}

// ClearInstructions clears the queue, returning control to the internal
// solver.
func (h *HEYKUBE) ClearInstructions() error {
	return h.WriteInstructions(nil)
}

// WriteMatch registers a match pattern and arms the notification.
func (h *HEYKUBE) WriteMatch(m *Match) error {
	return h.client.Write(ble.MatchState, protocol.EncodeMatch(m.Encode(), true))
}

// EnableMatch re-arms the match notification.
func (h *HEYKUBE) EnableMatch() error {
	return h.client.Write(ble.MatchState, protocol.MatchEnable())
}

// DisableMatch disarms the match notification.
func (h *HEYKUBE) DisableMatch() error {
	return h.client.Write(ble.MatchState, protocol.MatchDisable())
}

// EnablePattern starts guided instructions for a built-in pattern.
// The cube must be solved for the pattern to engage.
func (h *HEYKUBE) EnablePattern(p Pattern) error {
	return h.client.Write(ble.Action, protocol.EnablePattern(int(p)))
}

// PlaySound plays one of the cube's sounds (0-7).
func (h *HEYKUBE) PlaySound(sel int) error {
	return h.client.Write(ble.Action, protocol.PlaySound(sel))
}

// SendPrompt flashes the face LEDs with one of 6 flash patterns.
func (h *HEYKUBE) SendPrompt(index int) error {
	return h.client.Write(ble.Action, protocol.Prompt(index))
}

// FlashAllLights flashes all LEDs on the cube.
func (h *HEYKUBE) FlashAllLights() error {
	return h.client.Write(ble.Action, protocol.FlashAll())
}

// SendHint lights up a face as a solving hint.
func (h *HEYKUBE) SendHint(face Face) error {
	return h.client.Write(ble.Action, protocol.SendHint(int(face)))
}

// LightLED lights a single LED by index.
func (h *HEYKUBE) LightLED(index int) error {
	return h.client.Write(ble.Action, protocol.LightLED(index))
}

// TurnOffLEDs turns all LEDs off.
func (h *HEYKUBE) TurnOffLEDs() error {
	return h.client.Write(ble.Action, protocol.LEDOff())
}

// TurnHintsOn turns solving hints back on.
func (h *HEYKUBE) TurnHintsOn() error {
	return h.client.Write(ble.Action, protocol.HintsOn())
}

// TurnHintsOff turns hints off; they return once the cube is solved.
func (h *HEYKUBE) TurnHintsOff() error {
	return h.client.Write(ble.Action, protocol.HintsOff())
}

// EnableSounds selects which tones the cube plays during the session.
func (h *HEYKUBE) EnableSounds(major, minor bool) error {
	data, err := h.client.Read(ble.Config)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return ErrShortRead
	}
	return h.client.Write(ble.Config, []byte{protocol.SoundConfig(data[0], major, minor)})
}

// DisableSounds silences the cube for this session.
func (h *HEYKUBE) DisableSounds() error {
	return h.EnableSounds(false, false)
}

// SoftwareReset reboots the cube. The BLE connection drops.
func (h *HEYKUBE) SoftwareReset() error {
	return h.client.Write(ble.Action, protocol.SoftwareReset())
}

// Internal notification handling

func (h *HEYKUBE) handleNotify(char ble.Characteristic, data []byte) {
	switch char {
	case ble.CubeState:
		h.applyCubeState(data, true)
	case ble.Status:
		h.handleStatus(data)
	}
}

// applyCubeState decodes a cube state payload, updates the internal
// cube, and fires move callbacks when fromNotify is set.
func (h *HEYKUBE) applyCubeState(data []byte, fromNotify bool) ([]Move, error) {
	cs, err := protocol.DecodeCubeState(data)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	if err := h.cube.DecodeState(cs.State[:]); err != nil {
		h.mu.Unlock()
		return nil, err
	}

	indices := cs.Moves
	if h.haveSeq {
		indices = protocol.TrimMoves(indices, cs.Seq, h.seq)
	} else {
		indices = nil
	}
	h.seq = cs.Seq
	h.haveSeq = true
	h.clock = cs.Timestamp

	moves := movesFromIndices(indices, time.Now())
	if h.config.moveHistory {
		h.moveHistory = append(h.moveHistory, moves...)
	}
	moveCallback := h.onMove
	h.mu.Unlock()

	if fromNotify && moveCallback != nil {
		for _, m := range moves {
			moveCallback(m)
		}
	}
	return moves, nil
}

func (h *HEYKUBE) handleStatus(data []byte) {
	events, err := protocol.DecodeStatus(data)
	if err != nil || len(events) == 0 {
		return
	}

	// Only the most recent unseen event fires callbacks.
	ev := events[0]
	h.mu.Lock()
	if ev.Seq == h.statusSeq {
		h.mu.Unlock()
		return
	}
	h.statusSeq = ev.Seq
	phaseCallback := h.onPhaseChange
	solvedCallback := h.onSolved
	matchCallback := h.onMatch
	doubleTapCallback := h.onDoubleTap
	instrEmptyCallback := h.onInstructionEmpty
	h.mu.Unlock()

	status := statusFromEvent(ev)

	// Fire callbacks outside the lock.
	if status.Solution {
		if phaseCallback != nil {
			phaseCallback(status.Phase, status.NumCorrect)
		}
		if status.Phase == PhaseSolved && solvedCallback != nil {
			solvedCallback()
		}
	}
	if status.Match && matchCallback != nil {
		matchCallback()
	}
	if status.DoubleTap && doubleTapCallback != nil {
		doubleTapCallback()
	}
	if status.InstructionEmpty && instrEmptyCallback != nil {
		instrEmptyCallback()
	}
}

func statusFromEvent(ev protocol.StatusEvent) Status {
	return Status{
		Solution:         ev.Solution,
		Move:             ev.Move,
		Match:            ev.Match,
		DoubleTap:        ev.DoubleTap,
		InstructionEmpty: ev.InstructionEmpty,
		InstructionMax:   ev.InstructionMax,
		Phase:            Phase(ev.SolutionPhase),
		NumCorrect:       ev.NumCorrect,
		Seq:              ev.Seq,
		Timestamp:        ev.Timestamp,
	}
}

func movesFromIndices(indices []byte, t time.Time) []Move {
	moves := make([]Move, 0, len(indices))
	for _, idx := range indices {
		if m, ok := MoveFromIndex(idx); ok {
			m.Time = t
			moves = append(moves, m)
		}
	}
	return moves
}

func indicesFromMoves(moves []Move) []byte {
	indices := make([]byte, len(moves))
	for i, m := range moves {
		indices[i] = m.Index()
	}
	return indices
}
