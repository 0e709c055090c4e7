// Package ble provides low-level BLE communication with HEYKUBE devices.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"tinygo.org/x/bluetooth"

	"github.com/mtouzot/heykube/internal/protocol"
)

// Errors
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: HEYKUBE service not found")
	ErrTimeout          = errors.New("ble: connection timeout")
)

// Characteristic identifies one of the HEYKUBE GATT characteristics.
type Characteristic int

const (
	Version Characteristic = iota
	Battery
	Config
	CubeState
	Status
	MatchState
	Instructions
	Action
	Accel
	Moves
	numCharacteristics
)

var characteristicNames = [numCharacteristics]string{
	"Version", "Battery", "Config", "CubeState", "Status",
	"MatchState", "Instructions", "Action", "Accel", "Moves",
}

func (c Characteristic) String() string {
	if c < 0 || c >= numCharacteristics {
		return "unknown"
	}
	return characteristicNames[c]
}

var serviceUUID = bluetooth.NewUUID(mustParseUUID(protocol.ServiceUUID))

var charUUIDs = [numCharacteristics]bluetooth.UUID{
	Version:      bluetooth.NewUUID(mustParseUUID(protocol.VersionUUID)),
	Battery:      bluetooth.NewUUID(mustParseUUID(protocol.BatteryUUID)),
	Config:       bluetooth.NewUUID(mustParseUUID(protocol.ConfigUUID)),
	CubeState:    bluetooth.NewUUID(mustParseUUID(protocol.CubeStateUUID)),
	Status:       bluetooth.NewUUID(mustParseUUID(protocol.StatusUUID)),
	MatchState:   bluetooth.NewUUID(mustParseUUID(protocol.MatchStateUUID)),
	Instructions: bluetooth.NewUUID(mustParseUUID(protocol.InstructionsUUID)),
	Action:       bluetooth.NewUUID(mustParseUUID(protocol.ActionUUID)),
	Accel:        bluetooth.NewUUID(mustParseUUID(protocol.AccelUUID)),
	Moves:        bluetooth.NewUUID(mustParseUUID(protocol.MovesUUID)),
}

func mustParseUUID(s string) [16]byte {
	var uuid [16]byte
	clean := strings.ReplaceAll(s, "-", "")
	for i := 0; i < 16; i++ {
		var b byte
		fmt.Sscanf(clean[i*2:i*2+2], "%02x", &b)
		uuid[i] = b
	}
	return uuid
}

// ScanResult represents a discovered HEYKUBE device.
type ScanResult struct {
	Name    string
	UUID    string
	RSSI    int16
	Address bluetooth.Address
}

// Client manages the BLE connection to a HEYKUBE device.
type Client struct {
	adapter *bluetooth.Adapter
	log     zerolog.Logger

	mu         sync.RWMutex
	device     bluetooth.Device
	chars      [numCharacteristics]bluetooth.DeviceCharacteristic
	connected  bool
	deviceName string
	deviceUUID string

	onNotify func(Characteristic, []byte)
}

// NewClient creates a BLE client for HEYKUBE communication.
func NewClient(log zerolog.Logger) (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	return &Client{
		adapter: adapter,
		log:     log,
	}, nil
}

// SetNotifyCallback sets the callback for characteristic notifications.
// The cube notifies on the CubeState and Status characteristics.
func (c *Client) SetNotifyCallback(cb func(Characteristic, []byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onNotify = cb
}

// Scan scans for HEYKUBE devices until the timeout elapses.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	c.mu.RLock()
	if c.connected {
		c.mu.RUnlock()
		return nil, ErrAlreadyConnected
	}
	c.mu.RUnlock()

	var results []ScanResult
	var mu sync.Mutex
	seen := make(map[string]bool)

	done := make(chan struct{})

	go func() {
		c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			addr := result.Address.String()

			mu.Lock()
			if seen[addr] {
				mu.Unlock()
				return
			}
			seen[addr] = true
			mu.Unlock()

			if strings.Contains(name, protocol.DeviceNamePrefix) {
				c.log.Debug().Str("name", name).Str("addr", addr).
					Int16("rssi", result.RSSI).Msg("found HEYKUBE")
				mu.Lock()
				results = append(results, ScanResult{
					Name:    name,
					UUID:    addr,
					RSSI:    result.RSSI,
					Address: result.Address,
				})
				mu.Unlock()
			}
		})
		close(done)
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	c.adapter.StopScan()
	<-done

	return results, nil
}

// Connect connects to a HEYKUBE device by UUID.
func (c *Client) Connect(ctx context.Context, deviceUUID string) error {
	c.mu.RLock()
	if c.connected {
		c.mu.RUnlock()
		return ErrAlreadyConnected
	}
	c.mu.RUnlock()

	var targetAddr bluetooth.Address
	var targetName string
	found := make(chan struct{})
	var foundOnce sync.Once

	go func() {
		c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if result.Address.String() == deviceUUID {
				targetAddr = result.Address
				targetName = result.LocalName()
				foundOnce.Do(func() {
					close(found)
				})
			}
		})
	}()

	select {
	case <-found:
		c.adapter.StopScan()
	case <-time.After(10 * time.Second):
		c.adapter.StopScan()
		return ErrDeviceNotFound
	case <-ctx.Done():
		c.adapter.StopScan()
		return ctx.Err()
	}

	return c.attach(targetAddr, targetName, deviceUUID)
}

// ConnectToResult connects directly to a device from a scan result.
func (c *Client) ConnectToResult(ctx context.Context, result ScanResult) error {
	c.mu.RLock()
	if c.connected {
		c.mu.RUnlock()
		return ErrAlreadyConnected
	}
	c.mu.RUnlock()

	return c.attach(result.Address, result.Name, result.UUID)
}

// attach connects to the address, discovers the HEYKUBE service and all
// characteristics, and enables notifications.
func (c *Client) attach(addr bluetooth.Address, name, uuid string) error {
	device, err := c.adapter.Connect(addr, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return ErrServiceNotFound
	}

	discovered, err := services[0].DiscoverCharacteristics(charUUIDs[:])
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var chars [numCharacteristics]bluetooth.DeviceCharacteristic
	for _, dc := range discovered {
		for i := Characteristic(0); i < numCharacteristics; i++ {
			if dc.UUID() == charUUIDs[i] {
				chars[i] = dc
			}
		}
	}

	for _, ch := range []Characteristic{CubeState, Status} {
		char := ch
		err = chars[char].EnableNotifications(func(data []byte) {
			c.handleNotification(char, data)
		})
		if err != nil {
			device.Disconnect()
			return fmt.Errorf("failed to enable %s notifications: %w", char, err)
		}
	}

	c.mu.Lock()
	c.device = device
	c.chars = chars
	c.connected = true
	c.deviceName = name
	c.deviceUUID = uuid
	c.mu.Unlock()

	c.log.Info().Str("name", name).Str("addr", uuid).Msg("connected")
	return nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.deviceUUID = ""

	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// DeviceUUID returns the connected device UUID.
func (c *Client) DeviceUUID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceUUID
}

// Read reads a characteristic value.
func (c *Client) Read(char Characteristic) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return nil, ErrNotConnected
	}

	buf := make([]byte, 64)
	n, err := c.chars[char].Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", char, err)
	}
	c.log.Debug().Str("char", char.String()).Hex("data", buf[:n]).Msg("read")
	return buf[:n], nil
}

// Write writes a value to a characteristic.
func (c *Client) Write(char Characteristic, data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	c.log.Debug().Str("char", char.String()).Hex("data", data).Msg("write")
	_, err := c.chars[char].WriteWithoutResponse(data)
	if err != nil {
		_, err = c.chars[char].Write(data)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", char, err)
	}
	return nil
}

// handleNotification dispatches incoming BLE notifications.
func (c *Client) handleNotification(char Characteristic, data []byte) {
	c.log.Debug().Str("char", char.String()).Hex("data", data).Msg("notify")

	c.mu.RLock()
	cb := c.onNotify
	c.mu.RUnlock()

	if cb != nil {
		cb(char, data)
	}
}
