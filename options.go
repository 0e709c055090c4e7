package heykube

import "github.com/rs/zerolog"

// Option configures HEYKUBE behavior.
type Option func(*config)

// Status event bits for WithStatusEvents.
const (
	EventSolution         byte = 0x01
	EventMove             byte = 0x02
	EventMatch            byte = 0x04
	EventDoubleTap        byte = 0x08
	EventInstructionEmpty byte = 0x10
	EventInstructionMax   byte = 0x20
	EventAll              byte = 0x3F
)

type config struct {
	logger      zerolog.Logger
	moveHistory bool
	statusMask  byte
}

func defaultConfig() *config {
	return &config{
		logger:      zerolog.Nop(),
		moveHistory: true,
		statusMask:  EventAll,
	}
}

// WithLogger sets a structured logger for BLE traffic and device events.
// By default nothing is logged.
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) {
		c.logger = log
	}
}

// WithMoveHistory enables or disables move history tracking.
// When enabled (default), all moves are stored and accessible via Moves().
// Disable this for long sessions to reduce memory usage.
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}

// WithStatusEvents selects which cube events trigger status
// notifications, as a mask of Event bits. All events are armed by
// default.
func WithStatusEvents(mask byte) Option {
	return func(c *config) {
		c.statusMask = mask & EventAll
	}
}
