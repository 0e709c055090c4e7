package heykube

import "errors"

// Sentinel errors for the heykube package.
var (
	// Connection errors
	ErrNotConnected     = errors.New("heykube: not connected to device")
	ErrAlreadyConnected = errors.New("heykube: already connected")
	ErrDeviceNotFound   = errors.New("heykube: device not found")
	ErrConnectionFailed = errors.New("heykube: connection failed")
	ErrTimeout          = errors.New("heykube: operation timed out")

	// Parsing errors
	ErrInvalidNotation = errors.New("heykube: invalid move notation")
	ErrInvalidState    = errors.New("heykube: invalid cube state")
	ErrInvalidFacelet  = errors.New("heykube: invalid facelet name")

	// Protocol errors
	ErrTooManyMoves   = errors.New("heykube: instruction queue limit exceeded")
	ErrShortRead      = errors.New("heykube: characteristic payload too short")
	ErrUnknownPattern = errors.New("heykube: unknown pattern name")
)
