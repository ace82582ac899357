package scout

import (
	"errors"

	"go.einride.tech/can"
)

var (
	// ErrTransportClosed is returned by sends on a transport that is not open.
	ErrTransportClosed = errors.New("scout: transport closed")
	// ErrNoTransport is logged when the control loop runs before Connect.
	ErrNoTransport = errors.New("scout: no transport configured")
)

// FrameTransport delivers whole CAN frames. The receive callback is invoked
// from a transport-owned goroutine, one frame at a time; it must be set
// before Open.
type FrameTransport interface {
	Open() error
	Close() error
	IsOpen() bool
	SendFrame(can.Frame) error
	SetReceiveCallback(func(can.Frame))
}

// StreamTransport delivers raw byte chunks from a byte-stream link. The
// receive callback is invoked from a transport-owned goroutine with each
// chunk as it arrives; it must be set before Open.
type StreamTransport interface {
	Open() error
	Close() error
	IsOpen() bool
	SendBytes([]byte) error
	SetReceiveCallback(func([]byte))
}
