//go:build !linux

package scout

import (
	"fmt"
	"runtime"

	"go.einride.tech/can"
)

func newCANTransport(device string) FrameTransport {
	return unsupportedCANTransport{device: device}
}

// SocketCAN only exists on Linux; other platforms get a transport that
// fails to open. Tests and the virtual transport are unaffected.
type unsupportedCANTransport struct {
	device string
}

func (t unsupportedCANTransport) Open() error {
	return fmt.Errorf("scout: socketcan interface %q not supported on %s", t.device, runtime.GOOS)
}

func (t unsupportedCANTransport) Close() error                       { return nil }
func (t unsupportedCANTransport) IsOpen() bool                       { return false }
func (t unsupportedCANTransport) SendFrame(can.Frame) error          { return ErrTransportClosed }
func (t unsupportedCANTransport) SetReceiveCallback(func(can.Frame)) {}
