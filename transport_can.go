//go:build linux

package scout

import (
	"context"
	"fmt"
	"net"
	"sync"

	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

func newCANTransport(device string) FrameTransport {
	return NewCANTransport(device)
}

// CANTransport is a SocketCAN-backed FrameTransport.
type CANTransport struct {
	device string

	conn net.Conn
	tx   *socketcan.Transmitter
	rx   *socketcan.Receiver

	onFrame func(can.Frame)

	mu        sync.Mutex
	open      bool
	closeOnce sync.Once
	closeChan chan struct{}
}

// NewCANTransport returns an unopened transport for a SocketCAN interface
// such as "can0".
func NewCANTransport(device string) *CANTransport {
	return &CANTransport{
		device:    device,
		closeChan: make(chan struct{}),
	}
}

// SetReceiveCallback registers the single frame callback. Must be called
// before Open.
func (t *CANTransport) SetReceiveCallback(fn func(can.Frame)) {
	t.onFrame = fn
}

func (t *CANTransport) Open() error {
	conn, err := socketcan.DialContext(context.Background(), "can", t.device)
	if err != nil {
		return fmt.Errorf("failed to open can interface %q: %w", t.device, err)
	}
	t.conn = conn
	t.tx = socketcan.NewTransmitter(conn)
	t.rx = socketcan.NewReceiver(conn)

	t.mu.Lock()
	t.open = true
	t.mu.Unlock()

	go t.recvLoop()
	return nil
}

func (t *CANTransport) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func (t *CANTransport) Close() error {
	t.mu.Lock()
	t.open = false
	t.mu.Unlock()

	var err error
	t.closeOnce.Do(func() {
		close(t.closeChan)
		if t.conn != nil {
			err = t.conn.Close()
		}
	})
	return err
}

// SendFrame transmits one frame. It does not wait for bus acknowledgement
// beyond the kernel's socket write.
func (t *CANTransport) SendFrame(f can.Frame) error {
	if !t.IsOpen() {
		return ErrTransportClosed
	}
	return t.tx.TransmitFrame(context.Background(), f)
}

func (t *CANTransport) recvLoop() {
	for t.rx.Receive() {
		select {
		case <-t.closeChan:
			return
		default:
		}
		if t.onFrame != nil {
			t.onFrame(t.rx.Frame())
		}
	}
}
