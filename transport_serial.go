package scout

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"go.bug.st/serial"
)

// SerialTransport is a StreamTransport over a serial port.
type SerialTransport struct {
	device   string
	baudRate int

	port   serial.Port
	onData func([]byte)

	mu        sync.Mutex
	open      bool
	closeOnce sync.Once
	closeChan chan struct{}
}

// NewSerialTransport returns an unopened transport for a serial device such
// as "/dev/ttyUSB0".
func NewSerialTransport(device string, baudRate int) *SerialTransport {
	return &SerialTransport{
		device:    device,
		baudRate:  baudRate,
		closeChan: make(chan struct{}),
	}
}

// SetReceiveCallback registers the single chunk callback. Must be called
// before Open.
func (t *SerialTransport) SetReceiveCallback(fn func([]byte)) {
	t.onData = fn
}

// Open opens the port 8N1 at the configured baud rate. USB serial devices
// can briefly disappear while re-enumerating, so the open is retried a few
// times before giving up.
func (t *SerialTransport) Open() error {
	mode := &serial.Mode{
		BaudRate: t.baudRate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}

	var port serial.Port
	err := retry.Do(func() error {
		p, err := serial.Open(t.device, mode)
		if err != nil {
			return fmt.Errorf("failed to open com port %q: %w", t.device, err)
		}
		port = p
		return nil
	},
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return err
	}

	port.SetReadTimeout(4 * time.Millisecond)
	port.ResetInputBuffer()
	t.port = port

	t.mu.Lock()
	t.open = true
	t.mu.Unlock()

	go t.readLoop()
	return nil
}

func (t *SerialTransport) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func (t *SerialTransport) Close() error {
	t.mu.Lock()
	t.open = false
	t.mu.Unlock()

	var err error
	t.closeOnce.Do(func() {
		close(t.closeChan)
		if t.port != nil {
			t.port.ResetInputBuffer()
			t.port.ResetOutputBuffer()
			err = t.port.Close()
		}
	})
	return err
}

// SendBytes writes one packed frame to the port.
func (t *SerialTransport) SendBytes(data []byte) error {
	if !t.IsOpen() {
		return ErrTransportClosed
	}
	if _, err := t.port.Write(data); err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	return nil
}

func (t *SerialTransport) readLoop() {
	buf := make([]byte, 64)
	for {
		select {
		case <-t.closeChan:
			return
		default:
		}
		n, err := t.port.Read(buf)
		if err != nil {
			select {
			case <-t.closeChan:
			default:
				log.Printf("scout: serial read: %v", err)
			}
			return
		}
		if n == 0 {
			continue
		}
		if t.onData != nil {
			t.onData(buf[:n])
		}
	}
}
