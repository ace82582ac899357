package scout

import (
	"sync"

	"go.einride.tech/can"
)

// VirtualFrameTransport is an in-memory FrameTransport. It records sent
// frames and lets the caller inject received ones, for tests and dry runs
// without hardware.
type VirtualFrameTransport struct {
	mu      sync.Mutex
	open    bool
	sent    []can.Frame
	onFrame func(can.Frame)
}

func NewVirtualFrameTransport() *VirtualFrameTransport {
	return &VirtualFrameTransport{}
}

func (t *VirtualFrameTransport) Open() error {
	t.mu.Lock()
	t.open = true
	t.mu.Unlock()
	return nil
}

func (t *VirtualFrameTransport) Close() error {
	t.mu.Lock()
	t.open = false
	t.mu.Unlock()
	return nil
}

func (t *VirtualFrameTransport) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func (t *VirtualFrameTransport) SendFrame(f can.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return ErrTransportClosed
	}
	t.sent = append(t.sent, f)
	return nil
}

func (t *VirtualFrameTransport) SetReceiveCallback(fn func(can.Frame)) {
	t.mu.Lock()
	t.onFrame = fn
	t.mu.Unlock()
}

// InjectFrame delivers a frame to the registered receive callback as if it
// had arrived from the bus.
func (t *VirtualFrameTransport) InjectFrame(f can.Frame) {
	t.mu.Lock()
	fn := t.onFrame
	t.mu.Unlock()
	if fn != nil {
		fn(f)
	}
}

// Sent returns a copy of all frames sent so far.
func (t *VirtualFrameTransport) Sent() []can.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]can.Frame, len(t.sent))
	copy(out, t.sent)
	return out
}

// VirtualStreamTransport is an in-memory StreamTransport counterpart to
// VirtualFrameTransport.
type VirtualStreamTransport struct {
	mu     sync.Mutex
	open   bool
	sent   [][]byte
	onData func([]byte)
}

func NewVirtualStreamTransport() *VirtualStreamTransport {
	return &VirtualStreamTransport{}
}

func (t *VirtualStreamTransport) Open() error {
	t.mu.Lock()
	t.open = true
	t.mu.Unlock()
	return nil
}

func (t *VirtualStreamTransport) Close() error {
	t.mu.Lock()
	t.open = false
	t.mu.Unlock()
	return nil
}

func (t *VirtualStreamTransport) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func (t *VirtualStreamTransport) SendBytes(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return ErrTransportClosed
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	t.sent = append(t.sent, buf)
	return nil
}

func (t *VirtualStreamTransport) SetReceiveCallback(fn func([]byte)) {
	t.mu.Lock()
	t.onData = fn
	t.mu.Unlock()
}

// InjectBytes delivers a chunk to the registered receive callback as if it
// had been read from the port.
func (t *VirtualStreamTransport) InjectBytes(data []byte) {
	t.mu.Lock()
	fn := t.onData
	t.mu.Unlock()
	if fn != nil {
		fn(data)
	}
}

// Sent returns a copy of all chunks written so far.
func (t *VirtualStreamTransport) Sent() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]byte, len(t.sent))
	for i, b := range t.sent {
		out[i] = append([]byte(nil), b...)
	}
	return out
}
