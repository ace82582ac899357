// Package scout drives a differential mobile-robot base over CAN or a serial
// link. It keeps the latest commanded motion and light state, resends it at
// a fixed rate on a background goroutine, and folds asynchronously arriving
// telemetry into a single lock-protected robot-state snapshot.
package scout

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"go.einride.tech/can"

	"github.com/woodrim/go-scout/pkg/protocol"
)

// Base is the driver core. Create it with New, connect one transport with
// Connect, then use the command setters and GetRobotState. All methods are
// safe for concurrent use; commands may be staged before Connect and are
// dropped until a transport is active. Connect and Close must not race
// each other.
type Base struct {
	transportMu     sync.RWMutex
	canIf           FrameTransport
	serialIf        StreamTransport
	canConnected    bool
	serialConnected bool

	period time.Duration

	motionMu sync.Mutex
	motion   motionCommand

	lightMu            sync.Mutex
	light              LightCommand
	lightCtrlEnabled   bool
	lightCtrlRequested bool

	stateMu sync.Mutex
	state   RobotState

	framer *protocol.Framer

	loopStart   sync.Once
	loopStarted atomic.Bool
	loopDone    chan struct{}
	stopOnce    sync.Once
	stopChan    chan struct{}

	noTransportOnce sync.Once
}

// Option configures a Base.
type Option func(*Base) error

// WithControlPeriod overrides the command resend period.
func WithControlPeriod(period time.Duration) Option {
	return func(b *Base) error {
		if period <= 0 {
			return fmt.Errorf("scout: invalid control period %v", period)
		}
		b.period = period
		return nil
	}
}

// WithCANTransport supplies a pre-built CAN transport that Connect will use
// instead of opening a SocketCAN interface.
func WithCANTransport(t FrameTransport) Option {
	return func(b *Base) error {
		b.canIf = t
		return nil
	}
}

// WithSerialTransport supplies a pre-built serial transport that Connect
// will use instead of opening a serial port.
func WithSerialTransport(t StreamTransport) Option {
	return func(b *Base) error {
		b.serialIf = t
		return nil
	}
}

// New creates an unconnected Base.
func New(opts ...Option) (*Base, error) {
	b := &Base{
		period:   DefaultControlPeriod,
		loopDone: make(chan struct{}),
		stopChan: make(chan struct{}),
	}
	b.framer = protocol.NewFramer(b.applyStatus)
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Connect selects and configures the session's transport. A baud rate of
// zero selects CAN on the named interface; any other value selects a serial
// port at that rate. Exactly one transport becomes active. A serial port
// that fails to open is logged and left disconnected; the caller may retry.
func (b *Base) Connect(device string, baudRate int) {
	if baudRate == 0 {
		b.configureCAN(device)
		return
	}
	b.configureSerial(device, baudRate)
}

func (b *Base) configureCAN(device string) {
	b.transportMu.Lock()
	defer b.transportMu.Unlock()

	if b.canIf == nil {
		b.canIf = newCANTransport(device)
	}
	b.canIf.SetReceiveCallback(b.handleCANFrame)
	// Link-layer readiness is not verified here; a dead bus surfaces as
	// failed sends and absent telemetry.
	if err := b.canIf.Open(); err != nil {
		log.Printf("scout: can interface %s: %v", device, err)
	}
	b.canConnected = true
}

func (b *Base) configureSerial(device string, baudRate int) {
	b.transportMu.Lock()
	defer b.transportMu.Unlock()

	if b.serialIf == nil {
		b.serialIf = NewSerialTransport(device, baudRate)
	}
	b.serialIf.SetReceiveCallback(b.handleSerialData)
	if err := b.serialIf.Open(); err != nil {
		log.Printf("scout: serial port %s: %v", device, err)
		return
	}
	b.serialConnected = true
}

// Disconnect closes the serial transport if it is the active one. A CAN
// socket stays up for the transport's own teardown in Close.
func (b *Base) Disconnect() {
	b.transportMu.Lock()
	defer b.transportMu.Unlock()

	if b.serialConnected {
		if b.serialIf.IsOpen() {
			if err := b.serialIf.Close(); err != nil {
				log.Printf("scout: serial close: %v", err)
			}
		}
		b.serialConnected = false
	}
}

// Close stops the control loop, waits for it to exit, and closes whichever
// transport is active. Safe to call more than once.
func (b *Base) Close() error {
	b.stopOnce.Do(func() {
		close(b.stopChan)
	})
	if b.loopStarted.Load() {
		<-b.loopDone
	}

	b.transportMu.Lock()
	defer b.transportMu.Unlock()

	var err error
	if b.serialConnected {
		if b.serialIf.IsOpen() {
			err = b.serialIf.Close()
		}
		b.serialConnected = false
	}
	if b.canConnected {
		if b.canIf != nil && b.canIf.IsOpen() {
			err = b.canIf.Close()
		}
		b.canConnected = false
	}
	return err
}

// handleCANFrame runs on the CAN transport's receive goroutine.
func (b *Base) handleCANFrame(f can.Frame) {
	if !protocol.VerifyChecksum(f) {
		log.Printf("scout: checksum mismatch, discarding frame id 0x%03X", f.ID)
		return
	}
	msg, err := protocol.DecodeFrame(f)
	if err != nil {
		// foreign traffic on a shared bus, not ours to interpret
		return
	}
	b.applyStatus(msg)
}

// handleSerialData runs on the serial transport's receive goroutine. Frame
// reassembly and checksum validation happen in the framer.
func (b *Base) handleSerialData(data []byte) {
	b.framer.Feed(data)
}
