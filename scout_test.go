package scout

import (
	"testing"
	"time"
)

func TestConnectZeroBaudSelectsCAN(t *testing.T) {
	canTr := NewVirtualFrameTransport()
	serialTr := NewVirtualStreamTransport()
	b := quietBase(t, WithCANTransport(canTr), WithSerialTransport(serialTr))

	b.Connect("can0", 0)

	if !b.canConnected {
		t.Error("CAN not selected for baud 0")
	}
	if b.serialConnected {
		t.Error("serial selected alongside CAN")
	}
	if !canTr.IsOpen() {
		t.Error("CAN transport not opened")
	}
	if serialTr.IsOpen() {
		t.Error("serial transport opened on a CAN session")
	}
}

func TestConnectNonzeroBaudSelectsSerial(t *testing.T) {
	canTr := NewVirtualFrameTransport()
	serialTr := NewVirtualStreamTransport()
	b := quietBase(t, WithCANTransport(canTr), WithSerialTransport(serialTr))

	b.Connect("/dev/ttyUSB0", 115200)

	if !b.serialConnected {
		t.Error("serial not selected for nonzero baud")
	}
	if b.canConnected {
		t.Error("CAN selected alongside serial")
	}
	if canTr.IsOpen() {
		t.Error("CAN transport opened on a serial session")
	}
	if !serialTr.IsOpen() {
		t.Error("serial transport not opened")
	}
}

func TestDisconnectClosesSerialOnly(t *testing.T) {
	serialTr := NewVirtualStreamTransport()
	b := quietBase(t, WithSerialTransport(serialTr))
	b.Connect("/dev/ttyUSB0", 115200)

	b.Disconnect()

	if serialTr.IsOpen() {
		t.Error("serial transport still open after Disconnect")
	}
	if b.serialConnected {
		t.Error("serial still marked connected after Disconnect")
	}
}

func TestCloseStopsControlLoop(t *testing.T) {
	tr := NewVirtualFrameTransport()
	b, err := New(WithControlPeriod(time.Millisecond), WithCANTransport(tr))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Connect("can0", 0)
	b.SetMotionCommand(0.1, 0, FaultClearNone)

	if !waitFor(t, 2*time.Second, func() bool { return len(tr.Sent()) > 0 }) {
		t.Fatal("loop never sent")
	}

	done := make(chan struct{})
	go func() {
		b.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not join the control loop in time")
	}

	// no further sends after Close returns
	n := len(tr.Sent())
	time.Sleep(20 * time.Millisecond)
	if got := len(tr.Sent()); got != n {
		t.Errorf("loop still sending after Close: %d -> %d", n, got)
	}
	if tr.IsOpen() {
		t.Error("CAN transport still open after Close")
	}
}

func TestCloseIdempotent(t *testing.T) {
	b, err := New(WithCANTransport(NewVirtualFrameTransport()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Connect("can0", 0)
	if err := b.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestCloseWithoutLoopStart(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	done := make(chan struct{})
	go func() {
		b.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close blocked with no loop running")
	}
}

func TestNewRejectsBadPeriod(t *testing.T) {
	if _, err := New(WithControlPeriod(0)); err == nil {
		t.Error("zero control period accepted")
	}
}
