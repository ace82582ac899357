package scout

import (
	"log"
	"time"

	"github.com/woodrim/go-scout/pkg/protocol"
)

// DefaultControlPeriod is the command resend period. The base expects to
// hear a motion command at this cadence and falls back to a safe stop when
// commands go silent.
const DefaultControlPeriod = 10 * time.Millisecond

func (b *Base) startControlLoop() {
	b.loopStart.Do(func() {
		b.loopStarted.Store(true)
		go b.controlLoop()
	})
}

// controlLoop resends the staged motion command every period and the staged
// light command when one is pending. Ticks are deadline-paced: the sleep is
// shortened by however long the sends took, and a tick that overruns the
// period rolls straight into the next one.
func (b *Base) controlLoop() {
	defer close(b.loopDone)

	timer := time.NewTimer(b.period)
	if !timer.Stop() {
		<-timer.C
	}

	var cmdCount, lightCmdCount uint8
	for {
		select {
		case <-b.stopChan:
			return
		default:
		}

		start := time.Now()

		b.sendMotionCommand(cmdCount)
		cmdCount++

		b.lightMu.Lock()
		pending := b.lightCtrlRequested
		b.lightMu.Unlock()
		if pending {
			b.sendLightCommand(lightCmdCount)
			lightCmdCount++
		}

		remain := b.period - time.Since(start)
		if remain <= 0 {
			continue
		}
		timer.Reset(remain)
		select {
		case <-b.stopChan:
			if !timer.Stop() {
				<-timer.C
			}
			return
		case <-timer.C:
		}
	}
}

func (b *Base) sendMotionCommand(count uint8) {
	b.motionMu.Lock()
	cmd := protocol.MotionCommand{
		FaultClearFlag: uint8(b.motion.faultClear),
		LinearPercent:  b.motion.linearPercent,
		AngularPercent: b.motion.angularPercent,
	}
	b.motionMu.Unlock()

	canIf, serialIf := b.activeTransports()
	switch {
	case canIf != nil:
		cmd.ControlMode = protocol.ControlModeCAN
		if err := canIf.SendFrame(protocol.PackMotionCommand(cmd, count)); err != nil {
			log.Printf("scout: motion command send: %v", err)
		}
	case serialIf != nil:
		cmd.ControlMode = protocol.ControlModeSerial
		if err := serialIf.SendBytes(protocol.PackMotionCommandSerial(cmd, count)); err != nil {
			log.Printf("scout: motion command send: %v", err)
		}
	default:
		b.noTransportOnce.Do(func() {
			log.Printf("scout: dropping commands, %v", ErrNoTransport)
		})
	}
}

func (b *Base) sendLightCommand(count uint8) {
	b.lightMu.Lock()
	var cmd protocol.LightCommand
	if b.lightCtrlEnabled {
		cmd = protocol.LightCommand{
			Enable:      protocol.LightControlEnable,
			FrontMode:   uint8(b.light.FrontMode),
			FrontCustom: b.light.FrontCustomValue,
			RearMode:    uint8(b.light.RearMode),
			RearCustom:  b.light.RearCustomValue,
		}
	} else {
		cmd = protocol.LightCommand{
			Enable:    protocol.LightControlDisable,
			FrontMode: uint8(LightModeConstOff),
			RearMode:  uint8(LightModeConstOff),
		}
	}
	b.lightCtrlRequested = false
	b.lightMu.Unlock()

	canIf, serialIf := b.activeTransports()
	switch {
	case canIf != nil:
		if err := canIf.SendFrame(protocol.PackLightCommand(cmd, count)); err != nil {
			log.Printf("scout: light command send: %v", err)
		}
	case serialIf != nil:
		if err := serialIf.SendBytes(protocol.PackLightCommandSerial(cmd, count)); err != nil {
			log.Printf("scout: light command send: %v", err)
		}
	}
}

// activeTransports snapshots the transport selection so sends happen
// outside transportMu. At most one return value is non-nil.
func (b *Base) activeTransports() (FrameTransport, StreamTransport) {
	b.transportMu.RLock()
	defer b.transportMu.RUnlock()
	if b.canConnected {
		return b.canIf, nil
	}
	if b.serialConnected {
		return nil, b.serialIf
	}
	return nil, nil
}
